package game

import (
	"math"
	"time"

	"github.com/ugaemi/pihagi-server/internal/geom"
)

// Mover interpolates both entities toward their targets each frame and
// reports the resulting transforms back into the session's open batch.
// The hero seeks the last pointer location; the villain seeks the hero's
// freshest position at constant speed.
type Mover struct {
	session *Session
	subID   int
}

// NewMover creates a mover for the given session.
func NewMover(s *Session) *Mover {
	return &Mover{session: s}
}

// Attach subscribes the mover to the frame clock. It must be attached
// before the session starts so position reports for a frame are staged
// ahead of that frame's collision check.
func (m *Mover) Attach(clock Clock) {
	m.subID = clock.Subscribe(m.step)
}

// Detach removes the mover's clock subscription.
func (m *Mover) Detach(clock Clock) {
	clock.Unsubscribe(m.subID)
}

func (m *Mover) step(_ time.Time) {
	if m.session.Phase() != PhasePlaying {
		return
	}

	s := m.session.View()
	stage := s.StageRect()

	hx, hy := seek(s.Hero.Left, s.Hero.Top, s.HeroTarget.X, s.HeroTarget.Y, s.HeroSpeed)
	hx, hy = clampToStage(hx, hy, HeroLength, stage)
	m.session.OnPositionUpdate(EntityHero, hx, hy, heading(s.Hero.Left, s.Hero.Top, hx, hy, s.Hero.Rotation))

	// The hero report may have consumed an item, so re-read before
	// stepping the villain: a teleport staged this frame snaps the
	// villain, and a seek step from the stale position would overwrite
	// the relocation in the same flush.
	s = m.session.View()
	if s.VillainTeleporting {
		return
	}

	vx, vy := seek(s.Villain.Left, s.Villain.Top, hx, hy, s.VillainSpeed)
	vx, vy = clampToStage(vx, vy, s.VillainLength, stage)
	m.session.OnPositionUpdate(EntityVillain, vx, vy, heading(s.Villain.Left, s.Villain.Top, vx, vy, s.Villain.Rotation))
}

// seek advances (x, y) toward (tx, ty) by at most speed, snapping onto
// the target when it is within reach.
func seek(x, y, tx, ty, speed float64) (float64, float64) {
	dx := tx - x
	dy := ty - y
	dist := geom.Distance(x, y, tx, ty)
	if dist <= speed {
		return tx, ty
	}
	return x + dx/dist*speed, y + dy/dist*speed
}

// heading returns the movement direction in degrees, keeping the previous
// rotation when the entity did not move.
func heading(x, y, nx, ny, prev float64) float64 {
	if nx == x && ny == y {
		return prev
	}
	return math.Atan2(ny-y, nx-x) * 180 / math.Pi
}

// clampToStage keeps a square entity of the given length inside bounds.
func clampToStage(x, y, length float64, stage geom.Rect) (float64, float64) {
	maxX := stage.Right() - length
	maxY := stage.Bottom() - length

	if x < stage.Left {
		x = stage.Left
	} else if x > maxX && maxX >= stage.Left {
		x = maxX
	}
	if y < stage.Top {
		y = stage.Top
	} else if y > maxY && maxY >= stage.Top {
		y = maxY
	}
	return x, y
}
