package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ugaemi/pihagi-server/internal/geom"
)

// SoundPlayer plays the pickup cue for an item type. Delivery is
// best-effort: the session logs returned errors and never lets them
// touch game state.
type SoundPlayer interface {
	Play(t ItemType) error
}

// Session owns one player's authoritative game: the frame batcher, the
// frame clock subscription, the villain growth timer, and every pending
// item respawn timer. Teardown cancels everything reachable from the
// session, so a timer leaked from a previous run can never fire into a
// new one.
type Session struct {
	ID string

	mu    sync.Mutex
	batch *Batcher

	clock Clock
	subID int

	started bool
	// runID changes on every Start. Timer callbacks capture it and no-op
	// once the session has been reset or torn down.
	runID         string
	growthStop    chan struct{}
	respawnTimers map[int]*time.Timer

	loseOnCollision bool
	sound           SoundPlayer
	onCommit        func(GameState)
}

// NewSession creates a session in the Ready phase with a fresh GameState
// at the default stage size.
func NewSession(clock Clock, sound SoundPlayer, loseOnCollision bool) *Session {
	s := &Session{
		ID:              uuid.New().String(),
		clock:           clock,
		sound:           sound,
		loseOnCollision: loseOnCollision,
		respawnTimers:   make(map[int]*time.Timer),
	}
	s.batch = NewBatcher(newGameState(DefaultStageWidth, DefaultStageHeight))
	return s
}

// newGameState builds a fresh state: hero centered, villain placed at a
// random point clear of the hero, one item of each type placed clear of
// the hero and each other.
func newGameState(stageWidth, stageHeight float64) GameState {
	stage := geom.Rect{Width: stageWidth, Height: stageHeight}
	hero := Transform{
		Left: stageWidth/2 - HeroLength/2,
		Top:  stageHeight/2 - HeroLength/2,
	}
	heroZone := geom.Rect{Left: hero.Left, Top: hero.Top, Width: HeroLength, Height: HeroLength}

	villainPos := geom.FindUnoccupiedPoint(
		geom.Size{Width: VillainInitialLength, Height: VillainInitialLength},
		stage, heroZone)

	return GameState{
		Hero:          hero,
		HeroSpeed:     HeroInitialSpeed,
		HeroTarget:    geom.Point{X: hero.Left, Y: hero.Top},
		Villain:       Transform{Left: villainPos.X, Top: villainPos.Y},
		VillainSpeed:  VillainInitialSpeed,
		VillainLength: VillainInitialLength,
		Items:         SpawnItems(heroZone, stage),
		StageWidth:    stageWidth,
		StageHeight:   stageHeight,
	}
}

// SetOnCommit registers the committed-state observer, invoked with a
// snapshot after every flush. This is the renderer's seam; it is never
// given the open batch. Must be set before Start.
func (s *Session) SetOnCommit(fn func(GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCommit = fn
}

// Phase returns the lifecycle phase derived from the committed game-over
// flag and the started flag.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phaseLocked()
}

func (s *Session) phaseLocked() Phase {
	if s.batch.Committed().GameOver {
		return PhaseGameOver
	}
	if s.started {
		return PhasePlaying
	}
	return PhaseReady
}

// Committed returns the last committed state snapshot.
func (s *Session) Committed() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch.Committed()
}

// View returns the state as it will stand after the current frame's
// flush. The mover steps from this so consecutive reports within one
// frame compose.
func (s *Session) View() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch.View()
}

// Start subscribes the frame loop to the clock and starts the periodic
// villain growth timer. No-op unless the session is Ready.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phaseLocked() != PhaseReady {
		return
	}

	s.started = true
	s.runID = uuid.New().String()
	s.subID = s.clock.Subscribe(s.update)
	s.growthStop = make(chan struct{})
	go s.growthLoop(s.runID, s.growthStop)

	slog.Info("session started", "session", s.ID, "run", s.runID)
}

// GameOver freezes the session: the game-over flag is staged, the frame
// clock unsubscribed, and all timers cancelled. When triggered by the
// collision check it runs inside the same tick, so the flag commits in
// that frame's flush.
func (s *Session) GameOver() {
	s.mu.Lock()
	s.gameOverLocked()
	s.flushAndNotify()
}

// gameOverLocked stages the transition without flushing. The caller's
// frame flush commits it.
func (s *Session) gameOverLocked() {
	if s.batch.View().GameOver {
		return
	}

	s.batch.Batch(func(st *GameState) {
		st.GameOver = true
	})
	s.clock.Unsubscribe(s.subID)
	s.stopTimersLocked()

	slog.Info("game over", "session", s.ID, "survived", s.batch.View().TimeSurvived)
}

// Reset regenerates a fresh GameState at the current stage size, drops
// any pending unflushed updates, and starts again.
func (s *Session) Reset() {
	s.mu.Lock()
	s.clock.Unsubscribe(s.subID)
	s.stopTimersLocked()

	// Read the stage size through the view: a resize reported while the
	// clock was stopped (the game-over modal rotating, say) is still
	// pending and would be lost with the rest of the stale batch.
	st := s.batch.View()
	s.batch = NewBatcher(newGameState(st.StageWidth, st.StageHeight))
	s.started = false
	s.mu.Unlock()

	slog.Info("session reset", "session", s.ID)
	s.Start()
}

// Close tears the session down on disconnect: timers cancelled, clock
// unsubscribed, pending updates dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Unsubscribe(s.subID)
	s.stopTimersLocked()
	s.batch.Clear()
	s.started = false
}

// stopTimersLocked cancels the growth loop and all pending respawn
// timers, and invalidates the run so in-flight timer callbacks no-op.
func (s *Session) stopTimersLocked() {
	if s.growthStop != nil {
		close(s.growthStop)
		s.growthStop = nil
	}
	for i, t := range s.respawnTimers {
		t.Stop()
		delete(s.respawnTimers, i)
	}
	s.runID = ""
}

// update runs once per frame tick: time accounting, the villain/hero
// collision decision against the freshest transforms, then exactly one
// flush as the final step.
func (s *Session) update(now time.Time) {
	s.mu.Lock()
	if !s.started || s.batch.Committed().GameOver {
		s.mu.Unlock()
		return
	}

	s.batch.Batch(func(st *GameState) {
		var elapsed time.Duration
		if !st.CurrentFrameTime.IsZero() {
			elapsed = now.Sub(st.CurrentFrameTime)
		}
		st.LastFrameTime = st.CurrentFrameTime
		st.CurrentFrameTime = now
		st.TimeSurvived += elapsed
	})

	// Position reports staged earlier this frame are visible through the
	// batch view, so the collision check never uses stale transforms.
	view := s.batch.View()
	if geom.Overlaps(view.VillainRect(), view.HeroRect()) {
		s.batch.Batch(func(st *GameState) {
			st.CollidingWithVillain = true
		})
		if s.loseOnCollision {
			s.gameOverLocked()
		}
	}

	s.flushAndNotify()
}

// flushAndNotify commits the open batch and hands the committed snapshot
// to the observer outside the lock. Callers must hold s.mu; it is
// released here.
func (s *Session) flushAndNotify() {
	s.batch.Flush()
	committed := s.batch.Committed()
	notify := s.onCommit
	s.mu.Unlock()

	if notify != nil {
		notify(committed)
	}
}

// OnPositionUpdate folds a mover position report into the open frame
// batch, where it participates in the same end-of-frame commit as the
// collision check. A hero report additionally drives item consumption
// against the hero's newest rectangle.
func (s *Session) OnPositionUpdate(id EntityID, left, top, rotation float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.batch.Committed().GameOver {
		return
	}

	s.batch.Batch(func(st *GameState) {
		t := Transform{Left: left, Top: top, Rotation: rotation}
		switch id {
		case EntityHero:
			st.Hero = t
		case EntityVillain:
			st.Villain = t
		}
	})

	if id == EntityHero {
		s.consumeOverlappingLocked()
	}
}

// SetHeroTarget records a pointer location, offset so the hero's center
// tracks the touch point.
func (s *Session) SetHeroTarget(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch.Batch(func(st *GameState) {
		st.HeroTarget = geom.Point{X: x - HeroLength/2, Y: y - HeroLength/2}
	})
}

// SetStageSize applies play-field bounds from the dimension provider. A
// Ready session is rebuilt so spawn placement uses the real bounds; a
// running session resizes in place at the next flush.
func (s *Session) SetStageSize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phaseLocked() == PhaseReady {
		s.batch = NewBatcher(newGameState(width, height))
		return
	}

	s.batch.Batch(func(st *GameState) {
		st.StageWidth = width
		st.StageHeight = height
	})
}

// consumeOverlappingLocked consumes every unconsumed item the hero's
// current rectangle overlaps.
func (s *Session) consumeOverlappingLocked() {
	view := s.batch.View()
	hero := view.HeroRect()
	for i, it := range view.Items {
		if it.Consumed || !geom.Overlaps(hero, it.Rect()) {
			continue
		}
		s.consumeItemLocked(i, it.Type)
	}
}

func (s *Session) consumeItemLocked(i int, t ItemType) {
	s.batch.Batch(func(st *GameState) {
		it := st.Items[i]
		it.Consumed = true
		st.setItem(i, it)
	})

	if t == ItemTeleport {
		// The teleporting flag suppresses movement interpolation for one
		// frame; the completion callback stages the clear, which commits
		// with the following flush.
		s.batch.BatchDone(t.Effect(), func() {
			s.batch.Batch(func(st *GameState) {
				st.VillainTeleporting = false
			})
		})
	} else {
		s.batch.Batch(t.Effect())
	}

	if s.sound != nil {
		if err := s.sound.Play(t); err != nil {
			slog.Warn("item sound failed", "type", t.String(), "session", s.ID, "error", err)
		}
	}

	s.scheduleRespawnLocked(i)
	slog.Debug("item consumed", "type", t.String(), "index", i, "session", s.ID)
}

func (s *Session) scheduleRespawnLocked(i int) {
	runID := s.runID
	s.respawnTimers[i] = time.AfterFunc(RespawnDelay, func() {
		s.respawnItem(runID, i)
	})
}

// respawnItem clears an item's consumed flag and relocates it clear of
// the hero's position at respawn time. A callback from a run that has
// since been reset or torn down is a no-op.
func (s *Session) respawnItem(runID string, i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID != runID {
		return
	}
	delete(s.respawnTimers, i)

	s.batch.Batch(func(st *GameState) {
		if i >= len(st.Items) {
			return
		}
		it := st.Items[i]
		it.Position = geom.FindUnoccupiedPoint(
			geom.Size{Width: ItemLength, Height: ItemLength},
			st.StageRect(), st.HeroRect())
		it.Consumed = false
		st.setItem(i, it)
	})
}

// growthLoop periodically grows the villain until the cap. The staged
// growth commits with the next frame flush.
func (s *Session) growthLoop(runID string, stop chan struct{}) {
	ticker := time.NewTicker(GrowthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.runID == runID {
				s.growVillain()
			}
			s.mu.Unlock()
		}
	}
}

// growVillain stages one growth increment, clamped at the cap. Caller
// must hold s.mu.
func (s *Session) growVillain() {
	s.batch.Batch(func(st *GameState) {
		st.VillainLength += GrowthIncrement
		if st.VillainLength > VillainMaxLength {
			st.VillainLength = VillainMaxLength
		}
	})
}
