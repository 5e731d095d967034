package game

import (
	"time"

	"github.com/ugaemi/pihagi-server/internal/geom"
)

// Phase represents the session lifecycle state.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EntityID identifies a moving entity in position reports.
type EntityID int

const (
	EntityHero EntityID = iota
	EntityVillain
)

func (e EntityID) String() string {
	switch e {
	case EntityHero:
		return "hero"
	case EntityVillain:
		return "villain"
	default:
		return "unknown"
	}
}

// Transform is an entity's position and heading in stage coordinates.
type Transform struct {
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Rotation float64 `json:"rotation"`
}

// GameState is the authoritative per-session state. All mutation goes
// through the Batcher, which commits it atomically once per frame;
// readers of a committed snapshot never observe a partially applied
// frame.
type GameState struct {
	GameOver             bool          `json:"game_over"`
	TimeSurvived         time.Duration `json:"time_survived"`
	CollidingWithVillain bool          `json:"colliding_with_villain"`

	Hero      Transform `json:"hero"`
	HeroSpeed float64   `json:"hero_speed"`

	Villain            Transform `json:"villain"`
	VillainSpeed       float64   `json:"villain_speed"`
	VillainLength      float64   `json:"villain_length"`
	VillainTeleporting bool      `json:"villain_teleporting"`

	HeroTarget geom.Point `json:"hero_target"`

	Items []Item `json:"items"`

	LastFrameTime    time.Time `json:"-"`
	CurrentFrameTime time.Time `json:"-"`

	StageWidth  float64 `json:"stage_width"`
	StageHeight float64 `json:"stage_height"`
}

// HeroRect returns the hero's axis-aligned bounding box.
func (s *GameState) HeroRect() geom.Rect {
	return geom.Rect{Left: s.Hero.Left, Top: s.Hero.Top, Width: HeroLength, Height: HeroLength}
}

// VillainRect returns the villain's bounding box at its current length.
func (s *GameState) VillainRect() geom.Rect {
	return geom.Rect{Left: s.Villain.Left, Top: s.Villain.Top, Width: s.VillainLength, Height: s.VillainLength}
}

// StageRect returns the play-field bounds.
func (s *GameState) StageRect() geom.Rect {
	return geom.Rect{Width: s.StageWidth, Height: s.StageHeight}
}

// setItem replaces the item at index i behind a fresh slice. GameState is
// copied by value between batch view, commit, and snapshots; the items
// slice would otherwise be shared, so every item write is copy-on-write.
func (s *GameState) setItem(i int, it Item) {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	items[i] = it
	s.Items = items
}
