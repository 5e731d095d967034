package game

import (
	"encoding/json"

	"github.com/ugaemi/pihagi-server/internal/geom"
)

// ItemType identifies a pickup's effect.
type ItemType int

const (
	ItemSpeed ItemType = iota
	ItemShrink
	ItemTeleport
	ItemMine
)

// AllItemTypes is the fixed set spawned once each at session start.
var AllItemTypes = []ItemType{ItemSpeed, ItemShrink, ItemTeleport, ItemMine}

func (t ItemType) String() string {
	switch t {
	case ItemSpeed:
		return "speed"
	case ItemShrink:
		return "shrink"
	case ItemTeleport:
		return "teleport"
	case ItemMine:
		return "mine"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes ItemType as a string.
func (t ItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON deserializes ItemType from a string.
func (t *ItemType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "shrink":
		*t = ItemShrink
	case "teleport":
		*t = ItemTeleport
	case "mine":
		*t = ItemMine
	default:
		*t = ItemSpeed
	}
	return nil
}

// Item is a transient pickup. Items are addressed by their index in
// GameState.Items, which is stable for the whole session; consumption
// and respawn only toggle Consumed and move Position.
type Item struct {
	Type     ItemType   `json:"type"`
	Position geom.Point `json:"position"`
	Consumed bool       `json:"consumed"`
}

// Rect returns the item's bounding box.
func (it Item) Rect() geom.Rect {
	return geom.Rect{Left: it.Position.X, Top: it.Position.Y, Width: ItemLength, Height: ItemLength}
}

// SpawnItems places one item of each type within the stage, avoiding the
// hero's spawn rectangle and every previously placed item.
func SpawnItems(heroZone geom.Rect, stage geom.Rect) []Item {
	items := make([]Item, 0, len(AllItemTypes))
	size := geom.Size{Width: ItemLength, Height: ItemLength}

	for _, t := range AllItemTypes {
		forbidden := make([]geom.Rect, 0, len(items)+1)
		forbidden = append(forbidden, heroZone)
		for _, it := range items {
			forbidden = append(forbidden, it.Rect())
		}
		pos := geom.FindUnoccupiedPoint(size, stage, forbidden...)
		items = append(items, Item{Type: t, Position: pos})
	}
	return items
}

// Effect returns the state update applied when an item of this type is
// consumed. Effects read the accumulated frame state, never the stale
// pre-frame values, and clamp at the mutation site rather than rejecting
// out-of-range results.
func (t ItemType) Effect() Update {
	switch t {
	case ItemSpeed:
		return func(s *GameState) {
			s.HeroSpeed += SpeedBoost
		}
	case ItemShrink:
		return func(s *GameState) {
			s.VillainLength -= ShrinkAmount
			if s.VillainLength < VillainInitialLength {
				s.VillainLength = VillainInitialLength
			}
		}
	case ItemTeleport:
		return func(s *GameState) {
			size := geom.Size{Width: s.VillainLength, Height: s.VillainLength}
			p := geom.FindUnoccupiedPoint(size, s.StageRect(), s.HeroRect())
			s.Villain.Left = p.X
			s.Villain.Top = p.Y
			s.VillainTeleporting = true
		}
	case ItemMine:
		return func(s *GameState) {
			s.HeroSpeed -= MineSlow
			if s.HeroSpeed < MinHeroSpeed {
				s.HeroSpeed = MinHeroSpeed
			}
		}
	default:
		return func(*GameState) {}
	}
}
