package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/pihagi-server/internal/geom"
)

func TestSpawnItems_OnePerType(t *testing.T) {
	stage := geom.Rect{Width: DefaultStageWidth, Height: DefaultStageHeight}
	heroZone := geom.Rect{Left: 100, Top: 100, Width: HeroLength, Height: HeroLength}

	items := SpawnItems(heroZone, stage)
	require.Len(t, items, len(AllItemTypes))

	for i, typ := range AllItemTypes {
		assert.Equal(t, typ, items[i].Type)
		assert.False(t, items[i].Consumed)
	}
}

func TestSpawnItems_AvoidsHeroAndEachOther(t *testing.T) {
	stage := geom.Rect{Width: DefaultStageWidth, Height: DefaultStageHeight}
	heroZone := geom.Rect{Left: 175, Top: 320, Width: HeroLength, Height: HeroLength}

	// Run multiple times to catch randomness issues
	for i := 0; i < 20; i++ {
		items := SpawnItems(heroZone, stage)
		for j, it := range items {
			assert.False(t, geom.Overlaps(it.Rect(), heroZone),
				"item %s must not overlap the hero spawn rect", it.Type)
			for k := 0; k < j; k++ {
				assert.False(t, geom.Overlaps(it.Rect(), items[k].Rect()),
					"items %s and %s must not overlap", it.Type, items[k].Type)
			}
		}
	}
}

func TestItemType_JSONRoundTrip(t *testing.T) {
	for _, typ := range AllItemTypes {
		data, err := json.Marshal(typ)
		require.NoError(t, err)

		var decoded ItemType
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, typ, decoded)
	}
}

func TestItemEffect_Speed(t *testing.T) {
	s := GameState{HeroSpeed: 5}
	ItemSpeed.Effect()(&s)
	assert.Equal(t, 5.0+SpeedBoost, s.HeroSpeed)
}

func TestItemEffect_ShrinkClampsAtInitialLength(t *testing.T) {
	tests := []struct {
		name     string
		length   float64
		expected float64
	}{
		{"above initial", VillainInitialLength + ShrinkAmount + 10, VillainInitialLength + 10},
		{"shrinks to floor", VillainInitialLength + 5, VillainInitialLength},
		{"already at floor", VillainInitialLength, VillainInitialLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GameState{VillainLength: tt.length}
			ItemShrink.Effect()(&s)
			assert.Equal(t, tt.expected, s.VillainLength)
		})
	}
}

func TestItemEffect_MineClampsAtMinSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		expected float64
	}{
		{"above floor", MinHeroSpeed + MineSlow + 2, MinHeroSpeed + 2},
		{"slows to floor", MinHeroSpeed + 1, MinHeroSpeed},
		{"already at floor", MinHeroSpeed, MinHeroSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GameState{HeroSpeed: tt.speed}
			ItemMine.Effect()(&s)
			assert.Equal(t, tt.expected, s.HeroSpeed)
		})
	}
}

func TestItemEffect_TeleportRelocatesClearOfHero(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := GameState{
			Hero:          Transform{Left: 100, Top: 100},
			Villain:       Transform{Left: 101, Top: 101},
			VillainLength: VillainInitialLength,
			StageWidth:    DefaultStageWidth,
			StageHeight:   DefaultStageHeight,
		}
		ItemTeleport.Effect()(&s)

		assert.True(t, s.VillainTeleporting)
		assert.False(t, geom.Overlaps(s.VillainRect(), s.HeroRect()),
			"teleported villain must not land on the hero")
	}
}
