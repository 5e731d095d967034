package game

import "time"

// Stage defaults, used until the client reports real dimensions.
const (
	DefaultStageWidth  = 375.0
	DefaultStageHeight = 667.0
)

// Entity sizes (pixels, square bounding boxes)
const (
	HeroLength           = 25.0
	VillainInitialLength = 50.0
	VillainMaxLength     = 150.0
	ItemLength           = 20.0
)

// Movement (pixels per frame)
const (
	HeroInitialSpeed    = 5.0
	VillainInitialSpeed = 3.0
	MinHeroSpeed        = 2.0
)

// Item effects
const (
	SpeedBoost   = 5.0
	ShrinkAmount = 25.0
	MineSlow     = 3.0
	RespawnDelay = 10 * time.Second
)

// Villain growth
const (
	GrowthInterval  = 5 * time.Second
	GrowthIncrement = 10.0
)

// Frame clock
const (
	FrameRate     = 60
	FrameInterval = time.Second / FrameRate
)
