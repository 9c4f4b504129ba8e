package game

import "time"

// Map dimensions (pixels)
const (
	MapWidth      = 2000
	MapHeight     = 2000
	WallThickness = 20
)

// Room limits
const (
	MinPlayers  = 2
	MaxCapacity = 8
)

// Player stats
const (
	MaxHealth      = 100
	MaxAmmo        = 30
	CharacterCount = 3
)

// Anti-cheat
const (
	MaxMoveDistance = 30.0 // pixels per accepted move
	FireCooldown    = 300 * time.Millisecond
)

// Projectiles
const (
	ProjectileSpeed       = 15.0  // pixels per physics tick
	ProjectileMaxDistance = 800.0 // pixels
	ProjectileDamage      = 25
	PoolCapacity          = 500
)

// Collision
const (
	HitRadius       = 30.0
	QueryRadius     = 40.0
	PlayerFootprint = 30.0 // side of the box inserted into the quadtree
)

// Quadtree
const (
	QuadMaxEntities = 10
	QuadMaxDepth    = 5
)

// Spawn
const (
	SpawnInset       = 100.0 // distance from the map edge
	SpawnMargin      = 30.0  // clearance around every obstacle
	SpawnMaxAttempts = 100
)

// Match timing
const (
	MatchDuration     = 300 * time.Second
	RespawnDelay      = 5 * time.Second
	PhysicsRate       = 60 // ticks per second
	BroadcastRate     = 30
	PhysicsInterval   = time.Second / PhysicsRate
	BroadcastInterval = time.Second / BroadcastRate
	CountdownInterval = time.Second
)
