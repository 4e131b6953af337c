package sim

import "github.com/vovakirdan/coin-runner/internal/core"

// Player is the runner. X never changes.
type Player struct {
	X, Y        float64
	W, H        float64
	VY          float64
	OnGround    bool
	SkillActive bool
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Obstacle is a square block resting on the ground.
type Obstacle struct {
	X, Y float64
	Size float64
}

// Box returns the obstacle's bounding box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Size, o.Size)
}

// Coin is a collectible floating above the ground.
type Coin struct {
	X, Y float64
	Size float64
}

// Box returns the coin's bounding box.
func (c Coin) Box() core.Box {
	return core.NewBox(c.X, c.Y, c.Size, c.Size)
}

// Rand is the randomness the spawners need. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}
