package sim

import (
	"math/rand"
	"time"
)

// Input is the player's intent for one step.
type Input struct {
	Jump  bool
	Skill bool
}

// Result is what one step produced.
type Result struct {
	Events []Event
	Hit    bool // the player crashed and the world was reset
}

// World is the complete mutable state of one run.
type World struct {
	params Params
	rng    *rand.Rand

	player    Player
	obstacles []Obstacle
	coins     []Coin
	collected int

	speed    float64
	skill    SkillState
	schedule schedule

	now           time.Duration // simulated time since the last reset
	ticks         int
	obstacleTimer time.Duration
	coinTimer     time.Duration

	events eventBuffer
}

// NewWorld creates a world with the given parameters and RNG seed, already
// reset. Params are expected to be validated by the caller.
func NewWorld(p Params, seed int64) *World {
	w := &World{
		params:    p,
		rng:       rand.New(rand.NewSource(seed)),
		obstacles: make([]Obstacle, 0, 8),
		coins:     make([]Coin, 0, 8),
	}
	w.Reset()
	w.events.drain()
	return w
}

// Reset restores every mutable value to its initial state and drops all
// pending skill transitions, so a reset mid-skill cannot be undone by a
// stale timer. The RNG keeps its sequence.
func (w *World) Reset() {
	w.collected = 0
	w.obstacles = w.obstacles[:0]
	w.coins = w.coins[:0]
	w.player = Player{
		X: w.params.PlayerX,
		W: w.params.PlayerW,
		H: w.params.PlayerH,
	}
	w.speed = w.params.BaseSpeed
	w.skill = SkillReady
	w.schedule.purge()
	w.now = 0
	w.ticks = 0
	w.obstacleTimer = 0
	w.coinTimer = 0

	w.events.push(Event{Kind: EventCoinsChanged, Coins: 0})
	w.events.push(Event{Kind: EventSkillChanged, Status: StatusReady})
}

// Step advances the world by one tick. dt is only read in ClockMeasured
// mode. Order within a tick: clock and due transitions, input, obstacles,
// coins, player, spawners, collision.
func (w *World) Step(dt time.Duration, in Input) Result {
	delta := w.frameDelta(dt)
	w.now += delta
	w.ticks++
	w.runDue()

	if in.Jump {
		w.Jump()
	}
	if in.Skill {
		w.ActivateSkill()
	}

	w.AdvanceObstacles()
	w.AdvanceCoins()
	w.AdvancePlayer()

	w.obstacleTimer += delta
	if w.obstacleTimer > w.params.ObstacleInterval {
		w.SpawnObstacle(w.rng)
		w.obstacleTimer = 0
	}
	w.coinTimer += delta
	if w.coinTimer > w.params.CoinInterval {
		w.SpawnCoin(w.rng)
		w.coinTimer = 0
	}

	hit := w.CheckCollision()
	if hit {
		w.events.push(Event{Kind: EventPlayerHit, Coins: w.collected, Ticks: w.ticks})
		w.Reset()
	}

	return Result{Events: w.events.drain(), Hit: hit}
}

func (w *World) frameDelta(dt time.Duration) time.Duration {
	if w.params.Clock != ClockMeasured {
		return w.params.FrameStep
	}
	if dt < 0 {
		return 0
	}
	if dt > w.params.MaxDelta {
		return w.params.MaxDelta
	}
	return dt
}

func (w *World) runDue() {
	for _, act := range w.schedule.popDue(w.now) {
		switch act {
		case actionSkillExpire:
			w.expireSkill()
		case actionSkillRecover:
			w.recoverSkill()
		}
	}
}

// AdvancePlayer integrates the player's vertical motion: position moves by
// the current velocity, is clamped to the ground (or the top of the field),
// then gravity accumulates into the velocity.
func (w *World) AdvancePlayer() {
	p := &w.player
	p.Y += p.VY

	rest := w.params.RestY()
	switch {
	case p.Y >= rest:
		p.Y = rest
		p.VY = 0
		p.OnGround = true
	case p.Y < 0:
		p.Y = 0
		p.VY = 0
		p.OnGround = false
	default:
		p.OnGround = false
	}

	p.VY += w.params.Gravity
}

// Jump launches the player if standing on the ground. It reports whether
// the jump happened.
func (w *World) Jump() bool {
	if !w.player.OnGround {
		return false
	}
	w.player.VY = w.params.JumpImpulse
	w.player.OnGround = false
	w.events.push(Event{Kind: EventJumped})
	return true
}

// SpawnObstacle adds an obstacle at the right edge with a size drawn
// uniformly from [ObstacleMinSize, ObstacleMaxSize).
func (w *World) SpawnObstacle(rng Rand) {
	span := w.params.ObstacleMaxSize - w.params.ObstacleMinSize
	size := w.params.ObstacleMinSize + rng.Float64()*span
	w.obstacles = append(w.obstacles, Obstacle{
		X:    w.params.FieldW,
		Y:    w.params.GroundLine() - size,
		Size: size,
	})
	w.events.push(Event{Kind: EventObstacleSpawned})
}

// SpawnCoin adds a coin at the right edge, lifted a random amount above
// the ground.
func (w *World) SpawnCoin(rng Rand) {
	size := w.params.CoinSize
	w.coins = append(w.coins, Coin{
		X:    w.params.FieldW,
		Y:    w.params.GroundLine() - size - rng.Float64()*w.params.CoinMaxLift,
		Size: size,
	})
	w.events.push(Event{Kind: EventCoinSpawned})
}

// AdvanceObstacles scrolls obstacles left and rebuilds the list without
// those whose trailing edge has left the field.
func (w *World) AdvanceObstacles() {
	kept := make([]Obstacle, 0, len(w.obstacles))
	for _, o := range w.obstacles {
		o.X -= w.speed
		if o.X+o.Size < 0 {
			continue
		}
		kept = append(kept, o)
	}
	w.obstacles = kept
}

// AdvanceCoins scrolls coins left, collects the ones overlapping the
// player and rebuilds the list without collected or off-field coins.
func (w *World) AdvanceCoins() {
	player := w.player.Box()
	kept := make([]Coin, 0, len(w.coins))
	for _, c := range w.coins {
		c.X -= w.speed
		if c.Box().Overlaps(player) {
			w.collected++
			w.events.push(Event{Kind: EventCoinCollected, Coins: w.collected})
			continue
		}
		if c.X+c.Size < 0 {
			continue
		}
		kept = append(kept, c)
	}
	w.coins = kept
}

// CheckCollision reports whether the player overlaps any obstacle.
func (w *World) CheckCollision() bool {
	player := w.player.Box()
	for _, o := range w.obstacles {
		if o.Box().Overlaps(player) {
			return true
		}
	}
	return false
}

// Params returns the run constants.
func (w *World) Params() Params {
	return w.params
}

// Player returns a copy of the player.
func (w *World) Player() Player {
	return w.player
}

// Obstacles returns a copy of the live obstacles.
func (w *World) Obstacles() []Obstacle {
	return append([]Obstacle(nil), w.obstacles...)
}

// Coins returns a copy of the live coins.
func (w *World) Coins() []Coin {
	return append([]Coin(nil), w.coins...)
}

// CoinCount returns the coins collected since the last reset.
func (w *World) CoinCount() int {
	return w.collected
}

// Skill returns the skill state.
func (w *World) Skill() SkillState {
	return w.skill
}

// Speed returns the current scroll speed.
func (w *World) Speed() float64 {
	return w.speed
}

// Now returns the simulated time since the last reset.
func (w *World) Now() time.Duration {
	return w.now
}

// Ticks returns the steps taken since the last reset.
func (w *World) Ticks() int {
	return w.ticks
}

// Pending returns the number of scheduled transitions.
func (w *World) Pending() int {
	return w.schedule.len()
}

// DrainEvents returns events produced by direct operation calls made
// outside Step (Jump, ActivateSkill, Reset, spawners).
func (w *World) DrainEvents() []Event {
	return w.events.drain()
}
