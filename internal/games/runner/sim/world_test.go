package sim

import (
	"reflect"
	"testing"
	"time"
)

// fixedRand returns the same draw every time.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// quietParams disables spawning so tests control every entity.
func quietParams() Params {
	p := DefaultParams()
	p.ObstacleInterval = time.Hour
	p.CoinInterval = time.Hour
	return p
}

// ground puts the player at rest on the ground.
func ground(w *World) {
	w.player.Y = w.params.RestY()
	w.player.VY = 0
	w.player.OnGround = true
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func skillStatuses(events []Event) []SkillStatus {
	var out []SkillStatus
	for _, e := range events {
		if e.Kind == EventSkillChanged {
			out = append(out, e.Status)
		}
	}
	return out
}

func TestRestingPlayerStep(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	ground(w)

	w.AdvancePlayer()

	p := w.Player()
	if p.VY != w.params.Gravity {
		t.Errorf("VY = %v, expected gravity %v", p.VY, w.params.Gravity)
	}
	if p.Y != w.params.RestY() {
		t.Errorf("Y = %v, expected rest height %v", p.Y, w.params.RestY())
	}
	if !p.OnGround {
		t.Error("player should stay on the ground")
	}

	// A second step must not let velocity pile up
	w.AdvancePlayer()
	if w.Player().VY != w.params.Gravity || w.Player().Y != w.params.RestY() {
		t.Errorf("resting player drifted: %+v", w.Player())
	}
}

func TestPlayerFallsToGround(t *testing.T) {
	w := NewWorld(quietParams(), 1)

	if w.Player().Y != 0 || w.Player().OnGround {
		t.Fatalf("reset player should start at the top, airborne: %+v", w.Player())
	}

	landed := false
	for i := 0; i < 200; i++ {
		w.Step(0, Input{})
		if w.Player().OnGround {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("player never landed")
	}
	if w.Player().Y != w.params.RestY() {
		t.Errorf("landed at Y = %v, expected %v", w.Player().Y, w.params.RestY())
	}
}

func TestPlayerStaysInField(t *testing.T) {
	p := DefaultParams()
	w := NewWorld(p, 99)

	for i := 0; i < 3000; i++ {
		w.Step(0, Input{Jump: i%37 == 0, Skill: i%500 == 0})
		y := w.Player().Y
		if y > p.RestY() {
			t.Fatalf("tick %d: Y = %v below ground limit %v", i, y, p.RestY())
		}
		if y < 0 {
			t.Fatalf("tick %d: Y = %v above the field", i, y)
		}
	}
}

func TestTopClamp(t *testing.T) {
	p := quietParams()
	p.JumpImpulse = -60 // apex far above the field
	w := NewWorld(p, 1)
	ground(w)

	w.Jump()
	for i := 0; i < 20; i++ {
		w.AdvancePlayer()
		if w.Player().Y < 0 {
			t.Fatalf("Y = %v escaped the top of the field", w.Player().Y)
		}
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	w := NewWorld(quietParams(), 1)

	// Airborne after reset
	if w.Jump() {
		t.Error("jump should be ignored while airborne")
	}
	if w.Player().VY != 0 {
		t.Errorf("ignored jump changed VY to %v", w.Player().VY)
	}
	if len(w.DrainEvents()) != 0 {
		t.Error("ignored jump should not emit events")
	}

	ground(w)
	if !w.Jump() {
		t.Fatal("jump from the ground should succeed")
	}
	p := w.Player()
	if p.VY != w.params.JumpImpulse {
		t.Errorf("VY = %v, expected impulse %v", p.VY, w.params.JumpImpulse)
	}
	if p.OnGround {
		t.Error("OnGround should be cleared by a jump")
	}
	if !hasEvent(w.DrainEvents(), EventJumped) {
		t.Error("jump should emit EventJumped")
	}

	// Double jump is a no-op
	if w.Jump() {
		t.Error("second jump should be ignored")
	}
}

func TestJumpInputThroughStep(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	ground(w)

	res := w.Step(0, Input{Jump: true})
	if !hasEvent(res.Events, EventJumped) {
		t.Fatal("jump input should produce EventJumped")
	}
	if w.Player().Y >= w.params.RestY() {
		t.Error("player should have left the ground")
	}
	if w.Player().VY != w.params.JumpImpulse+w.params.Gravity {
		t.Errorf("VY = %v after one airborne step", w.Player().VY)
	}
}

func TestSkillActivation(t *testing.T) {
	w := NewWorld(quietParams(), 1)

	if !w.ActivateSkill() {
		t.Fatal("skill should activate when Ready")
	}
	if w.Skill() != SkillActive {
		t.Errorf("Skill() = %v, expected Active", w.Skill())
	}
	if w.Speed() != w.params.BoostedSpeed {
		t.Errorf("Speed() = %v, expected boosted %v", w.Speed(), w.params.BoostedSpeed)
	}
	if !w.Player().SkillActive {
		t.Error("player should be flagged as boosted")
	}
	if got := skillStatuses(w.DrainEvents()); !reflect.DeepEqual(got, []SkillStatus{StatusActivated}) {
		t.Errorf("statuses = %v, expected [Activated]", got)
	}

	// Second activation inside the active window is ignored
	if w.ActivateSkill() {
		t.Error("second activation should be ignored")
	}
	if w.Skill() != SkillActive || w.Speed() != w.params.BoostedSpeed {
		t.Error("ignored activation changed the skill")
	}
	if w.Pending() != 2 {
		t.Errorf("Pending() = %d, expected 2 transitions", w.Pending())
	}
}

func TestSkillTimeline(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	w.ActivateSkill()
	w.DrainEvents()

	var statuses []SkillStatus
	step := func(n int) {
		for i := 0; i < n; i++ {
			statuses = append(statuses, skillStatuses(w.Step(0, Input{}).Events)...)
		}
	}

	// 179 * 16.67ms < 3s
	step(179)
	if w.Skill() != SkillActive {
		t.Fatalf("Skill() = %v before the active duration elapsed", w.Skill())
	}

	step(1)
	if w.Skill() != SkillCooldown {
		t.Fatalf("Skill() = %v, expected Cooldown after 3s", w.Skill())
	}
	if w.Speed() != w.params.BaseSpeed {
		t.Errorf("Speed() = %v, expected base %v", w.Speed(), w.params.BaseSpeed)
	}
	if w.Player().SkillActive {
		t.Error("player should no longer be boosted")
	}

	if w.ActivateSkill() {
		t.Error("activation during cooldown should be ignored")
	}

	// 299 * 16.67ms < 5s
	step(119)
	if w.Skill() != SkillCooldown {
		t.Fatalf("Skill() = %v before the cooldown elapsed", w.Skill())
	}

	step(1)
	if w.Skill() != SkillReady {
		t.Fatalf("Skill() = %v, expected Ready after 5s", w.Skill())
	}

	expected := []SkillStatus{StatusRecovering, StatusReady}
	if !reflect.DeepEqual(statuses, expected) {
		t.Errorf("statuses = %v, expected %v", statuses, expected)
	}

	if !w.ActivateSkill() {
		t.Error("skill should activate again once Ready")
	}
}

func TestSkillInputThroughStep(t *testing.T) {
	w := NewWorld(quietParams(), 1)

	res := w.Step(0, Input{Skill: true})
	if w.Skill() != SkillActive {
		t.Fatal("skill input should activate the skill")
	}
	cue, ok := Event{Kind: EventSkillChanged, Status: StatusActivated}.Cue()
	if !ok || cue != CueSkill {
		t.Error("activation should map to the skill cue")
	}
	if got := skillStatuses(res.Events); !reflect.DeepEqual(got, []SkillStatus{StatusActivated}) {
		t.Errorf("statuses = %v", got)
	}

	// Skill expiry is measured from activation time, not from tick 0
	if w.Now() != w.params.FrameStep {
		t.Errorf("Now() = %v, expected one frame", w.Now())
	}
}

func TestResetPurgesSkillTimers(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	w.ActivateSkill()
	for i := 0; i < 10; i++ {
		w.Step(0, Input{})
	}

	w.Reset()
	if w.Pending() != 0 {
		t.Fatalf("Pending() = %d after reset, expected 0", w.Pending())
	}
	if w.Skill() != SkillReady || w.Speed() != w.params.BaseSpeed {
		t.Fatalf("reset left skill %v at speed %v", w.Skill(), w.Speed())
	}
	w.DrainEvents()

	// Run past both old due times: nothing may fire
	for i := 0; i < 400; i++ {
		res := w.Step(0, Input{})
		if got := skillStatuses(res.Events); len(got) != 0 {
			t.Fatalf("tick %d: stale transition fired: %v", i, got)
		}
	}
	if w.Skill() != SkillReady {
		t.Errorf("Skill() = %v, expected Ready", w.Skill())
	}
}

func TestObstacleScrollAndRemoval(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	w.SpawnObstacle(fixedRand(0.5))

	obs := w.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obs))
	}
	if obs[0].X != w.params.FieldW || obs[0].Size != 40 {
		t.Errorf("spawned obstacle = %+v, expected x 800 size 40", obs[0])
	}
	if obs[0].Y+obs[0].Size != w.params.GroundLine() {
		t.Error("obstacle should rest on the ground")
	}

	w.Step(0, Input{})
	if got := w.Obstacles()[0].X; got != w.params.FieldW-6 {
		t.Errorf("X after one step = %v, expected %v", got, w.params.FieldW-6)
	}

	// Scroll the rest of the way without the player in the path
	for i := 0; i < 139; i++ {
		w.AdvanceObstacles()
	}
	if len(w.Obstacles()) != 1 {
		t.Fatal("obstacle removed before its trailing edge crossed zero")
	}
	if o := w.Obstacles()[0]; o.X+o.Size != 0 {
		t.Fatalf("trailing edge = %v, expected 0", o.X+o.Size)
	}

	w.AdvanceObstacles()
	if len(w.Obstacles()) != 0 {
		t.Error("obstacle should be removed once X + size < 0")
	}
}

func TestOffscreenObstaclesRemoved(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	w.obstacles = append(w.obstacles,
		Obstacle{X: -100, Y: 260, Size: 40}, // already gone
		Obstacle{X: -30, Y: 260, Size: 40},  // right edge 10 -> 4
		Obstacle{X: 500, Y: 260, Size: 40},
	)

	w.AdvanceObstacles()

	obs := w.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("expected 2 obstacles, got %d: %+v", len(obs), obs)
	}
	for _, o := range obs {
		if o.X+o.Size < 0 {
			t.Errorf("off-screen obstacle kept: %+v", o)
		}
	}
}

func TestCoinPickup(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	ground(w)
	w.coins = append(w.coins,
		Coin{X: 66, Y: 260, Size: 20},  // lands on the player after scrolling
		Coin{X: 400, Y: 260, Size: 20}, // far ahead
		Coin{X: 66, Y: 100, Size: 20},  // above the player
	)

	w.AdvanceCoins()

	if w.CoinCount() != 1 {
		t.Errorf("CoinCount() = %d, expected 1", w.CoinCount())
	}
	coins := w.Coins()
	if len(coins) != 2 {
		t.Fatalf("expected 2 coins left, got %d", len(coins))
	}
	if coins[0].X != 394 || coins[1].X != 60 || coins[1].Y != 100 {
		t.Errorf("remaining coins = %+v", coins)
	}

	events := w.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventCoinCollected || events[0].Coins != 1 {
		t.Errorf("events = %+v, expected one CoinCollected(1)", events)
	}
	if cue, ok := events[0].Cue(); !ok || cue != CueCoin {
		t.Error("coin pickup should map to the coin cue")
	}
}

func TestCoinRemovedOffscreen(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	w.coins = append(w.coins, Coin{X: -14, Y: 100, Size: 20})

	w.AdvanceCoins()
	if len(w.Coins()) != 1 {
		t.Fatal("coin with trailing edge at 0 should be kept")
	}
	w.AdvanceCoins()
	if len(w.Coins()) != 0 {
		t.Error("coin should be removed once off-screen")
	}
	if w.CoinCount() != 0 {
		t.Error("off-screen removal must not count as pickup")
	}
}

func TestSpawnRanges(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	line := w.params.GroundLine()

	w.SpawnObstacle(fixedRand(0))
	w.SpawnObstacle(fixedRand(0.999))
	obs := w.Obstacles()
	if obs[0].Size != 30 {
		t.Errorf("min draw size = %v, expected 30", obs[0].Size)
	}
	if obs[1].Size < 30 || obs[1].Size >= 50 {
		t.Errorf("max draw size = %v, expected in [30, 50)", obs[1].Size)
	}

	w.SpawnCoin(fixedRand(0))
	w.SpawnCoin(fixedRand(0.5))
	coins := w.Coins()
	if coins[0].Y != line-20 {
		t.Errorf("unlifted coin Y = %v, expected %v", coins[0].Y, line-20)
	}
	if coins[1].Y != line-20-40 {
		t.Errorf("lifted coin Y = %v, expected %v", coins[1].Y, line-60)
	}
	if coins[1].X != w.params.FieldW {
		t.Errorf("coin X = %v, expected right edge", coins[1].X)
	}
}

func TestSpawnIntervals(t *testing.T) {
	tests := []struct {
		name      string
		obstacles bool
		ticks     int // first tick that spawns at 16.67ms per tick
	}{
		{"obstacles every 1500ms", true, 90},
		{"coins every 1200ms", false, 72},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := quietParams()
			if tc.obstacles {
				p.ObstacleInterval = 1500 * time.Millisecond
			} else {
				p.CoinInterval = 1200 * time.Millisecond
				p.CoinMaxLift = 0
			}
			w := NewWorld(p, 7)

			count := func() int {
				if tc.obstacles {
					return len(w.Obstacles())
				}
				return len(w.Coins())
			}

			for i := 1; i < tc.ticks; i++ {
				w.Step(0, Input{})
			}
			if count() != 0 {
				t.Fatalf("spawned before tick %d", tc.ticks)
			}

			res := w.Step(0, Input{})
			if count() != 1 {
				t.Fatalf("expected a spawn on tick %d", tc.ticks)
			}
			kind := EventCoinSpawned
			if tc.obstacles {
				kind = EventObstacleSpawned
			}
			if !hasEvent(res.Events, kind) {
				t.Errorf("missing %v event", kind)
			}
		})
	}
}

func TestCollisionResetsWorld(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	ground(w)
	w.collected = 3
	w.coins = append(w.coins, Coin{X: 600, Y: 200, Size: 20})
	w.obstacles = append(w.obstacles, Obstacle{X: 66, Y: 260, Size: 40})
	w.ActivateSkill()

	res := w.Step(0, Input{})
	if !res.Hit {
		t.Fatal("overlapping obstacle should end the run")
	}

	var hit *Event
	for i := range res.Events {
		if res.Events[i].Kind == EventPlayerHit {
			hit = &res.Events[i]
		}
	}
	if hit == nil || hit.Coins != 3 {
		t.Fatalf("expected PlayerHit with 3 coins, got %+v", res.Events)
	}

	if w.CoinCount() != 0 {
		t.Errorf("CoinCount() = %d after crash", w.CoinCount())
	}
	if len(w.Obstacles()) != 0 || len(w.Coins()) != 0 {
		t.Error("entity lists should be empty after crash")
	}
	p := w.Player()
	if p.Y != 0 || p.VY != 0 || p.OnGround || p.SkillActive {
		t.Errorf("player not reset: %+v", p)
	}
	if w.Skill() != SkillReady || w.Pending() != 0 || w.Speed() != w.params.BaseSpeed {
		t.Error("skill not reset")
	}
	if w.Ticks() != 0 || w.Now() != 0 {
		t.Error("clock not reset")
	}
}

func TestCheckCollision(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	ground(w)

	if w.CheckCollision() {
		t.Error("no obstacles, no collision")
	}

	w.obstacles = append(w.obstacles, Obstacle{X: 300, Y: 260, Size: 40})
	if w.CheckCollision() {
		t.Error("distant obstacle should not collide")
	}

	w.obstacles = append(w.obstacles, Obstacle{X: 90, Y: 270, Size: 30})
	if !w.CheckCollision() {
		t.Error("overlapping obstacle should collide")
	}

	// Jumping clears a short obstacle
	w.player.Y = 150
	if w.CheckCollision() {
		t.Error("player above the obstacle should not collide")
	}
}

func TestResetEmitsStatus(t *testing.T) {
	w := NewWorld(quietParams(), 1)
	if len(w.DrainEvents()) != 0 {
		t.Error("NewWorld should not leave events behind")
	}

	w.Reset()
	events := w.DrainEvents()
	if !hasEvent(events, EventCoinsChanged) {
		t.Error("reset should publish the coin count")
	}
	if got := skillStatuses(events); !reflect.DeepEqual(got, []SkillStatus{StatusReady}) {
		t.Errorf("reset statuses = %v, expected [Ready]", got)
	}
}

func TestClockModes(t *testing.T) {
	fixed := NewWorld(quietParams(), 1)
	fixed.Step(time.Second, Input{})
	if fixed.Now() != fixed.params.FrameStep {
		t.Errorf("fixed clock advanced %v, expected one frame", fixed.Now())
	}

	p := quietParams()
	p.Clock = ClockMeasured
	measured := NewWorld(p, 1)

	measured.Step(50*time.Millisecond, Input{})
	if measured.Now() != 50*time.Millisecond {
		t.Errorf("Now() = %v, expected 50ms", measured.Now())
	}
	measured.Step(time.Second, Input{})
	if measured.Now() != 150*time.Millisecond {
		t.Errorf("Now() = %v, expected delta clamped to 100ms", measured.Now())
	}
	measured.Step(-time.Second, Input{})
	if measured.Now() != 150*time.Millisecond {
		t.Errorf("negative delta moved the clock to %v", measured.Now())
	}
}

func TestMeasuredSpawnFollowsElapsedTime(t *testing.T) {
	p := quietParams()
	p.Clock = ClockMeasured
	p.ObstacleInterval = 1500 * time.Millisecond
	w := NewWorld(p, 1)

	for i := 0; i < 15; i++ {
		w.Step(100*time.Millisecond, Input{})
	}
	if len(w.Obstacles()) != 0 {
		t.Fatal("1500ms is not past the interval yet")
	}
	w.Step(100*time.Millisecond, Input{})
	if len(w.Obstacles()) != 1 {
		t.Error("obstacle should spawn once 1600ms elapsed")
	}
}

func TestWorldDeterminism(t *testing.T) {
	p := DefaultParams()
	a := NewWorld(p, 12345)
	b := NewWorld(p, 12345)

	for i := 0; i < 1500; i++ {
		in := Input{Jump: i%23 == 0, Skill: i%400 == 0}
		ra := a.Step(0, in)
		rb := b.Step(0, in)

		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("tick %d: results differ", i)
		}
		if a.Player() != b.Player() {
			t.Fatalf("tick %d: players differ", i)
		}
		if !reflect.DeepEqual(a.Obstacles(), b.Obstacles()) || !reflect.DeepEqual(a.Coins(), b.Coins()) {
			t.Fatalf("tick %d: entities differ", i)
		}
	}
}

func TestIndependentWorlds(t *testing.T) {
	a := NewWorld(quietParams(), 1)
	b := NewWorld(quietParams(), 1)

	a.ActivateSkill()
	if b.Skill() != SkillReady || b.Speed() != b.params.BaseSpeed {
		t.Error("worlds should not share state")
	}
}
