package sim

// EventKind identifies what happened during a step.
type EventKind int

const (
	EventJumped EventKind = iota
	EventCoinCollected
	EventCoinsChanged
	EventSkillChanged
	EventObstacleSpawned
	EventCoinSpawned
	EventPlayerHit
)

// String returns a short name for logs.
func (k EventKind) String() string {
	switch k {
	case EventJumped:
		return "jumped"
	case EventCoinCollected:
		return "coin_collected"
	case EventCoinsChanged:
		return "coins_changed"
	case EventSkillChanged:
		return "skill_changed"
	case EventObstacleSpawned:
		return "obstacle_spawned"
	case EventCoinSpawned:
		return "coin_spawned"
	case EventPlayerHit:
		return "player_hit"
	default:
		return "unknown"
	}
}

// Event is a discrete outcome reported to the caller.
type Event struct {
	Kind   EventKind
	Coins  int         // coin count after the event (coin and hit events)
	Ticks  int         // steps survived (hit events)
	Status SkillStatus // new status (skill events)
}

// Cue is an audio notification.
type Cue int

const (
	CueJump Cue = iota
	CueCoin
	CueSkill
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueCoin:
		return "coin"
	case CueSkill:
		return "skill"
	default:
		return "unknown"
	}
}

// Cue reports the audio cue this event triggers, if any.
func (e Event) Cue() (Cue, bool) {
	switch {
	case e.Kind == EventJumped:
		return CueJump, true
	case e.Kind == EventCoinCollected:
		return CueCoin, true
	case e.Kind == EventSkillChanged && e.Status == StatusActivated:
		return CueSkill, true
	}
	return 0, false
}

// eventBuffer collects events during a step. Drain hands them out and
// clears the buffer.
type eventBuffer struct {
	items []Event
}

func (b *eventBuffer) push(e Event) {
	b.items = append(b.items, e)
}

func (b *eventBuffer) drain() []Event {
	if len(b.items) == 0 {
		return nil
	}
	out := b.items
	b.items = nil
	return out
}
