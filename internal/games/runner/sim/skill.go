package sim

// SkillState is the speed skill's position in Ready -> Active -> Cooldown -> Ready.
type SkillState int

const (
	SkillReady SkillState = iota
	SkillActive
	SkillCooldown
)

// String returns the state name.
func (s SkillState) String() string {
	switch s {
	case SkillReady:
		return "Ready"
	case SkillActive:
		return "Active"
	case SkillCooldown:
		return "Cooldown"
	default:
		return "Unknown"
	}
}

// SkillStatus is the text shown to the player for a skill state.
type SkillStatus string

const (
	StatusReady      SkillStatus = "Ready"
	StatusActivated  SkillStatus = "Activated"
	StatusRecovering SkillStatus = "Recovering"
)

// Status maps the state to its display status.
func (s SkillState) Status() SkillStatus {
	switch s {
	case SkillActive:
		return StatusActivated
	case SkillCooldown:
		return StatusRecovering
	default:
		return StatusReady
	}
}

// ActivateSkill boosts the game speed if the skill is Ready and schedules
// the expiry and recovery transitions. It reports whether the skill fired;
// in any other state the call is ignored.
func (w *World) ActivateSkill() bool {
	if w.skill != SkillReady {
		return false
	}

	w.setSkill(SkillActive)
	w.player.SkillActive = true
	w.speed = w.params.BoostedSpeed

	w.schedule.push(w.now+w.params.SkillActive, actionSkillExpire)
	w.schedule.push(w.now+w.params.SkillCooldown, actionSkillRecover)
	return true
}

// expireSkill ends the boost. The skill stays unavailable until recovery.
func (w *World) expireSkill() {
	w.player.SkillActive = false
	w.speed = w.params.BaseSpeed
	w.setSkill(SkillCooldown)
}

func (w *World) recoverSkill() {
	w.setSkill(SkillReady)
}

func (w *World) setSkill(s SkillState) {
	w.skill = s
	w.events.push(Event{Kind: EventSkillChanged, Status: s.Status()})
}
