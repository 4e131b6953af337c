package runner

import "github.com/vovakirdan/coin-runner/internal/games/runner/sim"

// HUD receives the text-worthy state changes of a run.
type HUD interface {
	SetCoins(n int)
	SetSkillStatus(s sim.SkillStatus)
}

// AudioSink plays cues. Play must not block.
type AudioSink interface {
	Play(c sim.Cue)
}

// hudState is the game's own HUD; it is what Render prints.
type hudState struct {
	coins  int
	status sim.SkillStatus
}

func (h *hudState) SetCoins(n int) {
	h.coins = n
}

func (h *hudState) SetSkillStatus(s sim.SkillStatus) {
	h.status = s
}

// AddHUD registers an extra HUD listener. It immediately receives the
// current values.
func (g *Game) AddHUD(h HUD) {
	g.huds = append(g.huds, h)
	h.SetCoins(g.hud.coins)
	h.SetSkillStatus(g.hud.status)
}

// SetAudio sets the sink for audio cues. A nil sink mutes the game.
func (g *Game) SetAudio(a AudioSink) {
	g.audio = a
}

// dispatch forwards step events to the HUD and audio collaborators.
func (g *Game) dispatch(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventCoinCollected, sim.EventCoinsChanged:
			g.setCoins(ev.Coins)
		case sim.EventSkillChanged:
			g.setStatus(ev.Status)
		}

		if cue, ok := ev.Cue(); ok && g.audio != nil {
			g.audio.Play(cue)
		}
	}
}

func (g *Game) setCoins(n int) {
	g.hud.SetCoins(n)
	for _, h := range g.huds {
		h.SetCoins(n)
	}
}

func (g *Game) setStatus(s sim.SkillStatus) {
	g.hud.SetSkillStatus(s)
	for _, h := range g.huds {
		h.SetSkillStatus(s)
	}
}
