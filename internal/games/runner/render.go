package runner

import (
	"fmt"

	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/games/runner/sim"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ObstacleChar = '▓'
	CoinChar     = '●'
	TrailChar    = '░'
	GroundChar   = '▒'
	GroundTop    = '═'
)

const (
	hudRows     = 1
	trailLength = 4
	trailGap    = 12.0 // field units between trail ghosts
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	p := g.world.Params()
	vp := core.NewViewport(p.FieldW, p.FieldH, dst.Width(), dst.Height(), hudRows)

	groundY := vp.CellY(p.GroundLine())
	dst.DrawRect(core.NewRect(0, groundY, dst.Width(), dst.Height()-groundY), GroundChar, core.ColorDarkGreen)
	dst.DrawHLine(0, groundY, dst.Width(), GroundTop, core.ColorGreen)

	for _, c := range g.world.Coins() {
		dst.DrawRect(vp.Rect(c.Box()), CoinChar, core.ColorYellow)
	}
	for _, o := range g.world.Obstacles() {
		dst.DrawRect(vp.Rect(o.Box()), ObstacleChar, core.ColorRed)
	}
	g.drawPlayer(dst, vp)

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.crashed {
		g.drawCenteredMessage(dst, "YOU CRASHED!",
			fmt.Sprintf("Coins: %d  |  Press R to run again", g.crash.Coins))
	}
}

func (g *Game) drawPlayer(dst *core.Screen, vp core.Viewport) {
	pl := g.world.Player()
	box := pl.Box()

	if pl.SkillActive {
		for i := trailLength; i >= 1; i-- {
			ghost := box
			ghost.X -= float64(i) * trailGap
			if ghost.Right() <= 0 {
				continue
			}
			dst.DrawRect(vp.Rect(ghost), TrailChar, core.ColorGray)
		}
	}

	color := core.ColorGreen
	if pl.SkillActive {
		color = core.ColorBrightYellow
	}
	dst.DrawRect(vp.Rect(box), PlayerChar, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf(" Coins: %d ", g.hud.coins)
	dst.DrawTextColored(1, 0, left, core.ColorYellow)

	skill := fmt.Sprintf(" Skill: %s ", g.hud.status)
	color := core.ColorWhite
	switch g.hud.status {
	case sim.StatusActivated:
		color = core.ColorBrightYellow
	case sim.StatusRecovering:
		color = core.ColorGray
	}
	dst.DrawTextColored(len(left)+2, 0, skill, color)

	keys := " SPACE jump  S skill "
	if x := dst.Width() - len(keys) - 1; x > len(left)+len(skill)+2 {
		dst.DrawText(x, 0, keys)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorRed)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
