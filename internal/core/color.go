package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette for the runner's field elements.
const (
	ColorDefault      Color = iota
	ColorRed                // Obstacles
	ColorGreen              // Player at rest
	ColorYellow             // Coins
	ColorBrightYellow       // Boosted player
	ColorDarkGreen          // Ground
	ColorGray               // Trail, hints
	ColorWhite
)
