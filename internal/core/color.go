package core

// Color is a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDim
)

// Cell is one character position of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}
