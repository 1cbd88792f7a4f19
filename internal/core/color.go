package core

// Color is a logical foreground color for a screen cell. The host maps it
// to a terminal color through its theme.
type Color uint8

// Palette colors. ColorDefault leaves the terminal's own color.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	numColors
)

// NumColors is the number of defined colors, for hosts building lookup tables.
const NumColors = int(numColors)

// Roles used by the roids renderer.
const (
	ColorShip       = ColorBrightCyan
	ColorFlame      = ColorOrange
	ColorAsteroid   = ColorGray
	ColorPebble     = ColorWhite
	ColorUFO        = ColorMagenta
	ColorSmallUFO   = ColorBrightMagenta
	ColorPlayerShot = ColorBrightYellow
	ColorUFOShot    = ColorBrightRed
	ColorDebris     = ColorGray
	ColorHUD        = ColorBrightWhite
)

// Bright reports whether c is one of the bright variants.
func (c Color) Bright() bool {
	return c >= ColorBrightRed && c <= ColorBrightWhite
}
