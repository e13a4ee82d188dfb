package core

// Color is the role of a screen cell. The platform maps roles to terminal
// colours so games never deal with ANSI codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBottom        // Bottom block tile
	ColorTop           // Top block tile
	ColorFiller        // Filler tile
	ColorLocked        // Tile that cannot be picked yet
	ColorFolded        // Edge of a folded stack
	ColorCursor        // Keyboard cursor
	ColorGrab          // Grabbed tile awaiting a direction
	ColorInvalid       // Rejected-fold flash
	ColorHUD
	ColorDim
	ColorWin
)

// String returns the role name, used in screenshots and debug logs.
func (c Color) String() string {
	switch c {
	case ColorBottom:
		return "bottom"
	case ColorTop:
		return "top"
	case ColorFiller:
		return "filler"
	case ColorLocked:
		return "locked"
	case ColorFolded:
		return "folded"
	case ColorCursor:
		return "cursor"
	case ColorGrab:
		return "grab"
	case ColorInvalid:
		return "invalid"
	case ColorHUD:
		return "hud"
	case ColorDim:
		return "dim"
	case ColorWin:
		return "win"
	default:
		return "default"
	}
}
