package voyage

import "github.com/vovakirdan/starquest/internal/core"

// cellWidth is the number of screen columns per grid column.
const cellWidth = 3

// Map glyphs.
const (
	glyphShip     = '@'
	glyphLocation = 'O'
	glyphFuel     = '$'
	glyphVisited  = 'o'
	glyphSpace    = '.'
)

// Render clears dst and draws the map around the ship into area.
// Bounded maps that fit are drawn whole; otherwise the view follows the ship.
func (s *Session) Render(dst *core.Screen, area core.Rect) {
	dst.Clear()
	dst.DrawBox(area, core.ColorBlue)

	inner := core.NewRect(area.X+1, area.Y+1, area.W-2, area.H-2)
	rows := inner.H
	cols := inner.W / cellWidth
	if rows <= 0 || cols <= 0 {
		return
	}

	origin := Pos{Row: s.pos.Row - rows/2, Col: s.pos.Col - cols/2}
	b := s.scenario.Bounds
	if !b.Unbounded() && b.Rows <= rows && b.Cols <= cols {
		origin = Pos{}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := Pos{Row: origin.Row + r, Col: origin.Col + c}
			if !b.Contains(p) {
				continue
			}
			glyph, color := s.glyphAt(p)
			dst.SetColor(inner.X+c*cellWidth+cellWidth/2, inner.Y+r, glyph, color)
		}
	}

	if loc, ok := s.world.At(s.pos); ok {
		label := " " + loc.Name + " "
		dst.DrawTextColor(area.X+2, area.Bottom()-1, label, core.ColorBrightCyan)
	}
}

func (s *Session) glyphAt(p Pos) (rune, core.Color) {
	if p == s.pos {
		return glyphShip, core.ColorBrightYellow
	}
	loc, ok := s.world.At(p)
	switch {
	case !ok:
		return glyphSpace, core.ColorGray
	case loc.Visited:
		return glyphVisited, core.ColorGray
	case loc.FuelBonus:
		return glyphFuel, core.ColorBrightGreen
	default:
		return glyphLocation, core.ColorCyan
	}
}
