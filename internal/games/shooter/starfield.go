package shooter

import (
	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Starfield draws a slowly scrolling noise backdrop behind the field.
type Starfield struct {
	noise     *perlin.Perlin
	scale     float64 // noise units per cell
	threshold float64 // noise value above which a cell shows a star
	speed     float64 // rows scrolled per nominal tick
}

// NewStarfield creates a starfield seeded for reproducible layouts.
func NewStarfield(seed int64) *Starfield {
	return &Starfield{
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		scale:     0.37,
		threshold: 0.28,
		speed:     0.05,
	}
}

// Star returns the glyph for a cell, or 0 for empty space.
// Row is measured from the top of the field; elapsed scrolls the field down.
func (sf *Starfield) Star(col, row int, elapsed float64) rune {
	y := float64(row) - elapsed*sf.speed
	v := sf.noise.Noise2D(float64(col)*sf.scale, y*sf.scale)
	switch {
	case v > sf.threshold+0.12:
		return '*'
	case v > sf.threshold:
		return '.'
	default:
		return 0
	}
}

// Draw paints stars into the empty cells of area.
func (sf *Starfield) Draw(dst *core.Screen, area core.Rect, elapsed float64) {
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if dst.Get(x, y) != ' ' {
				continue
			}
			if r := sf.Star(x-area.X, y-area.Y, elapsed); r != 0 {
				dst.SetColored(x, y, r, core.ColorDim)
			}
		}
	}
}
