// Package chart renders benchmark results as bar charts, either as PNG files
// or as a single interactive HTML page.
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/vg"
)

var (
	barWidth   = vg.Points(24)
	barSpacing = vg.Points(3)
)

// modeColors returns one qualitative color per mode.
func modeColors(n int) ([]color.Color, error) {
	// brewer palettes start at three colors
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", max(n, 3))
	if err != nil {
		return nil, fmt.Errorf("can't build mode palette: %w", err)
	}
	return p.Colors()[:n], nil
}

// SavePNG writes the plot as a PNG file.
func SavePNG(p *plot.Plot, path string) error {
	err := p.Save(6*vg.Inch, 4*vg.Inch, path)
	if err != nil {
		return fmt.Errorf("can't save chart to %s: %w", path, err)
	}
	return nil
}
