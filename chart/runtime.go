package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Octogonapus/BenchmarkCharts/report"
	"github.com/Octogonapus/BenchmarkCharts/util"
)

// RuntimePlot draws the total running time of every benchmark: one group of
// bars per benchmark name, one bar per mode within the group. Bars across
// modes are aligned to the sorted name list; a mode that never ran a name
// contributes a zero bar.
func RuntimePlot(rep *report.Report) (*plot.Plot, error) {
	unit := report.Sec
	names := rep.Names()
	modes := rep.Modes()

	maxRuntime, err := rep.MaxRuntime(unit)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Benchmarks running time"
	p.Y.Label.Text = "time (" + unit.Suffix() + ")"
	p.Y.Min = 0
	p.Y.Max = util.RoundUpTo(maxRuntime, 10)

	colors, err := modeColors(len(modes))
	if err != nil {
		return nil, err
	}

	groupWidth := (barWidth + barSpacing) * vg.Length(len(modes)-1)
	for i, mode := range modes {
		byName := rep.RuntimesWithMode(mode, unit)
		values := make(plotter.Values, len(names))
		for j, name := range names {
			values[j] = byName[name]
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("can't build bars for mode %s: %w", mode, err)
		}
		bars.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(mode, bars)
	}

	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(names)) - 0.5
	p.Legend.Top = true
	p.Legend.Padding = vg.Millimeter
	return p, nil
}
