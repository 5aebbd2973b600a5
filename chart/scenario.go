package chart

import (
	"fmt"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Octogonapus/BenchmarkCharts/report"
)

// ScenarioAveragePlot draws the average per-invocation running time of one
// benchmark: one group of bars per (threads, operations) scenario, one bar
// per mode. Every mode of the benchmark must have run the same scenario grid.
func ScenarioAveragePlot(rep *report.Report, name string) (*plot.Plot, error) {
	unit := report.Milli
	modes := rep.Modes()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s\nInvocation average running time by scenario size", name)
	p.Y.Label.Text = "time (" + unit.Suffix() + ")"
	p.X.Label.Text = "(#threads, #operations)"

	colors, err := modeColors(len(modes))
	if err != nil {
		return nil, err
	}

	var params []report.ScenarioParams
	groupWidth := (barWidth + barSpacing) * vg.Length(len(modes)-1)
	for i, mode := range modes {
		id, err := rep.LookupID(name, mode)
		if err != nil {
			return nil, err
		}
		averages, err := rep.ScenarioAverages(id, unit)
		if err != nil {
			return nil, err
		}

		values := make(plotter.Values, len(averages))
		modeParams := make([]report.ScenarioParams, len(averages))
		for j, avg := range averages {
			values[j] = avg.AvgRuntime
			modeParams[j] = avg.Params
		}
		if params == nil {
			params = modeParams
		} else if !slices.Equal(params, modeParams) {
			return nil, fmt.Errorf("benchmark %s: modes ran different scenario grids", name)
		}
		if len(values) == 0 {
			// no scenarios recorded, render an empty plot
			continue
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

	if len(params) > 0 {
		ticks := make([]plot.Tick, len(params))
		for i, param := range params {
			ticks[i] = plot.Tick{Value: float64(i), Label: param.String()}
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
		p.X.Min = -0.5
		p.X.Max = float64(len(params)) - 0.5
	}
	p.Legend.Top = true
	p.Legend.Padding = vg.Millimeter
	return p, nil
}
