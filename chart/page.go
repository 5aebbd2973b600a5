package chart

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Octogonapus/BenchmarkCharts/report"
)

// BuildPage renders the runtime chart and one scenario chart per benchmark
// name into a single scrollable HTML page, for interactive viewing in a
// browser.
func BuildPage(w io.Writer, rep *report.Report) error {
	page := components.NewPage()
	page.PageTitle = "Benchmark results"

	page.AddCharts(runtimeBar(rep))
	for _, name := range rep.Names() {
		bar, err := scenarioBar(rep, name)
		if err != nil {
			return err
		}
		page.AddCharts(bar)
	}

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("can't render chart page: %w", err)
	}
	return nil
}

func runtimeBar(rep *report.Report) *charts.Bar {
	unit := report.Sec
	names := rep.Names()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Benchmarks running time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "time (" + unit.Suffix() + ")"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45}}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names)
	for _, mode := range rep.Modes() {
		byName := rep.RuntimesWithMode(mode, unit)
		data := make([]opts.BarData, len(names))
		for i, name := range names {
			data[i] = opts.BarData{Value: byName[name]}
		}
		bar.AddSeries(mode, data)
	}
	return bar
}

func scenarioBar(rep *report.Report, name string) (*charts.Bar, error) {
	unit := report.Milli

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    name,
			Subtitle: "Invocation average running time by scenario size",
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "time (" + unit.Suffix() + ")"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "(#threads, #operations)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	var params []report.ScenarioParams
	type modeSeries struct {
		mode string
		data []opts.BarData
	}
	var series []modeSeries
	for _, mode := range rep.Modes() {
		id, err := rep.LookupID(name, mode)
		if err != nil {
			return nil, err
		}
		averages, err := rep.ScenarioAverages(id, unit)
		if err != nil {
			return nil, err
		}
		data := make([]opts.BarData, len(averages))
		modeParams := make([]report.ScenarioParams, len(averages))
		for i, avg := range averages {
			data[i] = opts.BarData{Value: avg.AvgRuntime}
			modeParams[i] = avg.Params
		}
		if params == nil {
			params = modeParams
		} else if !slices.Equal(params, modeParams) {
			return nil, fmt.Errorf("benchmark %s: modes ran different scenario grids", name)
		}
		series = append(series, modeSeries{mode: mode, data: data})
	}

	labels := make([]string, len(params))
	for i, param := range params {
		labels[i] = param.String()
	}
	bar.SetXAxis(labels)
	for _, s := range series {
		bar.AddSeries(s.mode, s.data)
	}
	return bar, nil
}
