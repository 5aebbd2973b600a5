package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Octogonapus/BenchmarkCharts/report"
)

func TestBuildPage(t *testing.T) {
	rep := fixtureReport(t)

	var buf bytes.Buffer
	require.NoError(t, BuildPage(&buf, rep))

	html := buf.String()
	assert.Contains(t, html, "Benchmarks running time")
	assert.Contains(t, html, "ModelChecking")
	assert.Contains(t, html, "Stress")
	assert.Contains(t, html, "ConcurrentQueue")
	assert.Contains(t, html, "ConcurrentStack")
	assert.Contains(t, html, "(2, 10)")
}

func TestBuildPageMismatchedGridsFails(t *testing.T) {
	doc := `{
      "0": {"id": 0, "name": "XBenchmark", "mode": "ModelChecking", "runningTimeNano": 1000,
            "scenariosStatistics": [{"threads": 2, "operations": 10, "runningTimeNano": 100, "invocationsCount": 1}]},
      "1": {"id": 1, "name": "XBenchmark", "mode": "Stress", "runningTimeNano": 1000,
            "scenariosStatistics": [{"threads": 3, "operations": 10, "runningTimeNano": 100, "invocationsCount": 1}]}
    }`
	rep, err := report.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = BuildPage(&buf, rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different scenario grids")
}

func TestBuildPageMissingModeFails(t *testing.T) {
	// One name only ran under one of the two modes in the report.
	doc := `{
      "0": {"id": 0, "name": "XBenchmark", "mode": "ModelChecking", "runningTimeNano": 1000, "scenariosStatistics": []},
      "1": {"id": 1, "name": "YBenchmark", "mode": "ModelChecking", "runningTimeNano": 1000, "scenariosStatistics": []},
      "2": {"id": 2, "name": "YBenchmark", "mode": "Stress", "runningTimeNano": 1000, "scenariosStatistics": []}
    }`
	rep, err := report.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = BuildPage(&buf, rep)
	require.Error(t, err)
}
