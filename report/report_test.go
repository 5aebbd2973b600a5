package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsFixture = `{
  "0": {
    "id": 0,
    "name": "ConcurrentQueueBenchmark",
    "mode": "ModelChecking",
    "runningTimeNano": 40000000000,
    "scenariosStatistics": [
      {"threads": 3, "operations": 10, "runningTimeNano": 200, "invocationsCount": 2},
      {"threads": 2, "operations": 10, "runningTimeNano": 100, "invocationsCount": 1},
      {"threads": 2, "operations": 10, "runningTimeNano": 300, "invocationsCount": 1}
    ]
  },
  "1": {
    "id": 1,
    "name": "ConcurrentQueueBenchmark",
    "mode": "Stress",
    "runningTimeNano": 12500000000,
    "scenariosStatistics": [
      {"threads": 2, "operations": 10, "runningTimeNano": 400, "invocationsCount": 4},
      {"threads": 3, "operations": 10, "runningTimeNano": 900, "invocationsCount": 3}
    ]
  },
  "2": {
    "id": 2,
    "name": "ConcurrentStackBenchmark",
    "mode": "ModelChecking",
    "runningTimeNano": 7000000000,
    "scenariosStatistics": []
  },
  "3": {
    "id": 3,
    "name": "ConcurrentStackBenchmark",
    "mode": "Stress",
    "runningTimeNano": 9000000000,
    "scenariosStatistics": []
  }
}`

func mustParse(t *testing.T, doc string) *Report {
	t.Helper()
	rep, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return rep
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmarks-results.json")
	require.NoError(t, os.WriteFile(path, []byte(resultsFixture), 0o644))

	rep, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, rep.IDs())

	_, err = Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParseNamesAndModes(t *testing.T) {
	rep := mustParse(t, resultsFixture)
	assert.Equal(t, []int{0, 1, 2, 3}, rep.IDs())
	assert.Equal(t, []string{"ConcurrentQueue", "ConcurrentStack"}, rep.Names())
	assert.Equal(t, []string{"ModelChecking", "Stress"}, rep.Modes())
}

func TestParseRejectsNonIntegerKey(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"abc": {"name": "XBenchmark", "mode": "Stress", "runningTimeNano": 1}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an integer")
}

func TestParseRejectsIDKeyMismatch(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"1": {"id": 2, "name": "XBenchmark", "mode": "Stress", "runningTimeNano": 1}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disagrees")
}

func TestParseRejectsMalformedRecord(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"0": {"name": "XBenchmark", "mode": "Stress", "runningTimeNano": "soon"}}`))
	require.Error(t, err)
}

func TestNameStripsToken(t *testing.T) {
	rep := mustParse(t, resultsFixture)
	name, err := rep.Name(0)
	require.NoError(t, err)
	assert.Equal(t, "ConcurrentQueue", name)

	_, err = rep.Name(99)
	require.Error(t, err)
}

func TestLookupID(t *testing.T) {
	rep := mustParse(t, resultsFixture)

	id, err := rep.LookupID("ConcurrentQueue", "Stress")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	mode, err := rep.Mode(id)
	require.NoError(t, err)
	assert.Equal(t, "Stress", mode)

	_, err = rep.LookupID("ConcurrentQueue", "Fuzzing")
	require.Error(t, err)
	_, err = rep.LookupID("NoSuch", "Stress")
	require.Error(t, err)
}

func TestRuntime(t *testing.T) {
	rep := mustParse(t, resultsFixture)

	sec, err := rep.Runtime(0, Sec)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, sec, 1e-9)

	milli, err := rep.Runtime(0, Milli)
	require.NoError(t, err)
	assert.InDelta(t, 40000.0, milli, 1e-9)

	_, err = rep.Runtime(99, Sec)
	require.Error(t, err)
}

func TestRuntimes(t *testing.T) {
	rep := mustParse(t, resultsFixture)
	runtimes := rep.Runtimes(Sec)
	assert.Len(t, runtimes, 4)
	assert.InDelta(t, 12.5, runtimes[1], 1e-9)
	assert.InDelta(t, 7.0, runtimes[2], 1e-9)
}

func TestMaxRuntime(t *testing.T) {
	rep := mustParse(t, resultsFixture)
	maxRuntime, err := rep.MaxRuntime(Sec)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, maxRuntime, 1e-9)
}

func TestMaxRuntimeEmptyReport(t *testing.T) {
	rep := mustParse(t, `{}`)
	_, err := rep.MaxRuntime(Sec)
	require.Error(t, err)
}

func TestRuntimesWithMode(t *testing.T) {
	rep := mustParse(t, resultsFixture)
	byName := rep.RuntimesWithMode("Stress", Sec)
	require.Len(t, byName, 2)
	assert.InDelta(t, 12.5, byName["ConcurrentQueue"], 1e-9)
	assert.InDelta(t, 9.0, byName["ConcurrentStack"], 1e-9)

	assert.Empty(t, rep.RuntimesWithMode("Fuzzing", Sec))
}

func TestRuntimesGroupedByName(t *testing.T) {
	rep := mustParse(t, resultsFixture)
	grouped := rep.RuntimesGroupedByName(Sec)
	require.Len(t, grouped, 2)
	queue := grouped["ConcurrentQueueBenchmark"]
	require.Len(t, queue, 2)
	assert.InDelta(t, 40.0, queue["ModelChecking"], 1e-9)
	assert.InDelta(t, 12.5, queue["Stress"], 1e-9)
}

func TestScenarioStats(t *testing.T) {
	rep := mustParse(t, resultsFixture)
	stats, err := rep.ScenarioStats(1)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, ScenarioStatistics{Threads: 2, Operations: 10, RunningTimeNano: 400, InvocationsCount: 4}, stats[0])
}
