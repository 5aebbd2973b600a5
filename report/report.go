package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/Octogonapus/BenchmarkCharts/util"
)

// ScenarioStatistics aggregates the invocations of one (threads, operations)
// scenario configuration within a benchmark.
type ScenarioStatistics struct {
	Threads          int   `mapstructure:"threads"`
	Operations       int   `mapstructure:"operations"`
	RunningTimeNano  int64 `mapstructure:"runningTimeNano"`
	InvocationsCount int64 `mapstructure:"invocationsCount"`
}

// BenchmarkStatistics is one record of the results file: a benchmark executed
// under one mode, with the total running time and per-scenario breakdown.
type BenchmarkStatistics struct {
	ID                  int                  `mapstructure:"id"`
	Name                string               `mapstructure:"name"`
	Mode                string               `mapstructure:"mode"`
	RunningTimeNano     int64                `mapstructure:"runningTimeNano"`
	ScenariosStatistics []ScenarioStatistics `mapstructure:"scenariosStatistics"`
}

// The token stripped from stored benchmark names for display.
const nameToken = "Benchmark"

// DisplayName strips every occurrence of the name token, so a stored
// "ConcurrentQueueBenchmark" displays as "ConcurrentQueue".
func DisplayName(stored string) string {
	return strings.ReplaceAll(stored, nameToken, "")
}

// A Report is an immutable view over the records of one benchmark results
// file. All methods are pure queries; nothing is recomputed after Parse.
type Report struct {
	benchmarks map[int]*BenchmarkStatistics
	names      []string
	modes      []string
}

// Load reads and parses a benchmark results file.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open benchmark results: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a benchmark results document: a JSON object mapping
// stringified integer benchmark ids to records.
func Parse(r io.Reader) (*Report, error) {
	var raw map[string]map[string]any
	err := json.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("can't decode benchmark results: %w", err)
	}

	benchmarks := make(map[int]*BenchmarkStatistics, len(raw))
	for key, record := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("benchmark id %q is not an integer: %w", key, err)
		}
		stats := &BenchmarkStatistics{}
		err = mapstructure.Decode(record, stats)
		if err != nil {
			return nil, fmt.Errorf("can't convert record %q to BenchmarkStatistics: %w", key, err)
		}
		if _, ok := record["id"]; ok && stats.ID != id {
			return nil, fmt.Errorf("record id %d disagrees with its key %q", stats.ID, key)
		}
		stats.ID = id
		benchmarks[id] = stats
	}

	nameSet := map[string]struct{}{}
	modeSet := map[string]struct{}{}
	for _, b := range benchmarks {
		nameSet[DisplayName(b.Name)] = struct{}{}
		modeSet[b.Mode] = struct{}{}
	}

	return &Report{
		benchmarks: benchmarks,
		names:      util.SortedKeys(nameSet),
		modes:      util.SortedKeys(modeSet),
	}, nil
}

// IDs returns all benchmark ids in ascending order.
func (r *Report) IDs() []int {
	return util.SortedKeys(r.benchmarks)
}

// Names returns the sorted distinct display names.
func (r *Report) Names() []string {
	return r.names
}

// Modes returns the sorted distinct modes.
func (r *Report) Modes() []string {
	return r.modes
}

func (r *Report) lookup(id int) (*BenchmarkStatistics, error) {
	b, ok := r.benchmarks[id]
	if !ok {
		return nil, fmt.Errorf("no benchmark with id %d", id)
	}
	return b, nil
}

// Name returns the display name of the benchmark with the given id.
func (r *Report) Name(id int) (string, error) {
	b, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	return DisplayName(b.Name), nil
}

// Mode returns the mode of the benchmark with the given id.
func (r *Report) Mode(id int) (string, error) {
	b, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	return b.Mode, nil
}

// LookupID finds the benchmark with the given display name and mode.
func (r *Report) LookupID(name, mode string) (int, error) {
	for _, id := range r.IDs() {
		b := r.benchmarks[id]
		if b.Name == name+nameToken && b.Mode == mode {
			return id, nil
		}
	}
	return 0, fmt.Errorf("no benchmark named %q with mode %q", name, mode)
}

// ScenarioStats returns the scenario statistics of the benchmark with the given id.
func (r *Report) ScenarioStats(id int) ([]ScenarioStatistics, error) {
	b, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return b.ScenariosStatistics, nil
}

// Runtime returns the total running time of one benchmark in the given unit.
func (r *Report) Runtime(id int, unit TimeUnit) (float64, error) {
	b, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	return unit.FromNanos(float64(b.RunningTimeNano)), nil
}

// Runtimes returns id -> total running time in the given unit.
func (r *Report) Runtimes(unit TimeUnit) map[int]float64 {
	result := make(map[int]float64, len(r.benchmarks))
	for id, b := range r.benchmarks {
		result[id] = unit.FromNanos(float64(b.RunningTimeNano))
	}
	return result
}

// MaxRuntime returns the largest total running time over all benchmarks.
func (r *Report) MaxRuntime(unit TimeUnit) (float64, error) {
	if len(r.benchmarks) == 0 {
		return 0, fmt.Errorf("report contains no benchmarks")
	}
	var maxRuntime float64
	for _, b := range r.benchmarks {
		runtime := unit.FromNanos(float64(b.RunningTimeNano))
		if runtime > maxRuntime {
			maxRuntime = runtime
		}
	}
	return maxRuntime, nil
}

// RuntimesWithMode returns display name -> total running time for every
// benchmark executed under the given mode.
func (r *Report) RuntimesWithMode(mode string, unit TimeUnit) map[string]float64 {
	result := map[string]float64{}
	for _, b := range r.benchmarks {
		if b.Mode != mode {
			continue
		}
		result[DisplayName(b.Name)] = unit.FromNanos(float64(b.RunningTimeNano))
	}
	return result
}

// RuntimesGroupedByName returns stored name -> (mode -> total running time).
// Records are walked in id order so grouping is deterministic.
func (r *Report) RuntimesGroupedByName(unit TimeUnit) map[string]map[string]float64 {
	result := map[string]map[string]float64{}
	for _, id := range r.IDs() {
		b := r.benchmarks[id]
		byMode, ok := result[b.Name]
		if !ok {
			byMode = map[string]float64{}
			result[b.Name] = byMode
		}
		byMode[b.Mode] = unit.FromNanos(float64(b.RunningTimeNano))
	}
	return result
}
