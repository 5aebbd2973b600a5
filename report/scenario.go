package report

import (
	"fmt"
	"sort"
)

// ScenarioParams identifies one scenario configuration of a benchmark.
type ScenarioParams struct {
	Threads    int
	Operations int
}

func (p ScenarioParams) String() string {
	return fmt.Sprintf("(%d, %d)", p.Threads, p.Operations)
}

// ScenarioAverage is the average per-invocation running time of one scenario
// configuration, in the unit the query asked for.
type ScenarioAverage struct {
	Params     ScenarioParams
	AvgRuntime float64
}

// ScenarioAverages groups the scenario statistics of one benchmark by
// (threads, operations) and averages the running time over all invocations of
// each group. The result is sorted by (threads, operations).
func (r *Report) ScenarioAverages(id int, unit TimeUnit) ([]ScenarioAverage, error) {
	b, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	type totals struct {
		runtime     int64
		invocations int64
	}
	groups := map[ScenarioParams]*totals{}
	for _, s := range b.ScenariosStatistics {
		params := ScenarioParams{Threads: s.Threads, Operations: s.Operations}
		t, ok := groups[params]
		if !ok {
			t = &totals{}
			groups[params] = t
		}
		t.runtime += s.RunningTimeNano
		t.invocations += s.InvocationsCount
	}

	params := make([]ScenarioParams, 0, len(groups))
	for p := range groups {
		params = append(params, p)
	}
	sort.Slice(params, func(i, j int) bool {
		if params[i].Threads != params[j].Threads {
			return params[i].Threads < params[j].Threads
		}
		return params[i].Operations < params[j].Operations
	})

	result := make([]ScenarioAverage, len(params))
	for i, p := range params {
		t := groups[p]
		result[i] = ScenarioAverage{
			Params:     p,
			AvgRuntime: unit.FromNanos(float64(t.runtime) / float64(t.invocations)),
		}
	}
	return result, nil
}
