package xengine

// Baseline is an ordered antenna pair (Ant1 <= Ant2). Self-pairs are the
// autocorrelations.
type Baseline struct {
	Ant1 int
	Ant2 int
}

// Auto reports whether the baseline is an autocorrelation.
func (b Baseline) Auto() bool { return b.Ant1 == b.Ant2 }

// Baselines enumerates all pairs (i, j) with 0 <= i <= j < nAnts, i outer
// and j inner ascending from i. The order is canonical: the position of a
// pair in this slice is its baseline id, and consumers depend on it staying
// stable for a given antenna count.
func Baselines(nAnts int) []Baseline {
	if nAnts <= 0 {
		return nil
	}

	out := make([]Baseline, 0, BaselineCount(nAnts))
	for i := 0; i < nAnts; i++ {
		for j := i; j < nAnts; j++ {
			out = append(out, Baseline{Ant1: i, Ant2: j})
		}
	}

	return out
}

// BaselineCount returns n(n+1)/2, the number of baselines including
// autocorrelations.
func BaselineCount(nAnts int) int {
	if nAnts <= 0 {
		return 0
	}

	return nAnts * (nAnts + 1) / 2
}

// BaselineInfo labels one baseline id with its antenna pair.
type BaselineInfo struct {
	ID   int
	Ant1 int
	Ant2 int
	Auto bool
}

// BaselineTable returns per-id labels for the canonical enumeration.
func BaselineTable(nAnts int) []BaselineInfo {
	baselines := Baselines(nAnts)
	out := make([]BaselineInfo, len(baselines))

	for id, b := range baselines {
		out[id] = BaselineInfo{ID: id, Ant1: b.Ant1, Ant2: b.Ant2, Auto: b.Auto()}
	}

	return out
}
