package domain

// MetricStats holds Monte Carlo statistics for one investment metric.
type MetricStats struct {
	Mean   float64
	StdDev float64
}

// SimulationResult aggregates the statistics of a completed Monte
// Carlo run over the three investment metrics.
type SimulationResult struct {
	Iterations    int
	IRR           MetricStats
	NPV           MetricStats
	PaybackPeriod MetricStats
}

// ScenarioGroup names one cash-flow group and its ordered items.
type ScenarioGroup struct {
	Name  string
	Items []string
}

// ScenarioInfo describes a registered scenario without exposing the
// underlying engine state.
type ScenarioInfo struct {
	ID           string
	InterestRate float64
	Years        int
	Iterations   int
	Groups       []ScenarioGroup
}

// CashFlowRow is one item's sampled costs over the horizon; Values has
// years+1 entries, index 0 holding the upfront cost.
type CashFlowRow struct {
	Group  string
	Item   string
	Values []float64
}

// CashFlowTable is one sampled trial laid out for display: per-item
// rows plus the per-year net cash-flow reduction.
type CashFlowTable struct {
	Years int
	Rows  []CashFlowRow
	Net   []float64
}
