package api

import (
	"encoding/json"
	"math"
)

// Float marshals like a float64 but degrades NaN and infinities to
// JSON null, so degenerate metric results survive encoding instead of
// breaking it.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Scenario describes a registered scenario.
type Scenario struct {
	ID           string          `json:"id"`
	InterestRate float64         `json:"interest_rate"`
	Years        int             `json:"years"`
	Iterations   int             `json:"iterations"`
	Groups       []ScenarioGroup `json:"groups,omitempty"`
}

// ScenarioGroup names one cash-flow group and its items.
type ScenarioGroup struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// CashFlowRow is one item's sampled costs over the horizon.
type CashFlowRow struct {
	Group  string  `json:"group"`
	Item   string  `json:"item"`
	Values []Float `json:"values"`
}

// CashFlow is one sampled trial of a scenario.
type CashFlow struct {
	Years int           `json:"years"`
	Rows  []CashFlowRow `json:"rows"`
	Net   []Float       `json:"net"`
}

// MetricStats is the Monte Carlo summary of one metric.
type MetricStats struct {
	Mean   Float `json:"mean"`
	StdDev Float `json:"std_dev"`
}

// Simulation is the outcome of a Monte Carlo run.
type Simulation struct {
	Iterations    int         `json:"iterations"`
	IRR           MetricStats `json:"irr"`
	NPV           MetricStats `json:"npv"`
	PaybackPeriod MetricStats `json:"payback_period"`
}
