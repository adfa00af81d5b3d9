// Package evaluate owns a cash-flow sheet plus the evaluation
// parameters and computes the investment metrics (IRR, NPV, payback
// period) on sampled net cash flows, including the Monte Carlo driver.
package evaluate

import (
	"fmt"
	"math"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/cashflow"
)

// Evaluation parameter defaults.
const (
	DefaultInterestRate = 0.10
	DefaultYears        = 10
	DefaultIterations   = 10000
)

// Summary owns exactly one cash-flow sheet and the evaluation
// parameters, and caches the most recent sampled trial.
//
// The cache is NOT invalidated by structural edits to the sheet: a
// displayed trial stays reproducible across reads until Resample is
// called explicitly. Callers that mutate the hierarchy must resample.
type Summary struct {
	InterestRate float64 // annual discount rate, as a fraction
	Years        int     // evaluation horizon; flows span years 0..Years
	Iterations   int     // Monte Carlo repetition count

	sheet *cashflow.Sheet

	sampled       bool
	totalCashFlow [][][]float64
	netCashFlow   []float64
}

// NewSummary wraps a sheet with the default evaluation parameters.
func NewSummary(sheet *cashflow.Sheet) *Summary {
	if sheet == nil {
		sheet, _ = cashflow.NewSheet()
	}
	return &Summary{
		InterestRate: DefaultInterestRate,
		Years:        DefaultYears,
		Iterations:   DefaultIterations,
		sheet:        sheet,
	}
}

// Sheet returns the owned cash-flow sheet.
func (s *Summary) Sheet() *cashflow.Sheet { return s.sheet }

// Sampled reports whether a sampled trial is cached.
func (s *Summary) Sampled() bool { return s.sampled }

// Resample draws a fresh trial, sampling every leaf distribution
// exactly once per year, and replaces the cached cash flows.
func (s *Summary) Resample() {
	s.totalCashFlow, s.netCashFlow = s.sheet.SampleCashFlow(s.Years)
	s.sampled = true
}

// TotalCashFlow returns the cached per-year cost matrices, sampling
// lazily on first read. The returned slices are copies; the cache can
// only change through Resample.
func (s *Summary) TotalCashFlow() [][][]float64 {
	s.ensureSampled()
	out := make([][][]float64, len(s.totalCashFlow))
	for t, matrix := range s.totalCashFlow {
		out[t] = make([][]float64, len(matrix))
		for i, row := range matrix {
			out[t][i] = append([]float64(nil), row...)
		}
	}
	return out
}

// NetCashFlow returns the cached per-year net cash flow, sampling
// lazily on first read. The returned slice is a copy.
func (s *Summary) NetCashFlow() []float64 {
	s.ensureSampled()
	return append([]float64(nil), s.netCashFlow...)
}

// NPV computes the net present value of the current trial at the
// summary's interest rate.
func (s *Summary) NPV() float64 {
	s.ensureSampled()
	return npv(s.InterestRate, s.netCashFlow)
}

// IRR computes the internal rate of return of the current trial. The
// result is NaN when the cash-flow polynomial has no real root in the
// searched range; callers must treat NaN as a surfaced degenerate
// outcome, not an error.
func (s *Summary) IRR() float64 {
	s.ensureSampled()
	return irr(s.netCashFlow)
}

// PaybackPeriod computes the fractional year at which the cumulative
// net cash flow of the current trial first turns positive.
//
// If the cumulative flow is already positive at year 0 the period is 0.
// If it never turns positive within years 0..Years-1 the conventional
// degenerate result interpolates against the final year's flow, which
// may exceed the horizon or be non-finite.
func (s *Summary) PaybackPeriod() float64 {
	s.ensureSampled()

	cumsum := make([]float64, len(s.netCashFlow))
	running := 0.0
	for t, v := range s.netCashFlow {
		running += v
		cumsum[t] = running
	}

	firstPositive := s.Years
	for t := 0; t < s.Years; t++ {
		if cumsum[t] > 0 {
			firstPositive = t
			break
		}
	}
	if firstPositive == 0 {
		return 0
	}
	complete := firstPositive - 1
	return float64(complete) + math.Abs(cumsum[complete]/s.netCashFlow[firstPositive])
}

// Table lays the current trial out for display, pairing each sampled
// row with its group and item names.
func (s *Summary) Table() *domain.CashFlowTable {
	s.ensureSampled()

	names := s.sheet.Names()
	table := &domain.CashFlowTable{
		Years: s.Years,
		Net:   s.NetCashFlow(),
	}
	for gi, gn := range names {
		for ii, item := range gn.Items {
			values := make([]float64, s.Years+1)
			for t := 0; t <= s.Years; t++ {
				values[t] = s.totalCashFlow[t][gi][ii]
			}
			table.Rows = append(table.Rows, domain.CashFlowRow{
				Group:  gn.Group,
				Item:   item,
				Values: values,
			})
		}
	}
	return table
}

// Validate checks the evaluation parameters.
func (s *Summary) Validate() error {
	if s.Years < 0 {
		return fmt.Errorf("years must be non-negative, got %d", s.Years)
	}
	if s.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", s.Iterations)
	}
	return nil
}

func (s *Summary) ensureSampled() {
	if !s.sampled {
		s.Resample()
	}
}
