package evaluate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
)

// Simulate runs the summary's Monte Carlo loop: Iterations independent
// trials, each resampling every leaf distribution once and computing
// the three metrics. Cancellation is cooperative and checked between
// whole iterations; an aborted run returns the context error and no
// statistics, leaving the last completed trial in the cache.
func (s *Summary) Simulate(ctx context.Context) (*domain.SimulationResult, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("simulation parameters: %w", err)
	}
	logger := zerolog.Ctx(ctx)

	irrs := make([]float64, s.Iterations)
	npvs := make([]float64, s.Iterations)
	paybacks := make([]float64, s.Iterations)

	for i := 0; i < s.Iterations; i++ {
		select {
		case <-ctx.Done():
			logger.Info().Int("completed", i).Int("iterations", s.Iterations).
				Msg("simulation cancelled")
			return nil, ctx.Err()
		default:
		}

		s.Resample()
		irrs[i] = s.IRR()
		npvs[i] = s.NPV()
		paybacks[i] = s.PaybackPeriod()
	}

	logger.Debug().Int("iterations", s.Iterations).Msg("simulation finished")

	return &domain.SimulationResult{
		Iterations:    s.Iterations,
		IRR:           domain.MetricStats{Mean: mean(irrs), StdDev: stdDev(irrs)},
		NPV:           domain.MetricStats{Mean: mean(npvs), StdDev: stdDev(npvs)},
		PaybackPeriod: domain.MetricStats{Mean: mean(paybacks), StdDev: stdDev(paybacks)},
	}, nil
}
