// Package scenario keeps uploaded scenario documents available to the
// web surface and serializes evaluation access to each one's engine.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/evaluate"
	"github.com/de-tools/roi-atlas/pkg/store/xmlfile"
)

// ErrNotFound is returned for an unknown scenario id.
var ErrNotFound = errors.New("scenario not found")

// entry pairs a stored engine with the lock serializing its single
// cached-trial slot. The engine itself is single-threaded.
type entry struct {
	mu      sync.Mutex
	summary *evaluate.Summary
}

// Registry is an in-memory scenario collection keyed by generated ids.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Create decodes and validates an uploaded scenario document and
// registers it under a fresh id. A malformed document registers
// nothing.
func (r *Registry) Create(ctx context.Context, doc io.Reader) (domain.ScenarioInfo, error) {
	summary, err := xmlfile.Decode(doc)
	if err != nil {
		return domain.ScenarioInfo{}, err
	}
	if err := summary.Validate(); err != nil {
		return domain.ScenarioInfo{}, fmt.Errorf("scenario document: %w", err)
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.entries[id] = &entry{summary: summary}
	r.mu.Unlock()

	zerolog.Ctx(ctx).Info().
		Str("scenario", id).
		Int("years", summary.Years).
		Int("iterations", summary.Iterations).
		Msg("scenario registered")

	return describe(id, summary), nil
}

// List returns every registered scenario, ordered by id.
func (r *Registry) List(_ context.Context) []domain.ScenarioInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]domain.ScenarioInfo, 0, len(r.entries))
	for id, e := range r.entries {
		e.mu.Lock()
		infos = append(infos, describe(id, e.summary))
		e.mu.Unlock()
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Describe returns one scenario's parameters and hierarchy names.
func (r *Registry) Describe(_ context.Context, id string) (domain.ScenarioInfo, error) {
	e, err := r.entry(id)
	if err != nil {
		return domain.ScenarioInfo{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return describe(id, e.summary), nil
}

// CashFlow draws a fresh trial for the scenario and lays it out for
// display.
func (r *Registry) CashFlow(_ context.Context, id string) (*domain.CashFlowTable, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.summary.Resample()
	return e.summary.Table(), nil
}

// Simulate runs the scenario's Monte Carlo loop. Cancelling ctx stops
// the run between iterations.
func (r *Registry) Simulate(ctx context.Context, id string) (*domain.SimulationResult, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary.Simulate(ctx)
}

func (r *Registry) entry(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e, nil
}

func describe(id string, s *evaluate.Summary) domain.ScenarioInfo {
	info := domain.ScenarioInfo{
		ID:           id,
		InterestRate: s.InterestRate,
		Years:        s.Years,
		Iterations:   s.Iterations,
	}
	for _, gn := range s.Sheet().Names() {
		info.Groups = append(info.Groups, domain.ScenarioGroup{Name: gn.Group, Items: gn.Items})
	}
	return info
}
