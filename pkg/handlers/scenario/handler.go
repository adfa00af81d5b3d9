package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/roi-atlas/pkg/models/api"
	"github.com/de-tools/roi-atlas/pkg/models/domain"
	scenariosvc "github.com/de-tools/roi-atlas/pkg/services/scenario"
)

// Service is the scenario registry surface the handler depends on.
type Service interface {
	Create(ctx context.Context, doc io.Reader) (domain.ScenarioInfo, error)
	List(ctx context.Context) []domain.ScenarioInfo
	Describe(ctx context.Context, id string) (domain.ScenarioInfo, error)
	CashFlow(ctx context.Context, id string) (*domain.CashFlowTable, error)
	Simulate(ctx context.Context, id string) (*domain.SimulationResult, error)
}

type Handler struct {
	scenarios Service
}

func NewHandler(scenarios Service) *Handler {
	return &Handler{scenarios: scenarios}
}

func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	info, err := h.scenarios.Create(ctx, r.Body)
	if err != nil {
		logger.Warn().Err(err).Msg("rejected scenario upload")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(ctx, w, toAPIScenario(info))
}

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	infos := h.scenarios.List(ctx)
	response := make([]api.Scenario, 0, len(infos))
	for _, info := range infos {
		response = append(response, toAPIScenario(info))
	}
	writeJSON(ctx, w, response)
}

func (h *Handler) DescribeScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "scenario")

	info, err := h.scenarios.Describe(ctx, id)
	if err != nil {
		h.writeError(ctx, w, id, err)
		return
	}
	writeJSON(ctx, w, toAPIScenario(info))
}

func (h *Handler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "scenario")

	table, err := h.scenarios.CashFlow(ctx, id)
	if err != nil {
		h.writeError(ctx, w, id, err)
		return
	}

	response := api.CashFlow{Years: table.Years, Net: toAPIFloats(table.Net)}
	for _, row := range table.Rows {
		response.Rows = append(response.Rows, api.CashFlowRow{
			Group:  row.Group,
			Item:   row.Item,
			Values: toAPIFloats(row.Values),
		})
	}
	writeJSON(ctx, w, response)
}

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "scenario")

	result, err := h.scenarios.Simulate(ctx, id)
	if err != nil {
		h.writeError(ctx, w, id, err)
		return
	}

	writeJSON(ctx, w, api.Simulation{
		Iterations:    result.Iterations,
		IRR:           toAPIStats(result.IRR),
		NPV:           toAPIStats(result.NPV),
		PaybackPeriod: toAPIStats(result.PaybackPeriod),
	})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, id string, err error) {
	logger := zerolog.Ctx(ctx)
	if errors.Is(err, scenariosvc.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, context.Canceled) {
		// Client went away; nothing useful to write.
		return
	}
	logger.Error().Err(err).Str("scenario", id).Msg("scenario operation failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func toAPIScenario(info domain.ScenarioInfo) api.Scenario {
	s := api.Scenario{
		ID:           info.ID,
		InterestRate: info.InterestRate,
		Years:        info.Years,
		Iterations:   info.Iterations,
	}
	for _, g := range info.Groups {
		s.Groups = append(s.Groups, api.ScenarioGroup{Name: g.Name, Items: g.Items})
	}
	return s
}

func toAPIStats(stats domain.MetricStats) api.MetricStats {
	return api.MetricStats{Mean: api.Float(stats.Mean), StdDev: api.Float(stats.StdDev)}
}

func toAPIFloats(values []float64) []api.Float {
	out := make([]api.Float, len(values))
	for i, v := range values {
		out[i] = api.Float(v)
	}
	return out
}
