package scenario

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	scenariosvc "github.com/de-tools/roi-atlas/pkg/services/scenario"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, doc io.Reader) (domain.ScenarioInfo, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(domain.ScenarioInfo), args.Error(1)
}

func (m *mockService) List(ctx context.Context) []domain.ScenarioInfo {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ScenarioInfo)
}

func (m *mockService) Describe(ctx context.Context, id string) (domain.ScenarioInfo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ScenarioInfo), args.Error(1)
}

func (m *mockService) CashFlow(ctx context.Context, id string) (*domain.CashFlowTable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowTable), args.Error(1)
}

func (m *mockService) Simulate(ctx context.Context, id string) (*domain.SimulationResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulationResult), args.Error(1)
}

func newRouter(svc Service) *chi.Mux {
	h := NewHandler(svc)
	router := chi.NewRouter()
	router.Post("/scenarios", h.CreateScenario)
	router.Get("/scenarios", h.ListScenarios)
	router.Get("/scenarios/{scenario}", h.DescribeScenario)
	router.Get("/scenarios/{scenario}/cashflow", h.GetCashFlow)
	router.Post("/scenarios/{scenario}/simulate", h.Simulate)
	return router
}

func TestCreateScenario_ReturnsCreatedWithID(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).
		Return(domain.ScenarioInfo{ID: "abc", InterestRate: 0.1, Years: 10, Iterations: 100}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scenarios", strings.NewReader("<Summary/>"))
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "abc", got["id"])
	svc.AssertExpectations(t)
}

func TestCreateScenario_MalformedDocumentIsBadRequest(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).
		Return(domain.ScenarioInfo{}, assert.AnError)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scenarios", strings.NewReader("junk"))
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDescribeScenario_UnknownIDIsNotFound(t *testing.T) {
	svc := new(mockService)
	svc.On("Describe", mock.Anything, "missing").
		Return(domain.ScenarioInfo{}, scenariosvc.ErrNotFound)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scenarios/missing", nil)
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCashFlow_EncodesTable(t *testing.T) {
	svc := new(mockService)
	svc.On("CashFlow", mock.Anything, "abc").Return(&domain.CashFlowTable{
		Years: 1,
		Rows:  []domain.CashFlowRow{{Group: "g", Item: "i", Values: []float64{-100, 110}}},
		Net:   []float64{-100, 110},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scenarios/abc/cashflow", nil)
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Years int         `json:"years"`
		Net   []float64   `json:"net"`
		Rows  []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Years)
	assert.Equal(t, []float64{-100, 110}, got.Net)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "g", got.Rows[0]["group"])
}

func TestSimulate_DegenerateMetricsEncodeAsNull(t *testing.T) {
	svc := new(mockService)
	svc.On("Simulate", mock.Anything, "abc").Return(&domain.SimulationResult{
		Iterations: 3,
		IRR:        domain.MetricStats{Mean: math.NaN(), StdDev: math.NaN()},
		NPV:        domain.MetricStats{Mean: 10, StdDev: 0},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scenarios/abc/simulate", nil)
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"irr":{"mean":null,"std_dev":null}`)
	assert.Contains(t, body, `"npv":{"mean":10,"std_dev":0}`)
}

func TestListScenarios_EmptyRegistryReturnsEmptyArray(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything).Return([]domain.ScenarioInfo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scenarios", nil)
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
