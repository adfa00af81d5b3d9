package evaluate

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/de-tools/roi-atlas/pkg/services/cashflow"
	"github.com/de-tools/roi-atlas/pkg/services/dist"
)

// summaryFromFlows builds a summary whose net cash flow is exactly the
// given deterministic sequence, one constant item per year.
func summaryFromFlows(t *testing.T, flows []float64) *Summary {
	t.Helper()
	group, err := cashflow.NewGroup("flows", "")
	if err != nil {
		t.Fatal(err)
	}
	for year := range flows {
		var item *cashflow.Item
		if year == 0 {
			item, err = cashflow.NewItem("year-0", "", flows[0], 0)
		} else {
			recurring := &dist.Constant{
				Value:     flows[year],
				StartYear: float64(year),
				EndYear:   float64(year),
			}
			item, err = cashflow.NewItem(itemName(year), "", 0, recurring)
		}
		if err != nil {
			t.Fatal(err)
		}
		if err := group.AddItems(item); err != nil {
			t.Fatal(err)
		}
	}
	sheet, err := cashflow.NewSheet(group)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSummary(sheet)
	s.Years = len(flows) - 1
	return s
}

func itemName(year int) string {
	return "year-" + string(rune('0'+year))
}

func TestNetCashFlow_LazySamplingAndStableCache(t *testing.T) {
	// Given a stochastic scenario with a seeded source.
	g := &dist.Gaussian{Mu: 100, Sigma: 25, EndYear: math.Inf(1), Rand: rand.New(rand.NewSource(42))}
	item, _ := cashflow.NewItem("ops", "", 0, g)
	group, _ := cashflow.NewGroup("opex", "", item)
	sheet, _ := cashflow.NewSheet(group)
	s := NewSummary(sheet)
	s.Years = 5

	if s.Sampled() {
		t.Fatal("summary reports sampled before first read")
	}

	// When: two reads without an explicit resample.
	first := s.NetCashFlow()
	second := s.NetCashFlow()

	// Then: the first read sampled lazily and the cache held.
	if !s.Sampled() {
		t.Fatal("read did not trigger sampling")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cache changed between reads: %v vs %v", first, second)
	}

	// And: an explicit resample produces a different trial.
	s.Resample()
	third := s.NetCashFlow()
	if reflect.DeepEqual(first, third) {
		t.Error("resample returned an identical stochastic trial")
	}
}

func TestNetCashFlow_ReturnsDefensiveCopy(t *testing.T) {
	// Given
	s := summaryFromFlows(t, []float64{-10, 5, 5})

	// When
	flows := s.NetCashFlow()
	flows[0] = 999

	// Then
	if got := s.NetCashFlow()[0]; got != -10 {
		t.Errorf("cache mutated through returned slice: %v", got)
	}
}

func TestTotalCashFlow_YearZeroHoldsUpfrontCosts(t *testing.T) {
	// Given
	item, _ := cashflow.NewItem("machine", "", -500.0, 20.0)
	group, _ := cashflow.NewGroup("capex", "", item)
	sheet, _ := cashflow.NewSheet(group)
	s := NewSummary(sheet)
	s.Years = 2

	// When
	total := s.TotalCashFlow()

	// Then
	if len(total) != 3 {
		t.Fatalf("len(total) = %d, want 3", len(total))
	}
	if total[0][0][0] != -500 {
		t.Errorf("year 0 = %v, want upfront -500", total[0][0][0])
	}
	if total[1][0][0] != 20 || total[2][0][0] != 20 {
		t.Errorf("recurring years = %v/%v, want 20/20", total[1][0][0], total[2][0][0])
	}
}

func TestNPV_ZeroRateEqualsSum(t *testing.T) {
	// Given
	s := summaryFromFlows(t, []float64{-100, 30, 30, 30, 30})
	s.InterestRate = 0

	// When / Then
	if got, want := s.NPV(), 20.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("NPV() = %v, want %v", got, want)
	}
}

func TestNPV_DiscountsByYearIndex(t *testing.T) {
	// Given
	s := summaryFromFlows(t, []float64{-100, 110})
	s.InterestRate = 0.10

	// When / Then: -100 + 110/1.1 = 0
	if got := s.NPV(); math.Abs(got) > 1e-9 {
		t.Errorf("NPV() = %v, want 0", got)
	}
}

func TestIRR_SingleCrossing(t *testing.T) {
	// Given
	s := summaryFromFlows(t, []float64{-100, 110})

	// When / Then
	if got := s.IRR(); math.Abs(got-0.10) > 1e-6 {
		t.Errorf("IRR() = %v, want 0.10", got)
	}
}

func TestIRR_MultiYear(t *testing.T) {
	// Given: -1000 now, 500/year for 3 years; IRR ~ 23.375%.
	s := summaryFromFlows(t, []float64{-1000, 500, 500, 500})

	// When
	got := s.IRR()

	// Then: check against NPV at the returned rate.
	if math.IsNaN(got) {
		t.Fatal("IRR() = NaN, want a real root")
	}
	if v := npv(got, []float64{-1000, 500, 500, 500}); math.Abs(v) > 1e-6 {
		t.Errorf("npv(IRR) = %v, want ~0", v)
	}
	if math.Abs(got-0.23375) > 1e-3 {
		t.Errorf("IRR() = %v, want ~0.23375", got)
	}
}

func TestIRR_NoRealRootIsNaN(t *testing.T) {
	// Given: all outflows, NPV is negative at every rate.
	s := summaryFromFlows(t, []float64{-100, -50, -50})

	// When / Then
	if got := s.IRR(); !math.IsNaN(got) {
		t.Errorf("IRR() = %v, want NaN", got)
	}
}

func TestPaybackPeriod_InterpolatesWithinCrossingYear(t *testing.T) {
	// Given: cumulative [-100, -70, -40, -10, 20] crosses in year 4.
	s := summaryFromFlows(t, []float64{-100, 30, 30, 30, 30})

	// When / Then: 3 + |-10/30| = 3.333...
	if got, want := s.PaybackPeriod(), 3.0+1.0/3.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("PaybackPeriod() = %v, want %v", got, want)
	}
}

func TestPaybackPeriod_PositiveFromYearZero(t *testing.T) {
	// Given
	s := summaryFromFlows(t, []float64{50, 10})

	// When / Then: already recovered at year 0.
	if got := s.PaybackPeriod(); got != 0 {
		t.Errorf("PaybackPeriod() = %v, want 0", got)
	}
}

func TestPaybackPeriod_NeverRecoveredUsesHorizonConvention(t *testing.T) {
	// Given: cumulative [-100, -90, -80] never turns positive.
	s := summaryFromFlows(t, []float64{-100, 10, 10})

	// When / Then: t* = years = 2, c = 1, 1 + |-90/10| = 10.
	if got, want := s.PaybackPeriod(), 10.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("PaybackPeriod() = %v, want %v", got, want)
	}
}

func TestTable_RowsFollowHierarchyOrder(t *testing.T) {
	// Given
	i1, _ := cashflow.NewItem("machine", "", -500.0, 0)
	i2, _ := cashflow.NewItem("power", "", 0, -20.0)
	g1, _ := cashflow.NewGroup("capex", "", i1)
	g2, _ := cashflow.NewGroup("opex", "", i2)
	sheet, _ := cashflow.NewSheet(g1, g2)
	s := NewSummary(sheet)
	s.Years = 2

	// When
	table := s.Table()

	// Then
	if len(table.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(table.Rows))
	}
	if table.Rows[0].Group != "capex" || table.Rows[0].Item != "machine" {
		t.Errorf("row 0 = %v/%v", table.Rows[0].Group, table.Rows[0].Item)
	}
	if table.Rows[1].Group != "opex" || table.Rows[1].Item != "power" {
		t.Errorf("row 1 = %v/%v", table.Rows[1].Group, table.Rows[1].Item)
	}
	if got := table.Rows[0].Values; len(got) != 3 || got[0] != -500 {
		t.Errorf("row 0 values = %v", got)
	}
	want := []float64{-500, -20, -20}
	if !reflect.DeepEqual(table.Net, want) {
		t.Errorf("Net = %v, want %v", table.Net, want)
	}
}
