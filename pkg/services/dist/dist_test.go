package dist

import (
	"math"
	"math/rand"
	"testing"
)

func TestSample_OutsideActiveWindow_AlwaysZero(t *testing.T) {
	// Given
	distributions := []Distribution{
		&Gaussian{Mu: 100, Sigma: 5, StartYear: 2, EndYear: 4},
		&Constant{Value: 42, StartYear: 2, EndYear: 4},
		&Pareto{Alpha: 1.5, StartYear: 2, EndYear: 4},
	}

	for _, d := range distributions {
		// When / Then
		for _, year := range []int{0, 1, 5, 100} {
			if got := d.Sample(year); got != 0.0 {
				t.Errorf("%s.Sample(%d) = %v, want 0.0", d.Kind(), year, got)
			}
		}
	}
}

func TestSample_WindowBoundsAreInclusive(t *testing.T) {
	// Given
	c := &Constant{Value: 7, StartYear: 2, EndYear: 4}

	// When / Then
	for _, year := range []int{2, 3, 4} {
		if got := c.Sample(year); got != 7 {
			t.Errorf("Sample(%d) = %v, want 7", year, got)
		}
	}
}

func TestConstant_ActiveSampleIsExact(t *testing.T) {
	// Given
	c := NewConstant(1234.56)

	// When / Then
	for year := 0; year < 50; year++ {
		if got := c.Sample(year); got != 1234.56 {
			t.Fatalf("Sample(%d) = %v, want exactly 1234.56", year, got)
		}
	}
}

func TestGaussian_ZeroSigmaReturnsMean(t *testing.T) {
	// Given
	g := NewGaussian(250, 0)

	// When / Then
	for year := 0; year < 10; year++ {
		if got := g.Sample(year); got != 250 {
			t.Fatalf("Sample(%d) = %v, want 250", year, got)
		}
	}
}

func TestGaussian_SeededSourceIsReproducible(t *testing.T) {
	// Given
	a := &Gaussian{Mu: 10, Sigma: 3, EndYear: math.Inf(1), Rand: rand.New(rand.NewSource(1))}
	b := &Gaussian{Mu: 10, Sigma: 3, EndYear: math.Inf(1), Rand: rand.New(rand.NewSource(1))}

	// When / Then
	for year := 0; year < 100; year++ {
		if a.Sample(year) != b.Sample(year) {
			t.Fatal("identically seeded distributions diverged")
		}
	}
}

func TestPareto_SupportStartsAtOne(t *testing.T) {
	// Given
	p := &Pareto{Alpha: 2, EndYear: math.Inf(1), Rand: rand.New(rand.NewSource(7))}

	// When / Then
	for i := 0; i < 10000; i++ {
		if got := p.Sample(0); got < 1 {
			t.Fatalf("Sample(0) = %v, want >= 1", got)
		}
	}
}

func TestNewConstructors_DefaultWindowIsOpen(t *testing.T) {
	for _, d := range []Distribution{NewGaussian(0, 1), NewConstant(0), NewPareto(1)} {
		start, end := d.Window()
		if start != 0 || !math.IsInf(end, 1) {
			t.Errorf("%s default window = [%v, %v], want [0, +Inf]", d.Kind(), start, end)
		}
	}
}
