package dist

import (
	"math"
	"math/rand"
	"time"
)

// Distribution kinds. These are also the element tags used by the
// scenario document codec, so they are part of the wire format.
const (
	KindGaussian = "Gaussian"
	KindConstant = "Constant"
	KindPareto   = "Pareto"
)

// Distribution generates one cost value per sampled year. Every
// distribution carries an inclusive active window [StartYear, EndYear];
// sampling a year outside the window yields exactly 0, regardless of
// the distribution family.
type Distribution interface {
	// Kind returns the family name of the distribution.
	Kind() string
	// Sample draws one value for the given year.
	Sample(year int) float64
	// Window returns the inclusive active year interval.
	Window() (startYear, endYear float64)
}

// DefaultEndYear is the open upper bound of an active window.
func DefaultEndYear() float64 { return math.Inf(1) }

var defaultSource = rand.New(rand.NewSource(time.Now().UnixNano()))

// Gaussian samples from a Normal(Mu, Sigma) distribution while active.
// Sigma is taken as supplied; callers are responsible for a meaningful
// value.
type Gaussian struct {
	Mu        float64
	Sigma     float64
	StartYear float64
	EndYear   float64

	// Rand overrides the shared randomness source. Nil means shared.
	Rand *rand.Rand
}

// NewGaussian returns a Gaussian distribution active over all years.
func NewGaussian(mu, sigma float64) *Gaussian {
	return &Gaussian{Mu: mu, Sigma: sigma, EndYear: math.Inf(1)}
}

func (g *Gaussian) Kind() string { return KindGaussian }

func (g *Gaussian) Sample(year int) float64 {
	if !active(year, g.StartYear, g.EndYear) {
		return 0.0
	}
	return g.Mu + g.Sigma*source(g.Rand).NormFloat64()
}

func (g *Gaussian) Window() (float64, float64) { return g.StartYear, g.EndYear }

// Constant yields the same value for every active year. It is the
// coercion target for costs given as plain numbers.
type Constant struct {
	Value     float64
	StartYear float64
	EndYear   float64
}

// NewConstant returns a Constant distribution active over all years.
func NewConstant(value float64) *Constant {
	return &Constant{Value: value, EndYear: math.Inf(1)}
}

func (c *Constant) Kind() string { return KindConstant }

func (c *Constant) Sample(year int) float64 {
	if !active(year, c.StartYear, c.EndYear) {
		return 0.0
	}
	return c.Value
}

func (c *Constant) Window() (float64, float64) { return c.StartYear, c.EndYear }

// Pareto samples from a Pareto distribution with shape Alpha and
// support [1, +inf) while active.
type Pareto struct {
	Alpha     float64
	StartYear float64
	EndYear   float64

	// Rand overrides the shared randomness source. Nil means shared.
	Rand *rand.Rand
}

// NewPareto returns a Pareto distribution active over all years.
func NewPareto(alpha float64) *Pareto {
	return &Pareto{Alpha: alpha, EndYear: math.Inf(1)}
}

func (p *Pareto) Kind() string { return KindPareto }

func (p *Pareto) Sample(year int) float64 {
	if !active(year, p.StartYear, p.EndYear) {
		return 0.0
	}
	// Inverse-CDF transform: U in (0, 1] maps to 1/U^(1/alpha).
	u := 1.0 - source(p.Rand).Float64()
	return math.Pow(u, -1.0/p.Alpha)
}

func (p *Pareto) Window() (float64, float64) { return p.StartYear, p.EndYear }

func active(year int, start, end float64) bool {
	y := float64(year)
	return y >= start && y <= end
}

func source(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return defaultSource
}
