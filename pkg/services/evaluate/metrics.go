package evaluate

import "math"

// npv discounts a cash-flow sequence at a fixed annual rate; index 0
// is undiscounted.
func npv(rate float64, flows []float64) float64 {
	total := 0.0
	for t, v := range flows {
		total += v / math.Pow(1+rate, float64(t))
	}
	return total
}

// dnpv is the derivative of npv with respect to the rate.
func dnpv(rate float64, flows []float64) float64 {
	total := 0.0
	for t, v := range flows {
		if t == 0 {
			continue
		}
		total -= float64(t) * v / math.Pow(1+rate, float64(t+1))
	}
	return total
}

// irr solves npv(r) = 0 by Newton-Raphson, falling back to bisection
// over a bracketing scan when Newton diverges or leaves the valid
// rate range. Returns NaN when no real root is found.
func irr(flows []float64) float64 {
	if len(flows) == 0 {
		return math.NaN()
	}

	const (
		tolerance  = 1e-10
		maxNewton  = 100
		maxBisect  = 200
		lowerBound = -0.999999
		upperBound = 100.0
	)

	rate := 0.1
	for i := 0; i < maxNewton; i++ {
		value := npv(rate, flows)
		if math.Abs(value) < tolerance {
			return rate
		}
		derivative := dnpv(rate, flows)
		if derivative == 0 || math.IsNaN(derivative) {
			break
		}
		next := rate - value/derivative
		if math.IsNaN(next) || next <= lowerBound || next > upperBound {
			break
		}
		if math.Abs(next-rate) < tolerance {
			return next
		}
		rate = next
	}

	// Bracketing scan: walk a geometric-ish grid of rates looking for
	// a sign change, then bisect.
	grid := []float64{
		lowerBound, -0.99, -0.9, -0.75, -0.5, -0.3, -0.2, -0.1, -0.05,
		0, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5, 10, 25, upperBound,
	}
	for i := 0; i < len(grid)-1; i++ {
		lo, hi := grid[i], grid[i+1]
		flo, fhi := npv(lo, flows), npv(hi, flows)
		if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
			continue
		}
		for j := 0; j < maxBisect; j++ {
			mid := (lo + hi) / 2
			fmid := npv(mid, flows)
			if math.Abs(fmid) < tolerance || (hi-lo)/2 < tolerance {
				return mid
			}
			if flo*fmid < 0 {
				hi = mid
			} else {
				lo, flo = mid, fmid
			}
		}
		return (lo + hi) / 2
	}
	return math.NaN()
}

// mean of a series; NaN values propagate into the result.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// stdDev is the population standard deviation of a series.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := mean(values)
	total := 0.0
	for _, v := range values {
		d := v - m
		total += d * d
	}
	return math.Sqrt(total / float64(len(values)))
}
