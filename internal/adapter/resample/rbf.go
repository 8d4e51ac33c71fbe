package resample

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// rbfKernel is a radial basis function of planar degree distance.
type rbfKernel func(r float64) float64

func linearKernel(r float64) float64 { return r }
func cubicKernel(r float64) float64  { return r * r * r }

// rbfSolver interpolates scattered neighbor values at a single target point.
// The system is augmented with a constant constraint row so that constant
// fields are reproduced exactly. The factorization depends only on geometry;
// each time step still runs its own back-substitution against that
// factorization with the step's neighbor values.
type rbfSolver struct {
	qr      mat.QR
	phi     []float64 // kernel(distance target->neighbor), plus trailing 1
	n       int
	ok      bool
	weights []float64 // inverse-distance fallback when the system is singular
}

// newRBFSolver factorizes the interpolation system for one target point and
// its neighbors. lons/lats hold the neighbor coordinates, tlon/tlat the
// target.
func newRBFSolver(kernel rbfKernel, lons, lats []float64, tlon, tlat float64) *rbfSolver {
	n := len(lons)
	s := &rbfSolver{n: n}

	a := mat.NewDense(n+1, n+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := math.Hypot(lons[i]-lons[j], lats[i]-lats[j])
			v := kernel(r)
			if i == j {
				v += 1e-12
			}
			a.Set(i, j, v)
		}
		a.Set(i, n, 1)
		a.Set(n, i, 1)
	}
	a.Set(n, n, 0)

	s.phi = make([]float64, n+1)
	for i := 0; i < n; i++ {
		s.phi[i] = kernel(math.Hypot(tlon-lons[i], tlat-lats[i]))
	}
	s.phi[n] = 1

	s.qr.Factorize(a)
	s.ok = s.solvable()
	if !s.ok {
		s.weights = idwWeights(lons, lats, tlon, tlat)
	}
	return s
}

// solvable probes the factorization with a unit right-hand side.
func (s *rbfSolver) solvable() bool {
	b := mat.NewVecDense(s.n+1, nil)
	b.SetVec(s.n, 1)
	var x mat.VecDense
	if err := s.qr.SolveVecTo(&x, false, b); err != nil {
		return false
	}
	for i := 0; i < x.Len(); i++ {
		if math.IsNaN(x.AtVec(i)) || math.IsInf(x.AtVec(i), 0) {
			return false
		}
	}
	return true
}

// Interpolate evaluates the interpolant for one snapshot of neighbor values.
func (s *rbfSolver) Interpolate(values []float64) float64 {
	if !s.ok {
		if s.weights == nil {
			return values[0]
		}
		var sum float64
		for i, w := range s.weights {
			sum += w * values[i]
		}
		return sum
	}
	b := mat.NewVecDense(s.n+1, nil)
	for i, v := range values {
		b.SetVec(i, v)
	}
	var coef mat.VecDense
	if err := s.qr.SolveVecTo(&coef, false, b); err != nil {
		s.ok = false
		s.weights = nil // geometry lost; fall back to nearest value
		return values[0]
	}
	var out float64
	for i := 0; i <= s.n; i++ {
		out += coef.AtVec(i) * s.phi[i]
	}
	return out
}

// idwWeights returns normalized inverse-distance weights. An exact neighbor
// hit collapses the weights onto that neighbor.
func idwWeights(lons, lats []float64, tlon, tlat float64) []float64 {
	w := make([]float64, len(lons))
	var sum float64
	for i := range lons {
		d := math.Hypot(tlon-lons[i], tlat-lats[i])
		if d == 0 {
			for j := range w {
				w[j] = 0
			}
			w[i] = 1
			return w
		}
		w[i] = 1 / d
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}
