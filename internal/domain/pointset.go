package domain

import "sync"

// PointSet holds the flattened coordinates of every point of a reduced
// Gaussian grid, in the canonical ordering of Variant.LatLonArrays. Any field
// array aligned to the grid must use exactly this ordering and length.
//
// A PointSet is immutable after construction and safe to share.
type PointSet struct {
	Lats []float64
	Lons []float64
}

// Count returns the number of points in the set.
func (p *PointSet) Count() int {
	return len(p.Lats)
}

var (
	pointSetMu sync.Mutex
	pointSets  = make(map[Variant]*PointSet)
)

// PointSetFor returns the memoized point set for a variant, building it on
// first use. The mutex is held across the build so concurrent first callers
// never construct the arrays twice; variants are immutable, so the cache
// never needs invalidation.
func PointSetFor(v Variant) *PointSet {
	pointSetMu.Lock()
	defer pointSetMu.Unlock()

	if ps, ok := pointSets[v]; ok {
		return ps
	}
	lats, lons := v.LatLonArrays()
	ps := &PointSet{Lats: lats, Lons: lons}
	pointSets[v] = ps
	return ps
}
