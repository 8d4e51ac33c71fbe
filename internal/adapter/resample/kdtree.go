package resample

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"go.ngs.io/regrid/internal/domain"
)

// sourcePoint is one source grid point in the k-d tree: its coordinates in
// degrees plus the flat index into the canonical point order. Distances are
// squared planar degrees, matching the grid's own nearest-point metric.
type sourcePoint struct {
	lon, lat float64
	idx      int
}

func (p sourcePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(sourcePoint)
	switch d {
	case 0:
		return p.lon - q.lon
	case 1:
		return p.lat - q.lat
	default:
		panic("resample: illegal dimension")
	}
}

func (p sourcePoint) Dims() int { return 2 }

func (p sourcePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(sourcePoint)
	dlon := p.lon - q.lon
	dlat := p.lat - q.lat
	return dlon*dlon + dlat*dlat
}

// sourcePoints implements kdtree.Interface over a slice of sourcePoint.
type sourcePoints []sourcePoint

func (p sourcePoints) Index(i int) kdtree.Comparable { return p[i] }
func (p sourcePoints) Len() int                      { return len(p) }
func (p sourcePoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p sourcePoints) Pivot(d kdtree.Dim) int {
	return pointPlane{sourcePoints: p, Dim: d}.Pivot()
}

// pointPlane sorts sourcePoints along one dimension for pivot selection.
type pointPlane struct {
	sourcePoints
	kdtree.Dim
}

func (p pointPlane) Less(i, j int) bool {
	a, b := p.sourcePoints[i], p.sourcePoints[j]
	switch p.Dim {
	case 0:
		return a.lon < b.lon
	case 1:
		return a.lat < b.lat
	default:
		panic("resample: illegal dimension")
	}
}

func (p pointPlane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfRandoms(p, 100))
}

func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	p.sourcePoints = p.sourcePoints[start:end]
	return p
}

func (p pointPlane) Swap(i, j int) {
	p.sourcePoints[i], p.sourcePoints[j] = p.sourcePoints[j], p.sourcePoints[i]
}

// newSourceIndex builds a k-d tree over a variant's point set.
func newSourceIndex(ps *domain.PointSet) *kdtree.Tree {
	pts := make(sourcePoints, ps.Count())
	for i := range pts {
		pts[i] = sourcePoint{lon: ps.Lons[i], lat: ps.Lats[i], idx: i}
	}
	return kdtree.New(pts, true)
}
