package resample

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"gonum.org/v1/gonum/spatial/kdtree"

	"go.ngs.io/regrid/internal/domain"
)

// Method selects the interpolation scheme.
type Method string

const (
	MethodNearest Method = "nearest"
	MethodLinear  Method = "linear"
	MethodCubic   Method = "cubic"
)

// ParseMethod parses a method name. The empty string means nearest.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodNearest:
		return MethodNearest, nil
	case MethodLinear:
		return MethodLinear, nil
	case MethodCubic:
		return MethodCubic, nil
	default:
		return "", fmt.Errorf("unsupported interpolation method: %s", s)
	}
}

// neighborCount is the scattered-interpolation stencil size.
const neighborCount = 16

// Field is source data on a reduced Gaussian grid, point-major: the value of
// point p at time step t is Values[p*Steps+t]. A single field has Steps 1.
type Field struct {
	Values []float64
	Steps  int
}

// Options controls a resampling run. Fill is written at target points the
// scattered methods cannot reach; the nearest method never uses it.
type Options struct {
	Method Method
	Fill   float64
}

// Result is resampled data on a regular grid, row-major with the time step
// innermost: the value at row y, column x, step t is
// Values[(y*nx+x)*Steps+t].
type Result struct {
	LatAxis []float64
	LonAxis []float64
	Steps   int
	Values  []float64
}

// Shape returns (ny, nx, steps).
func (r *Result) Shape() (ny, nx, steps int) {
	return len(r.LatAxis), len(r.LonAxis), r.Steps
}

// At returns the value at row y, column x, step t.
func (r *Result) At(y, x, t int) float64 {
	return r.Values[(y*len(r.LonAxis)+x)*r.Steps+t]
}

// Engine resamples fields from one reduced Gaussian variant. The spatial
// index and source hull are built on first use and shared by every run, so
// one engine per variant should be reused across requests.
type Engine struct {
	variant domain.Variant
	points  *domain.PointSet

	indexOnce sync.Once
	tree      *kdtree.Tree

	hullOnce sync.Once
	hull     []hullPoint
}

// NewEngine returns an engine for the given variant.
func NewEngine(v domain.Variant) *Engine {
	return &Engine{variant: v, points: domain.PointSetFor(v)}
}

// Variant returns the engine's source grid variant.
func (e *Engine) Variant() domain.Variant {
	return e.variant
}

func (e *Engine) index() *kdtree.Tree {
	e.indexOnce.Do(func() {
		e.tree = newSourceIndex(e.points)
	})
	return e.tree
}

func (e *Engine) sourceHull() []hullPoint {
	e.hullOnce.Do(func() {
		pts := make([]hullPoint, e.points.Count())
		for i := range pts {
			pts[i] = hullPoint{lon: e.points.Lons[i], lat: e.points.Lats[i]}
		}
		e.hull = convexHull(pts)
	})
	return e.hull
}

// Resample regrids a field onto the target grid. The field's shape is
// validated against the source grid before any work happens.
func (e *Engine) Resample(target TargetGrid, field Field, opts Options) (*Result, error) {
	if field.Steps < 1 {
		return nil, fmt.Errorf("%w: steps=%d", domain.ErrShapeMismatch, field.Steps)
	}
	count := e.variant.Count()
	if len(field.Values) != count*field.Steps {
		return nil, fmt.Errorf("%w: got %d values, want %d points x %d steps = %d",
			domain.ErrShapeMismatch, len(field.Values), count, field.Steps, count*field.Steps)
	}

	res := &Result{
		LatAxis: target.LatAxis,
		LonAxis: target.LonAxis,
		Steps:   field.Steps,
		Values:  make([]float64, target.Count()*field.Steps),
	}

	switch opts.Method {
	case "", MethodNearest:
		e.resampleNearest(target, field, res)
	case MethodLinear:
		e.resampleScattered(target, field, res, linearKernel, opts.Fill)
	case MethodCubic:
		e.resampleScattered(target, field, res, cubicKernel, opts.Fill)
	default:
		return nil, fmt.Errorf("unsupported interpolation method: %s", opts.Method)
	}
	return res, nil
}

// resampleNearest queries the spatial index once per target point and
// gathers every time step through that one index set. The k-d tree returns
// the true nearest source point under the planar degree metric, which can
// differ from the two-candidate-line lookup near the poles where longitude
// spacing dominates.
func (e *Engine) resampleNearest(target TargetGrid, field Field, res *Result) {
	tree := e.index()
	nx := len(target.LonAxis)
	steps := field.Steps
	for yi, lat := range target.LatAxis {
		for xi, lon := range target.LonAxis {
			got, _ := tree.Nearest(sourcePoint{lon: lon, lat: lat})
			src := got.(sourcePoint).idx
			dst := (yi*nx + xi) * steps
			copy(res.Values[dst:dst+steps], field.Values[src*steps:(src+1)*steps])
		}
	}
}

// resampleScattered interpolates each target point from its nearest source
// neighbors with a radial basis stencil. Unlike the nearest path, nothing is
// shared across time steps except geometry: the neighbor search and the
// stencil factorization depend only on point positions and happen once per
// target point, while the right-hand side is gathered and the system solved
// again for every snapshot. Target points outside the source hull receive
// the fill value.
func (e *Engine) resampleScattered(target TargetGrid, field Field, res *Result, kernel rbfKernel, fill float64) {
	tree := e.index()
	hull := e.sourceHull()
	nx := len(target.LonAxis)
	steps := field.Steps

	rows := make(chan int)
	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	if workers > len(target.LatAxis) {
		workers = len(target.LatAxis)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lons := make([]float64, 0, neighborCount)
			lats := make([]float64, 0, neighborCount)
			idxs := make([]int, 0, neighborCount)
			vals := make([]float64, 0, neighborCount)
			for yi := range rows {
				lat := target.LatAxis[yi]
				for xi, lon := range target.LonAxis {
					dst := (yi*nx + xi) * steps
					if !contains(hull, lon, lat) {
						for t := 0; t < steps; t++ {
							res.Values[dst+t] = fill
						}
						continue
					}

					keeper := kdtree.NewNKeeper(neighborCount)
					tree.NearestSet(keeper, sourcePoint{lon: lon, lat: lat})

					lons, lats, idxs = lons[:0], lats[:0], idxs[:0]
					for _, cd := range keeper.Heap {
						p, ok := cd.Comparable.(sourcePoint)
						if !ok {
							continue
						}
						lons = append(lons, p.lon)
						lats = append(lats, p.lat)
						idxs = append(idxs, p.idx)
					}

					solver := newRBFSolver(kernel, lons, lats, lon, lat)
					for t := 0; t < steps; t++ {
						vals = vals[:0]
						for _, src := range idxs {
							vals = append(vals, field.Values[src*steps+t])
						}
						res.Values[dst+t] = solver.Interpolate(vals)
					}
				}
			}
		}()
	}
	for yi := range target.LatAxis {
		rows <- yi
	}
	close(rows)
	wg.Wait()
}
