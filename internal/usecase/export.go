package usecase

import (
	"fmt"
	"math"
	"sync"

	"go.ngs.io/regrid/internal/adapter/resample"
	"go.ngs.io/regrid/internal/domain"
)

// ResampleRequest encapsulates one resampling request.
type ResampleRequest struct {
	// Source grid variant, e.g. "o1280".
	Variant string

	// Target resolution as (dlat, dlon) in degrees.
	Resolution [2]float64

	// Optional target extent. Defaults to the full globe.
	LatRange *[2]float64
	LonRange *[2]float64

	// Interpolation method. Empty means nearest.
	Method string

	// Fill value for unreachable target points (scattered methods only).
	Fill float64
}

// Validate checks if the request is valid.
func (r *ResampleRequest) Validate() error {
	if _, err := domain.ParseVariant(r.Variant); err != nil {
		return err
	}
	if r.Resolution[0] <= 0 || r.Resolution[1] <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got (%g, %g)",
			domain.ErrInvalidResolution, r.Resolution[0], r.Resolution[1])
	}
	if _, err := resample.ParseMethod(r.Method); err != nil {
		return err
	}
	if r.LatRange != nil {
		if r.LatRange[0] > r.LatRange[1] {
			return fmt.Errorf("%w: latitude range (%g, %g) is empty",
				domain.ErrInvalidResolution, r.LatRange[0], r.LatRange[1])
		}
		if r.LatRange[0] < -90 || r.LatRange[1] > 90 {
			return fmt.Errorf("%w: latitude range (%g, %g) exceeds (-90, 90)",
				domain.ErrInvalidResolution, r.LatRange[0], r.LatRange[1])
		}
	}
	if r.LonRange != nil && r.LonRange[0] > r.LonRange[1] {
		return fmt.Errorf("%w: longitude range (%g, %g) is empty",
			domain.ErrInvalidResolution, r.LonRange[0], r.LonRange[1])
	}
	if math.IsInf(r.Fill, 0) {
		return fmt.Errorf("fill value must be finite or NaN")
	}
	return nil
}

// NearestPoint describes the source grid point closest to a query location.
type NearestPoint struct {
	Index int     `json:"index"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// ExportUseCase orchestrates resampling of reduced Gaussian fields onto
// regular grids. Engines are built lazily per variant and reused, so the
// spatial index is paid for once.
type ExportUseCase struct {
	mu      sync.Mutex
	engines map[domain.Variant]*resample.Engine
}

// NewExportUseCase creates a new export use case.
func NewExportUseCase() *ExportUseCase {
	return &ExportUseCase{
		engines: make(map[domain.Variant]*resample.Engine),
	}
}

func (uc *ExportUseCase) engineFor(v domain.Variant) *resample.Engine {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	e, ok := uc.engines[v]
	if !ok {
		e = resample.NewEngine(v)
		uc.engines[v] = e
	}
	return e
}

// Execute resamples a field according to the request.
func (uc *ExportUseCase) Execute(req ResampleRequest, field resample.Field) (*resample.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, err := domain.ParseVariant(req.Variant)
	if err != nil {
		return nil, err
	}
	method, err := resample.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	// The default latitude extent is the variant's own span, not the poles:
	// the grid has no lines beyond its outermost latitudes.
	latMin, latMax := v.LatBounds()
	if req.LatRange != nil {
		latMin, latMax = req.LatRange[0], req.LatRange[1]
	}
	lonMin, lonMax := -180.0, 180.0
	if req.LonRange != nil {
		lonMin, lonMax = req.LonRange[0], req.LonRange[1]
	}

	target, err := resample.BuildTargetGrid(req.Resolution[0], req.Resolution[1], latMin, latMax, lonMin, lonMax)
	if err != nil {
		return nil, err
	}

	result, err := uc.engineFor(v).Resample(target, field, resample.Options{
		Method: method,
		Fill:   req.Fill,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resample %s field: %w", req.Variant, err)
	}
	return result, nil
}

// Variants lists the supported source grid variants.
func (uc *ExportUseCase) Variants() []string {
	variants := domain.Variants()
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = string(v)
	}
	return names
}

// GridInfo returns descriptive parameters for a variant.
func (uc *ExportUseCase) GridInfo(name string) (domain.Info, error) {
	v, err := domain.ParseVariant(name)
	if err != nil {
		return domain.Info{}, err
	}
	return v.Info(), nil
}

// Nearest locates the source grid point closest to (lat, lon).
func (uc *ExportUseCase) Nearest(name string, lat, lon float64) (NearestPoint, error) {
	v, err := domain.ParseVariant(name)
	if err != nil {
		return NearestPoint{}, err
	}
	x, y, err := v.FindPointXY(lat, lon)
	if err != nil {
		return NearestPoint{}, err
	}
	idx, err := v.FindPoint(lat, lon)
	if err != nil {
		return NearestPoint{}, err
	}
	plat, plon, err := v.Coordinates(idx)
	if err != nil {
		return NearestPoint{}, err
	}
	return NearestPoint{Index: idx, X: x, Y: y, Lat: plat, Lon: plon}, nil
}
