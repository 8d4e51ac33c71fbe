// Package resample regrids reduced Gaussian fields onto regular
// latitude/longitude target grids.
package resample

import (
	"fmt"

	"go.ngs.io/regrid/internal/domain"
)

// TargetGrid is a regular latitude/longitude output grid. Axes run
// south-to-north and west-to-east; points are stored latitude-major.
type TargetGrid struct {
	LatAxis []float64
	LonAxis []float64
}

// BuildTargetGrid constructs a target grid covering [latMin, latMax] x
// [lonMin, lonMax] at the given resolution. Each axis starts at its minimum
// and steps by the resolution; the maximum is included when it falls within
// half a step of an axis value.
func BuildTargetGrid(dlat, dlon, latMin, latMax, lonMin, lonMax float64) (TargetGrid, error) {
	if dlat <= 0 || dlon <= 0 {
		return TargetGrid{}, fmt.Errorf("%w: dlat=%g dlon=%g", domain.ErrInvalidResolution, dlat, dlon)
	}
	if latMax < latMin || lonMax < lonMin {
		return TargetGrid{}, fmt.Errorf("%w: empty extent [%g, %g] x [%g, %g]",
			domain.ErrInvalidResolution, latMin, latMax, lonMin, lonMax)
	}
	return TargetGrid{
		LatAxis: stepAxis(latMin, latMax, dlat),
		LonAxis: stepAxis(lonMin, lonMax, dlon),
	}, nil
}

// stepAxis builds min, min+step, ... up to and including max (within half a
// step). Values are index multiples of the step to avoid accumulating
// rounding error over long axes.
func stepAxis(min, max, step float64) []float64 {
	var axis []float64
	for i := 0; ; i++ {
		v := min + float64(i)*step
		if v >= max+step/2 {
			break
		}
		axis = append(axis, v)
	}
	return axis
}

// Shape returns (ny, nx).
func (t TargetGrid) Shape() (ny, nx int) {
	return len(t.LatAxis), len(t.LonAxis)
}

// Count returns the total number of target points.
func (t TargetGrid) Count() int {
	return len(t.LatAxis) * len(t.LonAxis)
}

// Points returns the target points latitude-major as (lat, lon) pairs.
func (t TargetGrid) Points() [][2]float64 {
	pts := make([][2]float64, 0, t.Count())
	for _, lat := range t.LatAxis {
		for _, lon := range t.LonAxis {
			pts = append(pts, [2]float64{lat, lon})
		}
	}
	return pts
}

// Mesh returns the coordinates as 2-D (ny, nx) arrays, one row per latitude.
func (t TargetGrid) Mesh() (lats, lons [][]float64) {
	ny, nx := t.Shape()
	lats = make([][]float64, ny)
	lons = make([][]float64, ny)
	for y := 0; y < ny; y++ {
		lats[y] = make([]float64, nx)
		lons[y] = make([]float64, nx)
		for x := 0; x < nx; x++ {
			lats[y][x] = t.LatAxis[y]
			lons[y][x] = t.LonAxis[x]
		}
	}
	return lats, lons
}
