package domain

import (
	"fmt"
	"math"
)

// RegularGrid is an equally spaced latitude/longitude grid, usable as either
// a source or a target. Points are ordered row-major: index = y*Nx + x.
type RegularGrid struct {
	Nx, Ny         int
	LatMin, LonMin float64
	Dx, Dy         float64
	SearchRadius   int
}

// Count returns the total number of grid points.
func (g RegularGrid) Count() int {
	return g.Nx * g.Ny
}

// IsGlobalLon reports whether the grid wraps the full longitude circle.
func (g RegularGrid) IsGlobalLon() bool {
	return float64(g.Nx)*g.Dx >= 359
}

// IsGlobalLat reports whether the grid spans the full latitude range.
func (g RegularGrid) IsGlobalLat() bool {
	return float64(g.Ny)*g.Dy >= 179
}

// FindPointXY returns the (x, y) grid coordinates nearest to (lat, lon).
//
// On global grids an out-by-one result at the wraparound seam is snapped back
// into range instead of failing; anything further out is ErrOutOfRange.
func (g RegularGrid) FindPointXY(lat, lon float64) (x, y int, err error) {
	x = int(math.Round((lon - g.LonMin) / g.Dx))
	y = int(math.Round((lat - g.LatMin) / g.Dy))

	if g.IsGlobalLon() {
		switch {
		case x == -1:
			x = 0
		case x == g.Nx || x == g.Nx+1:
			x = g.Nx - 1
		}
	}
	if g.IsGlobalLat() {
		switch {
		case y == -1:
			y = 0
		case y == g.Ny:
			y = g.Ny - 1
		}
	}

	if x < 0 || y < 0 || x >= g.Nx || y >= g.Ny {
		return 0, 0, fmt.Errorf("%w: lat=%v lon=%v maps to x=%d y=%d on a %dx%d grid",
			ErrOutOfRange, lat, lon, x, y, g.Nx, g.Ny)
	}
	return x, y, nil
}

// FindPoint returns the flattened index of the grid point nearest to
// (lat, lon).
func (g RegularGrid) FindPoint(lat, lon float64) (int, error) {
	x, y, err := g.FindPointXY(lat, lon)
	if err != nil {
		return 0, err
	}
	return y*g.Nx + x, nil
}

// LatLonArrays returns the coordinates of every grid point in row-major
// order.
func (g RegularGrid) LatLonArrays() (lats, lons []float64) {
	lats = make([]float64, g.Count())
	lons = make([]float64, g.Count())
	for y := 0; y < g.Ny; y++ {
		lat := g.LatMin + float64(y)*g.Dy
		for x := 0; x < g.Nx; x++ {
			i := y*g.Nx + x
			lats[i] = lat
			lons[i] = g.LonMin + float64(x)*g.Dx
		}
	}
	return lats, lons
}

// Reshape2D views a flattened field as an (Ny, Nx) grid.
func (g RegularGrid) Reshape2D(data []float64) ([][]float64, error) {
	if len(data) != g.Count() {
		return nil, fmt.Errorf("%w: field has %d values, grid has %d points",
			ErrShapeMismatch, len(data), g.Count())
	}
	rows := make([][]float64, g.Ny)
	for y := 0; y < g.Ny; y++ {
		rows[y] = data[y*g.Nx : (y+1)*g.Nx]
	}
	return rows, nil
}
