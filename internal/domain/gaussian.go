// Package domain holds the grid geometry model: reduced Gaussian grids,
// regular latitude/longitude grids, and projection grid configuration.
package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Variant identifies a supported reduced Gaussian grid layout.
//
// Two families are supported: octahedral reduced grids (O-series) and classic
// reduced grids (N-series). A variant fully determines the grid geometry: the
// number of latitude lines, the per-line longitude point counts, and the
// flattened point ordering.
type Variant string

const (
	O320  Variant = "o320"
	O1280 Variant = "o1280"
	N160  Variant = "n160"
	N320  Variant = "n320"
)

// latitudeLines maps each variant to its half-grid latitude-line count L.
// The full grid has 2L lines.
var latitudeLines = map[Variant]int{
	O320:  320,
	O1280: 1280,
	N160:  160,
	N320:  320,
}

// Variants returns the supported variants in a stable order.
func Variants() []Variant {
	return []Variant{O320, O1280, N160, N320}
}

// ParseVariant validates a variant identifier. Unknown identifiers fail with
// ErrUnsupportedVariant before any grid work begins.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := latitudeLines[v]; !ok {
		return "", fmt.Errorf("%w: %q (supported: o320, o1280, n160, n320)", ErrUnsupportedVariant, s)
	}
	return v, nil
}

// IsOctahedral reports whether the variant belongs to the octahedral O-series.
func (v Variant) IsOctahedral() bool {
	return v == O320 || v == O1280
}

// LatitudeLines returns the half-grid latitude-line count L.
func (v Variant) LatitudeLines() int {
	return latitudeLines[v]
}

// Count returns the total number of grid points, 4L(L+9).
func (v Variant) Count() int {
	l := v.LatitudeLines()
	// TODO: the classic N-series reuses the octahedral point-count formula
	// here; real N-series row lengths come from a lookup table.
	return 4 * l * (l + 9)
}

// Dy returns the latitude spacing between adjacent lines, in degrees.
func (v Variant) Dy() float64 {
	return 180.0 / (2.0*float64(v.LatitudeLines()) + 0.5)
}

// PointsOnLine returns the number of longitude points on latitude line y.
// Lines are indexed 0..2L-1 from the north pole; counts are symmetric about
// the equator.
func (v Variant) PointsOnLine(y int) (int, error) {
	l := v.LatitudeLines()
	if y < 0 || y >= 2*l {
		return 0, fmt.Errorf("%w: latitude line %d (want 0..%d)", ErrOutOfRange, y, 2*l-1)
	}
	if y < l {
		return 20 + 4*y, nil
	}
	return 20 + 4*(2*l-y-1), nil
}

// Integral returns the number of grid points on all latitude lines before
// line y. It is closed-form, so random access stays O(1); Integral(2L)
// equals Count.
func (v Variant) Integral(y int) (int, error) {
	l := v.LatitudeLines()
	if y < 0 || y > 2*l {
		return 0, fmt.Errorf("%w: latitude line %d (want 0..%d)", ErrOutOfRange, y, 2*l)
	}
	if y <= l {
		return 2*y*y + 18*y, nil
	}
	// Mirror symmetry about the equator.
	r := 2*l - y
	return v.Count() - (2*r*r + 18*r), nil
}

// LatOfLine returns the latitude of line y in degrees. Latitudes decrease
// strictly with y, from just below the north pole to just above the south.
func (v Variant) LatOfLine(y int) float64 {
	dy := v.Dy()
	return (float64(v.LatitudeLines())-float64(y)-1)*dy + dy/2.0
}

// LatBounds returns the latitudes of the southernmost and northernmost lines.
func (v Variant) LatBounds() (min, max float64) {
	l := float64(v.LatitudeLines())
	dy := v.Dy()
	max = l*dy - dy/2.0
	return -max, max
}

// LonStep returns the longitude spacing on line y, in degrees.
func (v Variant) LonStep(y int) (float64, error) {
	nx, err := v.PointsOnLine(y)
	if err != nil {
		return 0, err
	}
	return 360.0 / float64(nx), nil
}

// Coordinates returns the latitude and longitude of the flattened point
// index i. The line is located by binary search over the closed-form offsets.
func (v Variant) Coordinates(i int) (lat, lon float64, err error) {
	total := v.Count()
	if i < 0 || i >= total {
		return 0, 0, fmt.Errorf("%w: point index %d (want 0..%d)", ErrOutOfRange, i, total-1)
	}
	l := v.LatitudeLines()

	// Smallest y with Integral(y+1) > i.
	y := sort.Search(2*l, func(y int) bool {
		off, _ := v.Integral(y + 1)
		return off > i
	})

	start, _ := v.Integral(y)
	nx, _ := v.PointsOnLine(y)
	x := i - start
	return v.LatOfLine(y), wrapLongitude(float64(x) * 360.0 / float64(nx)), nil
}

// FindPoint returns the flattened index of the grid point nearest to
// (lat, lon).
func (v Variant) FindPoint(lat, lon float64) (int, error) {
	x, y, err := v.FindPointXY(lat, lon)
	if err != nil {
		return 0, err
	}
	off, _ := v.Integral(y)
	return off + x, nil
}

// FindPointXY returns the (x, y) grid coordinates of the point nearest to
// (lat, lon).
//
// The lookup estimates the latitude line from the inverse of LatOfLine,
// clamps so a second candidate line always exists, and compares the two
// candidates by squared planar degree distance. Longitude degrees are not
// scaled by cos(lat): the metric is deliberately planar, not geodesic, and
// changing it would change which point wins near the poles. Ties favor the
// lower line index.
func (v Variant) FindPointXY(lat, lon float64) (x, y int, err error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return 0, 0, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidGeometry, lat, lon)
	}

	l := v.LatitudeLines()
	dy := v.Dy()

	yRaw := float64(l) - 1.0 - (lat-dy/2.0)/dy
	y = int(yRaw)
	if y < 0 {
		y = 0
	}
	if y > 2*l-2 {
		y = 2*l - 2
	}
	yUpper := y + 1

	nx, _ := v.PointsOnLine(y)
	nxUpper, _ := v.PointsOnLine(yUpper)
	dx := 360.0 / float64(nx)
	dxUpper := 360.0 / float64(nxUpper)

	lonWrapped := wrapLongitude(lon)
	// math.Round rounds halves away from zero, which is the rounding the
	// grid layout was defined with.
	x0 := int(math.Round(lonWrapped / dx))
	x1 := int(math.Round(lonWrapped / dxUpper))

	dLat0 := v.LatOfLine(y) - lat
	dLon0 := float64(x0)*dx - lonWrapped
	dLat1 := v.LatOfLine(yUpper) - lat
	dLon1 := float64(x1)*dxUpper - lonWrapped

	dist0 := dLat0*dLat0 + dLon0*dLon0
	dist1 := dLat1*dLat1 + dLon1*dLon1

	if dist0 <= dist1 {
		return (x0 + nx) % nx, y, nil
	}
	return (x1 + nxUpper) % nxUpper, yUpper, nil
}

// LatLonArrays returns the coordinates of every grid point in canonical
// order: ascending latitude-line index, ascending longitude index within each
// line. Longitudes are normalized to [-180, 180).
func (v Variant) LatLonArrays() (lats, lons []float64) {
	l := v.LatitudeLines()
	total := v.Count()
	lats = make([]float64, total)
	lons = make([]float64, total)

	for y := 0; y < 2*l; y++ {
		start, _ := v.Integral(y)
		nx, _ := v.PointsOnLine(y)
		lat := v.LatOfLine(y)
		dx := 360.0 / float64(nx)

		for x := 0; x < nx; x++ {
			lats[start+x] = lat
			lons[start+x] = wrapLongitude(float64(x) * dx)
		}
	}
	return lats, lons
}

// Info summarizes a variant for logging and API responses.
type Info struct {
	GridType      string  `json:"grid_type"`
	Octahedral    bool    `json:"octahedral"`
	LatitudeLines int     `json:"latitude_lines"`
	TotalPoints   int     `json:"total_points"`
	Dy            float64 `json:"dy"`
	LatMin        float64 `json:"lat_min"`
	LatMax        float64 `json:"lat_max"`
}

// Info returns the variant's summary.
func (v Variant) Info() Info {
	latMin, latMax := v.LatBounds()
	return Info{
		GridType:      string(v),
		Octahedral:    v.IsOctahedral(),
		LatitudeLines: 2 * v.LatitudeLines(),
		TotalPoints:   v.Count(),
		Dy:            v.Dy(),
		LatMin:        latMin,
		LatMax:        latMax,
	}
}

// wrapLongitude normalizes a degree longitude into [-180, 180).
func wrapLongitude(lon float64) float64 {
	m := math.Mod(lon+180.0, 360.0)
	if m < 0 {
		m += 360.0
	}
	return m - 180.0
}
