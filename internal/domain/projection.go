package domain

// Grid is any point layout with a known total point count. RegularGrid,
// ProjectionGrid and GaussianGrid implement it; only GaussianGrid and
// RegularGrid are exercised by the resampling path, ProjectionGrid is
// configuration data for collaborators.
type Grid interface {
	Count() int
}

// GaussianGrid wraps a reduced Gaussian variant as a Grid.
type GaussianGrid struct {
	Type Variant
}

// Count returns the variant's total point count.
func (g GaussianGrid) Count() int {
	return g.Type.Count()
}

// Projection is a map projection definition. Implementations are plain
// configuration records; no projection math runs in this module.
type Projection interface {
	projection()
}

// LambertConformalConic is a Lambert conformal conic projection definition.
type LambertConformalConic struct {
	Lambda0 float64
	Phi0    float64
	Phi1    float64
	Phi2    float64
	Radius  float64
}

// RotatedLatLon is a rotated latitude/longitude projection definition.
type RotatedLatLon struct {
	Latitude  float64
	Longitude float64
}

// Stereographic is a polar stereographic projection definition.
type Stereographic struct {
	Latitude  float64
	Longitude float64
	Radius    float64
}

// LambertAzimuthalEqualArea is a Lambert azimuthal equal-area projection
// definition.
type LambertAzimuthalEqualArea struct {
	Lambda0 float64
	Phi1    float64
	Radius  float64
}

func (LambertConformalConic) projection()     {}
func (RotatedLatLon) projection()             {}
func (Stereographic) projection()             {}
func (LambertAzimuthalEqualArea) projection() {}

// ProjectionGrid is a projected grid definition. Latitude and Longitude may
// each hold a single value or a (min, max) range, following the upstream
// configuration format.
type ProjectionGrid struct {
	Nx, Ny     int
	Projection Projection

	Latitude  []float64
	Longitude []float64

	LatitudeProjectionOrigin  *float64
	LongitudeProjectionOrigin *float64
	Dx, Dy                    *float64
}

// Count returns the total number of grid points.
func (g ProjectionGrid) Count() int {
	return g.Nx * g.Ny
}
