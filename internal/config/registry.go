// Package config builds grid objects from JSON grid specifications.
//
// Specs follow the upstream domain configuration format: a grid type name
// plus a type-specific params object, organized as domain -> grid name.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"go.ngs.io/regrid/internal/domain"
)

// GridSpec is one grid definition: a type name and its parameters.
type GridSpec struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params"`
}

// ProjectionDef is a projection definition inside a ProjectionGrid spec.
type ProjectionDef struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params"`
}

// LatLonValue accepts either a single number or a (min, max) pair, matching
// the upstream configuration format.
type LatLonValue []float64

// UnmarshalJSON implements json.Unmarshaler.
func (v *LatLonValue) UnmarshalJSON(data []byte) error {
	var single float64
	if err := json.Unmarshal(data, &single); err == nil {
		*v = LatLonValue{single}
		return nil
	}
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("lat/lon value must be a number or a [min, max] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("lat/lon range must have exactly 2 values, got %d", len(pair))
	}
	*v = pair
	return nil
}

type regularGridParams struct {
	Nx           int     `json:"nx"`
	Ny           int     `json:"ny"`
	LatMin       float64 `json:"latMin"`
	LonMin       float64 `json:"lonMin"`
	Dx           float64 `json:"dx"`
	Dy           float64 `json:"dy"`
	SearchRadius *int    `json:"searchRadius,omitempty"`
}

type gaussianGridParams struct {
	GridType string `json:"grid_type"`
}

type projectionGridParams struct {
	Nx                        int           `json:"nx"`
	Ny                        int           `json:"ny"`
	Projection                ProjectionDef `json:"projection"`
	Latitude                  LatLonValue   `json:"latitude,omitempty"`
	Longitude                 LatLonValue   `json:"longitude,omitempty"`
	LatitudeProjectionOrigin  *float64      `json:"latitudeProjectionOrigin,omitempty"`
	LongitudeProjectionOrigin *float64      `json:"longitudeProjectionOrigin,omitempty"`
	Dx                        *float64      `json:"dx,omitempty"`
	Dy                        *float64      `json:"dy,omitempty"`
}

// BuildProjection constructs a projection from its definition.
func BuildProjection(def ProjectionDef) (domain.Projection, error) {
	switch def.Type {
	case "LambertConformalConicProjection":
		var p struct {
			Lambda0 float64 `json:"lambda0"`
			Phi0    float64 `json:"phi0"`
			Phi1    float64 `json:"phi1"`
			Phi2    float64 `json:"phi2"`
			Radius  float64 `json:"radius"`
		}
		if err := json.Unmarshal(def.Params, &p); err != nil {
			return nil, fmt.Errorf("invalid Lambert conformal conic params: %w", err)
		}
		return domain.LambertConformalConic{
			Lambda0: p.Lambda0, Phi0: p.Phi0, Phi1: p.Phi1, Phi2: p.Phi2, Radius: p.Radius,
		}, nil
	case "RotatedLatLonProjection":
		var p struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}
		if err := json.Unmarshal(def.Params, &p); err != nil {
			return nil, fmt.Errorf("invalid rotated lat/lon params: %w", err)
		}
		return domain.RotatedLatLon{Latitude: p.Latitude, Longitude: p.Longitude}, nil
	case "StereographicProjection":
		var p struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Radius    float64 `json:"radius"`
		}
		if err := json.Unmarshal(def.Params, &p); err != nil {
			return nil, fmt.Errorf("invalid stereographic params: %w", err)
		}
		return domain.Stereographic{Latitude: p.Latitude, Longitude: p.Longitude, Radius: p.Radius}, nil
	case "LambertAzimuthalEqualAreaProjection":
		var p struct {
			Lambda0 float64 `json:"lambda0"`
			Phi1    float64 `json:"phi1"`
			Radius  float64 `json:"radius"`
		}
		if err := json.Unmarshal(def.Params, &p); err != nil {
			return nil, fmt.Errorf("invalid Lambert azimuthal params: %w", err)
		}
		return domain.LambertAzimuthalEqualArea{Lambda0: p.Lambda0, Phi1: p.Phi1, Radius: p.Radius}, nil
	default:
		return nil, fmt.Errorf("unsupported projection type: %s", def.Type)
	}
}

// BuildGrid constructs a grid from its spec.
func BuildGrid(spec GridSpec) (domain.Grid, error) {
	switch spec.Type {
	case "RegularGrid":
		var p regularGridParams
		if err := json.Unmarshal(spec.Params, &p); err != nil {
			return nil, fmt.Errorf("invalid RegularGrid params: %w", err)
		}
		g := domain.RegularGrid{
			Nx: p.Nx, Ny: p.Ny,
			LatMin: p.LatMin, LonMin: p.LonMin,
			Dx: p.Dx, Dy: p.Dy,
			SearchRadius: 1,
		}
		if p.SearchRadius != nil {
			g.SearchRadius = *p.SearchRadius
		}
		return g, nil
	case "GaussianGrid":
		var p gaussianGridParams
		if err := json.Unmarshal(spec.Params, &p); err != nil {
			return nil, fmt.Errorf("invalid GaussianGrid params: %w", err)
		}
		v, err := domain.ParseVariant(p.GridType)
		if err != nil {
			return nil, err
		}
		return domain.GaussianGrid{Type: v}, nil
	case "ProjectionGrid":
		var p projectionGridParams
		if err := json.Unmarshal(spec.Params, &p); err != nil {
			return nil, fmt.Errorf("invalid ProjectionGrid params: %w", err)
		}
		proj, err := BuildProjection(p.Projection)
		if err != nil {
			return nil, err
		}
		return domain.ProjectionGrid{
			Nx: p.Nx, Ny: p.Ny,
			Projection:                proj,
			Latitude:                  p.Latitude,
			Longitude:                 p.Longitude,
			LatitudeProjectionOrigin:  p.LatitudeProjectionOrigin,
			LongitudeProjectionOrigin: p.LongitudeProjectionOrigin,
			Dx:                        p.Dx,
			Dy:                        p.Dy,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported grid type: %s", spec.Type)
	}
}

// Registry maps domain name -> grid name -> spec.
type Registry map[string]map[string]GridSpec

// Spec looks up a grid spec by domain and grid name.
func (r Registry) Spec(domainName, gridName string) (GridSpec, error) {
	grids, ok := r[domainName]
	if !ok {
		return GridSpec{}, fmt.Errorf("unknown domain: %s", domainName)
	}
	spec, ok := grids[gridName]
	if !ok {
		return GridSpec{}, fmt.Errorf("unknown grid %s in domain %s", gridName, domainName)
	}
	return spec, nil
}

// Build looks up and constructs a grid by domain and grid name.
func (r Registry) Build(domainName, gridName string) (domain.Grid, error) {
	spec, err := r.Spec(domainName, gridName)
	if err != nil {
		return nil, err
	}
	return BuildGrid(spec)
}

// LoadRegistry reads a registry from a JSON file.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid registry: %w", err)
	}
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse grid registry: %w", err)
	}
	return r, nil
}

// defaultRegistryJSON carries the built-in domain grids.
const defaultRegistryJSON = `{
  "EcmwfEcpdsDomain": {
    "ifs": {
      "type": "GaussianGrid",
      "params": {"grid_type": "o1280"}
    },
    "aifs": {
      "type": "GaussianGrid",
      "params": {"grid_type": "n320"}
    },
    "wave": {
      "type": "RegularGrid",
      "params": {"nx": 1440, "ny": 721, "latMin": -90, "lonMin": -180, "dx": 0.25, "dy": 0.25}
    }
  },
  "EcmwfOpenDataDomain": {
    "ifs025": {
      "type": "RegularGrid",
      "params": {"nx": 1440, "ny": 721, "latMin": -90, "lonMin": -180, "dx": 0.25, "dy": 0.25}
    }
  }
}`

// DefaultRegistry returns the built-in domain grid registry.
func DefaultRegistry() Registry {
	var r Registry
	// The constant is under test; a parse failure is a programming error.
	if err := json.Unmarshal([]byte(defaultRegistryJSON), &r); err != nil {
		panic(fmt.Sprintf("config: invalid built-in registry: %v", err))
	}
	return r
}
