// Package fieldio reads reduced Gaussian fields from NetCDF files and writes
// resampled regular grids back out.
package fieldio

import (
	"fmt"
	"math"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/regrid/internal/adapter/resample"
)

// ReadField reads a field variable from a NetCDF file. The variable must be
// 1D (points) or 2D (points, time) in the grid's canonical point order.
// Values equal to the variable's _FillValue or missing_value are replaced
// with NaN.
func ReadField(path, varName string) (resample.Field, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return resample.Field{}, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	v, err := nc.Var(varName)
	if err != nil {
		return resample.Field{}, fmt.Errorf("variable %s not found in %s: %w", varName, path, err)
	}

	dims, err := v.Dims()
	if err != nil {
		return resample.Field{}, fmt.Errorf("failed to get dimensions: %w", err)
	}

	steps := 1
	total := 0
	switch len(dims) {
	case 1:
		n, err := dims[0].Len()
		if err != nil {
			return resample.Field{}, err
		}
		total = int(n)
	case 2:
		n0, err := dims[0].Len()
		if err != nil {
			return resample.Field{}, err
		}
		n1, err := dims[1].Len()
		if err != nil {
			return resample.Field{}, err
		}
		steps = int(n1)
		total = int(n0) * steps
	default:
		return resample.Field{}, fmt.Errorf("expected 1D or 2D variable %s, got %dD", varName, len(dims))
	}

	values, err := readFloat64Var(v, total)
	if err != nil {
		return resample.Field{}, fmt.Errorf("failed to read %s: %w", varName, err)
	}

	if fv, ok := getFillValue(v); ok {
		for i, val := range values {
			if val == fv {
				values[i] = math.NaN()
			}
		}
	}

	return resample.Field{Values: values, Steps: steps}, nil
}

// WriteRegular writes a resampled result to a NetCDF file with lat and lon
// coordinate variables. NaN values in the result are written as fill.
func WriteRegular(path string, res *resample.Result, fill float64) error {
	nc, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("failed to create NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	latDim, err := nc.AddDim("latitude", uint64(len(res.LatAxis)))
	if err != nil {
		return fmt.Errorf("failed to add latitude dimension: %w", err)
	}
	lonDim, err := nc.AddDim("longitude", uint64(len(res.LonAxis)))
	if err != nil {
		return fmt.Errorf("failed to add longitude dimension: %w", err)
	}

	dataDims := []netcdf.Dim{latDim, lonDim}
	if res.Steps > 1 {
		timeDim, err := nc.AddDim("time", uint64(res.Steps))
		if err != nil {
			return fmt.Errorf("failed to add time dimension: %w", err)
		}
		dataDims = append(dataDims, timeDim)
	}

	latVar, err := nc.AddVar("latitude", netcdf.DOUBLE, []netcdf.Dim{latDim})
	if err != nil {
		return fmt.Errorf("failed to add latitude variable: %w", err)
	}
	lonVar, err := nc.AddVar("longitude", netcdf.DOUBLE, []netcdf.Dim{lonDim})
	if err != nil {
		return fmt.Errorf("failed to add longitude variable: %w", err)
	}
	dataVar, err := nc.AddVar("values", netcdf.DOUBLE, dataDims)
	if err != nil {
		return fmt.Errorf("failed to add values variable: %w", err)
	}
	if err := dataVar.Attr("_FillValue").WriteFloat64s([]float64{fill}); err != nil {
		return fmt.Errorf("failed to write _FillValue: %w", err)
	}

	if err := nc.EndDef(); err != nil {
		return fmt.Errorf("failed to end define mode: %w", err)
	}

	if err := latVar.WriteFloat64s(res.LatAxis); err != nil {
		return fmt.Errorf("failed to write latitude: %w", err)
	}
	if err := lonVar.WriteFloat64s(res.LonAxis); err != nil {
		return fmt.Errorf("failed to write longitude: %w", err)
	}

	// The result layout already matches (latitude, longitude, time).
	values := res.Values
	if hasNaN(values) {
		// Copy before patching so the caller's result stays intact.
		patched := make([]float64, len(values))
		copy(patched, values)
		for i, v := range patched {
			if math.IsNaN(v) {
				patched[i] = fill
			}
		}
		values = patched
	}
	if err := dataVar.WriteFloat64s(values); err != nil {
		return fmt.Errorf("failed to write values: %w", err)
	}

	return nil
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// getFillValue returns the _FillValue or missing_value attribute if present.
func getFillValue(v netcdf.Var) (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		a := v.Attr(name)
		if a == (netcdf.Attr{}) {
			continue
		}
		if n, err := a.Len(); err == nil && n > 0 {
			buf64 := make([]float64, 1)
			if err := a.ReadFloat64s(buf64); err == nil {
				return buf64[0], true
			}
			buf32 := make([]float32, 1)
			if err := a.ReadFloat32s(buf32); err == nil {
				return float64(buf32[0]), true
			}
		}
	}
	return 0, false
}

// readFloat64Var reads a flat float64 array of known length from a variable.
func readFloat64Var(v netcdf.Var, length int) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, length)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, length)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT:
		tmp := make([]int32, length)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}
