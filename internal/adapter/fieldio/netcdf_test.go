package fieldio

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/regrid/internal/adapter/resample"
)

// helper to create a NetCDF file holding a 1D field variable.
func createFieldNC(t *testing.T, path, varName string, values []float64, fill *float64) {
	t.Helper()
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create nc: %v", err)
	}
	defer f.Close()

	dim, err := f.AddDim("values", uint64(len(values)))
	if err != nil {
		t.Fatalf("add dim: %v", err)
	}
	v, err := f.AddVar(varName, netcdf.DOUBLE, []netcdf.Dim{dim})
	if err != nil {
		t.Fatalf("add var: %v", err)
	}
	if fill != nil {
		if err := v.Attr("_FillValue").WriteFloat64s([]float64{*fill}); err != nil {
			t.Fatalf("write fill attr: %v", err)
		}
	}
	if err := f.EndDef(); err != nil {
		t.Fatalf("enddef: %v", err)
	}
	if err := v.WriteFloat64s(values); err != nil {
		t.Fatalf("write values: %v", err)
	}
}

// helper to create a NetCDF file holding a 2D (points, time) field variable.
func createStackNC(t *testing.T, path, varName string, points, steps int, values []float64) {
	t.Helper()
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create nc: %v", err)
	}
	defer f.Close()

	pDim, err := f.AddDim("values", uint64(points))
	if err != nil {
		t.Fatalf("add points dim: %v", err)
	}
	tDim, err := f.AddDim("time", uint64(steps))
	if err != nil {
		t.Fatalf("add time dim: %v", err)
	}
	v, err := f.AddVar(varName, netcdf.FLOAT, []netcdf.Dim{pDim, tDim})
	if err != nil {
		t.Fatalf("add var: %v", err)
	}
	if err := f.EndDef(); err != nil {
		t.Fatalf("enddef: %v", err)
	}
	tmp := make([]float32, len(values))
	for i, val := range values {
		tmp[i] = float32(val)
	}
	if err := v.WriteFloat32s(tmp); err != nil {
		t.Fatalf("write values: %v", err)
	}
}

func TestReadFieldSingle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.nc")
	createFieldNC(t, path, "t2m", []float64{1, 2, 3, 4}, nil)

	field, err := ReadField(path, "t2m")
	if err != nil {
		t.Fatalf("ReadField failed: %v", err)
	}
	if field.Steps != 1 {
		t.Errorf("steps = %d, want 1", field.Steps)
	}
	if len(field.Values) != 4 || field.Values[2] != 3 {
		t.Errorf("values = %v", field.Values)
	}
}

func TestReadFieldFillBecomesNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.nc")
	fill := -9999.0
	createFieldNC(t, path, "t2m", []float64{1, -9999, 3}, &fill)

	field, err := ReadField(path, "t2m")
	if err != nil {
		t.Fatalf("ReadField failed: %v", err)
	}
	if !math.IsNaN(field.Values[1]) {
		t.Errorf("fill value not replaced with NaN: %v", field.Values[1])
	}
	if field.Values[0] != 1 || field.Values[2] != 3 {
		t.Errorf("unexpected values: %v", field.Values)
	}
}

func TestReadFieldStack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.nc")
	// 3 points x 2 steps, point-major.
	createStackNC(t, path, "swh", 3, 2, []float64{10, 11, 20, 21, 30, 31})

	field, err := ReadField(path, "swh")
	if err != nil {
		t.Fatalf("ReadField failed: %v", err)
	}
	if field.Steps != 2 {
		t.Errorf("steps = %d, want 2", field.Steps)
	}
	if field.Values[2*2+1] != 31 {
		t.Errorf("point 2 step 1 = %v, want 31", field.Values[2*2+1])
	}
}

func TestReadFieldMissingVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.nc")
	createFieldNC(t, path, "t2m", []float64{1, 2}, nil)

	if _, err := ReadField(path, "nope"); err == nil {
		t.Error("expected error for missing variable")
	}
}

func TestWriteRegularRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.nc")
	res := &resample.Result{
		LatAxis: []float64{40, 41},
		LonAxis: []float64{0, 1, 2},
		Steps:   1,
		Values:  []float64{1, 2, math.NaN(), 4, 5, 6},
	}
	const fill = -9999.0
	if err := WriteRegular(path, res, fill); err != nil {
		t.Fatalf("WriteRegular failed: %v", err)
	}

	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer nc.Close()

	latVar, err := nc.Var("latitude")
	if err != nil {
		t.Fatalf("latitude variable missing: %v", err)
	}
	lats := make([]float64, 2)
	if err := latVar.ReadFloat64s(lats); err != nil {
		t.Fatalf("read latitude: %v", err)
	}
	if lats[0] != 40 || lats[1] != 41 {
		t.Errorf("latitude axis = %v", lats)
	}

	dataVar, err := nc.Var("values")
	if err != nil {
		t.Fatalf("values variable missing: %v", err)
	}
	got := make([]float64, 6)
	if err := dataVar.ReadFloat64s(got); err != nil {
		t.Fatalf("read values: %v", err)
	}
	if got[2] != fill {
		t.Errorf("NaN not written as fill: %v", got[2])
	}
	if got[0] != 1 || got[5] != 6 {
		t.Errorf("values = %v", got)
	}
	// The caller's slice must stay NaN.
	if !math.IsNaN(res.Values[2]) {
		t.Error("caller's values were mutated")
	}
}

func TestWriteRegularStack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.nc")
	res := &resample.Result{
		LatAxis: []float64{40},
		LonAxis: []float64{0, 1},
		Steps:   2,
		Values:  []float64{1, 2, 3, 4},
	}
	if err := WriteRegular(path, res, -9999); err != nil {
		t.Fatalf("WriteRegular failed: %v", err)
	}

	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer nc.Close()

	dataVar, err := nc.Var("values")
	if err != nil {
		t.Fatalf("values variable missing: %v", err)
	}
	dims, err := dataVar.Dims()
	if err != nil {
		t.Fatal(err)
	}
	if len(dims) != 3 {
		t.Fatalf("expected 3D values variable, got %dD", len(dims))
	}
	got := make([]float64, 4)
	if err := dataVar.ReadFloat64s(got); err != nil {
		t.Fatalf("read values: %v", err)
	}
	if got[3] != 4 {
		t.Errorf("values = %v", got)
	}
}
