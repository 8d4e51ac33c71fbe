package domain

import (
	"errors"
	"math"
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"o320", O320, false},
		{"O320", O320, false},
		{" o1280 ", O1280, false},
		{"n160", N160, false},
		{"n320", N320, false},
		{"o640", "", true},
		{"regular", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseVariant(%q): expected error, got %q", tt.in, got)
			} else if !errors.Is(err, ErrUnsupportedVariant) {
				t.Errorf("ParseVariant(%q): error %v is not ErrUnsupportedVariant", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVariant(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVariantProperties(t *testing.T) {
	tests := []struct {
		variant    Variant
		lines      int
		octahedral bool
	}{
		{O320, 320, true},
		{O1280, 1280, true},
		{N160, 160, false},
		{N320, 320, false},
	}

	for _, tt := range tests {
		if got := tt.variant.LatitudeLines(); got != tt.lines {
			t.Errorf("%s: LatitudeLines() = %d, want %d", tt.variant, got, tt.lines)
		}
		if got := tt.variant.IsOctahedral(); got != tt.octahedral {
			t.Errorf("%s: IsOctahedral() = %v, want %v", tt.variant, got, tt.octahedral)
		}
		wantCount := 4 * tt.lines * (tt.lines + 9)
		if got := tt.variant.Count(); got != wantCount {
			t.Errorf("%s: Count() = %d, want %d", tt.variant, got, wantCount)
		}
	}
}

func TestPointsOnLineSymmetry(t *testing.T) {
	for _, v := range Variants() {
		l := v.LatitudeLines()

		first, err := v.PointsOnLine(0)
		if err != nil {
			t.Fatalf("%s: PointsOnLine(0): %v", v, err)
		}
		if first != 20 {
			t.Errorf("%s: polar line has %d points, want 20", v, first)
		}

		for y := 0; y < 2*l; y++ {
			nx, err := v.PointsOnLine(y)
			if err != nil {
				t.Fatalf("%s: PointsOnLine(%d): %v", v, y, err)
			}
			mirror, err := v.PointsOnLine(2*l - y - 1)
			if err != nil {
				t.Fatalf("%s: PointsOnLine(%d): %v", v, 2*l-y-1, err)
			}
			if nx != mirror {
				t.Errorf("%s: line %d has %d points but mirror line has %d", v, y, nx, mirror)
			}
		}
	}
}

func TestPointsOnLineOutOfRange(t *testing.T) {
	for _, y := range []int{-1, 640, 1 << 20} {
		if _, err := O320.PointsOnLine(y); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("PointsOnLine(%d): error %v is not ErrOutOfRange", y, err)
		}
	}
}

func TestIntegralMatchesRunningSum(t *testing.T) {
	for _, v := range Variants() {
		l := v.LatitudeLines()
		running := 0
		for y := 0; y < 2*l; y++ {
			off, err := v.Integral(y)
			if err != nil {
				t.Fatalf("%s: Integral(%d): %v", v, y, err)
			}
			if off != running {
				t.Fatalf("%s: Integral(%d) = %d, running sum is %d", v, y, off, running)
			}
			nx, _ := v.PointsOnLine(y)
			running += nx
		}

		total, err := v.Integral(2 * l)
		if err != nil {
			t.Fatalf("%s: Integral(2L): %v", v, err)
		}
		if total != running || total != v.Count() {
			t.Errorf("%s: Integral(2L) = %d, running sum %d, Count %d", v, total, running, v.Count())
		}
	}
}

func TestIntegralOutOfRange(t *testing.T) {
	if _, err := N160.Integral(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Integral(-1): error %v is not ErrOutOfRange", err)
	}
	if _, err := N160.Integral(321); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Integral(2L+1): error %v is not ErrOutOfRange", err)
	}
}

func TestLatOfLineStrictlyDecreasing(t *testing.T) {
	for _, v := range Variants() {
		l := v.LatitudeLines()
		latMin, latMax := v.LatBounds()

		prev := math.Inf(1)
		for y := 0; y < 2*l; y++ {
			lat := v.LatOfLine(y)
			if lat >= prev {
				t.Fatalf("%s: LatOfLine(%d) = %v is not below previous %v", v, y, lat, prev)
			}
			if lat < latMin-1e-9 || lat > latMax+1e-9 {
				t.Errorf("%s: LatOfLine(%d) = %v outside [%v, %v]", v, y, lat, latMin, latMax)
			}
			prev = lat
		}

		if math.Abs(v.LatOfLine(0)-latMax) > 1e-9 {
			t.Errorf("%s: first line at %v, want %v", v, v.LatOfLine(0), latMax)
		}
		if math.Abs(v.LatOfLine(2*l-1)-latMin) > 1e-9 {
			t.Errorf("%s: last line at %v, want %v", v, v.LatOfLine(2*l-1), latMin)
		}
	}
}

func TestCoordinatesRoundTrip(t *testing.T) {
	// Every exact grid point must map back to itself through the nearest
	// lookup. Smaller variants are checked exhaustively, O1280 is strided.
	tests := []struct {
		variant Variant
		stride  int
	}{
		{N160, 1},
		{O320, 1},
		{N320, 7},
		{O1280, 101},
	}

	for _, tt := range tests {
		count := tt.variant.Count()
		for i := 0; i < count; i += tt.stride {
			lat, lon, err := tt.variant.Coordinates(i)
			if err != nil {
				t.Fatalf("%s: Coordinates(%d): %v", tt.variant, i, err)
			}
			got, err := tt.variant.FindPoint(lat, lon)
			if err != nil {
				t.Fatalf("%s: FindPoint(%v, %v): %v", tt.variant, lat, lon, err)
			}
			if got != i {
				t.Fatalf("%s: index %d -> (%v, %v) -> index %d", tt.variant, i, lat, lon, got)
			}
		}
	}
}

func TestCoordinatesOutOfRange(t *testing.T) {
	for _, i := range []int{-1, O320.Count(), O320.Count() + 5} {
		if _, _, err := O320.Coordinates(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Coordinates(%d): error %v is not ErrOutOfRange", i, err)
		}
	}
}

func TestFindPointWrapsLongitude(t *testing.T) {
	base, err := O320.FindPoint(45.0, 30.0)
	if err != nil {
		t.Fatalf("FindPoint: %v", err)
	}

	for _, lon := range []float64{30.0 + 360.0, 30.0 - 360.0, 30.0 + 720.0} {
		got, err := O320.FindPoint(45.0, lon)
		if err != nil {
			t.Fatalf("FindPoint(45, %v): %v", lon, err)
		}
		if got != base {
			t.Errorf("FindPoint(45, %v) = %d, want %d (wrapped)", lon, got, base)
		}
	}
}

func TestFindPointClampsLatitude(t *testing.T) {
	count := O320.Count()
	for _, lat := range []float64{90.0, 95.0, -90.0, -95.0, 89.99, -89.99} {
		idx, err := O320.FindPoint(lat, 0.0)
		if err != nil {
			t.Fatalf("FindPoint(%v, 0): %v", lat, err)
		}
		if idx < 0 || idx >= count {
			t.Errorf("FindPoint(%v, 0) = %d outside [0, %d)", lat, idx, count)
		}
	}
}

func TestFindPointInvalidGeometry(t *testing.T) {
	cases := [][2]float64{
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
	}
	for _, c := range cases {
		if _, _, err := O320.FindPointXY(c[0], c[1]); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("FindPointXY(%v, %v): error %v is not ErrInvalidGeometry", c[0], c[1], err)
		}
	}
}

func TestLatLonArraysCanonicalOrder(t *testing.T) {
	lats, lons := N160.LatLonArrays()

	if len(lats) != N160.Count() || len(lons) != N160.Count() {
		t.Fatalf("array lengths %d/%d, want %d", len(lats), len(lons), N160.Count())
	}

	// The first line holds 20 points at the northernmost latitude.
	wantLat := N160.LatOfLine(0)
	for i := 0; i < 20; i++ {
		if lats[i] != wantLat {
			t.Fatalf("lats[%d] = %v, want %v", i, lats[i], wantLat)
		}
	}

	for i, lon := range lons {
		if lon < -180.0 || lon >= 180.0 {
			t.Fatalf("lons[%d] = %v outside [-180, 180)", i, lon)
		}
	}

	// Spot-check against the forward mapping.
	for _, i := range []int{0, 19, 20, 1234, N160.Count() - 1} {
		lat, lon, err := N160.Coordinates(i)
		if err != nil {
			t.Fatalf("Coordinates(%d): %v", i, err)
		}
		if lats[i] != lat || lons[i] != lon {
			t.Errorf("index %d: arrays give (%v, %v), Coordinates gives (%v, %v)", i, lats[i], lons[i], lat, lon)
		}
	}
}

func TestInfo(t *testing.T) {
	info := O320.Info()
	if info.GridType != "o320" || !info.Octahedral {
		t.Errorf("unexpected info header: %+v", info)
	}
	if info.LatitudeLines != 640 {
		t.Errorf("LatitudeLines = %d, want 640", info.LatitudeLines)
	}
	if info.TotalPoints != O320.Count() {
		t.Errorf("TotalPoints = %d, want %d", info.TotalPoints, O320.Count())
	}
	if info.LatMin != -info.LatMax {
		t.Errorf("latitude bounds not symmetric: %v, %v", info.LatMin, info.LatMax)
	}
}
