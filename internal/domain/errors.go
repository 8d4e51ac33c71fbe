package domain

import "errors"

// Sentinel errors for the grid geometry core. Callers match with errors.Is;
// wrapped messages carry the offending values.
var (
	// ErrUnsupportedVariant is returned when a grid variant identifier is not
	// in the supported set. Raised at construction time, never during resampling.
	ErrUnsupportedVariant = errors.New("unsupported grid variant")

	// ErrOutOfRange is returned when a latitude-line or flattened point index
	// lies outside its valid domain.
	ErrOutOfRange = errors.New("index out of range")

	// ErrShapeMismatch is returned when a field array does not match the
	// point count of the grid it claims to be sampled on.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidResolution is returned for non-positive target resolutions.
	ErrInvalidResolution = errors.New("invalid resolution")

	// ErrInvalidGeometry is returned when a lookup is handed coordinates that
	// have no defined position (NaN or infinite).
	ErrInvalidGeometry = errors.New("invalid geometry")
)
