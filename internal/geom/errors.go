package geom

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedInput marks input that has no usable feature/polygon/ring structure.
	ErrMalformedInput = errors.New("malformed input")
	// ErrDegenerateGeometry marks geometry that cannot be projected into finite coordinates.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

func malformedf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrMalformedInput)
}

func degeneratef(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrDegenerateGeometry)
}

func malformedWrap(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrMalformedInput)
}
