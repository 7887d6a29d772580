package audioconvert

import "errors"

// Failure taxonomy for conversion jobs. Convert never returns these
// directly; they are wrapped into the result's Error string and matched by
// the failing Stage name. They are exported so option validation helpers and
// tests can classify failures.
var (
	// ErrUnsupportedFormat indicates no codec is registered for the
	// requested container.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDecodeFailed indicates malformed or truncated input bytes.
	ErrDecodeFailed = errors.New("decode failed")

	// ErrEncodeFailed indicates an encode fault, including requesting a
	// decode-only output container.
	ErrEncodeFailed = errors.New("encode failed")

	// ErrInvalidOptions indicates an invalid format or option combination,
	// e.g. a target channel count of zero.
	ErrInvalidOptions = errors.New("invalid conversion options")

	// ErrProcessingFailed covers any other stage failure.
	ErrProcessingFailed = errors.New("processing failed")
)
