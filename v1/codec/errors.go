package codec

import "errors"

var (
	// ErrMalformedWireData is returned when bytes are not valid protobuf
	// binary for the requested type.
	ErrMalformedWireData = errors.New("codec: malformed wire data")

	// ErrMalformedText is returned when text is not valid protobuf JSON for
	// the requested type.
	ErrMalformedText = errors.New("codec: malformed text")

	// ErrUnknownEncoding is returned by ParseEncoding for unrecognized names.
	ErrUnknownEncoding = errors.New("codec: unknown encoding")
)

// IsMalformed reports whether err came from decoding bad input in either
// encoding.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedWireData) || errors.Is(err, ErrMalformedText)
}
