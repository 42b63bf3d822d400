package codec

import (
	"fmt"
	"mime"
	"strings"
)

// Encoding selects one of the two wire representations.
type Encoding string

const (
	// Binary is the protobuf binary wire format.
	Binary Encoding = "binary"

	// Text is canonical protobuf JSON.
	Text Encoding = "text"
)

// Content types sent and recognized for each encoding.
const (
	ContentTypeBinary = "application/x-protobuf"
	ContentTypeText   = "application/json"
)

// ParseEncoding accepts "binary" or "protobuf" for Binary, and "text",
// "json" or "rest" for Text, case-insensitively.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "protobuf", "proto":
		return Binary, nil
	case "text", "json", "rest":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
	}
}

// ContentType returns the media type used on the wire for e.
func (e Encoding) ContentType() string {
	if e == Binary {
		return ContentTypeBinary
	}
	return ContentTypeText
}

func (e Encoding) String() string {
	return string(e)
}

// EncodingForContentType maps a Content-Type header onto an Encoding.
// Parameters such as charset are ignored. Unknown types report false.
func EncodingForContentType(contentType string) (Encoding, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}
	switch mediaType {
	case ContentTypeBinary, "application/protobuf", "application/x-protobuffer", "application/vnd.google.protobuf":
		return Binary, true
	case ContentTypeText:
		return Text, true
	}
	return "", false
}
