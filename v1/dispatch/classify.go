package dispatch

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"github.com/Aleph-Alpha/protobench/v1/codec"
)

// classify interprets a response body by its content type. JSON that fails
// to parse falls back to the raw text.
func classify(contentType string, body []byte) interface{} {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case isJSONType(ct):
		var v interface{}
		if err := json.Unmarshal(body, &v); err != nil {
			return string(body)
		}
		return v
	case strings.Contains(ct, codec.ContentTypeBinary):
		return fmt.Sprintf("<Binary protobuf data: %d bytes>", len(body))
	default:
		return string(body)
	}
}

// isJSONType reports whether ct declares JSON: application/json itself or
// any structured "+json" type such as application/problem+json.
func isJSONType(ct string) bool {
	if strings.HasPrefix(ct, codec.ContentTypeText) {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return strings.HasSuffix(mediaType, "+json")
}
