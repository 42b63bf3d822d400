package artifact

import (
	"time"

	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// observeOperation reports a store operation to observer when one is set.
//
// Notes:
//   - resource: backend name ("file", "minio", "cache")
//   - subResource: object name
func observeOperation(observer observability.Observer, resource, operation, name string, start time.Time, err error, size int64) {
	if observer == nil {
		return
	}
	observer.ObserveOperation(observability.OperationContext{
		Component:   "artifact",
		Operation:   operation,
		Resource:    resource,
		SubResource: name,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
	})
}
