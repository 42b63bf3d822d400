// Package generator fills protobuf messages with deterministic placeholder
// data so any schema can be exercised without hand-written payloads.
//
// The only non-constant value is the int64 placeholder, which is the current
// Unix time; inject a clock with WithClock to pin it in tests.
package generator
