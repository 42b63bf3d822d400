// Package codec encodes and decodes schema messages as protobuf binary
// (application/x-protobuf) or canonical protobuf JSON (application/json).
//
// Encoding a message and decoding the bytes with the same descriptor yields
// an equal message in either encoding.
package codec
