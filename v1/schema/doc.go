// Package schema is the descriptor model protobench works with: a read-only
// view over compiled protobuf message types (MessageDescriptor,
// FieldDescriptor) and the concrete values built from them (Message).
//
// Descriptors are produced by the registry from compiled descriptor sets. The
// generator fills a Message for a descriptor, and the codec turns a Message
// into bytes and back.
//
// Kind is deliberately small. Every protobuf field kind maps onto one of
// string, int32, int64, bool, double, float, message, enum or unsupported;
// consumers switch over that set rather than over protoreflect.Kind.
package schema
