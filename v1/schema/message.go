package schema

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Message is a concrete value conforming to a MessageDescriptor. It is
// produced by the generator or by decoding, and treated as immutable for the
// rest of the pipeline: nothing in protobench mutates a Message after it has
// been wrapped.
type Message struct {
	desc *MessageDescriptor
	msg  protoreflect.Message
}

// Wrap takes ownership of msg and returns it as a Message of type desc.
// The caller must not modify msg afterwards.
func Wrap(desc *MessageDescriptor, msg protoreflect.Message) *Message {
	return &Message{desc: desc, msg: msg}
}

// Descriptor returns the message's type.
func (m *Message) Descriptor() *MessageDescriptor {
	return m.desc
}

// ProtoMessage returns the underlying protobuf message for encoding.
func (m *Message) ProtoMessage() proto.Message {
	return m.msg.Interface()
}

// Equal reports whether both messages carry the same type and field values.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	return proto.Equal(m.msg.Interface(), other.msg.Interface())
}

// Get returns the value of the named field as produced by Fields.
func (m *Message) Get(name string) (interface{}, bool) {
	f, ok := m.desc.Field(name)
	if !ok {
		return nil, false
	}
	return fieldValue(f.desc, m.msg), true
}

// Fields returns a name → value view of the message:
// scalars as Go values (string, int32, int64, bool, float64, float32),
// enums as their value name, repeated fields as []interface{}, maps as
// map[string]interface{} keyed by the formatted key, and nested messages as
// map[string]interface{} (nil when unset).
func (m *Message) Fields() map[string]interface{} {
	return messageFields(m.msg)
}

func messageFields(msg protoreflect.Message) map[string]interface{} {
	fields := msg.Descriptor().Fields()
	out := make(map[string]interface{}, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		out[string(fd.Name())] = fieldValue(fd, msg)
	}
	return out
}

func fieldValue(fd protoreflect.FieldDescriptor, msg protoreflect.Message) interface{} {
	switch {
	case fd.IsMap():
		mp := msg.Get(fd).Map()
		out := make(map[string]interface{}, mp.Len())
		mp.Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
			out[k.String()] = scalarValue(fd.MapValue(), v)
			return true
		})
		return out
	case fd.IsList():
		list := msg.Get(fd).List()
		out := make([]interface{}, list.Len())
		for i := 0; i < list.Len(); i++ {
			out[i] = scalarValue(fd, list.Get(i))
		}
		return out
	case fd.Message() != nil:
		if !msg.Has(fd) {
			return nil
		}
		return messageFields(msg.Get(fd).Message())
	default:
		return scalarValue(fd, msg.Get(fd))
	}
}

func scalarValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) interface{} {
	switch kindOf(fd.Kind()) {
	case KindMessage:
		return messageFields(v.Message())
	case KindEnum:
		if ev := fd.Enum().Values().ByNumber(v.Enum()); ev != nil {
			return string(ev.Name())
		}
		return int32(v.Enum())
	case KindString, KindInt32, KindInt64, KindBool, KindDouble, KindFloat, KindUnsupported:
		return v.Interface()
	}
	return v.Interface()
}
