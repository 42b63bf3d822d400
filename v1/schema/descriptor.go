package schema

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// MessageDescriptor describes one message type: its names and its fields
// in declaration order.
type MessageDescriptor struct {
	// Name is the short type name, e.g. "UserRequest".
	Name string

	// FullName is the package-qualified name, e.g. "shop.v1.UserRequest".
	FullName string

	// File is the schema file that declares the type.
	File string

	// Fields are in declaration order; names are unique.
	Fields []*FieldDescriptor

	desc   protoreflect.MessageDescriptor
	byName map[string]*FieldDescriptor
}

// FieldDescriptor describes one field of a message type.
type FieldDescriptor struct {
	Name        string
	JSONName    string
	Number      int32
	Kind        Kind
	Cardinality Cardinality

	// IsMap is set for map<K,V> fields. They are Repeated with KindMessage.
	IsMap bool

	// MessageName is the full name of the field's message type, for KindMessage.
	MessageName string

	// EnumValues lists the declared values, for KindEnum.
	EnumValues []EnumValue

	desc protoreflect.FieldDescriptor
}

// EnumValue is one declared enumeration value.
type EnumValue struct {
	Name   string
	Number int32
}

// NewMessageDescriptor builds the model for md. Nested message fields are
// not expanded eagerly, so recursive types are fine; use
// FieldDescriptor.Message to walk into them.
func NewMessageDescriptor(md protoreflect.MessageDescriptor) *MessageDescriptor {
	fields := md.Fields()
	m := &MessageDescriptor{
		Name:     string(md.Name()),
		FullName: string(md.FullName()),
		Fields:   make([]*FieldDescriptor, 0, fields.Len()),
		desc:     md,
		byName:   make(map[string]*FieldDescriptor, fields.Len()),
	}
	if file := md.ParentFile(); file != nil {
		m.File = file.Path()
	}

	for i := 0; i < fields.Len(); i++ {
		f := newFieldDescriptor(fields.Get(i))
		m.Fields = append(m.Fields, f)
		m.byName[f.Name] = f
	}
	return m
}

func newFieldDescriptor(fd protoreflect.FieldDescriptor) *FieldDescriptor {
	f := &FieldDescriptor{
		Name:     string(fd.Name()),
		JSONName: fd.JSONName(),
		Number:   int32(fd.Number()),
		Kind:     kindOf(fd.Kind()),
		IsMap:    fd.IsMap(),
		desc:     fd,
	}
	if fd.Cardinality() == protoreflect.Repeated {
		f.Cardinality = Repeated
	}
	if md := fd.Message(); md != nil {
		f.MessageName = string(md.FullName())
	}
	if ed := fd.Enum(); ed != nil {
		values := ed.Values()
		f.EnumValues = make([]EnumValue, 0, values.Len())
		for i := 0; i < values.Len(); i++ {
			v := values.Get(i)
			f.EnumValues = append(f.EnumValues, EnumValue{Name: string(v.Name()), Number: int32(v.Number())})
		}
	}
	return f
}

// Field returns the field called name.
func (m *MessageDescriptor) Field(name string) (*FieldDescriptor, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// FieldNames returns the field names in declaration order.
func (m *MessageDescriptor) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

// Proto returns the underlying protobuf descriptor.
func (m *MessageDescriptor) Proto() protoreflect.MessageDescriptor {
	return m.desc
}

// Proto returns the underlying protobuf field descriptor.
func (f *FieldDescriptor) Proto() protoreflect.FieldDescriptor {
	return f.desc
}

// Message returns the model of the field's message type, or nil when the
// field is not a message.
func (f *FieldDescriptor) Message() *MessageDescriptor {
	if f.Kind != KindMessage || f.desc.Message() == nil {
		return nil
	}
	return NewMessageDescriptor(f.desc.Message())
}

// IsRepeated reports whether the field holds a sequence.
func (f *FieldDescriptor) IsRepeated() bool {
	return f.Cardinality == Repeated
}

// MessagesOf returns every message type declared in file, nested types
// right after their parent, skipping synthetic map-entry types.
func MessagesOf(file protoreflect.FileDescriptor) []*MessageDescriptor {
	var out []*MessageDescriptor
	var walk func(protoreflect.MessageDescriptors)
	walk = func(msgs protoreflect.MessageDescriptors) {
		for i := 0; i < msgs.Len(); i++ {
			md := msgs.Get(i)
			if md.IsMapEntry() {
				continue
			}
			out = append(out, NewMessageDescriptor(md))
			walk(md.Messages())
		}
	}
	walk(file.Messages())
	return out
}
