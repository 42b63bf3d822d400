package schema

import "google.golang.org/protobuf/reflect/protoreflect"

// Kind is the closed set of field kinds protobench knows how to fabricate.
// Switches over Kind list every value explicitly; adding a kind means
// visiting each of them (generator, Message.Fields).
type Kind int

const (
	// KindUnsupported covers bytes, unsigned and fixed-width unsigned integers.
	// Fields of this kind keep their default value.
	KindUnsupported Kind = iota
	KindString
	KindInt32
	KindInt64
	KindBool
	KindDouble
	KindFloat
	KindMessage
	KindEnum
)

var kindNames = map[Kind]string{
	KindUnsupported: "unsupported",
	KindString:      "string",
	KindInt32:       "int32",
	KindInt64:       "int64",
	KindBool:        "bool",
	KindDouble:      "double",
	KindFloat:       "float",
	KindMessage:     "message",
	KindEnum:        "enum",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// kindOf maps a protobuf wire kind onto Kind. Signed 32/64-bit variants
// collapse onto KindInt32/KindInt64 since they share Go value types.
func kindOf(k protoreflect.Kind) Kind {
	switch k {
	case protoreflect.StringKind:
		return KindString
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return KindInt32
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return KindInt64
	case protoreflect.BoolKind:
		return KindBool
	case protoreflect.DoubleKind:
		return KindDouble
	case protoreflect.FloatKind:
		return KindFloat
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return KindMessage
	case protoreflect.EnumKind:
		return KindEnum
	default:
		return KindUnsupported
	}
}

// Cardinality says whether a field holds one value or a sequence.
type Cardinality int

const (
	Singular Cardinality = iota
	Repeated
)

func (c Cardinality) String() string {
	if c == Repeated {
		return "repeated"
	}
	return "singular"
}
