package generator

import (
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/Aleph-Alpha/protobench/v1/schema"
)

// Placeholder values written into generated samples.
const (
	Int32Value  int32   = 123
	BoolValue           = true
	DoubleValue float64 = 3.14
	FloatValue  float32 = 2.71
)

// Generator fabricates sample messages from descriptors. It is safe for
// concurrent use.
type Generator struct {
	maxDepth int
	now      func() time.Time
}

// New returns a Generator using the wall clock for int64 fields.
func New(cfg Config) *Generator {
	depth := cfg.MaxDepth
	if depth == 0 {
		depth = DefaultMaxDepth
	}
	return &Generator{maxDepth: depth, now: time.Now}
}

// WithClock replaces the clock used for int64 fields.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a sample of desc, field by field in declaration order:
//
//   - string: "test_<name>"
//   - int32: 123
//   - int64: current Unix time in seconds
//   - bool: true
//   - double: 3.14, float: 2.71
//   - enum: the first declared non-zero value, or zero if there is none
//   - message: filled recursively up to the configured depth, unset beyond
//   - repeated string: ["tag1_<name>", "tag2_<name>"]
//   - other repeated fields, maps and unsupported kinds: left empty
//
// Generate never fails for a well-formed descriptor.
func (g *Generator) Generate(desc *schema.MessageDescriptor) *schema.Message {
	msg := dynamicpb.NewMessage(desc.Proto())
	g.fill(msg, desc, 0)
	return schema.Wrap(desc, msg)
}

func (g *Generator) fill(msg protoreflect.Message, desc *schema.MessageDescriptor, depth int) {
	for _, f := range desc.Fields {
		fd := f.Proto()

		if f.IsRepeated() {
			if f.Kind == schema.KindString && !f.IsMap {
				list := msg.Mutable(fd).List()
				list.Append(protoreflect.ValueOfString("tag1_" + f.Name))
				list.Append(protoreflect.ValueOfString("tag2_" + f.Name))
			}
			continue
		}

		switch f.Kind {
		case schema.KindString:
			msg.Set(fd, protoreflect.ValueOfString("test_"+f.Name))
		case schema.KindInt32:
			msg.Set(fd, protoreflect.ValueOfInt32(Int32Value))
		case schema.KindInt64:
			msg.Set(fd, protoreflect.ValueOfInt64(g.now().Unix()))
		case schema.KindBool:
			msg.Set(fd, protoreflect.ValueOfBool(BoolValue))
		case schema.KindDouble:
			msg.Set(fd, protoreflect.ValueOfFloat64(DoubleValue))
		case schema.KindFloat:
			msg.Set(fd, protoreflect.ValueOfFloat32(FloatValue))
		case schema.KindEnum:
			msg.Set(fd, protoreflect.ValueOfEnum(enumValue(f)))
		case schema.KindMessage:
			if depth >= g.maxDepth {
				continue
			}
			if nested := f.Message(); nested != nil {
				g.fill(msg.Mutable(fd).Message(), nested, depth+1)
			}
		case schema.KindUnsupported:
		}
	}
}

func enumValue(f *schema.FieldDescriptor) protoreflect.EnumNumber {
	for _, v := range f.EnumValues {
		if v.Number != 0 {
			return protoreflect.EnumNumber(v.Number)
		}
	}
	return 0
}
