package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/Aleph-Alpha/protobench/v1/internal/sampleschema"
)

func sampleFile(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()
	fd, err := protodesc.NewFile(sampleschema.SampleFile(), nil)
	require.NoError(t, err)
	return fd
}

func inventoryFile(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()
	fd, err := protodesc.NewFile(sampleschema.InventoryFile(), nil)
	require.NoError(t, err)
	return fd
}

func find(t *testing.T, msgs []*MessageDescriptor, name string) *MessageDescriptor {
	t.Helper()
	for _, m := range msgs {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("message %s not found", name)
	return nil
}

func TestMessagesOf_SampleSchema(t *testing.T) {
	msgs := MessagesOf(sampleFile(t))

	names := make([]string, len(msgs))
	for i, m := range msgs {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"UserRequest", "UserResponse", "ProductRequest", "ProductResponse"}, names)

	user := msgs[0]
	assert.Equal(t, "UserRequest", user.FullName)
	assert.Equal(t, sampleschema.SampleFilename, user.File)
	assert.Equal(t, []string{"name", "age", "email", "active", "tags"}, user.FieldNames())

	tags, ok := user.Field("tags")
	require.True(t, ok)
	assert.Equal(t, KindString, tags.Kind)
	assert.True(t, tags.IsRepeated())
	assert.Equal(t, "repeated", tags.Cardinality.String())

	_, ok = user.Field("missing")
	assert.False(t, ok)
}

func TestMessagesOf_NestedAndMapEntries(t *testing.T) {
	msgs := MessagesOf(inventoryFile(t))

	names := make([]string, len(msgs))
	for i, m := range msgs {
		names[i] = m.FullName
	}
	// LabelsEntry is synthetic and must not show up.
	assert.Equal(t, []string{"shop.v1.Item", "shop.v1.Item.Dimensions", "shop.v1.Category"}, names)
}

func TestFieldKinds(t *testing.T) {
	item := find(t, MessagesOf(inventoryFile(t)), "Item")

	tests := []struct {
		field string
		kind  Kind
	}{
		{"sku", KindString},
		{"stock", KindInt32},
		{"created_at", KindInt64},
		{"weight", KindFloat},
		{"status", KindEnum},
		{"dimensions", KindMessage},
		{"bins", KindInt32},
		{"labels", KindMessage},
		{"thumbnail", KindUnsupported},
		{"reorder_level", KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := item.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.kind, f.Kind)
		})
	}

	labels, _ := item.Field("labels")
	assert.True(t, labels.IsMap)
	assert.True(t, labels.IsRepeated())

	status, _ := item.Field("status")
	assert.Equal(t, []EnumValue{
		{Name: "STATUS_UNSPECIFIED", Number: 0},
		{Name: "STATUS_ACTIVE", Number: 1},
		{Name: "STATUS_RETIRED", Number: 2},
	}, status.EnumValues)

	dims, _ := item.Field("dimensions")
	assert.Equal(t, "shop.v1.Item.Dimensions", dims.MessageName)
	require.NotNil(t, dims.Message())
	assert.Equal(t, []string{"width", "height"}, dims.Message().FieldNames())

	sku, _ := item.Field("sku")
	assert.Nil(t, sku.Message())
	assert.Equal(t, "sku", sku.JSONName)

	created, _ := item.Field("created_at")
	assert.Equal(t, "createdAt", created.JSONName)
}

func TestRecursiveMessage(t *testing.T) {
	category := find(t, MessagesOf(inventoryFile(t)), "Category")

	parent, ok := category.Field("parent")
	require.True(t, ok)
	nested := parent.Message()
	require.NotNil(t, nested)
	assert.Equal(t, category.FullName, nested.FullName)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "int64", KindInt64.String())
	assert.Equal(t, "unsupported", KindUnsupported.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.Equal(t, "singular", Singular.String())
}

func TestMessageFieldsView(t *testing.T) {
	item := find(t, MessagesOf(inventoryFile(t)), "Item")
	md := item.Proto()
	dyn := dynamicpb.NewMessage(md)

	set := func(name string, v protoreflect.Value) {
		dyn.Set(md.Fields().ByName(protoreflect.Name(name)), v)
	}
	set("sku", protoreflect.ValueOfString("A-1"))
	set("stock", protoreflect.ValueOfInt32(7))
	set("status", protoreflect.ValueOfEnum(2))

	bins := dyn.Mutable(md.Fields().ByName("bins")).List()
	bins.Append(protoreflect.ValueOfInt32(1))
	bins.Append(protoreflect.ValueOfInt32(2))

	labels := dyn.Mutable(md.Fields().ByName("labels")).Map()
	labels.Set(protoreflect.ValueOfString("color").MapKey(), protoreflect.ValueOfString("red"))

	msg := Wrap(item, dyn)
	fields := msg.Fields()

	assert.Equal(t, "A-1", fields["sku"])
	assert.Equal(t, int32(7), fields["stock"])
	assert.Equal(t, "STATUS_RETIRED", fields["status"])
	assert.Equal(t, []interface{}{int32(1), int32(2)}, fields["bins"])
	assert.Equal(t, map[string]interface{}{"color": "red"}, fields["labels"])
	assert.Nil(t, fields["dimensions"])
	assert.Equal(t, []interface{}{}, fields["aliases"])

	v, ok := msg.Get("sku")
	require.True(t, ok)
	assert.Equal(t, "A-1", v)
	_, ok = msg.Get("nope")
	assert.False(t, ok)

	assert.Same(t, item, msg.Descriptor())
}

func TestMessageEqual(t *testing.T) {
	user := find(t, MessagesOf(sampleFile(t)), "UserRequest")
	name := user.Proto().Fields().ByName("name")

	a := dynamicpb.NewMessage(user.Proto())
	a.Set(name, protoreflect.ValueOfString("x"))
	b := dynamicpb.NewMessage(user.Proto())
	b.Set(name, protoreflect.ValueOfString("x"))
	c := dynamicpb.NewMessage(user.Proto())

	assert.True(t, Wrap(user, a).Equal(Wrap(user, b)))
	assert.False(t, Wrap(user, a).Equal(Wrap(user, c)))
	assert.False(t, Wrap(user, a).Equal(nil))

	var none *Message
	assert.True(t, none.Equal(nil))
}
