package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"

	"github.com/Aleph-Alpha/protobench/v1/internal/sampleschema"
	"github.com/Aleph-Alpha/protobench/v1/schema"
)

var fixed = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func lookup(t *testing.T, inventory bool, name string) *schema.MessageDescriptor {
	t.Helper()
	file := sampleschema.SampleFile()
	if inventory {
		file = sampleschema.InventoryFile()
	}
	fd, err := protodesc.NewFile(file, nil)
	require.NoError(t, err)
	for _, m := range schema.MessagesOf(fd) {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("no message %s", name)
	return nil
}

func TestGenerate_UserRequest(t *testing.T) {
	gen := New(Config{}).WithClock(func() time.Time { return fixed })
	msg := gen.Generate(lookup(t, false, "UserRequest"))

	assert.Equal(t, map[string]interface{}{
		"name":   "test_name",
		"age":    int32(123),
		"email":  "test_email",
		"active": true,
		"tags":   []interface{}{"tag1_tags", "tag2_tags"},
	}, msg.Fields())
}

func TestGenerate_ScalarKinds(t *testing.T) {
	gen := New(Config{}).WithClock(func() time.Time { return fixed })

	product := gen.Generate(lookup(t, false, "ProductRequest")).Fields()
	assert.Equal(t, 3.14, product["price"])
	assert.Equal(t, int32(123), product["quantity"])

	item := gen.Generate(lookup(t, true, "Item")).Fields()
	assert.Equal(t, "test_sku", item["sku"])
	assert.Equal(t, int32(123), item["stock"], "sint32 is treated as int32")
	assert.Equal(t, fixed.Unix(), item["created_at"], "sfixed64 is treated as int64")
	assert.Equal(t, float32(2.71), item["weight"])
	assert.Equal(t, "STATUS_ACTIVE", item["status"])
	assert.Equal(t, []interface{}{}, item["bins"])
	assert.Equal(t, map[string]interface{}{}, item["labels"])
	assert.Equal(t, uint32(0), item["reorder_level"])
	assert.Equal(t, []interface{}{"tag1_aliases", "tag2_aliases"}, item["aliases"])
}

func TestGenerate_Int64UsesClock(t *testing.T) {
	desc := lookup(t, false, "UserResponse")

	first := New(Config{}).WithClock(func() time.Time { return fixed }).Generate(desc)
	later := New(Config{}).WithClock(func() time.Time { return fixed.Add(time.Hour) }).Generate(desc)

	assert.Equal(t, fixed.Unix(), first.Fields()["timestamp"])
	assert.Equal(t, fixed.Add(time.Hour).Unix(), later.Fields()["timestamp"])
	assert.False(t, first.Equal(later))
}

func TestGenerate_DeterministicApartFromInt64(t *testing.T) {
	desc := lookup(t, false, "UserRequest")
	gen := New(Config{})

	assert.True(t, gen.Generate(desc).Equal(gen.Generate(desc)))
}

func TestGenerate_NestedMessages(t *testing.T) {
	gen := New(Config{}).WithClock(func() time.Time { return fixed })

	resp := gen.Generate(lookup(t, false, "UserResponse")).Fields()
	user, ok := resp["user"].(map[string]interface{})
	require.True(t, ok, "nested message is generated")
	assert.Equal(t, "test_name", user["name"])
	assert.Equal(t, []interface{}{"tag1_tags", "tag2_tags"}, user["tags"])

	item := gen.Generate(lookup(t, true, "Item")).Fields()
	dims, ok := item["dimensions"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float32(2.71), dims["width"])
}

func TestGenerate_RecursionIsBounded(t *testing.T) {
	category := lookup(t, true, "Category")

	depth := func(fields map[string]interface{}) int {
		n := 0
		for {
			parent, ok := fields["parent"].(map[string]interface{})
			if !ok {
				return n
			}
			n++
			fields = parent
		}
	}

	assert.Equal(t, DefaultMaxDepth, depth(New(Config{}).Generate(category).Fields()))
	assert.Equal(t, 1, depth(New(Config{MaxDepth: 1}).Generate(category).Fields()))
	assert.Equal(t, 0, depth(New(Config{MaxDepth: -1}).Generate(category).Fields()))
}

func TestGenerate_EnumWithoutNonZeroValue(t *testing.T) {
	f := &schema.FieldDescriptor{EnumValues: []schema.EnumValue{{Name: "ONLY_ZERO", Number: 0}}}
	assert.EqualValues(t, 0, enumValue(f))

	f.EnumValues = append(f.EnumValues, schema.EnumValue{Name: "NEGATIVE", Number: -1})
	assert.EqualValues(t, -1, enumValue(f))
}
