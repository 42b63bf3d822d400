package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/internal/sampleschema"
)

// truncated is a length-delimited field that ends early.
var truncated = []byte{0x0a, 0x05, 0x01}

func newRegistry(t *testing.T, artifacts map[string][]byte) (*Registry, *artifact.FileStore) {
	t.Helper()
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	for name, data := range artifacts {
		require.NoError(t, store.Put(context.Background(), name, data))
	}
	return New(Config{}, store), store
}

func descriptorSet(t *testing.T, files ...*descriptorpb.FileDescriptorProto) []byte {
	t.Helper()
	data, err := proto.Marshal(&descriptorpb.FileDescriptorSet{File: files})
	require.NoError(t, err)
	return data
}

func TestResolve(t *testing.T) {
	reg, _ := newRegistry(t, map[string][]byte{
		"sample.pb":    sampleschema.SampleDescriptorSet(),
		"inventory.pb": sampleschema.InventoryDescriptorSet(),
		"broken.pb":    truncated,
	})
	ctx := context.Background()

	msgs, err := reg.Resolve(ctx, "sample.proto")
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "UserRequest", msgs[0].Name)

	_, err = reg.Resolve(ctx, "nothing.proto")
	assert.True(t, IsArtifactMissing(err))

	_, err = reg.Resolve(ctx, "broken.proto")
	assert.True(t, IsArtifactCorrupt(err))
}

func TestResolve_ReflectsRecompile(t *testing.T) {
	reg, store := newRegistry(t, map[string][]byte{"sample.pb": sampleschema.SampleDescriptorSet()})
	ctx := context.Background()

	file := sampleschema.SampleFile()
	file.MessageType = file.MessageType[:1]
	require.NoError(t, store.Put(ctx, "sample.pb", descriptorSet(t, file)))

	names, err := reg.ListMessageTypes(ctx, "sample.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"UserRequest"}, names)
}

func TestListMessageTypes(t *testing.T) {
	reg, _ := newRegistry(t, map[string][]byte{
		"sample.pb":    sampleschema.SampleDescriptorSet(),
		"inventory.pb": sampleschema.InventoryDescriptorSet(),
	})

	names, err := reg.ListMessageTypes(context.Background(), "sample.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"UserRequest", "UserResponse", "ProductRequest", "ProductResponse"}, names)

	names, err = reg.ListMessageTypes(context.Background(), "inventory.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"shop.v1.Item", "shop.v1.Item.Dimensions", "shop.v1.Category"}, names)
}

func TestResolve_DependenciesIncluded(t *testing.T) {
	dep := &descriptorpb.FileDescriptorProto{
		Name:   proto.String("common.proto"),
		Syntax: proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: proto.String("Money")},
		},
	}
	main := &descriptorpb.FileDescriptorProto{
		Name:       proto.String("orders.proto"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"common.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Order"),
				Field: []*descriptorpb.FieldDescriptorProto{{
					Name:     proto.String("total"),
					Number:   proto.Int32(1),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
					TypeName: proto.String(".Money"),
				}},
			},
		},
	}
	reg, _ := newRegistry(t, map[string][]byte{"orders.pb": descriptorSet(t, dep, main)})

	names, err := reg.ListMessageTypes(context.Background(), "orders.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"Order"}, names)
}

func TestFindMessage(t *testing.T) {
	dup := sampleschema.SampleFile()
	dup.Name = proto.String("a_first.proto")
	dup.MessageType = dup.MessageType[:1]
	dup.MessageType[0].Field = dup.MessageType[0].Field[:1]

	reg, _ := newRegistry(t, map[string][]byte{
		"sample.pb":    sampleschema.SampleDescriptorSet(),
		"inventory.pb": sampleschema.InventoryDescriptorSet(),
		"a_first.pb":   descriptorSet(t, dup),
		"0broken.pb":   truncated,
	})
	ctx := context.Background()

	t.Run("short name, first schema in filename order wins", func(t *testing.T) {
		m, err := reg.FindMessage(ctx, "UserRequest")
		require.NoError(t, err)
		assert.Equal(t, "a_first.proto", m.File)
		assert.Equal(t, []string{"name"}, m.FieldNames())
	})

	t.Run("full name", func(t *testing.T) {
		m, err := reg.FindMessage(ctx, "shop.v1.Item.Dimensions")
		require.NoError(t, err)
		assert.Equal(t, "Dimensions", m.Name)
	})

	t.Run("top-level short name", func(t *testing.T) {
		m, err := reg.FindMessage(ctx, "Category")
		require.NoError(t, err)
		assert.Equal(t, "shop.v1.Category", m.FullName)
	})

	t.Run("nested short name", func(t *testing.T) {
		m, err := reg.FindMessage(ctx, "Dimensions")
		require.NoError(t, err)
		assert.Equal(t, "shop.v1.Item.Dimensions", m.FullName)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := reg.FindMessage(ctx, "NoSuchMessage")
		assert.True(t, IsTypeNotFound(err))
	})
}

func emptyMessage(name string, nested ...*descriptorpb.DescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), NestedType: nested}
}

func schemaFile(name, pkg string, msgs ...*descriptorpb.DescriptorProto) *descriptorpb.FileDescriptorProto {
	fd := &descriptorpb.FileDescriptorProto{
		Name:        proto.String(name),
		Syntax:      proto.String("proto3"),
		MessageType: msgs,
	}
	if pkg != "" {
		fd.Package = proto.String(pkg)
	}
	return fd
}

func TestFindMessage_TopLevelBeatsNested(t *testing.T) {
	reg, _ := newRegistry(t, map[string][]byte{
		"demo.pb": descriptorSet(t, schemaFile("demo.proto", "demo",
			emptyMessage("Outer", emptyMessage("Item")),
			emptyMessage("Item"),
		)),
	})

	m, err := reg.FindMessage(context.Background(), "Item")
	require.NoError(t, err)
	assert.Equal(t, "demo.Item", m.FullName)

	m, err = reg.FindMessage(context.Background(), "demo.Outer.Item")
	require.NoError(t, err)
	assert.Equal(t, "demo.Outer.Item", m.FullName)
}

func TestFindMessage_FullNameBeatsEarlierShortName(t *testing.T) {
	reg, _ := newRegistry(t, map[string][]byte{
		"a.pb": descriptorSet(t, schemaFile("a.proto", "shop", emptyMessage("Item"))),
		"b.pb": descriptorSet(t, schemaFile("b.proto", "", emptyMessage("Item"))),
	})

	m, err := reg.FindMessage(context.Background(), "Item")
	require.NoError(t, err)
	assert.Equal(t, "b.proto", m.File)
	assert.Equal(t, "Item", m.FullName)

	m, err = reg.FindMessage(context.Background(), "shop.Item")
	require.NoError(t, err)
	assert.Equal(t, "a.proto", m.File)
}

type failingStore struct {
	artifact.Store
}

func (failingStore) List(context.Context) ([]string, error) {
	return nil, errors.New("bucket unreachable")
}

func TestFindMessage_StoreFailure(t *testing.T) {
	reg := New(Config{}, failingStore{})

	_, err := reg.FindMessage(context.Background(), "UserRequest")
	require.Error(t, err)
	assert.False(t, IsTypeNotFound(err))
	assert.Contains(t, err.Error(), "bucket unreachable")
}

func TestListAll(t *testing.T) {
	reg, _ := newRegistry(t, map[string][]byte{
		"sample.pb": sampleschema.SampleDescriptorSet(),
		"broken.pb": truncated,
	})

	all, err := reg.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"sample.proto": {"UserRequest", "UserResponse", "ProductRequest", "ProductResponse"},
	}, all)
}
