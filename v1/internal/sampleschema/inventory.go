package sampleschema

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// InventoryFilename is the name the inventory schema is registered under.
const InventoryFilename = "inventory.proto"

// InventorySource covers the field shapes the sample schema does not:
// packages, enums, nested and recursive types, maps, repeated non-string
// scalars, floats and unsupported kinds.
const InventorySource = `syntax = "proto3";

package shop.v1;

enum Status {
    STATUS_UNSPECIFIED = 0;
    STATUS_ACTIVE = 1;
    STATUS_RETIRED = 2;
}

message Item {
    message Dimensions {
        float width = 1;
        float height = 2;
    }

    string sku = 1;
    sint32 stock = 2;
    sfixed64 created_at = 3;
    float weight = 4;
    Status status = 5;
    Dimensions dimensions = 6;
    repeated int32 bins = 7;
    map<string, string> labels = 8;
    bytes thumbnail = 9;
    uint32 reorder_level = 10;
    repeated string aliases = 11;
}

message Category {
    string name = 1;
    Category parent = 2;
    repeated Item items = 3;
}
`

// InventoryFile returns the descriptor of InventorySource.
func InventoryFile() *descriptorpb.FileDescriptorProto {
	const (
		tString   = descriptorpb.FieldDescriptorProto_TYPE_STRING
		tInt32    = descriptorpb.FieldDescriptorProto_TYPE_INT32
		tSint32   = descriptorpb.FieldDescriptorProto_TYPE_SINT32
		tSfixed64 = descriptorpb.FieldDescriptorProto_TYPE_SFIXED64
		tFloat    = descriptorpb.FieldDescriptorProto_TYPE_FLOAT
		tEnum     = descriptorpb.FieldDescriptorProto_TYPE_ENUM
		tMsg      = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
		tBytes    = descriptorpb.FieldDescriptorProto_TYPE_BYTES
		tUint32   = descriptorpb.FieldDescriptorProto_TYPE_UINT32
	)

	labels := typed("labels", 8, tMsg, ".shop.v1.Item.LabelsEntry")
	labels.Label = repeated

	items := typed("items", 3, tMsg, ".shop.v1.Item")
	items.Label = repeated

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(InventoryFilename),
		Package: proto.String("shop.v1"),
		Syntax:  proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: proto.String("Status"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: proto.String("STATUS_UNSPECIFIED"), Number: proto.Int32(0)},
					{Name: proto.String("STATUS_ACTIVE"), Number: proto.Int32(1)},
					{Name: proto.String("STATUS_RETIRED"), Number: proto.Int32(2)},
				},
			},
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Item"),
				Field: []*field{
					scalar("sku", 1, tString),
					scalar("stock", 2, tSint32),
					scalar("created_at", 3, tSfixed64),
					scalar("weight", 4, tFloat),
					typed("status", 5, tEnum, ".shop.v1.Status"),
					typed("dimensions", 6, tMsg, ".shop.v1.Item.Dimensions"),
					list("bins", 7, tInt32),
					labels,
					scalar("thumbnail", 9, tBytes),
					scalar("reorder_level", 10, tUint32),
					list("aliases", 11, tString),
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("Dimensions"),
						Field: []*field{
							scalar("width", 1, tFloat),
							scalar("height", 2, tFloat),
						},
					},
					{
						Name: proto.String("LabelsEntry"),
						Field: []*field{
							scalar("key", 1, tString),
							scalar("value", 2, tString),
						},
						Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
					},
				},
			},
			{
				Name: proto.String("Category"),
				Field: []*field{
					scalar("name", 1, tString),
					typed("parent", 2, tMsg, ".shop.v1.Category"),
					items,
				},
			},
		},
	}
}

// InventoryDescriptorSet returns the serialized descriptor set of InventorySource.
func InventoryDescriptorSet() []byte {
	return mustSet(InventoryFile())
}
