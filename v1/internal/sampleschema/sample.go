// Package sampleschema bundles the schemas protobench ships with: the sample
// schema compiled on startup and an inventory schema that exercises nested,
// enum, map and recursive fields. Each comes as .proto source and as the
// descriptor set protoc would produce for it.
package sampleschema

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// SampleFilename is the name the sample schema is registered under.
const SampleFilename = "sample.proto"

// SampleSource is the sample schema written and compiled on startup.
const SampleSource = `syntax = "proto3";

message UserRequest {
    string name = 1;
    int32 age = 2;
    string email = 3;
    bool active = 4;
    repeated string tags = 5;
}

message UserResponse {
    string id = 1;
    string status = 2;
    string message = 3;
    UserRequest user = 4;
    int64 timestamp = 5;
}

message ProductRequest {
    string product_name = 1;
    double price = 2;
    int32 quantity = 3;
    string category = 4;
}

message ProductResponse {
    string product_id = 1;
    string status = 2;
    ProductRequest product = 3;
    double total_value = 4;
}
`

type field = descriptorpb.FieldDescriptorProto

var (
	optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
)

func scalar(name string, number int32, t descriptorpb.FieldDescriptorProto_Type) *field {
	return &field{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Label:    optional,
		Type:     t.Enum(),
		JsonName: proto.String(jsonName(name)),
	}
}

func list(name string, number int32, t descriptorpb.FieldDescriptorProto_Type) *field {
	f := scalar(name, number, t)
	f.Label = repeated
	return f
}

func typed(name string, number int32, t descriptorpb.FieldDescriptorProto_Type, typeName string) *field {
	f := scalar(name, number, t)
	f.TypeName = proto.String(typeName)
	return f
}

func jsonName(name string) string {
	out := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

// SampleFile returns the descriptor of SampleSource.
func SampleFile() *descriptorpb.FileDescriptorProto {
	const (
		tString = descriptorpb.FieldDescriptorProto_TYPE_STRING
		tInt32  = descriptorpb.FieldDescriptorProto_TYPE_INT32
		tInt64  = descriptorpb.FieldDescriptorProto_TYPE_INT64
		tBool   = descriptorpb.FieldDescriptorProto_TYPE_BOOL
		tDouble = descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
		tMsg    = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)
	return &descriptorpb.FileDescriptorProto{
		Name:   proto.String(SampleFilename),
		Syntax: proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("UserRequest"),
				Field: []*field{
					scalar("name", 1, tString),
					scalar("age", 2, tInt32),
					scalar("email", 3, tString),
					scalar("active", 4, tBool),
					list("tags", 5, tString),
				},
			},
			{
				Name: proto.String("UserResponse"),
				Field: []*field{
					scalar("id", 1, tString),
					scalar("status", 2, tString),
					scalar("message", 3, tString),
					typed("user", 4, tMsg, ".UserRequest"),
					scalar("timestamp", 5, tInt64),
				},
			},
			{
				Name: proto.String("ProductRequest"),
				Field: []*field{
					scalar("product_name", 1, tString),
					scalar("price", 2, tDouble),
					scalar("quantity", 3, tInt32),
					scalar("category", 4, tString),
				},
			},
			{
				Name: proto.String("ProductResponse"),
				Field: []*field{
					scalar("product_id", 1, tString),
					scalar("status", 2, tString),
					typed("product", 3, tMsg, ".ProductRequest"),
					scalar("total_value", 4, tDouble),
				},
			},
		},
	}
}

// SampleDescriptorSet returns the serialized descriptor set of SampleSource.
func SampleDescriptorSet() []byte {
	return mustSet(SampleFile())
}

func mustSet(files ...*descriptorpb.FileDescriptorProto) []byte {
	data, err := proto.Marshal(&descriptorpb.FileDescriptorSet{File: files})
	if err != nil {
		panic(err)
	}
	return data
}
