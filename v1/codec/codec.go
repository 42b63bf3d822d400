package codec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/Aleph-Alpha/protobench/v1/schema"
)

// Codec converts messages to and from both encodings. The zero value is not
// usable; call New.
//
// Text output uses the field names as declared in the schema, renders 64-bit
// integers as decimal strings and booleans as JSON literals. Text input
// accepts both declared and lowerCamelCase names and rejects unknown fields.
type Codec struct {
	jsonMarshaler   protojson.MarshalOptions
	jsonUnmarshaler protojson.UnmarshalOptions

	protoMarshaler   proto.MarshalOptions
	protoUnmarshaler proto.UnmarshalOptions
}

// New returns a Codec with deterministic binary output.
func New() *Codec {
	return &Codec{
		jsonMarshaler:    protojson.MarshalOptions{UseProtoNames: true},
		jsonUnmarshaler:  protojson.UnmarshalOptions{},
		protoMarshaler:   proto.MarshalOptions{Deterministic: true},
		protoUnmarshaler: proto.UnmarshalOptions{},
	}
}

// Encode serializes msg in enc.
func (c *Codec) Encode(msg *schema.Message, enc Encoding) ([]byte, error) {
	switch enc {
	case Binary:
		data, err := c.protoMarshaler.Marshal(msg.ProtoMessage())
		if err != nil {
			return nil, fmt.Errorf("codec: encoding %s as binary: %w", msg.Descriptor().FullName, err)
		}
		return data, nil
	case Text:
		data, err := c.jsonMarshaler.Marshal(msg.ProtoMessage())
		if err != nil {
			return nil, fmt.Errorf("codec: encoding %s as text: %w", msg.Descriptor().FullName, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

// Decode parses data in enc as a message of type desc. On error no message
// is returned.
func (c *Codec) Decode(data []byte, desc *schema.MessageDescriptor, enc Encoding) (*schema.Message, error) {
	msg := dynamicpb.NewMessage(desc.Proto())
	switch enc {
	case Binary:
		if err := c.protoUnmarshaler.Unmarshal(data, msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedWireData, desc.FullName, err)
		}
	case Text:
		if err := c.jsonUnmarshaler.Unmarshal(data, msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedText, desc.FullName, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
	return schema.Wrap(desc, msg), nil
}

// ParseCustom parses caller-supplied protobuf JSON as a message of type
// desc. It is Decode with the Text encoding.
func (c *Codec) ParseCustom(text string, desc *schema.MessageDescriptor) (*schema.Message, error) {
	return c.Decode([]byte(text), desc, Text)
}
