package probe

import (
	"context"

	"github.com/Aleph-Alpha/protobench/v1/compiler"
	"github.com/Aleph-Alpha/protobench/v1/dispatch"
	"github.com/Aleph-Alpha/protobench/v1/schema"
)

// Compiler is implemented by *compiler.Compiler.
type Compiler interface {
	Compile(ctx context.Context, sourcePath string) (compiler.Result, error)
}

// Registry is implemented by *registry.Registry.
type Registry interface {
	ListMessageTypes(ctx context.Context, filename string) ([]string, error)
	FindMessage(ctx context.Context, typeName string) (*schema.MessageDescriptor, error)
	ListAll(ctx context.Context) (map[string][]string, error)
}

// Dispatcher is implemented by *dispatch.Engine.
type Dispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request) (*dispatch.Response, error)
}
