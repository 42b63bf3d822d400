package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/observability"
	"github.com/Aleph-Alpha/protobench/v1/schema"
)

// Resolve returns the message types declared by the schema filename, in
// declaration order, nested types right after their parent. Types from
// imported files are not included.
func (r *Registry) Resolve(ctx context.Context, filename string) (msgs []*schema.MessageDescriptor, err error) {
	start := time.Now()
	ctx, span := r.tracer.StartSpan(ctx, "registry.resolve")
	defer func() {
		if err != nil {
			r.tracer.RecordErrorOnSpan(span, err)
		}
		span.End()
		r.observe("resolve", filename, start, err)
	}()

	return r.resolve(ctx, filepath.Base(filename))
}

func (r *Registry) resolve(ctx context.Context, source string) ([]*schema.MessageDescriptor, error) {
	name := artifact.ArtifactName(source)
	data, err := r.store.Get(ctx, name)
	if artifact.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, source)
	}
	if err != nil {
		return nil, err
	}

	file, err := parseArtifact(data, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactCorrupt, source, err)
	}
	return schema.MessagesOf(file), nil
}

// parseArtifact decodes a descriptor set and returns the file for source.
// protoc lists dependencies first, so the last file is the fallback when no
// path matches.
func parseArtifact(data []byte, source string) (protoreflect.FileDescriptor, error) {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	if len(set.GetFile()) == 0 {
		return nil, fmt.Errorf("descriptor set is empty")
	}

	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, err
	}
	if fd, err := files.FindFileByPath(source); err == nil {
		return fd, nil
	}
	return files.FindFileByPath(set.GetFile()[len(set.GetFile())-1].GetName())
}

// ListMessageTypes returns the full names of the types declared by filename.
func (r *Registry) ListMessageTypes(ctx context.Context, filename string) ([]string, error) {
	msgs, err := r.Resolve(ctx, filename)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(msgs))
	for i, m := range msgs {
		names[i] = m.FullName
	}
	return names, nil
}

// Schemas returns the source filenames of every compiled artifact, sorted.
func (r *Registry) Schemas(ctx context.Context) ([]string, error) {
	names, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	sources := make([]string, 0, len(names))
	for _, n := range names {
		if filepath.Ext(n) == artifact.ArtifactExt {
			sources = append(sources, artifact.SourceName(n))
		}
	}
	return sources, nil
}

// scan resolves every known schema concurrently. Entries for artifacts that
// vanished or are corrupt are nil; those are logged and skipped. Any other
// failure aborts the scan.
func (r *Registry) scan(ctx context.Context) ([]string, [][]*schema.MessageDescriptor, error) {
	sources, err := r.Schemas(ctx)
	if err != nil {
		return nil, nil, err
	}

	results := make([][]*schema.MessageDescriptor, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, source := range sources {
		g.Go(func() error {
			msgs, err := r.resolve(gctx, source)
			switch {
			case err == nil:
				results[i] = msgs
			case IsArtifactCorrupt(err), IsArtifactMissing(err):
				r.logWarn(gctx, "skipping unreadable artifact", err, map[string]interface{}{"schema": source})
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sources, results, nil
}

// FindMessage locates a message type across every compiled schema. An exact
// full name wins over a top-level short name, which wins over a nested short
// name; within each tier the first schema in filename order wins. Corrupt
// artifacts are skipped.
func (r *Registry) FindMessage(ctx context.Context, typeName string) (found *schema.MessageDescriptor, err error) {
	start := time.Now()
	ctx, span := r.tracer.StartSpan(ctx, "registry.find_message")
	defer func() {
		if err != nil {
			r.tracer.RecordErrorOnSpan(span, err)
		}
		span.End()
		r.observe("find_message", typeName, start, err)
	}()

	_, results, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	passes := []func(*schema.MessageDescriptor) bool{
		func(m *schema.MessageDescriptor) bool { return m.FullName == typeName },
		func(m *schema.MessageDescriptor) bool { return m.Name == typeName && isTopLevel(m) },
		func(m *schema.MessageDescriptor) bool { return m.Name == typeName },
	}
	for _, match := range passes {
		for _, msgs := range results {
			for _, m := range msgs {
				if match(m) {
					return m, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, typeName)
}

func isTopLevel(m *schema.MessageDescriptor) bool {
	_, ok := m.Proto().Parent().(protoreflect.FileDescriptor)
	return ok
}

// ListAll maps every readable schema to its message type names.
func (r *Registry) ListAll(ctx context.Context) (map[string][]string, error) {
	sources, results, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(sources))
	for i, msgs := range results {
		if msgs == nil {
			continue
		}
		names := make([]string, len(msgs))
		for j, m := range msgs {
			names[j] = m.FullName
		}
		out[sources[i]] = names
	}
	return out, nil
}

func (r *Registry) observe(operation, resource string, start time.Time, err error) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: operation,
		Resource:  resource,
		Duration:  time.Since(start),
		Error:     err,
	})
}

func (r *Registry) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
