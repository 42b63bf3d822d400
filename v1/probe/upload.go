package probe

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/internal/sampleschema"
)

// Upload stores a schema source under its sanitized filename, compiles it
// and lists its message types. Re-uploading a filename replaces the schema.
//
// Invalid filenames fail with artifact.ErrInvalidFilename, rejected schemas
// with *compiler.CompileError. When compilation succeeds but the artifact
// cannot be analysed, the result carries a Warning instead of an error.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	name, path, err := s.sources.Save(filename, content)
	if err != nil {
		return nil, err
	}

	res, err := s.compiler.Compile(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{
		Success:     true,
		Message:     "Proto file compiled successfully",
		Filename:    name,
		Diagnostics: res.Diagnostics,
	}
	types, err := s.registry.ListMessageTypes(ctx, name)
	if err != nil {
		s.logWarn(ctx, "compiled schema could not be analysed", err, map[string]interface{}{"schema": name})
		result.Warning = fmt.Sprintf("Could not analyze schema: %v", err)
		return result, nil
	}
	result.MessageTypes = types

	s.logInfo(ctx, "schema uploaded", map[string]interface{}{
		"schema":        name,
		"message_types": len(types),
	})
	return result, nil
}

// MessageTypes lists the message types declared by a compiled schema.
func (s *Service) MessageTypes(ctx context.Context, filename string) ([]string, error) {
	return s.registry.ListMessageTypes(ctx, filename)
}

// AllMessageTypes maps every compiled schema to its message types.
func (s *Service) AllMessageTypes(ctx context.Context) (map[string][]string, error) {
	return s.registry.ListAll(ctx)
}

// GenerateSample returns generated data for typeName as protobuf JSON.
func (s *Service) GenerateSample(ctx context.Context, typeName string) (*Sample, error) {
	desc, err := s.registry.FindMessage(ctx, typeName)
	if err != nil {
		return nil, err
	}
	data, err := s.codec.Encode(s.generator.Generate(desc), codec.Text)
	if err != nil {
		return nil, err
	}
	return &Sample{MessageType: typeName, TestData: data}, nil
}

// BootstrapSample writes the bundled sample schema and compiles it so the
// built-in demo endpoints can be tested right away.
func (s *Service) BootstrapSample(ctx context.Context) error {
	res, err := s.Upload(ctx, sampleschema.SampleFilename, []byte(sampleschema.SampleSource))
	if err != nil {
		return fmt.Errorf("failed to bootstrap sample schema: %w", err)
	}
	s.logInfo(ctx, "sample schema ready", map[string]interface{}{
		"schema":        res.Filename,
		"message_types": res.MessageTypes,
	})
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
