package probe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/compiler"
	"github.com/Aleph-Alpha/protobench/v1/dispatch"
	"github.com/Aleph-Alpha/protobench/v1/generator"
	"github.com/Aleph-Alpha/protobench/v1/internal/sampleschema"
	"github.com/Aleph-Alpha/protobench/v1/registry"
)

// schemaToolchain stands in for protoc: it recognises the bundled schemas
// by their contents and rejects anything containing "syntax error".
type schemaToolchain struct{}

func (schemaToolchain) Run(ctx context.Context, outputFile, importRoot, sourceFile string) (int, string, error) {
	src, err := os.ReadFile(filepath.Join(importRoot, sourceFile))
	if err != nil {
		return -1, "", err
	}
	var out []byte
	switch {
	case strings.Contains(string(src), "syntax error"):
		return 1, "sample.proto:1:1: Expected top-level statement.", nil
	case strings.Contains(string(src), "message Item"):
		out = sampleschema.InventoryDescriptorSet()
	case strings.Contains(string(src), "message UserRequest"):
		out = sampleschema.SampleDescriptorSet()
	default:
		// compiles, but yields an artifact nothing can parse
		out = []byte{0x0a, 0x05, 0x01}
	}
	return 0, "", os.WriteFile(outputFile, out, 0o644)
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, dispatchCfg dispatch.Config) *Service {
	t.Helper()
	sources, err := artifact.NewSourceStore(t.TempDir())
	require.NoError(t, err)
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)

	return New(
		Config{},
		sources,
		compiler.New(compiler.Config{}, schemaToolchain{}, store),
		registry.New(registry.Config{}, store),
		generator.New(generator.Config{}).WithClock(func() time.Time { return fixedNow }),
		codec.New(),
		dispatch.New(dispatchCfg),
	)
}

// echoUsers mimics the demo users endpoint.
func echoUsers(t *testing.T) (*httptest.Server, func() []byte) {
	t.Helper()
	var mu sync.Mutex
	var last []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		last = body
		mu.Unlock()
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"users":{}}`)
			return
		}
		var user map[string]interface{}
		if err := json.Unmarshal(body, &user); err != nil {
			w.Header().Set("Content-Type", "application/x-protobuf")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte{0x0a, 0x06, 'u', 's', 'e', 'r', '_', '1'})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "user_1", "status": "created", "user": user})
	}))
	t.Cleanup(srv.Close)
	return srv, func() []byte {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestUpload_SampleSchema(t *testing.T) {
	s := newService(t, dispatch.Config{})

	res, err := s.Upload(context.Background(), "sample.proto", []byte(sampleschema.SampleSource))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Proto file compiled successfully", res.Message)
	assert.Equal(t, "sample.proto", res.Filename)
	assert.Equal(t, []string{"UserRequest", "UserResponse", "ProductRequest", "ProductResponse"}, res.MessageTypes)
	assert.Empty(t, res.Warning)
}

func TestUpload_SanitizesFilename(t *testing.T) {
	s := newService(t, dispatch.Config{})

	res, err := s.Upload(context.Background(), "../my shop.proto", []byte(sampleschema.InventorySource))
	require.NoError(t, err)
	assert.Equal(t, "my_shop.proto", res.Filename)
	assert.Contains(t, res.MessageTypes, "shop.v1.Item")

	types, err := s.MessageTypes(context.Background(), "my_shop.proto")
	require.NoError(t, err)
	assert.Equal(t, res.MessageTypes, types)
}

func TestUpload_InvalidFilename(t *testing.T) {
	s := newService(t, dispatch.Config{})

	_, err := s.Upload(context.Background(), "notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, artifact.ErrInvalidFilename)
}

func TestUpload_CompileError(t *testing.T) {
	s := newService(t, dispatch.Config{})

	_, err := s.Upload(context.Background(), "broken.proto", []byte("syntax error"))
	require.Error(t, err)
	ce, ok := compiler.IsCompileError(err)
	require.True(t, ok)
	assert.Contains(t, ce.Diagnostics, "Expected top-level statement")
}

func TestUpload_UnreadableArtifactWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := NewMockLogger(ctrl)
	logger.EXPECT().WarnWithContext(gomock.Any(), "compiled schema could not be analysed", gomock.Any(), gomock.Any())

	s := newService(t, dispatch.Config{}).WithLogger(logger)

	res, err := s.Upload(context.Background(), "odd.proto", []byte(`syntax = "proto3";`))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.MessageTypes)
	assert.True(t, strings.HasPrefix(res.Warning, "Could not analyze schema: "))
}

func TestAllMessageTypes(t *testing.T) {
	s := newService(t, dispatch.Config{})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))
	_, err := s.Upload(ctx, sampleschema.InventoryFilename, []byte(sampleschema.InventorySource))
	require.NoError(t, err)

	all, err := s.AllMessageTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Contains(t, all["sample.proto"], "UserRequest")
	assert.Contains(t, all["inventory.proto"], "shop.v1.Category")
}

func TestGenerateSample(t *testing.T) {
	s := newService(t, dispatch.Config{})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))

	sample, err := s.GenerateSample(ctx, "UserRequest")
	require.NoError(t, err)
	assert.Equal(t, "UserRequest", sample.MessageType)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(sample.TestData, &data))
	assert.Equal(t, "test_name", data["name"])
	assert.Equal(t, float64(123), data["age"])
	assert.Equal(t, true, data["active"])
	assert.Equal(t, []interface{}{"tag1_tags", "tag2_tags"}, data["tags"])

	_, err = s.GenerateSample(ctx, "NoSuchType")
	assert.True(t, registry.IsTypeNotFound(err))
}

func TestTest_GeneratedJSON(t *testing.T) {
	s := newService(t, dispatch.Config{})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))
	srv, last := echoUsers(t)

	res := s.Test(ctx, TestRequest{
		APIURL:      srv.URL + "/api/users",
		MessageType: "UserRequest",
		Protocol:    "rest",
		Headers:     map[string]string{"X-Test": "1"},
	})

	require.True(t, res.Success, res.Diagnostic)
	assert.Equal(t, "POST", res.Request.Method)
	assert.Equal(t, "rest", res.Request.Protocol)
	assert.Equal(t, "application/json", res.Request.Headers["Content-Type"])
	assert.Equal(t, "1", res.Request.Headers["X-Test"])
	assert.Equal(t, len(last()), res.Request.PayloadSize)
	assert.JSONEq(t, string(last()), string(res.Request.TestDataUsed))

	require.NotNil(t, res.Response)
	assert.Equal(t, http.StatusCreated, res.Response.StatusCode)
	assert.True(t, res.Response.Success)
	assert.GreaterOrEqual(t, res.Response.ResponseTimeMs, int64(0))
	body, ok := res.Response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "created", body["status"])
	assert.Equal(t, "test_name", body["user"].(map[string]interface{})["name"])
}

func TestTest_DefaultsToPostAndRest(t *testing.T) {
	s := newService(t, dispatch.Config{})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))
	srv, _ := echoUsers(t)

	res := s.Test(ctx, TestRequest{APIURL: srv.URL, MessageType: "UserRequest"})
	require.True(t, res.Success)
	assert.Equal(t, "POST", res.Request.Method)
	assert.Equal(t, "rest", res.Request.Protocol)
}

func TestTest_CustomDataProtobuf(t *testing.T) {
	s := newService(t, dispatch.Config{})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))
	srv, last := echoUsers(t)

	res := s.Test(ctx, TestRequest{
		APIURL:      srv.URL,
		MessageType: "UserRequest",
		Protocol:    "protobuf",
		Method:      "put",
		CustomData:  `{"name":"Ada","age":36}`,
	})

	require.True(t, res.Success, res.Diagnostic)
	assert.Equal(t, "PUT", res.Request.Method)
	assert.Equal(t, "application/x-protobuf", res.Request.Headers["Content-Type"])
	assert.JSONEq(t, `{"name":"Ada","age":36}`, string(res.Request.TestDataUsed))

	sent := last()
	assert.Equal(t, len(sent), res.Request.PayloadSize)
	assert.Contains(t, string(sent), "Ada")
	assert.Equal(t, "<Binary protobuf data: 8 bytes>", res.Response.Data)
}

func TestTest_GetSkipsResolution(t *testing.T) {
	s := newService(t, dispatch.Config{})
	srv, last := echoUsers(t)

	res := s.Test(context.Background(), TestRequest{APIURL: srv.URL, Method: "GET"})

	require.True(t, res.Success, res.Diagnostic)
	assert.Nil(t, res.Request.TestDataUsed)
	assert.Zero(t, res.Request.PayloadSize)
	assert.Empty(t, last())
	assert.Equal(t, map[string]interface{}{"users": map[string]interface{}{}}, res.Response.Data)
}

func TestTest_NonSuccessStatusIsStillASuccessfulTest(t *testing.T) {
	s := newService(t, dispatch.Config{})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	res := s.Test(ctx, TestRequest{APIURL: srv.URL, MessageType: "UserRequest"})
	require.True(t, res.Success)
	assert.Equal(t, http.StatusBadRequest, res.Response.StatusCode)
	assert.False(t, res.Response.Success)
	assert.Equal(t, "nope\n", res.Response.Data)
}

func TestTest_Failures(t *testing.T) {
	s := newService(t, dispatch.Config{})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))
	srv, _ := echoUsers(t)

	tests := []struct {
		name string
		req  TestRequest
		kind FailureKind
	}{
		{"missing url", TestRequest{MessageType: "UserRequest"}, FailureInvalidRequest},
		{"missing type", TestRequest{APIURL: srv.URL}, FailureInvalidRequest},
		{"bad protocol", TestRequest{APIURL: srv.URL, MessageType: "UserRequest", Protocol: "xml"}, FailureInvalidRequest},
		{"unknown type", TestRequest{APIURL: srv.URL, MessageType: "NonExistent"}, FailureTypeNotFound},
		{"malformed custom data", TestRequest{APIURL: srv.URL, MessageType: "UserRequest", CustomData: `{"name":`}, FailureMalformedData},
		{"unknown custom field", TestRequest{APIURL: srv.URL, MessageType: "UserRequest", CustomData: `{"nickname":"x"}`}, FailureMalformedData},
		{"unsupported method", TestRequest{APIURL: srv.URL, MessageType: "UserRequest", Method: "DELETE"}, FailureUnsupportedMethod},
		{"unreachable", TestRequest{APIURL: "http://127.0.0.1:1/api", MessageType: "UserRequest"}, FailureDispatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Test(ctx, tt.req)
			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.Kind)
			assert.NotEmpty(t, res.Error)
			assert.Nil(t, res.Response)
		})
	}
}

func TestTest_Timeout(t *testing.T) {
	s := newService(t, dispatch.Config{Timeout: 50 * time.Millisecond})
	ctx := context.Background()
	require.NoError(t, s.BootstrapSample(ctx))

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	res := s.Test(ctx, TestRequest{APIURL: srv.URL, MessageType: "UserRequest"})
	assert.False(t, res.Success)
	assert.Equal(t, FailureTimeout, res.Kind)
	require.NotNil(t, res.Request)
	assert.NotZero(t, res.Request.PayloadSize)
}
