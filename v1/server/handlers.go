package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/Aleph-Alpha/protobench/v1/probe"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// testAPIRequest is the /test_api body, accepted as JSON or as a form.
// In a form, headers are a JSON object in the "headers" field.
type testAPIRequest struct {
	APIURL      string `json:"api_url" schema:"api_url" validate:"required,url"`
	MessageType string `json:"message_type" schema:"message_type"`
	Protocol    string `json:"protocol" schema:"protocol" validate:"omitempty,oneof=rest json text protobuf binary proto"`
	Method      string `json:"method" schema:"method" validate:"omitempty,alpha"`
	CustomData  string `json:"custom_data" schema:"custom_data"`

	Headers     map[string]string `json:"headers" schema:"-"`
	HeadersJSON string            `json:"-" schema:"headers"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("proto_file")
	if errors.Is(err, http.ErrMissingFile) {
		s.writeError(w, r, badRequest("No proto file provided"))
		return
	}
	if err != nil {
		s.writeError(w, r, badRequest(err.Error()))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.writeError(w, r, badRequest("No file selected"))
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, badRequest(err.Error()))
		return
	}

	res, err := s.svc.Upload(r.Context(), header.Filename, content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	req, err := decodeTestRequest(r, s.cfg.MaxUploadBytes)
	if err != nil {
		s.writeError(w, r, badRequest(err.Error()))
		return
	}
	if err := validate.Struct(req); err != nil {
		s.writeError(w, r, badRequest(validationMessage(err)))
		return
	}

	res := s.svc.Test(r.Context(), probe.TestRequest{
		APIURL:      req.APIURL,
		MessageType: req.MessageType,
		Protocol:    req.Protocol,
		Method:      req.Method,
		CustomData:  req.CustomData,
		Headers:     req.Headers,
	})
	if !res.Success {
		writeJSON(w, failureStatus(res.Kind), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func decodeTestRequest(r *http.Request, maxMemory int64) (*testAPIRequest, error) {
	var req testAPIRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" || mediaType == "" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode body: %w", err)
		}
		return &req, nil
	}

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	if err := schemaDecoder.Decode(&req, r.PostForm); err != nil {
		return nil, fmt.Errorf("failed to decode form: %w", err)
	}
	if strings.TrimSpace(req.HeadersJSON) != "" {
		if err := json.Unmarshal([]byte(req.HeadersJSON), &req.Headers); err != nil {
			return nil, fmt.Errorf("headers must be a JSON object: %w", err)
		}
	}
	return &req, nil
}

// validationMessage renders validator errors as "field: problem; ...".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "url":
			msg = "must be a valid URL"
		case "oneof":
			msg = "must be one of: " + fe.Param()
		case "alpha":
			msg = "must be an HTTP method name"
		default:
			msg = fmt.Sprintf("failed %s validation", fe.Tag())
		}
		msgs = append(msgs, fe.Field()+" "+msg)
	}
	return strings.Join(msgs, "; ")
}

func (s *Server) handleSchemaTypes(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	types, err := s.svc.MessageTypes(r.Context(), filename)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filename":      filename,
		"message_types": types,
	})
}

func (s *Server) handleListMessageTypes(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.AllMessageTypes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message_types": all})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sample, err := s.svc.GenerateSample(r.Context(), r.PathValue("messageType"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := translateError(err)
	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.ErrorWithContext(r.Context(), "request failed", err, map[string]interface{}{
			"path":   r.URL.Path,
			"status": status,
		})
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
