package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/protobuf/reflect/protodesc"

	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/internal/sampleschema"
	"github.com/Aleph-Alpha/protobench/v1/schema"
)

// Demo serves in-memory users and products endpoints speaking the bundled
// sample schema, so tests have a target out of the box. POSTs accept JSON
// or binary protobuf and answer 201 in the same encoding.
type Demo struct {
	codec *codec.Codec
	now   func() time.Time

	userRequest     *schema.MessageDescriptor
	userResponse    *schema.MessageDescriptor
	productRequest  *schema.MessageDescriptor
	productResponse *schema.MessageDescriptor

	mu          sync.Mutex
	users       map[string]interface{}
	products    map[string]interface{}
	nextUser    int
	nextProduct int
}

// NewDemo builds the demo endpoints from the bundled sample descriptors.
func NewDemo(c *codec.Codec) (*Demo, error) {
	file, err := protodesc.NewFile(sampleschema.SampleFile(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sample schema: %w", err)
	}
	byName := make(map[string]*schema.MessageDescriptor)
	for _, m := range schema.MessagesOf(file) {
		byName[m.Name] = m
	}

	return &Demo{
		codec:           c,
		now:             time.Now,
		userRequest:     byName["UserRequest"],
		userResponse:    byName["UserResponse"],
		productRequest:  byName["ProductRequest"],
		productResponse: byName["ProductResponse"],
		users:           make(map[string]interface{}),
		products:        make(map[string]interface{}),
		nextUser:        1,
		nextProduct:     1,
	}, nil
}

// WithClock replaces the clock used for response timestamps.
func (d *Demo) WithClock(now func() time.Time) *Demo {
	d.now = now
	return d
}

// CreateUser handles POST /api/users.
func (d *Demo) CreateUser(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDemoError(w, http.StatusBadRequest, err.Error())
		return
	}

	if isProtobuf(r) {
		req, err := d.codec.Decode(body, d.userRequest, codec.Binary)
		if err != nil {
			writeDemoError(w, http.StatusBadRequest, "Protobuf parsing error: "+err.Error())
			return
		}
		user, err := d.codec.Encode(req, codec.Text)
		if err != nil {
			writeDemoError(w, http.StatusInternalServerError, err.Error())
			return
		}

		id := d.storeUser(req.Fields())
		d.writeProtobuf(w, d.userResponse, map[string]interface{}{
			"id":        id,
			"status":    "created",
			"message":   "User created successfully via protobuf",
			"user":      json.RawMessage(user),
			"timestamp": d.now().Unix(),
		})
		return
	}

	data, ok := decodeObject(body)
	if !ok {
		writeDemoError(w, http.StatusBadRequest, "No data provided")
		return
	}
	id := d.storeUser(data)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        id,
		"status":    "created",
		"message":   "User created successfully via JSON",
		"user":      data,
		"timestamp": d.now().Unix(),
	})
}

// CreateProduct handles POST /api/products.
func (d *Demo) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDemoError(w, http.StatusBadRequest, err.Error())
		return
	}

	if isProtobuf(r) {
		req, err := d.codec.Decode(body, d.productRequest, codec.Binary)
		if err != nil {
			writeDemoError(w, http.StatusBadRequest, "Protobuf parsing error: "+err.Error())
			return
		}
		product, err := d.codec.Encode(req, codec.Text)
		if err != nil {
			writeDemoError(w, http.StatusInternalServerError, err.Error())
			return
		}

		fields := req.Fields()
		price, _ := fields["price"].(float64)
		quantity, _ := fields["quantity"].(int32)
		id := d.storeProduct(fields)
		d.writeProtobuf(w, d.productResponse, map[string]interface{}{
			"product_id":  id,
			"status":      "created",
			"product":     json.RawMessage(product),
			"total_value": price * float64(quantity),
		})
		return
	}

	data, ok := decodeObject(body)
	if !ok {
		writeDemoError(w, http.StatusBadRequest, "No data provided")
		return
	}
	price, _ := data["price"].(float64)
	quantity, _ := data["quantity"].(float64)
	id := d.storeProduct(data)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"product_id":  id,
		"status":      "created",
		"product":     data,
		"total_value": price * quantity,
	})
}

// ListUsers handles GET /api/users.
func (d *Demo) ListUsers(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	users := copyRecords(d.users)
	d.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// ListProducts handles GET /api/products.
func (d *Demo) ListProducts(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	products := copyRecords(d.products)
	d.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (d *Demo) storeUser(record interface{}) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := fmt.Sprintf("user_%d", d.nextUser)
	d.nextUser++
	d.users[id] = record
	return id
}

func (d *Demo) storeProduct(record interface{}) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := fmt.Sprintf("prod_%d", d.nextProduct)
	d.nextProduct++
	d.products[id] = record
	return id
}

// writeProtobuf renders fields as a message of type desc and writes it as
// binary protobuf with status 201.
func (d *Demo) writeProtobuf(w http.ResponseWriter, desc *schema.MessageDescriptor, fields map[string]interface{}) {
	text, err := json.Marshal(fields)
	if err != nil {
		writeDemoError(w, http.StatusInternalServerError, err.Error())
		return
	}
	msg, err := d.codec.Decode(text, desc, codec.Text)
	if err != nil {
		writeDemoError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out, err := d.codec.Encode(msg, codec.Binary)
	if err != nil {
		writeDemoError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", codec.ContentTypeBinary)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(out)
}

func isProtobuf(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), codec.ContentTypeBinary)
}

// decodeObject parses body as a non-empty JSON object.
func decodeObject(body []byte) (map[string]interface{}, bool) {
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func copyRecords(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func writeDemoError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
