// Package server is protobench's HTTP front end.
//
// Routes:
//
//	POST /upload_proto                      multipart "proto_file"; compiles the schema
//	POST /test_api                          JSON or form TestRequest; runs one test
//	GET  /schemas/{filename}/types          message types of one schema
//	GET  /list_message_types                message types of every schema
//	GET  /generate_test_data/{messageType}  generated sample as protobuf JSON
//	GET  /healthz
//
// Unless disabled, the demo targets /api/users and /api/products are served
// too. Every route is traced and counted under its path pattern.
package server
