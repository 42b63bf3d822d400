// Package dispatch sends encoded messages to a target HTTP API and turns
// whatever comes back into a uniform Response.
//
// Responses are classified by Content-Type: JSON bodies are parsed (raw
// text if parsing fails), protobuf bodies are summarized by size, and
// anything else is kept as text. Every dispatch is reported to the
// configured observer and Reporter, successful or not.
package dispatch
