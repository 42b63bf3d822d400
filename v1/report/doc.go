// Package report publishes a summary of every dispatch to Kafka so test
// runs can be collected and analysed elsewhere.
//
// Reporting is disabled by default; FXModule then provides Nop.
package report
