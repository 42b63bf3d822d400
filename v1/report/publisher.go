package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Aleph-Alpha/protobench/v1/dispatch"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes one JSON record per dispatch, keyed by target URL
// so records for the same endpoint stay ordered within a partition.
//
// Publishing never fails the dispatch it describes: errors are logged and
// dropped.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  Logger
}

// NewKafkaPublisher connects lazily; no broker is contacted until the first
// record is published.
func NewKafkaPublisher(cfg Config, logger Logger) (*KafkaPublisher, error) {
	cfg = cfg.withDefaults()
	writer, err := newWriter(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{writer: writer, timeout: cfg.WriteTimeout, logger: logger}, nil
}

// Report implements dispatch.Reporter.
func (p *KafkaPublisher) Report(ctx context.Context, rec dispatch.Record) {
	value, err := json.Marshal(rec)
	if err != nil {
		p.warn("failed to encode dispatch record", err, rec)
		return
	}

	// The record outlives the request that produced it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.URL),
		Value: value,
		Time:  rec.Timestamp,
	}); err != nil {
		p.warn("failed to publish dispatch record", err, rec)
	}
}

// Close flushes pending records and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) warn(msg string, err error, rec dispatch.Record) {
	if p.logger != nil {
		p.logger.Warn(msg, err, map[string]interface{}{
			"url":    rec.URL,
			"method": rec.Method,
		})
	}
}

// Nop discards every record. It stands in when reporting is disabled.
type Nop struct{}

// Report implements dispatch.Reporter.
func (Nop) Report(context.Context, dispatch.Record) {}
