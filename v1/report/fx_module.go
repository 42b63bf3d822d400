package report

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/dispatch"
)

// FXModule provides the dispatch.Reporter: a KafkaPublisher when
// Config.Enabled is set, Nop otherwise.
var FXModule = fx.Module("report",
	fx.Provide(NewReporter),
)

// Params groups the publisher's dependencies.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    Config
	Logger    Logger `optional:"true"`
}

// NewReporter builds the configured reporter and closes it on shutdown.
func NewReporter(p Params) (dispatch.Reporter, error) {
	if !p.Config.Enabled {
		return Nop{}, nil
	}

	publisher, err := NewKafkaPublisher(p.Config, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Logger != nil {
				cfg := p.Config.withDefaults()
				p.Logger.Info("Dispatch reports enabled", nil, map[string]interface{}{
					"brokers": cfg.Brokers,
					"topic":   cfg.Topic,
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
