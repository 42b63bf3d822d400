package codec

import "go.uber.org/fx"

// FXModule provides the shared *Codec.
var FXModule = fx.Module("codec",
	fx.Provide(New),
)
