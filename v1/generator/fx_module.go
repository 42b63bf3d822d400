package generator

import "go.uber.org/fx"

// FXModule provides a *Generator built from Config.
var FXModule = fx.Module("generator",
	fx.Provide(New),
)
