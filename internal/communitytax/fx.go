package communitytax

import "go.uber.org/fx"

var Module = fx.Module("communitytax.service",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
)
