package tax

import (
	"github.com/smallbiznis/fmis/internal/cache"
	"github.com/smallbiznis/fmis/internal/tax/repository"
	"github.com/smallbiznis/fmis/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(cache.NewTaxCodeCache),
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewService),
)
