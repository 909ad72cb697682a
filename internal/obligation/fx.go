package obligation

import (
	"github.com/smallbiznis/fmis/internal/obligation/repository"
	"github.com/smallbiznis/fmis/internal/obligation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("obligation.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
