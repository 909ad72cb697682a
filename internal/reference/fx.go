package reference

import (
	"github.com/smallbiznis/fmis/internal/reference/repository"
	"github.com/smallbiznis/fmis/internal/reference/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reference.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
