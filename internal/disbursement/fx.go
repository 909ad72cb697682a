package disbursement

import (
	"github.com/smallbiznis/fmis/internal/disbursement/repository"
	"github.com/smallbiznis/fmis/internal/disbursement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("disbursement.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
