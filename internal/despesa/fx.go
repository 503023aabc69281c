package despesa

import (
	"github.com/camaraaberta/ceap/internal/despesa/repository"
	"github.com/camaraaberta/ceap/internal/despesa/service"
	"go.uber.org/fx"
)

var Module = fx.Module("despesa.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
