package deputado

import (
	"github.com/camaraaberta/ceap/internal/deputado/repository"
	"github.com/camaraaberta/ceap/internal/deputado/service"
	"go.uber.org/fx"
)

var Module = fx.Module("deputado.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
