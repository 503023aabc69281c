package ranking

import (
	"github.com/camaraaberta/ceap/internal/ranking/repository"
	"github.com/camaraaberta/ceap/internal/ranking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ranking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
