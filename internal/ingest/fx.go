package ingest

import (
	"github.com/camaraaberta/ceap/internal/ingest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ingest.service",
	fx.Provide(service.New),
)
