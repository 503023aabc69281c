package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/camaraaberta/ceap/internal/config"
	"github.com/camaraaberta/ceap/internal/deputado"
	"github.com/camaraaberta/ceap/internal/despesa"
	"github.com/camaraaberta/ceap/internal/ingest"
	"github.com/camaraaberta/ceap/internal/logger"
	"github.com/camaraaberta/ceap/internal/migration"
	"github.com/camaraaberta/ceap/internal/ranking"
	"github.com/camaraaberta/ceap/internal/server"
	"github.com/camaraaberta/ceap/internal/upload"
	"github.com/camaraaberta/ceap/pkg/db"
	"go.uber.org/fx"
)

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func main() {
	fx.New(
		config.Module,
		logger.Module,
		db.Module,
		migration.Module,
		fx.Provide(newSnowflakeNode),
		despesa.Module,
		deputado.Module,
		ranking.Module,
		ingest.Module,
		upload.Module,
		server.Module,
	).Run()
}
