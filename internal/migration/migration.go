package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/camaraaberta/ceap/internal/config"
	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Run brings the schema up to date. Postgres goes through versioned SQL
// migrations; other dialects (sqlite in tests, mysql) fall back to
// AutoMigrate since the SQL files carry postgres-specific types.
func Run(cfg config.Config, conn *gorm.DB, log *zap.Logger) error {
	log = log.Named("migration")

	if cfg.DBType != "postgres" {
		log.Info("running auto migration", zap.String("db_type", cfg.DBType))
		return conn.AutoMigrate(&deputadodomain.Deputado{}, &despesadomain.Despesa{})
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("acquire sql db: %w", err)
	}

	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return fmt.Errorf("load migration files: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.DBName, driver)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("schema up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
