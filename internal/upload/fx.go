package upload

import (
	"github.com/camaraaberta/ceap/internal/config"
	"github.com/camaraaberta/ceap/internal/upload/domain"
	"github.com/camaraaberta/ceap/internal/upload/service"
	"github.com/camaraaberta/ceap/internal/upload/status"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("upload.service",
	fx.Provide(provideStatusStore),
	fx.Provide(service.New),
)

// provideStatusStore picks redis when an address is configured so status
// survives restarts; otherwise statuses live in process memory.
func provideStatusStore(cfg config.Config, log *zap.Logger) domain.StatusStore {
	if cfg.RedisAddr == "" {
		log.Named("upload").Info("using in-memory upload status store")
		return status.NewMemoryStore(cfg.StatusTTL)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	log.Named("upload").Info("using redis upload status store", zap.String("addr", cfg.RedisAddr))
	return status.NewRedisStore(client, cfg.StatusTTL)
}
