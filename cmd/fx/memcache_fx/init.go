package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/internal/config"
	"tripwise/internal/infra"
	mem "tripwise/pkg/memcache"
)

var Module = fx.Provide(providePlanStore)

// providePlanStore returns a nil store when PLAN_CACHE_TTL is zero.
func providePlanStore(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (mem.PlanStore, error) {
	if cfg.PlanCacheTTL <= 0 {
		log.Info("plan cache disabled")
		return nil, nil
	}
	if cfg.RedisAddr == "" {
		log.Info("plan cache in memory", zap.Duration("ttl", cfg.PlanCacheTTL))
		return mem.NewMemoryPlans(), nil
	}

	client, err := infra.InitRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	log.Info("plan cache in redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.PlanCacheTTL))
	return mem.NewRedisPlans(client), nil
}
