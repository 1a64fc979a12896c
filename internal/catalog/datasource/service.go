package datasource

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/circa/internal/platform/constants"
)

// cacheTTL bounds how long a name-to-ID mapping may be served from Redis.
// Data sources are effectively append-only, so a long TTL is safe.
const cacheTTL = 12 * time.Hour

type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
}

func NewService(repo Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (service *Service) ListDataSources(context context.Context) ([]*DataSource, error) {
	return service.repo.ListDataSources(context)
}

// ResolveID maps a data source name to its numeric identifier.
//
// Lookups are served from Redis when possible and fall back to PostgreSQL.
// An unknown name resolves to 0, which matches no documents in the index.
func (service *Service) ResolveID(ctx context.Context, name string) int {
	key := constants.RedisPrefixDataSource + name

	if service.cache != nil {
		cached, err := service.cache.Get(ctx, key).Result()
		if err == nil {
			if id, convErr := strconv.Atoi(cached); convErr == nil {
				return id
			}
		} else if !errors.Is(err, redis.Nil) {
			service.logger.WarnContext(ctx, "data_source_cache_read_failed",
				slog.String("name", name),
				slog.String("error", err.Error()),
			)
		}
	}

	ds, err := service.repo.GetDataSourceByName(ctx, name)
	if err != nil {
		service.logger.WarnContext(ctx, "data_source_unknown",
			slog.String("name", name),
		)
		return 0
	}

	if service.cache != nil {
		if err := service.cache.Set(ctx, key, strconv.Itoa(ds.ID), cacheTTL).Err(); err != nil {
			service.logger.WarnContext(ctx, "data_source_cache_write_failed",
				slog.String("name", name),
				slog.String("error", err.Error()),
			)
		}
	}

	return ds.ID
}
