package library

import (
	"context"
	"errors"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/circa/internal/platform/constants"
)

// cacheTTL keeps library policy lookups off the search hot path. Library
// configuration changes rarely, and a stale policy self-corrects quickly.
const cacheTTL = 5 * time.Minute

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

// GetByShortName returns the library with the given short name, served from
// the Redis cache when possible.
func (service *Service) GetByShortName(ctx context.Context, shortName string) (*Library, error) {
	key := constants.RedisPrefixLibrary + shortName

	if service.cache != nil {
		cached, err := service.cache.Get(ctx, key).Bytes()
		if err == nil {
			lib := &Library{}
			if unmarshalErr := json.Unmarshal(cached, lib); unmarshalErr == nil {
				return lib, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			service.logger.WarnContext(ctx, "library_cache_read_failed",
				slog.String("short_name", shortName),
				slog.String("error", err.Error()),
			)
		}
	}

	lib, err := service.repo.GetByShortName(ctx, shortName)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if payload, marshalErr := json.Marshal(lib); marshalErr == nil {
			if err := service.cache.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
				service.logger.WarnContext(ctx, "library_cache_write_failed",
					slog.String("short_name", shortName),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return lib, nil
}
