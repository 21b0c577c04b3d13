package external

import (
	"fmt"

	"weatherdialog.app/internal/adapters/database"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// Cache types understood by the factory
const (
	CacheTypeMemory   = "memory"
	CacheTypeRedis    = "redis"
	CacheTypeDatabase = "database"
)

type CacheProviderFactory struct {
	clock ports.Clock
}

func NewCacheProviderFactory(clock ports.Clock) *CacheProviderFactory {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &CacheProviderFactory{clock: clock}
}

// CreateCacheProvider builds the cache selected by cfg.Type. Redis and
// database caches verify their connection before returning.
func (f *CacheProviderFactory) CreateCacheProvider(cfg ports.CacheConfig) (ports.CacheProvider, error) {
	switch cfg.Type {
	case CacheTypeMemory:
		return NewMemoryCacheProviderWithClock(f.clock), nil
	case CacheTypeRedis:
		return NewRedisCacheProviderAdapter(cfg.Redis)
	case CacheTypeDatabase:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		return database.NewCacheRepositoryAdapter(db, f.clock), nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type), nil)
	}
}
