// Package store persists strategy configurations. Every backend stamps records
// with the current schema version and refuses to load incompatible ones.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/version"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

type BackendType string

const (
	BackendMemory BackendType = "memory"
	BackendDuckDB BackendType = "duckdb"
	BackendRedis  BackendType = "redis"
)

// StoredStrategy is a strategy configuration with its persistence metadata.
type StoredStrategy struct {
	ID            string               `json:"id" yaml:"id"`
	Config        types.StrategyConfig `json:"config" yaml:"config"`
	SchemaVersion string               `json:"schemaVersion" yaml:"schema_version"`
	CreatedAt     time.Time            `json:"createdAt" yaml:"created_at"`
	UpdatedAt     time.Time            `json:"updatedAt" yaml:"updated_at"`
}

// StrategyStore is a repository of strategy configurations.
type StrategyStore interface {
	// Save validates and stores config. An empty id creates a new record;
	// an existing id replaces the config and keeps the creation time.
	Save(ctx context.Context, id string, config types.StrategyConfig) (StoredStrategy, error)
	// Get returns the record with id, or ErrCodeStrategyNotFound.
	Get(ctx context.Context, id string) (StoredStrategy, error)
	// List returns every compatible record, oldest first.
	List(ctx context.Context) ([]StoredStrategy, error)
	// Delete removes the record with id, or returns ErrCodeStrategyNotFound.
	Delete(ctx context.Context, id string) error
	Close() error
}

type Config struct {
	Backend BackendType `yaml:"backend" json:"backend" validate:"oneof=memory duckdb redis"`
	// Path is the DuckDB database file. Empty means in-memory.
	Path          string `yaml:"path" json:"path"`
	RedisAddr     string `yaml:"redis_addr" json:"redisAddr"`
	RedisPassword string `yaml:"redis_password" json:"-"`
	RedisDB       int    `yaml:"redis_db" json:"redisDb" validate:"gte=0"`
	RedisKey      string `yaml:"redis_key" json:"redisKey"`
}

func DefaultConfig() Config {
	return Config{
		Backend:  BackendMemory,
		RedisKey: DefaultRedisKey,
	}
}

// New opens the backend selected by config.
func New(ctx context.Context, config Config, log *logger.Logger) (StrategyStore, error) {
	switch config.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendDuckDB:
		return NewDuckDBStore(config.Path, log)
	case BackendRedis:
		return NewRedisStore(ctx, config, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidStoreBackend, "unknown store backend: %s", config.Backend)
	}
}

// record builds the record to persist. existing is the stored record with the
// same id, if any.
func record(id string, config types.StrategyConfig, existing *StoredStrategy, now time.Time) (StoredStrategy, error) {
	if err := config.Validate(); err != nil {
		return StoredStrategy{}, err
	}

	now = now.UTC().Truncate(time.Microsecond)

	if strings.TrimSpace(id) == "" {
		id = uuid.New().String()
	}

	created := now
	if existing != nil {
		created = existing.CreatedAt
	}

	return StoredStrategy{
		ID:            id,
		Config:        config,
		SchemaVersion: version.SchemaVersion,
		CreatedAt:     created,
		UpdatedAt:     now,
	}, nil
}

func checkVersion(s StoredStrategy) error {
	if err := version.CheckCompatibility(version.SchemaVersion, s.SchemaVersion); err != nil {
		return errors.Wrapf(errors.ErrCodeStoreVersion, err, "strategy %s cannot be loaded", s.ID)
	}

	return nil
}

func notFound(id string) error {
	return errors.Newf(errors.ErrCodeStrategyNotFound, "strategy not found: %s", id)
}
