package store

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"go.uber.org/zap"
)

// DefaultRedisKey is the hash holding every strategy, keyed by id.
const DefaultRedisKey = "argolab:strategies"

// RedisHash is the subset of the redis client used by RedisStore.
// *goredis.Client satisfies it.
type RedisHash interface {
	HSet(ctx context.Context, key string, values ...interface{}) *goredis.IntCmd
	HGet(ctx context.Context, key, field string) *goredis.StringCmd
	HGetAll(ctx context.Context, key string) *goredis.StringStringMapCmd
	HDel(ctx context.Context, key string, fields ...string) *goredis.IntCmd
}

// RedisStore keeps each strategy as a JSON record in one redis hash.
type RedisStore struct {
	client RedisHash
	closer func() error
	key    string
	logger *logger.Logger
	now    func() time.Time
}

// NewRedisStore connects to config.RedisAddr and pings the server.
func NewRedisStore(ctx context.Context, config Config, log *logger.Logger) (*RedisStore, error) {
	if config.RedisAddr == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "redis address is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()

		return nil, errors.Wrapf(errors.ErrCodeStoreFailed, err, "redis ping %s", config.RedisAddr)
	}

	store := NewRedisStoreWithClient(client, config.RedisKey, log)
	store.closer = client.Close

	return store, nil
}

// NewRedisStoreWithClient creates a store over an existing client. An empty
// key uses DefaultRedisKey.
func NewRedisStoreWithClient(client RedisHash, key string, log *logger.Logger) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &RedisStore{
		client: client,
		closer: func() error { return nil },
		key:    key,
		logger: log,
		now:    time.Now,
	}
}

func (r *RedisStore) Save(ctx context.Context, id string, config types.StrategyConfig) (StoredStrategy, error) {
	var existing *StoredStrategy

	if id != "" {
		s, err := r.get(ctx, id)
		if err == nil {
			existing = &s
		} else if !errors.HasCode(err, errors.ErrCodeStrategyNotFound) {
			return StoredStrategy{}, err
		}
	}

	s, err := record(id, config, existing, r.now())
	if err != nil {
		return StoredStrategy{}, err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return StoredStrategy{}, errors.Wrap(errors.ErrCodeStoreFailed, "failed to encode strategy", err)
	}

	if err := r.client.HSet(ctx, r.key, s.ID, string(data)).Err(); err != nil {
		return StoredStrategy{}, errors.Wrap(errors.ErrCodeStoreFailed, "failed to save strategy", err)
	}

	return s, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (StoredStrategy, error) {
	s, err := r.get(ctx, id)
	if err != nil {
		return StoredStrategy{}, err
	}

	if err := checkVersion(s); err != nil {
		return StoredStrategy{}, err
	}

	return s, nil
}

func (r *RedisStore) get(ctx context.Context, id string) (StoredStrategy, error) {
	data, err := r.client.HGet(ctx, r.key, id).Result()
	if stdErrors.Is(err, goredis.Nil) {
		return StoredStrategy{}, notFound(id)
	}

	if err != nil {
		return StoredStrategy{}, errors.Wrap(errors.ErrCodeStoreFailed, "failed to load strategy", err)
	}

	var s StoredStrategy
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return StoredStrategy{}, errors.Wrapf(errors.ErrCodeStoreFailed, err, "strategy %s is corrupt", id)
	}

	return s, nil
}

func (r *RedisStore) List(ctx context.Context) ([]StoredStrategy, error) {
	records, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, "failed to list strategies", err)
	}

	out := make([]StoredStrategy, 0, len(records))

	for id, data := range records {
		var s StoredStrategy
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			r.logger.Warn("Skipping corrupt strategy", zap.String("id", id), zap.Error(err))

			continue
		}

		if err := checkVersion(s); err != nil {
			r.logger.Warn("Skipping incompatible strategy", zap.String("id", id), zap.Error(err))

			continue
		}

		out = append(out, s)
	}

	sortStrategies(out)

	return out, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := r.client.HDel(ctx, r.key, id).Result()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "failed to delete strategy", err)
	}

	if removed == 0 {
		return notFound(id)
	}

	return nil
}

func (r *RedisStore) Close() error {
	return r.closer()
}
