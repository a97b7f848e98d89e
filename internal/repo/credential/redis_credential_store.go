package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
)

// RedisCredentialStoreConfig holds configuration for the Redis credential store.
type RedisCredentialStoreConfig struct {
	// Addr is the host:port of the Redis server
	Addr string `env:"ADDR" default:"localhost:6379"`
	// Password authenticates against the Redis server
	Password string `env:"PASSWORD" default:""`
	// DB selects the Redis logical database
	DB int `env:"DB" default:"0"`
	// KeyPrefix namespaces the credential key, e.g. per device
	KeyPrefix string `env:"KEY_PREFIX" default:"sobuu:"`
	// TTL expires the stored credential; zero keeps it until cleared
	TTL time.Duration `env:"TTL" default:"0s"`
}

// RedisCredentialStore implements Store as a single Redis string key.
type RedisCredentialStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    logging.Logger
}

var _ Store = (*RedisCredentialStore)(nil)

// RedisCredentialStoreFactory creates a factory function that returns a new RedisCredentialStore.
func RedisCredentialStoreFactory(cfg RedisCredentialStoreConfig) StoreFactory {
	return func(ctx context.Context) (Store, error) {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()

			return nil, fmt.Errorf("ping redis: %w", err)
		}

		return NewRedisCredentialStore(client, cfg), nil
	}
}

// NewRedisCredentialStore creates a store on top of an existing client.
// The store takes ownership of the client and closes it on Close.
func NewRedisCredentialStore(client *redis.Client, cfg RedisCredentialStoreConfig) *RedisCredentialStore {
	key := cfg.KeyPrefix + DefaultKey

	return &RedisCredentialStore{
		client: client,
		key:    key,
		ttl:    cfg.TTL,
		log: logging.GetLogger("repo.credential.redis_credential_store").With(
			logging.Group("redis", "key", key),
		),
	}
}

// Get implements Store.Get using Redis.
func (s *RedisCredentialStore) Get(ctx context.Context) (domain.Credential, bool, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("get credential: %w", err)
	}

	credential := domain.Credential(value)

	return credential, !credential.IsBlank(), nil
}

// Set implements Store.Set using Redis.
func (s *RedisCredentialStore) Set(ctx context.Context, credential domain.Credential) (err error) {
	if credential.IsBlank() {
		return s.Clear(ctx)
	}

	defer func() {
		if err != nil {
			s.log.ErrorContext(ctx, "credential store failed", "error", err)
		} else {
			s.log.DebugContext(ctx, "credential stored")
		}
	}()

	if err := s.client.Set(ctx, s.key, string(credential), s.ttl).Err(); err != nil {
		return fmt.Errorf("set credential: %w", err)
	}

	return nil
}

// Clear implements Store.Clear using Redis.
func (s *RedisCredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		s.log.ErrorContext(ctx, "credential clear failed", "error", err)

		return fmt.Errorf("delete credential: %w", err)
	}

	s.log.DebugContext(ctx, "credential cleared")

	return nil
}

// Close implements Store.Close by closing the Redis client.
func (s *RedisCredentialStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}

	return nil
}
