package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/config"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/utils"

	"github.com/go-redis/redis/v8"
)

// CredentialKeyPrefix namespaces this client's entries in a shared Redis.
const CredentialKeyPrefix = "portalSession:"

// RedisStore keeps the credential unit in Redis. Used where several portal
// tools on one host share a session (lab machines, CI).
type RedisStore struct {
	mu     sync.Mutex
	client *redis.Client
}

// NewRedisStore connects to Redis using the loaded configuration.
func NewRedisStore() (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect credential store: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func key(name string) string {
	return CredentialKeyPrefix + name
}

// Load reads the credential unit. Missing entries yield empty defaults.
func (s *RedisStore) Load() (models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := context.Background()

	var creds models.Credentials
	for _, entry := range []struct {
		name string
		dst  *string
	}{
		{utils.StorageKeyToken, &creds.AccessToken},
		{utils.StorageKeyRefreshToken, &creds.RefreshToken},
	} {
		v, err := s.client.Get(ctx, key(entry.name)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return models.Credentials{}, fmt.Errorf("load %s: %w", entry.name, err)
		}
		*entry.dst = v
	}

	raw, err := s.client.Get(ctx, key(utils.StorageKeyUserInfo)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return models.Credentials{}, fmt.Errorf("load profile: %w", err)
	}
	if raw != "" {
		var profile models.UserProfile
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			return models.Credentials{}, fmt.Errorf("decode stored profile: %w", err)
		}
		creds.Profile = &profile
	}
	return creds, nil
}

// Save writes the three credential entries in one MULTI pipeline.
func (s *RedisStore) Save(creds models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := context.Background()

	profileJSON := ""
	if creds.Profile != nil {
		raw, err := json.Marshal(creds.Profile)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		profileJSON = string(raw)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key(utils.StorageKeyToken), creds.AccessToken, 0)
	pipe.Set(ctx, key(utils.StorageKeyRefreshToken), creds.RefreshToken, 0)
	pipe.Set(ctx, key(utils.StorageKeyUserInfo), profileJSON, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Clear removes the credential unit. The persisted term id survives.
func (s *RedisStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := context.Background()

	if err := s.client.Del(ctx,
		key(utils.StorageKeyToken),
		key(utils.StorageKeyRefreshToken),
		key(utils.StorageKeyUserInfo),
	).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// LoadTermID returns the persisted term id, or 0 when none is stored.
func (s *RedisStore) LoadTermID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.client.Get(context.Background(), key(utils.StorageKeyTermID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load term id: %w", err)
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("decode stored term id: %w", err)
	}
	return id, nil
}

func (s *RedisStore) SaveTermID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client.Set(context.Background(), key(utils.StorageKeyTermID), strconv.Itoa(id), 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
