package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
)

const (
	otpKeyPrefix      = "otp:"
	otpAttemptsPrefix = "otp-attempts:"
)

type redisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore connects to Redis and pings it.
func NewRedisOTPStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (OTPStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisOTPStore").Str("addr", cfg.Addr).Msg("failed to connect to redis")
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info().Str("func", "NewRedisOTPStore").Msg("connected to redis successfully")

	return &redisOTPStore{client: client}, nil
}

func (s *redisOTPStore) SaveCode(ctx context.Context, key, codeHash string, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, otpKeyPrefix+key, codeHash, ttl)
		pipe.Del(ctx, otpAttemptsPrefix+key)
		return nil
	})
	return err
}

func (s *redisOTPStore) GetCode(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, otpKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	return value, err
}

func (s *redisOTPStore) IncrementAttempts(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, otpAttemptsPrefix+key)
		pipe.Expire(ctx, otpAttemptsPrefix+key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *redisOTPStore) DeleteCode(ctx context.Context, key string) error {
	return s.client.Del(ctx, otpKeyPrefix+key, otpAttemptsPrefix+key).Err()
}

// memoryOTPStore is used for local runs without Redis. Codes are lost on
// restart.
type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]memoryCode
	now   func() time.Time
}

type memoryCode struct {
	hash      string
	attempts  int64
	expiresAt time.Time
}

// NewMemoryOTPStore creates a process-local [OTPStore].
func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{codes: make(map[string]memoryCode), now: time.Now}
}

func (s *memoryOTPStore) SaveCode(_ context.Context, key, codeHash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[key] = memoryCode{hash: codeHash, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *memoryOTPStore) GetCode(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[key]
	if !ok || !s.now().Before(code.expiresAt) {
		delete(s.codes, key)
		return "", ErrCodeNotFound
	}
	return code.hash, nil
}

func (s *memoryOTPStore) IncrementAttempts(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[key]
	if !ok || !s.now().Before(code.expiresAt) {
		delete(s.codes, key)
		return 0, ErrCodeNotFound
	}
	code.attempts++
	s.codes[key] = code
	return code.attempts, nil
}

func (s *memoryOTPStore) DeleteCode(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, key)
	return nil
}
