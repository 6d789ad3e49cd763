package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/InSantoshMahto/login-system/domain"
)

// OneTimeCodeRepositoryImpl implements domain.OneTimeCodeRepository using
// Redis. There is exactly one key per (user, purpose), so inserting a new
// code overwrites any outstanding one: only the latest issued code can be
// found or consumed, even when two requests race.
type OneTimeCodeRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewOneTimeCodeRepository creates a new one-time code repository
func NewOneTimeCodeRepository(client *redis.Client, ttl time.Duration) domain.OneTimeCodeRepository {
	return &OneTimeCodeRepositoryImpl{
		client: client,
		prefix: "otp:",
		ttl:    ttl,
	}
}

func (r *OneTimeCodeRepositoryImpl) key(userID uint, purpose domain.Purpose) string {
	return fmt.Sprintf("%s%s:%d", r.prefix, purpose, userID)
}

// Insert implements domain.OneTimeCodeRepository
func (r *OneTimeCodeRepositoryImpl) Insert(ctx context.Context, code *domain.OneTimeCode) error {
	data, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("failed to marshal one-time code: %w", err)
	}

	return r.client.Set(ctx, r.key(code.UserID, code.Purpose), data, r.ttl).Err()
}

// FindLatest implements domain.OneTimeCodeRepository
func (r *OneTimeCodeRepositoryImpl) FindLatest(ctx context.Context, userID uint, purpose domain.Purpose) (*domain.OneTimeCode, error) {
	data, err := r.client.Get(ctx, r.key(userID, purpose)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}

	var code domain.OneTimeCode
	if err := json.Unmarshal([]byte(data), &code); err != nil {
		return nil, fmt.Errorf("failed to unmarshal one-time code: %w", err)
	}

	return &code, nil
}

// Consume implements domain.OneTimeCodeRepository. Deleting the key makes
// the code single-use; consuming an already-consumed or expired code yields
// ErrCodeNotFound.
func (r *OneTimeCodeRepositoryImpl) Consume(ctx context.Context, userID uint, purpose domain.Purpose) error {
	deleted, err := r.client.Del(ctx, r.key(userID, purpose)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrCodeNotFound
	}
	return nil
}
