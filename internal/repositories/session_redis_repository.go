package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"sueta_backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository хранит сессию как ключ session:<id> -> user id с TTL
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func (r *redisSessionRepository) Create(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return r.client.Set(ctx, sessionKeyPrefix+session.ID, strconv.FormatUint(uint64(session.UserID), 10), ttl).Err()
}

func (r *redisSessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	key := sessionKeyPrefix + id

	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, err
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	return &models.Session{
		ID:        id,
		UserID:    uint(userID),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpired ничего не делает: Redis удаляет ключи по TTL сам
func (r *redisSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
