package rfq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"labequip/storefront/internal/domain"
)

// redisStore persists cart snapshots as JSON with a sliding TTL
type redisStore struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) SessionStore {
	return &redisStore{
		redisClient: redisClient,
		keyPrefix:   "storefront:rfq:session:",
		ttl:         ttl,
	}
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	key := s.keyPrefix + sessionID
	val, err := s.redisClient.GetEx(ctx, key, s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewCart(), nil // No cart saved yet
		}
		return nil, fmt.Errorf("failed to get cart for session %s: %w", sessionID, err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart for session %s: %w", sessionID, err)
	}

	return NewCart(items...), nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	key := s.keyPrefix + sessionID
	data, err := json.Marshal(cart.Items())
	if err != nil {
		return fmt.Errorf("failed to encode cart for session %s: %w", sessionID, err)
	}

	if err := s.redisClient.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	key := s.keyPrefix + sessionID
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for session %s: %w", sessionID, err)
	}
	return nil
}
