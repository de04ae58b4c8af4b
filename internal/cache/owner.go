package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stpnv0/EventMarket/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

const ownerKeyPrefix = "owner:"

// OwnerResolver caches the id -> canonical user id mapping in redis.
// Redis failures fall through to the wrapped resolver.
type OwnerResolver struct {
	client *redis.Client
	inner  ports.OwnerResolver
	ttl    time.Duration
	logger logger.Logger
}

func NewOwnerResolver(client *redis.Client, inner ports.OwnerResolver, ttl time.Duration, logger logger.Logger) *OwnerResolver {
	return &OwnerResolver{
		client: client,
		inner:  inner,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *OwnerResolver) ResolveOwnerID(ctx context.Context, actorID string) (string, error) {
	if r.client == nil {
		return r.inner.ResolveOwnerID(ctx, actorID)
	}

	key := ownerKeyPrefix + actorID
	cached, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("owner cache read failed",
			logger.String("key", key),
			logger.String("error", err.Error()),
		)
	}

	canonical, err := r.inner.ResolveOwnerID(ctx, actorID)
	if err != nil {
		return "", err
	}

	if err = r.client.Set(ctx, key, canonical, r.ttl).Err(); err != nil {
		r.logger.Warn("owner cache write failed",
			logger.String("key", key),
			logger.String("error", err.Error()),
		)
	}
	return canonical, nil
}
