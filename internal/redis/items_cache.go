package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"github.com/adsemenov/calendar-planner-backend/internal/config"
	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

const itemsVersionKey = "items:version"

// ItemsCacheRepository keeps short-lived snapshots of fetched item
// collections, keyed by item kind and privilege scope. Keys carry a
// version stamp; invalidation bumps the version so every stale snapshot
// falls out of reach at once.
type ItemsCacheRepository struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewItemsCacheRepository(pool *redis.Pool, logger *zap.SugaredLogger) *ItemsCacheRepository {
	return &ItemsCacheRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *ItemsCacheRepository) Get(ctx context.Context, kind, scope string) ([]*model.CalendarItem, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	key, err := itemsKey(conn, kind, scope)
	if err != nil {
		return nil, err
	}

	data, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		if err == redis.ErrNil {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("GET %v: %w", key, err)
	}

	var items []*model.CalendarItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cached items: %w", err)
	}

	return items, nil
}

func (r *ItemsCacheRepository) Set(ctx context.Context, kind, scope string, items []*model.CalendarItem) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	key, err := itemsKey(conn, kind, scope)
	if err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	if _, err := conn.Do("SETEX", key, int(config.ItemsCacheTTL().Seconds()), data); err != nil {
		return fmt.Errorf("SETEX %v: %w", key, err)
	}

	return nil
}

// Invalidate drops all cached snapshots after a mutation.
func (r *ItemsCacheRepository) Invalidate(ctx context.Context) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("INCR", itemsVersionKey); err != nil {
		return fmt.Errorf("INCR %v: %w", itemsVersionKey, err)
	}

	return nil
}

func itemsKey(conn redis.Conn, kind, scope string) (string, error) {
	version, err := redis.Int64(conn.Do("GET", itemsVersionKey))
	if err != nil && err != redis.ErrNil {
		return "", fmt.Errorf("GET %v: %w", itemsVersionKey, err)
	}

	return fmt.Sprintf("items:%v:%v:%v", version, kind, scope), nil
}
