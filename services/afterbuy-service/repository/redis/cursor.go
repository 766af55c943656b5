// Package redis provides the Redis backed sync cursor
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/redis"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/repository"
)

const (
	CursorKey = "afterbuy:sync:sold_items:cursor"
	LockKey   = "afterbuy:sync:sold_items:lock"
)

type syncCursor struct {
	client redis.RedisClient
}

// NewSyncCursor creates a sync cursor stored in Redis
func NewSyncCursor(client redis.RedisClient) repository.SyncCursor {
	return &syncCursor{client: client}
}

// Get returns the stored sync state
func (c *syncCursor) Get(ctx context.Context) (model.SyncState, bool, error) {
	value, err := c.client.Get(ctx, CursorKey)
	if errors.Is(err, redis.ErrKeyNotFound) {
		return model.SyncState{}, false, nil
	}
	if err != nil {
		return model.SyncState{}, false, fmt.Errorf("failed to read sync cursor: %w", err)
	}

	var state model.SyncState
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		return model.SyncState{}, false, fmt.Errorf("invalid sync cursor %q: %w", value, err)
	}
	return state, true, nil
}

// Set stores state in UTC without expiry
func (c *syncCursor) Set(ctx context.Context, state model.SyncState) error {
	stored := model.SyncState{Since: state.Since.UTC()}
	if state.Window != nil {
		stored.Window = &model.SyncWindow{To: state.Window.To.UTC(), LastOrderID: state.Window.LastOrderID}
	}

	value, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode sync cursor: %w", err)
	}
	if err := c.client.Set(ctx, CursorKey, string(value), 0); err != nil {
		return fmt.Errorf("failed to store sync cursor: %w", err)
	}
	return nil
}

// Lock takes the sync lock with SET NX
func (c *syncCursor) Lock(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, LockKey, owner, ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	return ok, nil
}

// Unlock deletes the lock when it still belongs to owner. A lock that
// expired and was taken by another pass is left alone.
func (c *syncCursor) Unlock(ctx context.Context, owner string) error {
	if _, err := c.client.DelIfValue(ctx, LockKey, owner); err != nil {
		return fmt.Errorf("failed to release sync lock: %w", err)
	}
	return nil
}
