// Package repository defines the interfaces for data access layer
package repository

import (
	"context"
	"time"

	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
)

// SoldOrder defines storage for order snapshots
type SoldOrder interface {
	// Upsert inserts the order or updates the snapshot with the same Afterbuy order id
	Upsert(ctx context.Context, order *model.SoldOrder) error
	// GetByAfterbuyID returns domain.ErrNotFound when no snapshot exists
	GetByAfterbuyID(ctx context.Context, afterbuyOrderID int64) (*model.SoldOrder, error)
	// List returns snapshots ordered by modification date, newest first, and the total count
	List(ctx context.Context, offset, limit int) ([]*model.SoldOrder, int, error)
}

// SyncCursor stores how far the sold item sync has progressed
type SyncCursor interface {
	// Get returns false when no state was stored yet
	Get(ctx context.Context) (model.SyncState, bool, error)
	Set(ctx context.Context, state model.SyncState) error
	// Lock acquires the sync lock for owner; false means another pass holds it
	Lock(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	// Unlock releases the lock if owner still holds it
	Unlock(ctx context.Context, owner string) error
}
