// Package postgres provides PostgreSQL implementation for order snapshot repository
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/repository"
)

// columns refreshed when a snapshot is synced again
var upsertColumns = []string{
	"invoice_number",
	"buyer_name",
	"buyer_email",
	"country",
	"payment_method",
	"shipping_method",
	"full_amount",
	"already_paid",
	"item_count",
	"order_date",
	"mod_date",
	"synced_at",
	"updated_at",
}

type soldOrderRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewSoldOrderRepository creates a new instance of soldOrderRepository
func NewSoldOrderRepository(db *gorm.DB, logger logger.LoggerInterface) repository.SoldOrder {
	return &soldOrderRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the snapshot or refreshes the row with the same afterbuy_order_id
func (r *soldOrderRepository) Upsert(ctx context.Context, order *model.SoldOrder) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "afterbuy_order_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(order).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert sold order", "afterbuy_order_id", order.AfterbuyOrderID, "error", err)
		return fmt.Errorf("failed to upsert sold order: %w", err)
	}
	r.logger.DebugContext(ctx, "Sold order stored", "afterbuy_order_id", order.AfterbuyOrderID)
	return nil
}

// GetByAfterbuyID retrieves a snapshot by its Afterbuy order id
func (r *soldOrderRepository) GetByAfterbuyID(ctx context.Context, afterbuyOrderID int64) (*model.SoldOrder, error) {
	var order model.SoldOrder
	if err := r.db.WithContext(ctx).Where("afterbuy_order_id = ?", afterbuyOrderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Sold order not found", "afterbuy_order_id", afterbuyOrderID)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get sold order", "afterbuy_order_id", afterbuyOrderID, "error", err)
		return nil, fmt.Errorf("failed to get sold order: %w", err)
	}
	return &order, nil
}

// List retrieves a page of snapshots
func (r *soldOrderRepository) List(ctx context.Context, offset, limit int) ([]*model.SoldOrder, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.SoldOrder{}).Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count sold orders", "error", err)
		return nil, 0, fmt.Errorf("failed to count sold orders: %w", err)
	}

	var orders []*model.SoldOrder
	if err := r.db.WithContext(ctx).Order("mod_date DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to list sold orders", "offset", offset, "limit", limit, "error", err)
		return nil, 0, fmt.Errorf("failed to list sold orders: %w", err)
	}
	return orders, int(total), nil
}
