package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ahhussein/afterbuy-sdk/contracts/afterbuy_service"
	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/kafka"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/repository"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/metrics"
)

// Sync run outcomes
const (
	SyncOutcomeOK      = "ok"
	SyncOutcomeFailed  = "failed"
	SyncOutcomeSkipped = "skipped"
)

// EventPublisher publishes sold order events. *kafka.Client satisfies it.
type EventPublisher interface {
	Produce(ctx context.Context, msgs ...kafka.Message) error
}

// SyncConfig controls the sold item sync
type SyncConfig struct {
	InitialLookback time.Duration
	BatchSize       int
	DetailLevel     afterbuy.DetailLevel
	LockTTL         time.Duration
	// Topic receives one event per stored order; empty disables publishing
	Topic string
}

// OrderUseCase defines business operations for sold orders
type OrderUseCase interface {
	SoldItems(ctx context.Context, query afterbuy_service.SoldItemsQuery) (*afterbuy.SoldItemsResult, error)
	UpdateOrders(ctx context.Context, orders []afterbuy.OrderUpdate) error
	SyncSoldItems(ctx context.Context) (*model.SyncReport, error)
	GetStoredOrder(ctx context.Context, afterbuyOrderID int64) (*model.SoldOrder, error)
	ListStoredOrders(ctx context.Context, offset, limit int) ([]*model.SoldOrder, int, error)
}

type orderUseCase struct {
	client    afterbuy.AfterbuyClient
	orderRepo repository.SoldOrder
	cursor    repository.SyncCursor
	publisher EventPublisher
	config    SyncConfig
	upstream  upstream
	metrics   *metrics.Metrics
	logger    logger.LoggerInterface
	now       func() time.Time
}

// NewOrderUseCase creates a new instance of orderUseCase. publisher may be nil.
func NewOrderUseCase(
	client afterbuy.AfterbuyClient,
	orderRepo repository.SoldOrder,
	cursor repository.SyncCursor,
	publisher EventPublisher,
	config SyncConfig,
	m *metrics.Metrics,
	appLogger logger.LoggerInterface,
) OrderUseCase {
	return &orderUseCase{
		client:    client,
		orderRepo: orderRepo,
		cursor:    cursor,
		publisher: publisher,
		config:    config,
		upstream:  upstream{metrics: m, logger: appLogger},
		metrics:   m,
		logger:    appLogger,
		now:       time.Now,
	}
}

// SoldItems reads orders straight from Afterbuy
func (uc *orderUseCase) SoldItems(ctx context.Context, query afterbuy_service.SoldItemsQuery) (*afterbuy.SoldItemsResult, error) {
	uc.logger.InfoContext(ctx, "Fetching sold items", "limit", query.Limit, "order_ids", len(query.OrderIDs))

	res, err := uc.client.GetSoldItems(ctx, query.CallOptions()...)
	resp, err := unwrap(ctx, uc.upstream, afterbuy.CallGetSoldItems, res, err,
		func(r *afterbuy.GetSoldItemsResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// UpdateOrders forwards order changes to Afterbuy
func (uc *orderUseCase) UpdateOrders(ctx context.Context, orders []afterbuy.OrderUpdate) error {
	uc.logger.InfoContext(ctx, "Updating sold items", "orders", len(orders))

	res, err := uc.client.UpdateSoldItems(ctx, orders)
	_, err = unwrap(ctx, uc.upstream, afterbuy.CallUpdateSoldItems, res, err,
		func(r *afterbuy.UpdateSoldItemsResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return err
	}

	uc.logger.InfoContext(ctx, "Sold items updated", "orders", len(orders))
	return nil
}

// SyncSoldItems runs one pass of the sold item sync. Orders modified within
// the current window are upserted and published, then the stored state
// advances: to the next page of the same window while Afterbuy reports more
// items, otherwise to a new window starting where this one ended.
// Any failure leaves the state untouched so the next pass retries.
func (uc *orderUseCase) SyncSoldItems(ctx context.Context) (*model.SyncReport, error) {
	owner := ulid.Make().String()
	locked, err := uc.cursor.Lock(ctx, owner, uc.config.LockTTL)
	if err != nil {
		uc.metrics.IncSyncRun(SyncOutcomeFailed)
		return nil, err
	}
	if !locked {
		uc.metrics.IncSyncRun(SyncOutcomeSkipped)
		uc.logger.InfoContext(ctx, "Sync skipped, another pass holds the lock")
		return nil, domain.ErrSyncInProgress
	}
	defer func() {
		if err := uc.cursor.Unlock(context.WithoutCancel(ctx), owner); err != nil {
			uc.logger.ErrorContext(ctx, "Failed to release sync lock", "error", err)
		}
	}()

	report, err := uc.syncPass(ctx)
	if err != nil {
		uc.metrics.IncSyncRun(SyncOutcomeFailed)
		uc.logger.ErrorContext(ctx, "Sync pass failed", "error", err)
		return nil, err
	}

	uc.metrics.IncSyncRun(SyncOutcomeOK)
	uc.logger.InfoContext(ctx, "Sync pass completed",
		"fetched", report.Fetched,
		"stored", report.Stored,
		"published", report.Published,
		"has_more", report.HasMore,
		"cursor", report.Cursor,
		"last_order_id", report.LastOrderID,
	)
	return report, nil
}

// maxOrderID is the open upper bound of the order id range used to page a window
const maxOrderID = math.MaxInt32

func (uc *orderUseCase) syncPass(ctx context.Context) (*model.SyncReport, error) {
	now := uc.now().UTC().Truncate(time.Second)

	state, found, err := uc.cursor.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		state = model.SyncState{Since: now.Add(-uc.config.InitialLookback)}
	}

	from, to := state.Since, now
	afterID := 0
	if state.Window != nil {
		to, afterID = state.Window.To, state.Window.LastOrderID
	}

	filters := []afterbuy.Filter{afterbuy.DateFilter{Field: afterbuy.DateFieldModDate, From: from, To: to}}
	if afterID > 0 {
		filters = append(filters, afterbuy.RangeIDFilter{From: afterID + 1, To: maxOrderID})
	}

	uc.logger.InfoContext(ctx, "Starting sync pass", "from", from, "to", to, "after_order_id", afterID)

	res, err := uc.client.GetSoldItems(ctx,
		afterbuy.WithFilters(filters...),
		afterbuy.WithOrderDirection(afterbuy.OrderAscending),
		afterbuy.WithMaxItems(uc.config.BatchSize),
		afterbuy.WithDetailLevel(uc.config.DetailLevel),
	)
	resp, err := unwrap(ctx, uc.upstream, afterbuy.CallGetSoldItems, res, err,
		func(r *afterbuy.GetSoldItemsResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return nil, err
	}

	result := resp.Result
	report := &model.SyncReport{
		Fetched:   len(result.Orders),
		HasMore:   bool(result.HasMoreItems),
		StartedAt: now,
	}
	uc.metrics.AddSyncOrders(metrics.StageFetched, report.Fetched)

	snapshots := make([]*model.SoldOrder, 0, len(result.Orders))
	lastID := afterID
	for _, order := range result.Orders {
		snapshot := model.NewSoldOrder(order, now)
		if err := uc.orderRepo.Upsert(ctx, snapshot); err != nil {
			uc.metrics.AddSyncOrders(metrics.StageFailed, 1)
			return nil, fmt.Errorf("failed to store order %d: %w", order.OrderID, err)
		}
		snapshots = append(snapshots, snapshot)
		if order.OrderID > lastID {
			lastID = order.OrderID
		}
	}
	report.Stored = len(snapshots)
	uc.metrics.AddSyncOrders(metrics.StageStored, report.Stored)

	published, err := uc.publish(ctx, snapshots)
	if err != nil {
		uc.metrics.AddSyncOrders(metrics.StageFailed, len(snapshots))
		return nil, err
	}
	report.Published = published
	uc.metrics.AddSyncOrders(metrics.StagePublished, published)

	next := model.SyncState{Since: to}
	switch {
	case report.HasMore && lastID > afterID:
		next = model.SyncState{Since: from, Window: &model.SyncWindow{To: to, LastOrderID: lastID}}
	case report.HasMore:
		uc.logger.WarnContext(ctx, "Afterbuy reported more items without returning any, closing the window",
			"from", from, "to", to, "after_order_id", afterID)
		report.HasMore = false
	}
	if err := uc.cursor.Set(ctx, next); err != nil {
		return nil, err
	}

	report.Cursor = next.Since
	if next.Window != nil {
		report.LastOrderID = next.Window.LastOrderID
	}
	return report, nil
}

func (uc *orderUseCase) publish(ctx context.Context, snapshots []*model.SoldOrder) (int, error) {
	if uc.publisher == nil || uc.config.Topic == "" || len(snapshots) == 0 {
		return 0, nil
	}

	msgs := make([]kafka.Message, 0, len(snapshots))
	for _, snapshot := range snapshots {
		event := afterbuy_service.NewSoldOrderEvent(snapshot)
		value, err := event.Marshal()
		if err != nil {
			return 0, fmt.Errorf("failed to encode event for order %d: %w", snapshot.AfterbuyOrderID, err)
		}
		msgs = append(msgs, kafka.Message{
			Topic:   uc.config.Topic,
			Key:     event.Key(),
			Value:   value,
			Headers: map[string]string{"type": afterbuy_service.SoldOrderEventType},
		})
	}

	if err := uc.publisher.Produce(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("failed to publish sold order events: %w", err)
	}
	return len(msgs), nil
}

// GetStoredOrder returns the snapshot kept for an Afterbuy order
func (uc *orderUseCase) GetStoredOrder(ctx context.Context, afterbuyOrderID int64) (*model.SoldOrder, error) {
	order, err := uc.orderRepo.GetByAfterbuyID(ctx, afterbuyOrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Stored order not found", "afterbuy_order_id", afterbuyOrderID)
			return nil, domain.ErrOrderNotFound
		}
		uc.logger.ErrorContext(ctx, "Failed to get stored order", "afterbuy_order_id", afterbuyOrderID, "error", err)
		return nil, err
	}
	return order, nil
}

// ListStoredOrders returns stored snapshots, newest modification first
func (uc *orderUseCase) ListStoredOrders(ctx context.Context, offset, limit int) ([]*model.SoldOrder, int, error) {
	orders, total, err := uc.orderRepo.List(ctx, offset, limit)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Failed to list stored orders", "offset", offset, "limit", limit, "error", err)
		return nil, 0, err
	}
	return orders, total, nil
}
