package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ahhussein/afterbuy-sdk/contracts/afterbuy_service"
	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/api"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/pkg/validator"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/usecase"
)

const defaultOrderListLimit = 20

// OrderHandler handles HTTP requests for sold orders
type OrderHandler struct {
	// OrderUseCase contains business logic for sold orders
	OrderUseCase usecase.OrderUseCase
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewOrderHandler creates a new instance of OrderHandler
func NewOrderHandler(orderUseCase usecase.OrderUseCase, appLogger logger.LoggerInterface) *OrderHandler {
	return &OrderHandler{
		OrderUseCase: orderUseCase,
		Logger:       appLogger,
		API:          api.New(),
	}
}

// SoldItemsHandler reads sold orders from Afterbuy
// Query: limit, order_id, from, to (RFC 3339 modification dates), desc
func (h *OrderHandler) SoldItemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := newQueryParser(r.URL.Query())
	desc := q.Bool("desc")
	query := afterbuy_service.SoldItemsQuery{
		Limit:    q.Int("limit", afterbuy.DefaultMaxSoldItems),
		OrderIDs: q.Ints("order_id"),
		From:     q.Time("from"),
		To:       q.Time("to"),
		Desc:     desc != nil && *desc,
	}
	if err := q.Err(); err != nil {
		h.API.BadRequest(ctx, w, err.Error())
		return
	}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&query)) {
		return
	}

	result, err := h.OrderUseCase.SoldItems(ctx, query)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.SuccessWithMeta(ctx, w, afterbuy_service.SoldItemsToResponse(*result), &api.Meta{
		Cursor: &api.Cursor{Limit: query.Limit, LastID: result.LastOrderID, HasMore: bool(result.HasMoreItems)},
	})
}

// UpdateHandler forwards order changes to Afterbuy
// It expects a JSON payload {"orders": [...]}
// Returns a 202 status code once Afterbuy accepted the update
func (h *OrderHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req afterbuy_service.UpdateOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.WarnContext(ctx, "Invalid request body for order update", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&req)) {
		return
	}

	if err := h.OrderUseCase.UpdateOrders(ctx, req.Orders); err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	ids := make([]int, len(req.Orders))
	for i, order := range req.Orders {
		ids[i] = order.OrderID
	}
	h.API.Accepted(ctx, w, map[string]any{"updated": ids})
}

// SyncHandler runs one sync pass and reports what it did
// Returns a 409 status code when another pass is running
func (h *OrderHandler) SyncHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Manual sync requested")

	report, err := h.OrderUseCase.SyncSoldItems(ctx)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, afterbuy_service.SyncReportToResponse(report))
}

// ListStoredHandler lists stored order snapshots
// Query: page, limit
func (h *OrderHandler) ListStoredHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := newQueryParser(r.URL.Query())
	query := afterbuy_service.ListOrdersQuery{
		Page:  q.Int("page", 1),
		Limit: q.Int("limit", defaultOrderListLimit),
	}
	if err := q.Err(); err != nil {
		h.API.BadRequest(ctx, w, err.Error())
		return
	}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&query)) {
		return
	}

	orders, total, err := h.OrderUseCase.ListStoredOrders(ctx, query.Offset(), query.Limit)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.SuccessWithMeta(ctx, w, afterbuy_service.StoredOrderModelsToResponses(orders), &api.Meta{
		Pagination: api.NewPagination(query.Page, query.Limit, total),
	})
}

// GetStoredHandler returns the snapshot of one Afterbuy order
// Returns a 404 status code if the order was never synced
func (h *OrderHandler) GetStoredHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := chi.URLParam(r, "afterbuy_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.API.BadRequest(ctx, w, "afterbuy_id must be an integer")
		return
	}
	req := afterbuy_service.GetStoredOrderRequest{AfterbuyOrderID: id}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&req)) {
		return
	}

	order, err := h.OrderUseCase.GetStoredOrder(ctx, req.AfterbuyOrderID)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, afterbuy_service.StoredOrderModelToResponse(order))
}
