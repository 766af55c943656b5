package http

import (
	"net/http"

	"github.com/ahhussein/afterbuy-sdk/contracts/afterbuy_service"
	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/api"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/pkg/validator"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/usecase"
)

// CatalogHandler handles HTTP requests for shop configuration and products
type CatalogHandler struct {
	// CatalogUseCase contains the catalog read operations
	CatalogUseCase usecase.CatalogUseCase
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewCatalogHandler creates a new instance of CatalogHandler
func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, appLogger logger.LoggerInterface) *CatalogHandler {
	return &CatalogHandler{
		CatalogUseCase: catalogUseCase,
		Logger:         appLogger,
		API:            api.New(),
	}
}

// PaymentServicesHandler lists the configured payment services
func (h *CatalogHandler) PaymentServicesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	services, err := h.CatalogUseCase.PaymentServices(ctx)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, afterbuy_service.PaymentServicesToResponses(services))
}

// ShippingServicesHandler lists the configured shipping services
func (h *CatalogHandler) ShippingServicesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	services, err := h.CatalogUseCase.ShippingServices(ctx)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, afterbuy_service.ShippingServicesToResponses(services))
}

// ShopProductsHandler returns one page of shop products
// Query: page, limit, product_id, anr, ean, tag, catalog_id, pagination
// Returns a 400 status code for malformed parameters and 422 for out of range values
func (h *CatalogHandler) ShopProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := newQueryParser(r.URL.Query())
	query := afterbuy_service.ShopProductsQuery{
		Page:       q.Int("page", afterbuy.DefaultPage),
		Limit:      q.Int("limit", afterbuy.DefaultMaxShopItems),
		ProductIDs: q.Ints("product_id"),
		Anrs:       q.Strings("anr"),
		EANs:       q.Strings("ean"),
		Tags:       q.Strings("tag"),
		CatalogIDs: q.Ints("catalog_id"),
		Pagination: q.Bool("pagination"),
	}
	if err := q.Err(); err != nil {
		h.API.BadRequest(ctx, w, err.Error())
		return
	}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&query)) {
		return
	}

	result, err := h.CatalogUseCase.ShopProducts(ctx, query)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	meta := &api.Meta{Cursor: &api.Cursor{
		Limit:   query.Limit,
		LastID:  result.LastProductID,
		HasMore: bool(result.HasMoreProducts),
	}}
	if p := result.Pagination; p.ItemsPerPage > 0 {
		meta.Pagination = api.NewPagination(p.PageNumber, p.ItemsPerPage, p.TotalNumberOfEntries)
	}
	h.API.SuccessWithMeta(ctx, w, afterbuy_service.ProductsToResponse(*result), meta)
}

// ShopCatalogsHandler returns the catalog tree
// Query: limit, catalog_id
func (h *CatalogHandler) ShopCatalogsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := newQueryParser(r.URL.Query())
	query := afterbuy_service.ShopCatalogsQuery{
		Limit:      q.Int("limit", afterbuy.DefaultMaxCatalogs),
		CatalogIDs: q.Ints("catalog_id"),
	}
	if err := q.Err(); err != nil {
		h.API.BadRequest(ctx, w, err.Error())
		return
	}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&query)) {
		return
	}

	result, err := h.CatalogUseCase.ShopCatalogs(ctx, query)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.SuccessWithMeta(ctx, w, afterbuy_service.CatalogsToResponses(result.Catalogs), &api.Meta{
		Cursor: &api.Cursor{Limit: query.Limit, LastID: result.LastCatalogID, HasMore: bool(result.HasMoreCatalogs)},
	})
}

// StockHandler returns the stock of the referenced products
// Query: product_id, anr, ean; at least one is required
func (h *CatalogHandler) StockHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := newQueryParser(r.URL.Query())
	query := afterbuy_service.StockQuery{
		ProductIDs: q.Ints("product_id"),
		Anrs:       q.Strings("anr"),
		EANs:       q.Strings("ean"),
	}
	if err := q.Err(); err != nil {
		h.API.BadRequest(ctx, w, err.Error())
		return
	}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&query)) {
		return
	}

	products, err := h.CatalogUseCase.StockInfo(ctx, query)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, afterbuy_service.StockToResponses(products))
}
