// Package usecase contains business logic for the afterbuy gateway
package usecase

import (
	"context"

	"github.com/ahhussein/afterbuy-sdk/contracts/afterbuy_service"
	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/metrics"
)

// CatalogUseCase defines read operations on the shop configuration and products
type CatalogUseCase interface {
	PaymentServices(ctx context.Context) ([]afterbuy.PaymentService, error)
	ShippingServices(ctx context.Context) ([]afterbuy.ShippingService, error)
	ShopProducts(ctx context.Context, query afterbuy_service.ShopProductsQuery) (*afterbuy.ShopProductsResult, error)
	ShopCatalogs(ctx context.Context, query afterbuy_service.ShopCatalogsQuery) (*afterbuy.ShopCatalogsResult, error)
	StockInfo(ctx context.Context, query afterbuy_service.StockQuery) ([]afterbuy.StockProduct, error)
}

type catalogUseCase struct {
	client   afterbuy.AfterbuyClient
	upstream upstream
	logger   logger.LoggerInterface
}

// NewCatalogUseCase creates a new instance of catalogUseCase
func NewCatalogUseCase(client afterbuy.AfterbuyClient, m *metrics.Metrics, appLogger logger.LoggerInterface) CatalogUseCase {
	return &catalogUseCase{
		client:   client,
		upstream: upstream{metrics: m, logger: appLogger},
		logger:   appLogger,
	}
}

func (uc *catalogUseCase) PaymentServices(ctx context.Context) ([]afterbuy.PaymentService, error) {
	res, err := uc.client.GetPaymentServices(ctx)
	resp, err := unwrap(ctx, uc.upstream, afterbuy.CallGetPaymentServices, res, err,
		func(r *afterbuy.GetPaymentServicesResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return nil, err
	}
	return resp.Result.PaymentServices, nil
}

func (uc *catalogUseCase) ShippingServices(ctx context.Context) ([]afterbuy.ShippingService, error) {
	res, err := uc.client.GetShippingServices(ctx)
	resp, err := unwrap(ctx, uc.upstream, afterbuy.CallGetShippingServices, res, err,
		func(r *afterbuy.GetShippingServicesResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return nil, err
	}
	return resp.Result.ShippingServices, nil
}

// ShopProducts returns one page of products
func (uc *catalogUseCase) ShopProducts(ctx context.Context, query afterbuy_service.ShopProductsQuery) (*afterbuy.ShopProductsResult, error) {
	uc.logger.InfoContext(ctx, "Fetching shop products", "page", query.Page, "limit", query.Limit)

	res, err := uc.client.GetShopProducts(ctx, query.CallOptions()...)
	resp, err := unwrap(ctx, uc.upstream, afterbuy.CallGetShopProducts, res, err,
		func(r *afterbuy.GetShopProductsResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

func (uc *catalogUseCase) ShopCatalogs(ctx context.Context, query afterbuy_service.ShopCatalogsQuery) (*afterbuy.ShopCatalogsResult, error) {
	res, err := uc.client.GetShopCatalogs(ctx, query.CallOptions()...)
	resp, err := unwrap(ctx, uc.upstream, afterbuy.CallGetShopCatalogs, res, err,
		func(r *afterbuy.GetShopCatalogsResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// StockInfo returns the stock of every referenced product
func (uc *catalogUseCase) StockInfo(ctx context.Context, query afterbuy_service.StockQuery) ([]afterbuy.StockProduct, error) {
	refs := query.Refs()
	uc.logger.InfoContext(ctx, "Fetching stock info", "products", len(refs))

	res, err := uc.client.GetStockInfo(ctx, refs)
	resp, err := unwrap(ctx, uc.upstream, afterbuy.CallGetStockInfo, res, err,
		func(r *afterbuy.GetStockInfoResponse) afterbuy.ResultErrors { return r.Result.ResultErrors })
	if err != nil {
		return nil, err
	}
	return resp.Result.Products, nil
}
