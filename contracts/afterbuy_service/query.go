// Package afterbuy_service contains request and response contracts for the afterbuy service
package afterbuy_service

import (
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
)

// ShopProductsQuery represents the query of GET /shop-products
type ShopProductsQuery struct {
	Page       int      `validate:"gte=1"`
	Limit      int      `validate:"gte=1,lte=250"`
	ProductIDs []int    `validate:"dive,gt=0"`
	Anrs       []string `validate:"dive,required"`
	EANs       []string `validate:"dive,required"`
	Tags       []string `validate:"dive,required"`
	CatalogIDs []int    `validate:"dive,gt=0"`
	Pagination *bool
}

// CallOptions converts the query into afterbuy call options
func (q ShopProductsQuery) CallOptions() []afterbuy.CallOption {
	opts := []afterbuy.CallOption{
		afterbuy.WithPage(q.Page),
		afterbuy.WithMaxItems(q.Limit),
	}
	if q.Pagination != nil {
		opts = append(opts, afterbuy.WithPagination(*q.Pagination))
	}

	var filters []afterbuy.Filter
	if len(q.ProductIDs) > 0 {
		filters = append(filters, afterbuy.ProductIDFilter{IDs: q.ProductIDs})
	}
	if len(q.Anrs) > 0 {
		filters = append(filters, afterbuy.AnrFilter{Anrs: q.Anrs})
	}
	if len(q.EANs) > 0 {
		filters = append(filters, afterbuy.EANFilter{EANs: q.EANs})
	}
	if len(q.Tags) > 0 {
		filters = append(filters, afterbuy.TagFilter{Tags: q.Tags})
	}
	if len(q.CatalogIDs) > 0 {
		filters = append(filters, afterbuy.CatalogIDFilter{IDs: q.CatalogIDs})
	}
	if len(filters) > 0 {
		opts = append(opts, afterbuy.WithFilters(filters...))
	}
	return opts
}

// ShopCatalogsQuery represents the query of GET /shop-catalogs
type ShopCatalogsQuery struct {
	Limit      int   `validate:"gte=1,lte=200"`
	CatalogIDs []int `validate:"dive,gt=0"`
}

// CallOptions converts the query into afterbuy call options
func (q ShopCatalogsQuery) CallOptions() []afterbuy.CallOption {
	opts := []afterbuy.CallOption{afterbuy.WithMaxItems(q.Limit)}
	if len(q.CatalogIDs) > 0 {
		opts = append(opts, afterbuy.WithFilters(afterbuy.CatalogIDFilter{IDs: q.CatalogIDs}))
	}
	return opts
}

// StockQuery represents the query of GET /stock
type StockQuery struct {
	ProductIDs []int    `validate:"dive,gt=0"`
	Anrs       []string `validate:"dive,required"`
	EANs       []string `validate:"dive,required"`
}

// Refs lists one product reference per requested id, article number and EAN
func (q StockQuery) Refs() []afterbuy.StockProductRef {
	refs := make([]afterbuy.StockProductRef, 0, len(q.ProductIDs)+len(q.Anrs)+len(q.EANs))
	for _, id := range q.ProductIDs {
		refs = append(refs, afterbuy.StockProductRef{ProductID: id})
	}
	for _, anr := range q.Anrs {
		refs = append(refs, afterbuy.StockProductRef{Anr: anr})
	}
	for _, ean := range q.EANs {
		refs = append(refs, afterbuy.StockProductRef{EAN: ean})
	}
	return refs
}

// SoldItemsQuery represents the query of GET /sold-items
type SoldItemsQuery struct {
	Limit    int   `validate:"gte=1,lte=250"`
	OrderIDs []int `validate:"dive,gt=0"`
	// From and To bound the modification date. An inverted range is
	// rejected when the request is built.
	From *time.Time
	To   *time.Time
	Desc bool
}

// CallOptions converts the query into afterbuy call options
func (q SoldItemsQuery) CallOptions() []afterbuy.CallOption {
	opts := []afterbuy.CallOption{afterbuy.WithMaxItems(q.Limit)}
	if q.Desc {
		opts = append(opts, afterbuy.WithOrderDirection(afterbuy.OrderDescending))
	}

	var filters []afterbuy.Filter
	if len(q.OrderIDs) > 0 {
		filters = append(filters, afterbuy.OrderIDFilter{IDs: q.OrderIDs})
	}
	if q.From != nil || q.To != nil {
		f := afterbuy.DateFilter{Field: afterbuy.DateFieldModDate}
		if q.From != nil {
			f.From = *q.From
		}
		if q.To != nil {
			f.To = *q.To
		}
		filters = append(filters, f)
	}
	if len(filters) > 0 {
		opts = append(opts, afterbuy.WithFilters(filters...))
	}
	return opts
}

// ListOrdersQuery represents the query of GET /orders
type ListOrdersQuery struct {
	Page  int `validate:"gte=1"`
	Limit int `validate:"gte=1,lte=100"`
}

// Offset returns the row offset of the page
func (q ListOrdersQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
