package afterbuy

import (
	"encoding/xml"

	"github.com/ahhussein/afterbuy-sdk/pkg/validator"
)

// Request is a typed <Request> document for one Afterbuy call.
type Request interface {
	CallName() string
}

var requestValidator = validator.NewValidator()

func validateRequest(callName string, req any) error {
	if fields := requestValidator.ValidateStruct(req); len(fields) > 0 {
		return &InvalidArgumentError{CallName: callName, Fields: fields}
	}
	return nil
}

// dataFilter is only written when it holds at least one filter.
type dataFilter struct {
	Filters []wireFilter `xml:"Filter"`
}

func newDataFilter(filters []wireFilter) *dataFilter {
	if len(filters) == 0 {
		return nil
	}
	return &dataFilter{Filters: filters}
}

type GetPaymentServicesRequest struct {
	XMLName    xml.Name    `xml:"Request"`
	Global     Global      `xml:"AfterbuyGlobal"`
	DataFilter *dataFilter `xml:"DataFilter,omitempty"`
}

func (r *GetPaymentServicesRequest) CallName() string { return r.Global.CallName }

// NewGetPaymentServicesRequest builds a request honoring WithFilters and WithDetailLevel.
func NewGetPaymentServicesRequest(c Credentials, opts ...CallOption) (*GetPaymentServicesRequest, error) {
	o := newCallOptions(opts)
	filters, err := encodeFilters(CallGetPaymentServices, paymentServiceFilters, o.filters)
	if err != nil {
		return nil, err
	}
	req := &GetPaymentServicesRequest{
		Global:     newGlobal(c, CallGetPaymentServices, o.detailLevel),
		DataFilter: newDataFilter(filters),
	}
	if err := validateRequest(CallGetPaymentServices, req); err != nil {
		return nil, err
	}
	return req, nil
}

type GetShippingServicesRequest struct {
	XMLName xml.Name `xml:"Request"`
	Global  Global   `xml:"AfterbuyGlobal"`
}

func (r *GetShippingServicesRequest) CallName() string { return r.Global.CallName }

func NewGetShippingServicesRequest(c Credentials, opts ...CallOption) (*GetShippingServicesRequest, error) {
	o := newCallOptions(opts)
	req := &GetShippingServicesRequest{
		Global: newGlobal(c, CallGetShippingServices, o.detailLevel),
	}
	if err := validateRequest(CallGetShippingServices, req); err != nil {
		return nil, err
	}
	return req, nil
}

type GetStockInfoRequest struct {
	XMLName  xml.Name          `xml:"Request"`
	Global   Global            `xml:"AfterbuyGlobal"`
	Products []StockProductRef `xml:"Products>Product" validate:"required,min=1,dive"`
}

func (r *GetStockInfoRequest) CallName() string { return r.Global.CallName }

// NewGetStockInfoRequest asks for the stock of the given products.
func NewGetStockInfoRequest(c Credentials, products []StockProductRef, opts ...CallOption) (*GetStockInfoRequest, error) {
	o := newCallOptions(opts)
	req := &GetStockInfoRequest{
		Global:   newGlobal(c, CallGetStockInfo, o.detailLevel),
		Products: products,
	}
	if err := validateRequest(CallGetStockInfo, req); err != nil {
		return nil, err
	}
	return req, nil
}

type GetShopProductsRequest struct {
	XMLName           xml.Name    `xml:"Request"`
	Global            Global      `xml:"AfterbuyGlobal"`
	MaxShopItems      int         `xml:"MaxShopItems" validate:"gte=1,lte=250"`
	PaginationEnabled Bool        `xml:"PaginationEnabled"`
	PageNumber        int         `xml:"PageNumber" validate:"gte=1"`
	DataFilter        *dataFilter `xml:"DataFilter,omitempty"`
}

func (r *GetShopProductsRequest) CallName() string { return r.Global.CallName }

// NewGetShopProductsRequest defaults to page 1, 250 items and pagination enabled.
func NewGetShopProductsRequest(c Credentials, opts ...CallOption) (*GetShopProductsRequest, error) {
	o := newCallOptions(opts)
	filters, err := encodeFilters(CallGetShopProducts, shopProductFilters, o.filters)
	if err != nil {
		return nil, err
	}
	req := &GetShopProductsRequest{
		Global:            newGlobal(c, CallGetShopProducts, o.detailLevel),
		MaxShopItems:      o.maxOr(DefaultMaxShopItems),
		PaginationEnabled: Bool(o.pagination),
		PageNumber:        o.page,
		DataFilter:        newDataFilter(filters),
	}
	if err := validateRequest(CallGetShopProducts, req); err != nil {
		return nil, err
	}
	return req, nil
}

type GetShopCatalogsRequest struct {
	XMLName     xml.Name    `xml:"Request"`
	Global      Global      `xml:"AfterbuyGlobal"`
	MaxCatalogs int         `xml:"MaxCatalogs" validate:"gte=1,lte=200"`
	DataFilter  *dataFilter `xml:"DataFilter,omitempty"`
}

func (r *GetShopCatalogsRequest) CallName() string { return r.Global.CallName }

func NewGetShopCatalogsRequest(c Credentials, opts ...CallOption) (*GetShopCatalogsRequest, error) {
	o := newCallOptions(opts)
	filters, err := encodeFilters(CallGetShopCatalogs, shopCatalogFilters, o.filters)
	if err != nil {
		return nil, err
	}
	req := &GetShopCatalogsRequest{
		Global:      newGlobal(c, CallGetShopCatalogs, o.detailLevel),
		MaxCatalogs: o.maxOr(DefaultMaxCatalogs),
		DataFilter:  newDataFilter(filters),
	}
	if err := validateRequest(CallGetShopCatalogs, req); err != nil {
		return nil, err
	}
	return req, nil
}

type GetSoldItemsRequest struct {
	XMLName        xml.Name       `xml:"Request"`
	Global         Global         `xml:"AfterbuyGlobal"`
	MaxSoldItems   int            `xml:"MaxSoldItems" validate:"gte=1,lte=250"`
	OrderDirection OrderDirection `xml:"OrderDirection" validate:"oneof=0 1"`
	DataFilter     *dataFilter    `xml:"DataFilter,omitempty"`
}

func (r *GetSoldItemsRequest) CallName() string { return r.Global.CallName }

// NewGetSoldItemsRequest defaults to 250 orders in ascending order.
func NewGetSoldItemsRequest(c Credentials, opts ...CallOption) (*GetSoldItemsRequest, error) {
	o := newCallOptions(opts)
	filters, err := encodeFilters(CallGetSoldItems, soldItemFilters, o.filters)
	if err != nil {
		return nil, err
	}
	req := &GetSoldItemsRequest{
		Global:         newGlobal(c, CallGetSoldItems, o.detailLevel),
		MaxSoldItems:   o.maxOr(DefaultMaxSoldItems),
		OrderDirection: o.orderDirection,
		DataFilter:     newDataFilter(filters),
	}
	if err := validateRequest(CallGetSoldItems, req); err != nil {
		return nil, err
	}
	return req, nil
}

type UpdateSoldItemsRequest struct {
	XMLName xml.Name      `xml:"Request"`
	Global  Global        `xml:"AfterbuyGlobal"`
	Orders  []OrderUpdate `xml:"Orders>Order" validate:"required,min=1,dive"`
}

func (r *UpdateSoldItemsRequest) CallName() string { return r.Global.CallName }

func NewUpdateSoldItemsRequest(c Credentials, orders []OrderUpdate, opts ...CallOption) (*UpdateSoldItemsRequest, error) {
	o := newCallOptions(opts)
	req := &UpdateSoldItemsRequest{
		Global: newGlobal(c, CallUpdateSoldItems, o.detailLevel),
		Orders: orders,
	}
	if err := validateRequest(CallUpdateSoldItems, req); err != nil {
		return nil, err
	}
	return req, nil
}
