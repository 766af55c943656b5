package afterbuy

import (
	"encoding/xml"
	"strings"
)

// Values of <CallStatus>.
const (
	CallStatusSuccess = "Success"
	CallStatusWarning = "Warning"
	CallStatusError   = "Error"
)

// Response is implemented by every decoded <Afterbuy> document.
type Response interface {
	Header() *Envelope
}

// Envelope holds the status fields common to every response.
type Envelope struct {
	CallStatus string `xml:"CallStatus"`
	CallName   string `xml:"CallName"`
	VersionID  int    `xml:"VersionID"`
}

func (e *Envelope) Header() *Envelope {
	return e
}

// Failed reports whether Afterbuy rejected the call. The response still
// carries the remote error list.
func (e *Envelope) Failed() bool {
	return strings.EqualFold(e.CallStatus, CallStatusError)
}

// APIError is one entry of <ErrorList>.
type APIError struct {
	Code            int    `xml:"ErrorCode"`
	Description     string `xml:"ErrorDescription"`
	LongDescription string `xml:"ErrorLongDescription"`
}

// APIWarning is one entry of <WarningList>.
type APIWarning struct {
	Code            int    `xml:"WarningCode"`
	Description     string `xml:"WarningDescription"`
	LongDescription string `xml:"WarningLongDescription"`
}

// ResultErrors is embedded in every <Result>.
type ResultErrors struct {
	Errors   []APIError   `xml:"ErrorList>Error"`
	Warnings []APIWarning `xml:"WarningList>Warning"`
}

type PaginationResult struct {
	TotalNumberOfEntries int `xml:"TotalNumberOfEntries"`
	TotalNumberOfPages   int `xml:"TotalNumberOfPages"`
	ItemsPerPage         int `xml:"ItemsPerPage"`
	PageNumber           int `xml:"PageNumber"`
}

type GetPaymentServicesResponse struct {
	XMLName xml.Name `xml:"Afterbuy" json:"-"`
	Envelope
	Result PaymentServicesResult `xml:"Result"`
}

type PaymentServicesResult struct {
	ResultErrors
	PaymentServices []PaymentService `xml:"PaymentServices>PaymentService"`
}

type GetShippingServicesResponse struct {
	XMLName xml.Name `xml:"Afterbuy" json:"-"`
	Envelope
	Result ShippingServicesResult `xml:"Result"`
}

type ShippingServicesResult struct {
	ResultErrors
	ShippingServices []ShippingService `xml:"ShippingServices>ShippingService"`
}

type GetStockInfoResponse struct {
	XMLName xml.Name `xml:"Afterbuy" json:"-"`
	Envelope
	Result StockInfoResult `xml:"Result"`
}

type StockInfoResult struct {
	ResultErrors
	Products []StockProduct `xml:"Products>Product"`
}

type GetShopProductsResponse struct {
	XMLName xml.Name `xml:"Afterbuy" json:"-"`
	Envelope
	Result ShopProductsResult `xml:"Result"`
}

type ShopProductsResult struct {
	ResultErrors
	HasMoreProducts Bool             `xml:"HasMoreProducts"`
	LastProductID   int              `xml:"LastProductID"`
	Products        []Product        `xml:"Products>Product"`
	Pagination      PaginationResult `xml:"PaginationResult"`
}

type GetShopCatalogsResponse struct {
	XMLName xml.Name `xml:"Afterbuy" json:"-"`
	Envelope
	Result ShopCatalogsResult `xml:"Result"`
}

type ShopCatalogsResult struct {
	ResultErrors
	HasMoreCatalogs Bool      `xml:"HasMoreCatalogs"`
	LastCatalogID   int       `xml:"LastCatalogID"`
	Catalogs        []Catalog `xml:"Catalogs>Catalog"`
}

type GetSoldItemsResponse struct {
	XMLName xml.Name `xml:"Afterbuy" json:"-"`
	Envelope
	Result SoldItemsResult `xml:"Result"`
}

type SoldItemsResult struct {
	ResultErrors
	HasMoreItems Bool    `xml:"HasMoreItems"`
	OrdersCount  int     `xml:"OrdersCount"`
	ItemsCount   int     `xml:"ItemsCount"`
	LastOrderID  int     `xml:"LastOrderID"`
	Orders       []Order `xml:"Orders>Order"`
}

type UpdateSoldItemsResponse struct {
	XMLName xml.Name `xml:"Afterbuy" json:"-"`
	Envelope
	Result UpdateSoldItemsResult `xml:"Result"`
}

type UpdateSoldItemsResult struct {
	ResultErrors
}
