package afterbuy_service

import (
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
)

// UpdateOrdersRequest represents the request payload of PATCH /sold-items
type UpdateOrdersRequest struct {
	Orders []afterbuy.OrderUpdate `json:"orders" validate:"required,min=1,dive"`
}

// GetStoredOrderRequest represents the request for a stored order snapshot
type GetStoredOrderRequest struct {
	AfterbuyOrderID int64 `validate:"required,gt=0"`
}

// RevokeTokenRequest represents the request payload of POST /auth/revoke.
// An empty token revokes the bearer token of the request.
type RevokeTokenRequest struct {
	Token string `json:"token" validate:"omitempty,jwt"`
}

// AddressResponse represents a buyer address
type AddressResponse struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Company    string `json:"company,omitempty"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	CountryISO string `json:"country_iso"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// SoldItemResponse represents one line of an order
type SoldItemResponse struct {
	ItemID    int     `json:"item_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	TaxRate   float64 `json:"tax_rate"`
	ProductID int     `json:"product_id,omitempty"`
	Anr       string  `json:"anr,omitempty"`
	EAN       string  `json:"ean,omitempty"`
}

// OrderResponse represents an Afterbuy order in API responses
type OrderResponse struct {
	OrderID         int                `json:"order_id"`
	InvoiceNumber   int                `json:"invoice_number"`
	OrderDate       *time.Time         `json:"order_date,omitempty"`
	ModDate         *time.Time         `json:"mod_date,omitempty"`
	BillingAddress  AddressResponse    `json:"billing_address"`
	ShippingAddress AddressResponse    `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method,omitempty"`
	PaymentStatus   string             `json:"payment_status,omitempty"`
	FullAmount      float64            `json:"full_amount"`
	AlreadyPaid     float64            `json:"already_paid"`
	ShippingMethod  string             `json:"shipping_method,omitempty"`
	ShippingCost    float64            `json:"shipping_cost"`
	TrackingLink    string             `json:"tracking_link,omitempty"`
	Items           []SoldItemResponse `json:"items"`
}

// OrderListResponse is the payload of GET /sold-items
type OrderListResponse struct {
	Orders      []OrderResponse `json:"orders"`
	OrdersCount int             `json:"orders_count"`
	ItemsCount  int             `json:"items_count"`
}

// StoredOrderResponse represents an order snapshot kept by the sync
type StoredOrderResponse struct {
	ID              string    `json:"id"`
	AfterbuyOrderID int64     `json:"afterbuy_order_id"`
	InvoiceNumber   int64     `json:"invoice_number"`
	BuyerName       string    `json:"buyer_name"`
	BuyerEmail      string    `json:"buyer_email,omitempty"`
	Country         string    `json:"country,omitempty"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	ShippingMethod  string    `json:"shipping_method,omitempty"`
	FullAmount      string    `json:"full_amount"`
	AlreadyPaid     string    `json:"already_paid"`
	ItemCount       int       `json:"item_count"`
	OrderDate       time.Time `json:"order_date"`
	ModDate         time.Time `json:"mod_date"`
	SyncedAt        time.Time `json:"synced_at"`
}

// SyncReportResponse is the payload of POST /sold-items/sync
type SyncReportResponse struct {
	Fetched     int       `json:"fetched"`
	Stored      int       `json:"stored"`
	Published   int       `json:"published"`
	HasMore     bool      `json:"has_more"`
	Cursor      time.Time `json:"cursor"`
	LastOrderID int       `json:"last_order_id,omitempty"`
}

func addressToResponse(a afterbuy.Address) AddressResponse {
	return AddressResponse{
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Company:    a.Company,
		Street:     a.Street,
		PostalCode: a.PostalCode,
		City:       a.City,
		CountryISO: a.CountryISO,
		Email:      a.Mail,
		Phone:      a.Phone,
	}
}

// OrderToResponse converts an afterbuy order
func OrderToResponse(o afterbuy.Order) OrderResponse {
	items := make([]SoldItemResponse, len(o.SoldItems))
	for i, item := range o.SoldItems {
		items[i] = SoldItemResponse{
			ItemID:    item.ItemID,
			Title:     item.ItemTitle,
			Quantity:  item.ItemQuantity,
			Price:     float64(item.ItemPrice),
			TaxRate:   float64(item.TaxRate),
			ProductID: item.ShopProductDetails.ProductID,
			Anr:       item.ShopProductDetails.Anr,
			EAN:       item.ShopProductDetails.EAN,
		}
	}

	return OrderResponse{
		OrderID:         o.OrderID,
		InvoiceNumber:   o.InvoiceNumber,
		OrderDate:       optionalTime(o.OrderDate),
		ModDate:         optionalTime(o.ModDate),
		BillingAddress:  addressToResponse(o.BuyerInfo.BillingAddress),
		ShippingAddress: addressToResponse(o.BuyerInfo.ShippingAddress),
		PaymentMethod:   o.PaymentInfo.PaymentMethod,
		PaymentStatus:   o.PaymentInfo.PaymentStatus,
		FullAmount:      float64(o.PaymentInfo.FullAmount),
		AlreadyPaid:     float64(o.PaymentInfo.AlreadyPaid),
		ShippingMethod:  o.ShippingInfo.ShippingMethod,
		ShippingCost:    float64(o.ShippingInfo.ShippingCost),
		TrackingLink:    o.TrackingLink,
		Items:           items,
	}
}

// SoldItemsToResponse converts the result of GetSoldItems
func SoldItemsToResponse(result afterbuy.SoldItemsResult) OrderListResponse {
	orders := make([]OrderResponse, len(result.Orders))
	for i, o := range result.Orders {
		orders[i] = OrderToResponse(o)
	}
	return OrderListResponse{
		Orders:      orders,
		OrdersCount: result.OrdersCount,
		ItemsCount:  result.ItemsCount,
	}
}

// StoredOrderModelToResponse converts model.SoldOrder to StoredOrderResponse
func StoredOrderModelToResponse(order *model.SoldOrder) *StoredOrderResponse {
	return &StoredOrderResponse{
		ID:              order.ID,
		AfterbuyOrderID: order.AfterbuyOrderID,
		InvoiceNumber:   order.InvoiceNumber,
		BuyerName:       order.BuyerName,
		BuyerEmail:      order.BuyerEmail,
		Country:         order.Country,
		PaymentMethod:   order.PaymentMethod,
		ShippingMethod:  order.ShippingMethod,
		FullAmount:      order.FullAmount.StringFixed(2),
		AlreadyPaid:     order.AlreadyPaid.StringFixed(2),
		ItemCount:       order.ItemCount,
		OrderDate:       order.OrderDate,
		ModDate:         order.ModDate,
		SyncedAt:        order.SyncedAt,
	}
}

// StoredOrderModelsToResponses converts slice of model.SoldOrder
func StoredOrderModelsToResponses(orders []*model.SoldOrder) []StoredOrderResponse {
	responses := make([]StoredOrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *StoredOrderModelToResponse(order)
	}
	return responses
}

// SyncReportToResponse converts model.SyncReport to SyncReportResponse
func SyncReportToResponse(report *model.SyncReport) *SyncReportResponse {
	return &SyncReportResponse{
		Fetched:     report.Fetched,
		Stored:      report.Stored,
		Published:   report.Published,
		HasMore:     report.HasMore,
		Cursor:      report.Cursor,
		LastOrderID: report.LastOrderID,
	}
}
