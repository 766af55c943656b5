package afterbuy_service

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
)

// SoldOrderEventType is sent in the type header of every sold order event
const SoldOrderEventType = "afterbuy.sold_order.synced"

// SoldOrderEvent is published for every order stored by a sync pass
type SoldOrderEvent struct {
	AfterbuyOrderID int64     `json:"afterbuy_order_id"`
	InvoiceNumber   int64     `json:"invoice_number"`
	BuyerEmail      string    `json:"buyer_email"`
	FullAmount      string    `json:"full_amount"`
	OrderDate       time.Time `json:"order_date"`
	SyncedAt        time.Time `json:"synced_at"`
}

// NewSoldOrderEvent builds the event for a stored snapshot
func NewSoldOrderEvent(order *model.SoldOrder) SoldOrderEvent {
	return SoldOrderEvent{
		AfterbuyOrderID: order.AfterbuyOrderID,
		InvoiceNumber:   order.InvoiceNumber,
		BuyerEmail:      order.BuyerEmail,
		FullAmount:      order.FullAmount.StringFixed(2),
		OrderDate:       order.OrderDate.UTC(),
		SyncedAt:        order.SyncedAt.UTC(),
	}
}

// Key partitions events by order
func (e SoldOrderEvent) Key() []byte {
	return []byte(strconv.FormatInt(e.AfterbuyOrderID, 10))
}

func (e SoldOrderEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
