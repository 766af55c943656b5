package model

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
)

// SoldOrder is the stored snapshot of an Afterbuy order taken by a sync pass
type SoldOrder struct {
	ID              string          `gorm:"type:char(26);primaryKey"`
	AfterbuyOrderID int64           `gorm:"uniqueIndex;not null"`
	InvoiceNumber   int64           `gorm:"not null"`
	BuyerName       string          `gorm:"type:varchar(255)"`
	BuyerEmail      string          `gorm:"type:varchar(255);index"`
	Country         string          `gorm:"type:varchar(8)"`
	PaymentMethod   string          `gorm:"type:varchar(100)"`
	ShippingMethod  string          `gorm:"type:varchar(100)"`
	FullAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AlreadyPaid     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ItemCount       int             `gorm:"not null"`
	OrderDate       time.Time       `gorm:"not null"`
	ModDate         time.Time       `gorm:"index"`
	SyncedAt        time.Time       `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (SoldOrder) TableName() string {
	return "sold_orders"
}

func (o *SoldOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = ulid.Make().String()
	}
	return nil
}

// NewSoldOrder takes a snapshot of order at syncedAt
func NewSoldOrder(order afterbuy.Order, syncedAt time.Time) *SoldOrder {
	billing := order.BuyerInfo.BillingAddress

	items := 0
	for _, item := range order.SoldItems {
		items += item.ItemQuantity
	}

	return &SoldOrder{
		AfterbuyOrderID: int64(order.OrderID),
		InvoiceNumber:   int64(order.InvoiceNumber),
		BuyerName:       strings.TrimSpace(billing.FirstName + " " + billing.LastName),
		BuyerEmail:      billing.Mail,
		Country:         billing.CountryISO,
		PaymentMethod:   order.PaymentInfo.PaymentMethod,
		ShippingMethod:  order.ShippingInfo.ShippingMethod,
		FullAmount:      decimal.NewFromFloat(float64(order.PaymentInfo.FullAmount)).Round(2),
		AlreadyPaid:     decimal.NewFromFloat(float64(order.PaymentInfo.AlreadyPaid)).Round(2),
		ItemCount:       items,
		OrderDate:       order.OrderDate.Time,
		ModDate:         order.ModDate.Time,
		SyncedAt:        syncedAt,
	}
}
