package afterbuy

// Order is a sold order returned by GetSoldItems. Which blocks are filled
// depends on the requested DetailLevel.
type Order struct {
	OrderID        int          `xml:"OrderID"`
	OrderIDAlt     string       `xml:"OrderIDAlt"`
	InvoiceNumber  int          `xml:"InvoiceNumber"`
	OrderDate      Date         `xml:"OrderDate"`
	ModDate        Date         `xml:"ModDate"`
	FeedbackDate   Date         `xml:"FeedbackDate"`
	AdditionalInfo string       `xml:"AdditionalInfo"`
	TrackingLink   string       `xml:"TrackingLink"`
	Memo           string       `xml:"Memo"`
	InvoiceMemo    string       `xml:"InvoiceMemo"`
	EbayAccount    string       `xml:"EbayAccount"`
	AmazonAccount  string       `xml:"AmazonAccount"`
	BuyerInfo      BuyerInfo    `xml:"BuyerInfo"`
	PaymentInfo    PaymentInfo  `xml:"PaymentInfo"`
	ShippingInfo   ShippingInfo `xml:"ShippingInfo"`
	SoldItems      []SoldItem   `xml:"SoldItems>SoldItem"`
}

type BuyerInfo struct {
	BillingAddress  Address `xml:"BillingAddress"`
	ShippingAddress Address `xml:"ShippingAddress"`
}

type Address struct {
	AfterbuyUserID  int    `xml:"AfterbuyUserID"`
	UserIDPlatform  string `xml:"UserIDPlattform"`
	FirstName       string `xml:"FirstName"`
	LastName        string `xml:"LastName"`
	Company         string `xml:"Company"`
	Title           string `xml:"Title"`
	Street          string `xml:"Street"`
	Street2         string `xml:"Street2"`
	PostalCode      string `xml:"PostalCode"`
	City            string `xml:"City"`
	StateOrProvince string `xml:"StateOrProvince"`
	Country         string `xml:"Country"`
	CountryISO      string `xml:"CountryISO"`
	Phone           string `xml:"Phone"`
	Mail            string `xml:"Mail"`
	IsMerchant      Bool   `xml:"IsMerchant"`
}

type PaymentInfo struct {
	PaymentID            string `xml:"PaymentID"`
	PaymentMethod        string `xml:"PaymentMethod"`
	PaymentFunction      string `xml:"PaymentFunction"`
	PaymentTransactionID string `xml:"PaymentTransactionID"`
	PaymentStatus        string `xml:"PaymentStatus"`
	PaymentDate          Date   `xml:"PaymentDate"`
	AlreadyPaid          Float  `xml:"AlreadyPaid"`
	FullAmount           Float  `xml:"FullAmount"`
	InvoiceDate          Date   `xml:"InvoiceDate"`
}

type ShippingInfo struct {
	ShippingMethod      string `xml:"ShippingMethod"`
	ShippingCost        Float  `xml:"ShippingCost"`
	ShippingTotalWeight Float  `xml:"ShippingTotalWeight"`
	DeliveryDate        Date   `xml:"DeliveryDate"`
}

// SoldItem is one line of an order.
type SoldItem struct {
	ItemID             int                `xml:"ItemID"`
	ItemTitle          string             `xml:"ItemTitle"`
	ItemQuantity       int                `xml:"ItemQuantity"`
	ItemPrice          Float              `xml:"ItemPrice"`
	ItemEndDate        Date               `xml:"ItemEndDate"`
	TaxRate            Float              `xml:"TaxRate"`
	ItemWeight         Float              `xml:"ItemWeight"`
	ItemPlatformName   string             `xml:"ItemPlatformName"`
	ShopProductDetails ShopProductDetails `xml:"ShopProductDetails"`
}

type ShopProductDetails struct {
	ProductID      int    `xml:"ProductID"`
	EAN            string `xml:"EAN"`
	Anr            string `xml:"Anr"`
	UnitOfQuantity string `xml:"UnitOfQuantity"`
}

// OrderUpdate changes one order through UpdateSoldItems. Nil fields are
// left untouched by Afterbuy.
type OrderUpdate struct {
	OrderID        int             `xml:"OrderID" json:"order_id" validate:"required,gt=0"`
	AdditionalInfo *string         `xml:"AdditionalInfo,omitempty" json:"additional_info,omitempty"`
	MailDate       *Date           `xml:"MailDate,omitempty" json:"mail_date,omitempty"`
	ReminderDate   *Date           `xml:"ReminderDate,omitempty" json:"reminder_date,omitempty"`
	UserComment    *string         `xml:"UserComment,omitempty" json:"user_comment,omitempty"`
	OrderMemo      *string         `xml:"OrderMemo,omitempty" json:"order_memo,omitempty"`
	InvoiceMemo    *string         `xml:"InvoiceMemo,omitempty" json:"invoice_memo,omitempty"`
	OrderExported  *Bool           `xml:"OrderExported,omitempty" json:"order_exported,omitempty"`
	PaymentInfo    *PaymentUpdate  `xml:"PaymentInfo,omitempty" json:"payment_info,omitempty"`
	ShippingInfo   *ShippingUpdate `xml:"ShippingInfo,omitempty" json:"shipping_info,omitempty"`
}

type PaymentUpdate struct {
	PaymentMethod *string `xml:"PaymentMethod,omitempty" json:"payment_method,omitempty"`
	PaymentDate   *Date   `xml:"PaymentDate,omitempty" json:"payment_date,omitempty"`
	AlreadyPaid   *Float  `xml:"AlreadyPaid,omitempty" json:"already_paid,omitempty" validate:"omitempty,gte=0"`
}

type ShippingUpdate struct {
	ShippingMethod *string `xml:"ShippingMethod,omitempty" json:"shipping_method,omitempty"`
	ShippingGroup  *string `xml:"ShippingGroup,omitempty" json:"shipping_group,omitempty"`
	DeliveryDate   *Date   `xml:"DeliveryDate,omitempty" json:"delivery_date,omitempty"`
}
