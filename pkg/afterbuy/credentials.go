package afterbuy

// Credentials identifies the Afterbuy account and the partner integration.
// A Client keeps its own copy; the values are never changed after New.
type Credentials struct {
	UserID          string
	UserPassword    string
	PartnerID       int
	PartnerPassword string
	// ErrorLanguage selects the language of remote error messages, e.g. "DE" or "EN".
	ErrorLanguage string
}

// DetailLevel controls how much payload Afterbuy returns. Levels are bit
// flags and may be combined; the client passes the value through unchanged.
type DetailLevel int

const (
	DetailLevelProcessData DetailLevel = 0
	DetailLevelArticles    DetailLevel = 2
	DetailLevelBuyer       DetailLevel = 4
	DetailLevelShipping    DetailLevel = 8
	DetailLevelPayment     DetailLevel = 16
	DetailLevelFull        DetailLevel = 255
)

// OrderDirection sorts GetSoldItems results by order id.
type OrderDirection int

const (
	OrderAscending  OrderDirection = 0
	OrderDescending OrderDirection = 1
)

// Call names understood by the Afterbuy interface.
const (
	CallGetPaymentServices  = "GetPaymentServices"
	CallGetShippingServices = "GetShippingServices"
	CallGetStockInfo        = "GetStockInfo"
	CallGetShopProducts     = "GetShopProducts"
	CallGetShopCatalogs     = "GetShopCatalogs"
	CallGetSoldItems        = "GetSoldItems"
	CallUpdateSoldItems     = "UpdateSoldItems"
)

// Global is the <AfterbuyGlobal> block carried by every request.
type Global struct {
	PartnerID       int         `xml:"PartnerID"`
	PartnerPassword CData       `xml:"PartnerPassword"`
	UserID          string      `xml:"UserID"`
	UserPassword    CData       `xml:"UserPassword"`
	CallName        string      `xml:"CallName"`
	DetailLevel     DetailLevel `xml:"DetailLevel" validate:"gte=0"`
	ErrorLanguage   string      `xml:"ErrorLanguage"`
}

func newGlobal(c Credentials, callName string, level DetailLevel) Global {
	return Global{
		PartnerID:       c.PartnerID,
		PartnerPassword: CData(c.PartnerPassword),
		UserID:          c.UserID,
		UserPassword:    CData(c.UserPassword),
		CallName:        callName,
		DetailLevel:     level,
		ErrorLanguage:   c.ErrorLanguage,
	}
}
