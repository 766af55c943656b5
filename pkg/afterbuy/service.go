package afterbuy

type PaymentService struct {
	PaymentServiceID int    `xml:"PaymentServiceID"`
	Name             string `xml:"Name"`
	Level            int    `xml:"Level"`
	Platform         string `xml:"Plattform"`
	Surcharge        Float  `xml:"Surcharge"`
	SurchargePercent Float  `xml:"SurchargePercent"`
}

type ShippingService struct {
	Name            string           `xml:"Name"`
	DisplayArea     string           `xml:"DisplayArea"`
	GroupPriority   int              `xml:"GroupPrio"`
	ShippingMethods []ShippingMethod `xml:"ShippingMethods>ShippingMethod"`
}

type ShippingMethod struct {
	ShippingMethodID int    `xml:"ShippingMethodID"`
	Name             string `xml:"Name"`
	Level            int    `xml:"Level"`
	PriceFrom        Float  `xml:"PriceFrom"`
	PriceTo          Float  `xml:"PriceTo"`
	TaxRate          Float  `xml:"TaxRate"`
	FreeShippingFrom Float  `xml:"FreeShippingPriceFrom"`
}
