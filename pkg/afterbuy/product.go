package afterbuy

// Product is one shop product returned by GetShopProducts.
type Product struct {
	ProductID              int      `xml:"ProductID"`
	Anr                    string   `xml:"Anr"`
	EAN                    string   `xml:"EAN"`
	Name                   string   `xml:"Name"`
	ShortDescription       string   `xml:"ShortDescription"`
	Description            string   `xml:"Description"`
	Keywords               string   `xml:"Keywords"`
	Quantity               int      `xml:"Quantity"`
	AuctionQuantity        int      `xml:"AuctionQuantity"`
	AvailableShopQuantity  int      `xml:"AvailableShopQuantity"`
	MinimumStock           int      `xml:"MinimumStock"`
	Stock                  Bool     `xml:"Stock"`
	Discontinued           Bool     `xml:"Discontinued"`
	SellingPrice           Float    `xml:"SellingPrice"`
	BuyingPrice            Float    `xml:"BuyingPrice"`
	DealerPrice            Float    `xml:"DealerPrice"`
	TaxRate                Float    `xml:"TaxRate"`
	Weight                 Float    `xml:"Weight"`
	UnitOfQuantity         string   `xml:"UnitOfQuantity"`
	ProductBrand           string   `xml:"ProductBrand"`
	ManufacturerPartNumber string   `xml:"ManufacturerPartNumber"`
	Level                  int      `xml:"Level"`
	ModDate                Date     `xml:"ModDate"`
	Tags                   []string `xml:"Tags>Tag"`
	Catalogs               []int    `xml:"Catalogs>CatalogID"`
}

// Catalog is a shop catalog node. Sub-catalogs are nested in document order.
type Catalog struct {
	CatalogID      int       `xml:"CatalogID"`
	Name           string    `xml:"Name"`
	Description    string    `xml:"Description"`
	ParentID       int       `xml:"ParentID"`
	Level          int       `xml:"Level"`
	Position       int       `xml:"Position"`
	AdditionalText string    `xml:"AdditionalText"`
	ShowCatalog    Bool      `xml:"ShowCatalog"`
	Picture1       string    `xml:"Picture1"`
	Picture2       string    `xml:"Picture2"`
	Children       []Catalog `xml:"Catalog"`
}

// StockProductRef identifies a product for GetStockInfo. At least one of
// the three keys must be set.
type StockProductRef struct {
	ProductID int    `xml:"ProductID,omitempty" json:"product_id,omitempty" validate:"required_without_all=Anr EAN"`
	Anr       string `xml:"Anr,omitempty" json:"anr,omitempty"`
	EAN       string `xml:"EAN,omitempty" json:"ean,omitempty"`
}

// StockProduct is the stock view of a product returned by GetStockInfo.
type StockProduct struct {
	ProductID             int    `xml:"ProductID"`
	Anr                   string `xml:"Anr"`
	EAN                   string `xml:"EAN"`
	Name                  string `xml:"Name"`
	Quantity              int    `xml:"Quantity"`
	AuctionQuantity       int    `xml:"AuctionQuantity"`
	AvailableShopQuantity int    `xml:"AvailableShopQuantity"`
	MinimumStock          int    `xml:"MinimumStock"`
	Discontinued          Bool   `xml:"Discontinued"`
	FullFilmentQuantity   int    `xml:"FullFilmentQuantity"`
	FullFilmentImport     Date   `xml:"FullFilmentImport"`
}
