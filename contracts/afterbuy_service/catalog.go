package afterbuy_service

import (
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
)

// PaymentServiceResponse represents a payment service in API responses
type PaymentServiceResponse struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Level            int     `json:"level"`
	Platform         string  `json:"platform,omitempty"`
	Surcharge        float64 `json:"surcharge"`
	SurchargePercent float64 `json:"surcharge_percent"`
}

// ShippingServiceResponse represents a shipping service with its methods
type ShippingServiceResponse struct {
	Name          string                   `json:"name"`
	DisplayArea   string                   `json:"display_area,omitempty"`
	GroupPriority int                      `json:"group_priority"`
	Methods       []ShippingMethodResponse `json:"methods"`
}

type ShippingMethodResponse struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Level            int     `json:"level"`
	PriceFrom        float64 `json:"price_from"`
	PriceTo          float64 `json:"price_to"`
	TaxRate          float64 `json:"tax_rate"`
	FreeShippingFrom float64 `json:"free_shipping_from"`
}

// ProductResponse represents a shop product in API responses
type ProductResponse struct {
	ID                    int        `json:"id"`
	Anr                   string     `json:"anr,omitempty"`
	EAN                   string     `json:"ean,omitempty"`
	Name                  string     `json:"name"`
	ShortDescription      string     `json:"short_description,omitempty"`
	Quantity              int        `json:"quantity"`
	AvailableShopQuantity int        `json:"available_shop_quantity"`
	MinimumStock          int        `json:"minimum_stock"`
	Stock                 bool       `json:"stock"`
	Discontinued          bool       `json:"discontinued"`
	SellingPrice          float64    `json:"selling_price"`
	BuyingPrice           float64    `json:"buying_price"`
	TaxRate               float64    `json:"tax_rate"`
	Weight                float64    `json:"weight"`
	Brand                 string     `json:"brand,omitempty"`
	ModDate               *time.Time `json:"mod_date,omitempty"`
	Tags                  []string   `json:"tags,omitempty"`
	CatalogIDs            []int      `json:"catalog_ids,omitempty"`
}

// ProductListResponse is the payload of GET /shop-products
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// CatalogResponse represents a catalog and its sub catalogs
type CatalogResponse struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	ParentID    int               `json:"parent_id"`
	Level       int               `json:"level"`
	Position    int               `json:"position"`
	Visible     bool              `json:"visible"`
	Children    []CatalogResponse `json:"children,omitempty"`
}

// StockResponse represents the stock of one product
type StockResponse struct {
	ProductID             int        `json:"product_id"`
	Anr                   string     `json:"anr,omitempty"`
	EAN                   string     `json:"ean,omitempty"`
	Name                  string     `json:"name"`
	Quantity              int        `json:"quantity"`
	AuctionQuantity       int        `json:"auction_quantity"`
	AvailableShopQuantity int        `json:"available_shop_quantity"`
	MinimumStock          int        `json:"minimum_stock"`
	Discontinued          bool       `json:"discontinued"`
	FulfilmentQuantity    int        `json:"fulfilment_quantity"`
	FulfilmentImport      *time.Time `json:"fulfilment_import,omitempty"`
}

func optionalTime(d afterbuy.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// PaymentServicesToResponses converts afterbuy payment services
func PaymentServicesToResponses(services []afterbuy.PaymentService) []PaymentServiceResponse {
	responses := make([]PaymentServiceResponse, len(services))
	for i, s := range services {
		responses[i] = PaymentServiceResponse{
			ID:               s.PaymentServiceID,
			Name:             s.Name,
			Level:            s.Level,
			Platform:         s.Platform,
			Surcharge:        float64(s.Surcharge),
			SurchargePercent: float64(s.SurchargePercent),
		}
	}
	return responses
}

// ShippingServicesToResponses converts afterbuy shipping services
func ShippingServicesToResponses(services []afterbuy.ShippingService) []ShippingServiceResponse {
	responses := make([]ShippingServiceResponse, len(services))
	for i, s := range services {
		methods := make([]ShippingMethodResponse, len(s.ShippingMethods))
		for j, m := range s.ShippingMethods {
			methods[j] = ShippingMethodResponse{
				ID:               m.ShippingMethodID,
				Name:             m.Name,
				Level:            m.Level,
				PriceFrom:        float64(m.PriceFrom),
				PriceTo:          float64(m.PriceTo),
				TaxRate:          float64(m.TaxRate),
				FreeShippingFrom: float64(m.FreeShippingFrom),
			}
		}
		responses[i] = ShippingServiceResponse{
			Name:          s.Name,
			DisplayArea:   s.DisplayArea,
			GroupPriority: s.GroupPriority,
			Methods:       methods,
		}
	}
	return responses
}

// ProductToResponse converts an afterbuy product
func ProductToResponse(p afterbuy.Product) ProductResponse {
	return ProductResponse{
		ID:                    p.ProductID,
		Anr:                   p.Anr,
		EAN:                   p.EAN,
		Name:                  p.Name,
		ShortDescription:      p.ShortDescription,
		Quantity:              p.Quantity,
		AvailableShopQuantity: p.AvailableShopQuantity,
		MinimumStock:          p.MinimumStock,
		Stock:                 bool(p.Stock),
		Discontinued:          bool(p.Discontinued),
		SellingPrice:          float64(p.SellingPrice),
		BuyingPrice:           float64(p.BuyingPrice),
		TaxRate:               float64(p.TaxRate),
		Weight:                float64(p.Weight),
		Brand:                 p.ProductBrand,
		ModDate:               optionalTime(p.ModDate),
		Tags:                  p.Tags,
		CatalogIDs:            p.Catalogs,
	}
}

// ProductsToResponse converts the result of GetShopProducts
func ProductsToResponse(result afterbuy.ShopProductsResult) ProductListResponse {
	products := make([]ProductResponse, len(result.Products))
	for i, p := range result.Products {
		products[i] = ProductToResponse(p)
	}
	return ProductListResponse{Products: products}
}

// CatalogsToResponses converts a catalog tree, keeping document order
func CatalogsToResponses(catalogs []afterbuy.Catalog) []CatalogResponse {
	if len(catalogs) == 0 {
		return nil
	}
	responses := make([]CatalogResponse, len(catalogs))
	for i, c := range catalogs {
		responses[i] = CatalogResponse{
			ID:          c.CatalogID,
			Name:        c.Name,
			Description: c.Description,
			ParentID:    c.ParentID,
			Level:       c.Level,
			Position:    c.Position,
			Visible:     bool(c.ShowCatalog),
			Children:    CatalogsToResponses(c.Children),
		}
	}
	return responses
}

// StockToResponses converts the result of GetStockInfo
func StockToResponses(products []afterbuy.StockProduct) []StockResponse {
	responses := make([]StockResponse, len(products))
	for i, p := range products {
		responses[i] = StockResponse{
			ProductID:             p.ProductID,
			Anr:                   p.Anr,
			EAN:                   p.EAN,
			Name:                  p.Name,
			Quantity:              p.Quantity,
			AuctionQuantity:       p.AuctionQuantity,
			AvailableShopQuantity: p.AvailableShopQuantity,
			MinimumStock:          p.MinimumStock,
			Discontinued:          bool(p.Discontinued),
			FulfilmentQuantity:    p.FullFilmentQuantity,
			FulfilmentImport:      optionalTime(p.FullFilmentImport),
		}
	}
	return responses
}
