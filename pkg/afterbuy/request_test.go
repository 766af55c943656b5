package afterbuy

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCredentials = Credentials{
	UserID:          "shop-user",
	UserPassword:    "user-secret",
	PartnerID:       4711,
	PartnerPassword: "partner-secret",
	ErrorLanguage:   "DE",
}

func marshalRequest(t *testing.T, req Request) string {
	t.Helper()
	out, err := Codec{}.Marshal(req)
	require.NoError(t, err)
	return string(out)
}

func TestGetShopProductsRequest_Serialize(t *testing.T) {
	req, err := NewGetShopProductsRequest(testCredentials,
		WithPage(2),
		WithMaxItems(50),
		WithPagination(true),
	)
	require.NoError(t, err)

	body := marshalRequest(t, req)

	assert.True(t, strings.HasPrefix(body, xml.Header))
	assert.Contains(t, body, "<Request><AfterbuyGlobal>")
	assert.Contains(t, body, "<PartnerID>4711</PartnerID>")
	assert.Contains(t, body, "<PartnerPassword><![CDATA[partner-secret]]></PartnerPassword>")
	assert.Contains(t, body, "<UserID>shop-user</UserID>")
	assert.Contains(t, body, "<UserPassword><![CDATA[user-secret]]></UserPassword>")
	assert.Contains(t, body, "<CallName>GetShopProducts</CallName>")
	assert.Contains(t, body, "<DetailLevel>0</DetailLevel>")
	assert.Contains(t, body, "<ErrorLanguage>DE</ErrorLanguage>")
	assert.Contains(t, body, "<MaxShopItems>50</MaxShopItems>")
	assert.Contains(t, body, "<PaginationEnabled>1</PaginationEnabled>")
	assert.Contains(t, body, "<PageNumber>2</PageNumber>")
	assert.NotContains(t, body, "DataFilter")
}

func TestGetShopProductsRequest_Defaults(t *testing.T) {
	req, err := NewGetShopProductsRequest(testCredentials)
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, req.PageNumber)
	assert.Equal(t, DefaultMaxShopItems, req.MaxShopItems)
	assert.True(t, bool(req.PaginationEnabled))
	assert.Equal(t, DetailLevelProcessData, req.Global.DetailLevel)
	assert.Equal(t, CallGetShopProducts, req.CallName())
}

func TestGetShopProductsRequest_FiltersKeepOrder(t *testing.T) {
	req, err := NewGetShopProductsRequest(testCredentials, WithFilters(
		TagFilter{Tags: []string{"summer"}},
		ProductIDFilter{IDs: []int{10, 20}},
		AnrFilter{Anrs: []string{"A-1"}},
	))
	require.NoError(t, err)

	body := marshalRequest(t, req)

	assert.Equal(t, 1, strings.Count(body, "<DataFilter>"))
	assert.Equal(t, 3, strings.Count(body, "<Filter>"))

	tag := strings.Index(body, "<FilterName>Tag</FilterName>")
	product := strings.Index(body, "<FilterName>ProductID</FilterName>")
	anr := strings.Index(body, "<FilterName>Anr</FilterName>")
	require.True(t, tag >= 0 && product >= 0 && anr >= 0, body)
	assert.True(t, tag < product && product < anr, "filters must keep the caller's order")

	assert.Contains(t, body, "<FilterValues><FilterValue>10</FilterValue><FilterValue>20</FilterValue></FilterValues>")
}

func TestGetShopProductsRequest_InvalidArguments(t *testing.T) {
	tests := []struct {
		name  string
		opts  []CallOption
		field string
	}{
		{"zero max", []CallOption{WithMaxItems(0)}, "MaxShopItems"},
		{"negative max", []CallOption{WithMaxItems(-5)}, "MaxShopItems"},
		{"max above limit", []CallOption{WithMaxItems(251)}, "MaxShopItems"},
		{"page zero", []CallOption{WithPage(0)}, "PageNumber"},
		{"negative detail level", []CallOption{WithDetailLevel(-1)}, "Global.DetailLevel"},
		{"unsupported filter", []CallOption{WithFilters(OrderIDFilter{IDs: []int{1}})}, "Filters[0]"},
		{"empty filter", []CallOption{WithFilters(TagFilter{Tags: []string{"a"}}, EANFilter{})}, "Filters[1]"},
		{"nil filter", []CallOption{WithFilters(nil)}, "Filters[0]"},
		{"inverted level", []CallOption{WithFilters(LevelFilter{From: 5, To: 1})}, "Filters[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewGetShopProductsRequest(testCredentials, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, ErrInvalidArgument))

			var invalid *InvalidArgumentError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, CallGetShopProducts, invalid.CallName)
			assert.Contains(t, invalid.Fields, tt.field)
		})
	}
}

func TestGetSoldItemsRequest_DateFilter(t *testing.T) {
	from := time.Date(2024, time.May, 1, 8, 0, 0, 0, WireLocation())
	to := time.Date(2024, time.May, 2, 8, 0, 0, 0, WireLocation())

	req, err := NewGetSoldItemsRequest(testCredentials,
		WithOrderDirection(OrderDescending),
		WithMaxItems(100),
		WithDetailLevel(DetailLevelBuyer|DetailLevelPayment),
		WithFilters(
			DateFilter{Field: DateFieldModDate, From: from, To: to},
			DefaultFilter{Values: []string{"NotCompletedAuctions"}},
		),
	)
	require.NoError(t, err)

	body := marshalRequest(t, req)

	assert.Contains(t, body, "<CallName>GetSoldItems</CallName>")
	assert.Contains(t, body, "<DetailLevel>20</DetailLevel>")
	assert.Contains(t, body, "<MaxSoldItems>100</MaxSoldItems>")
	assert.Contains(t, body, "<OrderDirection>1</OrderDirection>")
	assert.Contains(t, body, "<Filter><FilterName>DateFilter</FilterName><FilterValues>"+
		"<DateFrom>01.05.2024 08:00:00</DateFrom><DateTo>02.05.2024 08:00:00</DateTo>"+
		"<FilterValue>ModDate</FilterValue></FilterValues></Filter>")
	assert.Contains(t, body, "<FilterValue>NotCompletedAuctions</FilterValue>")
}

func TestGetSoldItemsRequest_Defaults(t *testing.T) {
	req, err := NewGetSoldItemsRequest(testCredentials)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxSoldItems, req.MaxSoldItems)
	assert.Equal(t, OrderAscending, req.OrderDirection)
	assert.Nil(t, req.DataFilter)
}

func TestGetSoldItemsRequest_InvalidDirection(t *testing.T) {
	_, err := NewGetSoldItemsRequest(testCredentials, WithOrderDirection(OrderDirection(3)))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetShopCatalogsRequest(t *testing.T) {
	req, err := NewGetShopCatalogsRequest(testCredentials, WithFilters(
		CatalogIDFilter{IDs: []int{7}},
		RangeIDFilter{From: 1, To: 99},
	))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxCatalogs, req.MaxCatalogs)

	body := marshalRequest(t, req)
	assert.Contains(t, body, "<MaxCatalogs>200</MaxCatalogs>")
	assert.Contains(t, body, "<FilterValues><ValueFrom>1</ValueFrom><ValueTo>99</ValueTo></FilterValues>")

	_, err = NewGetShopCatalogsRequest(testCredentials, WithMaxItems(201))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetStockInfoRequest(t *testing.T) {
	req, err := NewGetStockInfoRequest(testCredentials, []StockProductRef{
		{ProductID: 123},
		{EAN: "4006381333931"},
	})
	require.NoError(t, err)

	body := marshalRequest(t, req)
	assert.Contains(t, body, "<Products><Product><ProductID>123</ProductID></Product><Product><EAN>4006381333931</EAN></Product></Products>")

	_, err = NewGetStockInfoRequest(testCredentials, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewGetStockInfoRequest(testCredentials, []StockProductRef{{}})
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Fields, "Products[0].ProductID")
}

func TestUpdateSoldItemsRequest(t *testing.T) {
	memo := "packed"
	paid := Float(49.9)
	payDate := NewDate(time.Date(2024, time.June, 3, 9, 15, 0, 0, WireLocation()))
	exported := Bool(true)

	req, err := NewUpdateSoldItemsRequest(testCredentials, []OrderUpdate{
		{
			OrderID:       1001,
			OrderMemo:     &memo,
			OrderExported: &exported,
			PaymentInfo:   &PaymentUpdate{AlreadyPaid: &paid, PaymentDate: &payDate},
		},
		{OrderID: 1002},
	})
	require.NoError(t, err)

	body := marshalRequest(t, req)
	assert.Equal(t, 2, strings.Count(body, "<Order>"))
	assert.Contains(t, body, "<Order><OrderID>1001</OrderID><OrderMemo>packed</OrderMemo><OrderExported>1</OrderExported>"+
		"<PaymentInfo><PaymentDate>03.06.2024 09:15:00</PaymentDate><AlreadyPaid>49,90</AlreadyPaid></PaymentInfo></Order>")
	assert.Contains(t, body, "<Order><OrderID>1002</OrderID></Order>")

	_, err = NewUpdateSoldItemsRequest(testCredentials, []OrderUpdate{{OrderID: 0}})
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Fields, "Orders[0].OrderID")

	_, err = NewUpdateSoldItemsRequest(testCredentials, []OrderUpdate{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetPaymentServicesRequest(t *testing.T) {
	req, err := NewGetPaymentServicesRequest(testCredentials, WithFilters(PlatformFilter{Value: "Shop"}))
	require.NoError(t, err)

	body := marshalRequest(t, req)
	assert.Contains(t, body, "<FilterName>Plattform</FilterName><FilterValues><FilterValue>Shop</FilterValue></FilterValues>")

	_, err = NewGetPaymentServicesRequest(testCredentials, WithFilters(PlatformFilter{}))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetShippingServicesRequest(t *testing.T) {
	req, err := NewGetShippingServicesRequest(testCredentials, WithDetailLevel(DetailLevelFull), WithPage(9))
	require.NoError(t, err)

	body := marshalRequest(t, req)
	assert.Contains(t, body, "<DetailLevel>255</DetailLevel>")
	assert.NotContains(t, body, "PageNumber")
}

func TestInvalidArgumentError_Message(t *testing.T) {
	err := &InvalidArgumentError{
		CallName: CallGetSoldItems,
		Fields:   map[string]string{"b": "second", "a": "first"},
	}
	assert.Equal(t, "GetSoldItems: invalid argument: a: first; b: second", err.Error())
}

func TestCodec_Indent(t *testing.T) {
	req, err := NewGetShippingServicesRequest(testCredentials)
	require.NoError(t, err)

	out, err := Codec{Indent: true}.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  <AfterbuyGlobal>\n    <PartnerID>4711</PartnerID>")
}
