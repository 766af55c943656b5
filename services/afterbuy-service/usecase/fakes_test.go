package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/kafka"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
)

var testCredentials = afterbuy.Credentials{UserID: "shop", UserPassword: "secret", PartnerID: 7, PartnerPassword: "partner"}

// fakeClient builds the real request for every call so tests can inspect it
type fakeClient struct {
	mu sync.Mutex

	payment   afterbuy.Result[afterbuy.GetPaymentServicesResponse]
	shipping  afterbuy.Result[afterbuy.GetShippingServicesResponse]
	stock     afterbuy.Result[afterbuy.GetStockInfoResponse]
	products  afterbuy.Result[afterbuy.GetShopProductsResponse]
	catalogs  afterbuy.Result[afterbuy.GetShopCatalogsResponse]
	soldItems afterbuy.Result[afterbuy.GetSoldItemsResponse]
	update    afterbuy.Result[afterbuy.UpdateSoldItemsResponse]

	productRequests  []*afterbuy.GetShopProductsRequest
	soldItemRequests []*afterbuy.GetSoldItemsRequest
	updateRequests   []*afterbuy.UpdateSoldItemsRequest

	// soldItemPages are returned one per call before falling back to soldItems
	soldItemPages []afterbuy.Result[afterbuy.GetSoldItemsResponse]
}

func (f *fakeClient) GetPaymentServices(_ context.Context, opts ...afterbuy.CallOption) (afterbuy.Result[afterbuy.GetPaymentServicesResponse], error) {
	if _, err := afterbuy.NewGetPaymentServicesRequest(testCredentials, opts...); err != nil {
		return afterbuy.Result[afterbuy.GetPaymentServicesResponse]{}, err
	}
	return f.payment, nil
}

func (f *fakeClient) GetShippingServices(_ context.Context, opts ...afterbuy.CallOption) (afterbuy.Result[afterbuy.GetShippingServicesResponse], error) {
	if _, err := afterbuy.NewGetShippingServicesRequest(testCredentials, opts...); err != nil {
		return afterbuy.Result[afterbuy.GetShippingServicesResponse]{}, err
	}
	return f.shipping, nil
}

func (f *fakeClient) GetStockInfo(_ context.Context, products []afterbuy.StockProductRef, opts ...afterbuy.CallOption) (afterbuy.Result[afterbuy.GetStockInfoResponse], error) {
	if _, err := afterbuy.NewGetStockInfoRequest(testCredentials, products, opts...); err != nil {
		return afterbuy.Result[afterbuy.GetStockInfoResponse]{}, err
	}
	return f.stock, nil
}

func (f *fakeClient) GetShopProducts(_ context.Context, opts ...afterbuy.CallOption) (afterbuy.Result[afterbuy.GetShopProductsResponse], error) {
	req, err := afterbuy.NewGetShopProductsRequest(testCredentials, opts...)
	if err != nil {
		return afterbuy.Result[afterbuy.GetShopProductsResponse]{}, err
	}
	f.mu.Lock()
	f.productRequests = append(f.productRequests, req)
	f.mu.Unlock()
	return f.products, nil
}

func (f *fakeClient) GetShopCatalogs(_ context.Context, opts ...afterbuy.CallOption) (afterbuy.Result[afterbuy.GetShopCatalogsResponse], error) {
	if _, err := afterbuy.NewGetShopCatalogsRequest(testCredentials, opts...); err != nil {
		return afterbuy.Result[afterbuy.GetShopCatalogsResponse]{}, err
	}
	return f.catalogs, nil
}

func (f *fakeClient) GetSoldItems(_ context.Context, opts ...afterbuy.CallOption) (afterbuy.Result[afterbuy.GetSoldItemsResponse], error) {
	req, err := afterbuy.NewGetSoldItemsRequest(testCredentials, opts...)
	if err != nil {
		return afterbuy.Result[afterbuy.GetSoldItemsResponse]{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.soldItemRequests = append(f.soldItemRequests, req)
	if len(f.soldItemPages) > 0 {
		page := f.soldItemPages[0]
		f.soldItemPages = f.soldItemPages[1:]
		return page, nil
	}
	return f.soldItems, nil
}

func (f *fakeClient) UpdateSoldItems(_ context.Context, orders []afterbuy.OrderUpdate, opts ...afterbuy.CallOption) (afterbuy.Result[afterbuy.UpdateSoldItemsResponse], error) {
	req, err := afterbuy.NewUpdateSoldItemsRequest(testCredentials, orders, opts...)
	if err != nil {
		return afterbuy.Result[afterbuy.UpdateSoldItemsResponse]{}, err
	}
	f.mu.Lock()
	f.updateRequests = append(f.updateRequests, req)
	f.mu.Unlock()
	return f.update, nil
}

func transportFailure[T any]() afterbuy.Result[T] {
	return afterbuy.Result[T]{Failure: &afterbuy.Failure{
		Kind:       afterbuy.FailureTransport,
		StatusCode: 500,
		Err:        &afterbuy.TransportError{StatusCode: 500},
	}}
}

func success[T any](resp T) afterbuy.Result[T] {
	return afterbuy.Result[T]{Response: &resp}
}

// memoryOrders is an in-memory repository.SoldOrder
type memoryOrders struct {
	mu        sync.Mutex
	orders    map[int64]*model.SoldOrder
	upsertErr error
	upserts   int
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: make(map[int64]*model.SoldOrder)}
}

func (m *memoryOrders) Upsert(_ context.Context, order *model.SoldOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	if existing, ok := m.orders[order.AfterbuyOrderID]; ok {
		order.ID = existing.ID
	} else if order.ID == "" {
		order.ID = "snapshot-" + time.Now().Format("150405.000000000")
	}
	copied := *order
	m.orders[order.AfterbuyOrderID] = &copied
	return nil
}

func (m *memoryOrders) GetByAfterbuyID(_ context.Context, id int64) (*model.SoldOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (m *memoryOrders) List(_ context.Context, offset, limit int) ([]*model.SoldOrder, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*model.SoldOrder, 0, len(m.orders))
	for _, o := range m.orders {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ModDate.After(all[j].ModDate) })
	if offset >= len(all) {
		return []*model.SoldOrder{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

// memoryCursor is an in-memory repository.SyncCursor
type memoryCursor struct {
	mu       sync.Mutex
	state    model.SyncState
	hasState bool
	owner    string
	locks    int
	unlocks  int
}

func (c *memoryCursor) Get(_ context.Context) (model.SyncState, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.hasState, nil
}

func (c *memoryCursor) Set(_ context.Context, state model.SyncState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.hasState = true
	return nil
}

func (c *memoryCursor) Lock(_ context.Context, owner string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner != "" {
		return false, nil
	}
	c.owner = owner
	c.locks++
	return true, nil
}

func (c *memoryCursor) Unlock(_ context.Context, owner string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner == owner {
		c.owner = ""
		c.unlocks++
	}
	return nil
}

// recordingPublisher keeps every produced message
type recordingPublisher struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (p *recordingPublisher) Produce(_ context.Context, msgs ...kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msgs...)
	return nil
}
