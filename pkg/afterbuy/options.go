package afterbuy

// Option configures a client.
type Option func(*client)

// WithLogger sets the sink for request, response and failure logs.
// A nil logger keeps the inert default.
func WithLogger(l Logger) Option {
	return func(c *client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEndpoint replaces DefaultEndpoint, mostly for tests against a local server.
func WithEndpoint(endpoint string) Option {
	return func(c *client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithCodec replaces the default Codec.
func WithCodec(codec Codec) Option {
	return func(c *client) {
		c.codec = codec
	}
}

// Defaults applied when a call does not set the matching option.
const (
	DefaultPage            = 1
	DefaultMaxShopItems    = 250
	DefaultMaxCatalogs     = 200
	DefaultMaxSoldItems    = 250
	DefaultDetailLevel     = DetailLevelProcessData
	DefaultOrderDirection  = OrderAscending
	DefaultPaginationState = true
)

// CallOption sets a per-call parameter. Options an operation does not use
// are ignored.
type CallOption func(*callOptions)

type callOptions struct {
	filters        []Filter
	detailLevel    DetailLevel
	page           int
	maxItems       int
	maxItemsSet    bool
	pagination     bool
	orderDirection OrderDirection
}

func newCallOptions(opts []CallOption) *callOptions {
	o := &callOptions{
		detailLevel:    DefaultDetailLevel,
		page:           DefaultPage,
		pagination:     DefaultPaginationState,
		orderDirection: DefaultOrderDirection,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// maxOr returns the requested maximum or def when none was given.
func (o *callOptions) maxOr(def int) int {
	if o.maxItemsSet {
		return o.maxItems
	}
	return def
}

// WithFilters appends filters. They are written in the order given.
func WithFilters(filters ...Filter) CallOption {
	return func(o *callOptions) {
		o.filters = append(o.filters, filters...)
	}
}

func WithDetailLevel(level DetailLevel) CallOption {
	return func(o *callOptions) {
		o.detailLevel = level
	}
}

// WithPage selects the page of a paginated GetShopProducts call, starting at 1.
func WithPage(page int) CallOption {
	return func(o *callOptions) {
		o.page = page
	}
}

// WithMaxItems caps the number of products, catalogs or orders returned.
func WithMaxItems(n int) CallOption {
	return func(o *callOptions) {
		o.maxItems = n
		o.maxItemsSet = true
	}
}

func WithPagination(enabled bool) CallOption {
	return func(o *callOptions) {
		o.pagination = enabled
	}
}

func WithOrderDirection(d OrderDirection) CallOption {
	return func(o *callOptions) {
		o.orderDirection = d
	}
}
