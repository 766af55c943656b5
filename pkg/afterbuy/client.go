// Package afterbuy is a typed client for the Afterbuy XML interface.
//
// Every call builds a <Request> document carrying the account credentials,
// posts it to a single endpoint and decodes the <Afterbuy> answer. Invalid
// arguments are returned as errors before anything is sent. Transport and
// decoding problems are logged and reported through Result instead.
package afterbuy

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/ahhussein/afterbuy-sdk/pkg/httpclient"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
)

// DefaultEndpoint is the Afterbuy XML interface.
const DefaultEndpoint = "https://api.afterbuy.de/afterbuy/ABInterface.aspx"

// ContentType is sent with every request.
const ContentType = "text/xml; charset=utf-8"

const redacted = "[REDACTED]"

// passwordElement matches the credential elements of an outgoing request
var passwordElement = regexp.MustCompile(`(?s)<(UserPassword|PartnerPassword)>.*?</(?:UserPassword|PartnerPassword)>`)

var errNoResponse = errors.New("transport returned no response")

// Logger receives the client's log records. *slog.Logger and
// logger.LoggerInterface both satisfy it.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
}

// HTTPDoer posts a body and returns the raw answer. It must be safe for
// concurrent use when the client is shared.
type HTTPDoer interface {
	Post(ctx context.Context, url string, body []byte, headers map[string]string) (*httpclient.Response, error)
}

// AfterbuyClient exposes one method per supported Afterbuy call. The error
// return is only used for invalid arguments; see Result for everything else.
type AfterbuyClient interface {
	GetPaymentServices(ctx context.Context, opts ...CallOption) (Result[GetPaymentServicesResponse], error)
	GetShippingServices(ctx context.Context, opts ...CallOption) (Result[GetShippingServicesResponse], error)
	GetStockInfo(ctx context.Context, products []StockProductRef, opts ...CallOption) (Result[GetStockInfoResponse], error)
	GetShopProducts(ctx context.Context, opts ...CallOption) (Result[GetShopProductsResponse], error)
	GetShopCatalogs(ctx context.Context, opts ...CallOption) (Result[GetShopCatalogsResponse], error)
	GetSoldItems(ctx context.Context, opts ...CallOption) (Result[GetSoldItemsResponse], error)
	UpdateSoldItems(ctx context.Context, orders []OrderUpdate, opts ...CallOption) (Result[UpdateSoldItemsResponse], error)
}

type client struct {
	credentials Credentials
	transport   HTTPDoer
	endpoint    string
	codec       Codec
	logger      Logger
}

// New returns a client bound to credentials. transport performs the HTTP
// exchange; httpclient.New() is the usual choice.
func New(credentials Credentials, transport HTTPDoer, opts ...Option) AfterbuyClient {
	c := &client{
		credentials: credentials,
		transport:   transport,
		endpoint:    DefaultEndpoint,
		logger:      logger.NoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// redactPasswords blanks the contents of the password elements only
func redactPasswords(body []byte) string {
	return passwordElement.ReplaceAllString(string(body), "<${1}>"+redacted+"</${1}>")
}

func (c *client) GetPaymentServices(ctx context.Context, opts ...CallOption) (Result[GetPaymentServicesResponse], error) {
	req, err := NewGetPaymentServicesRequest(c.credentials, opts...)
	if err != nil {
		return Result[GetPaymentServicesResponse]{}, err
	}
	return dispatch[GetPaymentServicesResponse](ctx, c, req), nil
}

func (c *client) GetShippingServices(ctx context.Context, opts ...CallOption) (Result[GetShippingServicesResponse], error) {
	req, err := NewGetShippingServicesRequest(c.credentials, opts...)
	if err != nil {
		return Result[GetShippingServicesResponse]{}, err
	}
	return dispatch[GetShippingServicesResponse](ctx, c, req), nil
}

func (c *client) GetStockInfo(ctx context.Context, products []StockProductRef, opts ...CallOption) (Result[GetStockInfoResponse], error) {
	req, err := NewGetStockInfoRequest(c.credentials, products, opts...)
	if err != nil {
		return Result[GetStockInfoResponse]{}, err
	}
	return dispatch[GetStockInfoResponse](ctx, c, req), nil
}

func (c *client) GetShopProducts(ctx context.Context, opts ...CallOption) (Result[GetShopProductsResponse], error) {
	req, err := NewGetShopProductsRequest(c.credentials, opts...)
	if err != nil {
		return Result[GetShopProductsResponse]{}, err
	}
	return dispatch[GetShopProductsResponse](ctx, c, req), nil
}

func (c *client) GetShopCatalogs(ctx context.Context, opts ...CallOption) (Result[GetShopCatalogsResponse], error) {
	req, err := NewGetShopCatalogsRequest(c.credentials, opts...)
	if err != nil {
		return Result[GetShopCatalogsResponse]{}, err
	}
	return dispatch[GetShopCatalogsResponse](ctx, c, req), nil
}

func (c *client) GetSoldItems(ctx context.Context, opts ...CallOption) (Result[GetSoldItemsResponse], error) {
	req, err := NewGetSoldItemsRequest(c.credentials, opts...)
	if err != nil {
		return Result[GetSoldItemsResponse]{}, err
	}
	return dispatch[GetSoldItemsResponse](ctx, c, req), nil
}

func (c *client) UpdateSoldItems(ctx context.Context, orders []OrderUpdate, opts ...CallOption) (Result[UpdateSoldItemsResponse], error) {
	req, err := NewUpdateSoldItemsRequest(c.credentials, orders, opts...)
	if err != nil {
		return Result[UpdateSoldItemsResponse]{}, err
	}
	return dispatch[UpdateSoldItemsResponse](ctx, c, req), nil
}

// dispatch runs serialize, post and decode for one request. Every failure is
// logged exactly once at ERROR and returned as a Failure.
func dispatch[T any, PT interface {
	*T
	Response
}](ctx context.Context, c *client, req Request) Result[T] {
	callName := req.CallName()
	fail := func(f *Failure) Result[T] {
		c.logFailure(ctx, callName, f)
		return Result[T]{Failure: f}
	}

	body, err := c.codec.Marshal(req)
	if err != nil {
		return fail(&Failure{Kind: FailureMarshalling, Err: err})
	}

	headers := map[string]string{"Content-Type": ContentType}
	c.logger.Log(ctx, slog.LevelDebug, "Sending Afterbuy request",
		"operation", callName,
		"endpoint", c.endpoint,
		"headers", headers,
		"body", redactPasswords(body),
	)

	resp, err := c.transport.Post(ctx, c.endpoint, body, headers)
	if err != nil {
		return fail(&Failure{Kind: FailureTransport, Err: &TransportError{Err: err}})
	}
	if resp == nil {
		return fail(&Failure{Kind: FailureTransport, Err: &TransportError{Err: errNoResponse}})
	}

	c.logger.Log(ctx, slog.LevelDebug, "Received Afterbuy response",
		"operation", callName,
		"status", resp.StatusCode,
		"body", string(resp.Body),
	)

	if !resp.IsSuccess() {
		return fail(&Failure{
			Kind:       FailureTransport,
			StatusCode: resp.StatusCode,
			Err:        &TransportError{StatusCode: resp.StatusCode},
		})
	}

	decoded, err := Decode[T, PT](c.codec, resp.Body, callName)
	if err != nil {
		return fail(&Failure{Kind: FailureMarshalling, StatusCode: resp.StatusCode, Err: err})
	}

	if header := PT(decoded).Header(); header.Failed() {
		c.logger.Log(ctx, slog.LevelWarn, "Afterbuy rejected the call",
			"operation", callName,
			"call_status", header.CallStatus,
		)
	}
	return Result[T]{Response: decoded}
}

func (c *client) logFailure(ctx context.Context, callName string, f *Failure) {
	args := []any{
		"operation", callName,
		"kind", f.Kind.String(),
		"error", f.Err.Error(),
	}
	if f.StatusCode != 0 {
		args = append(args, "status", f.StatusCode)
	}
	c.logger.Log(ctx, slog.LevelError, "Afterbuy call failed", args...)
}
