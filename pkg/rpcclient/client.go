package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/rpcerr"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout    = 4 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Transport delivers a serialized request to the node and returns the raw
// response body. The payload is sent as is.
type Transport interface {
	Send(ctx context.Context, payload []byte) ([]byte, error)
}

// Client represents the middleman for executing JSON RPC calls to remote
// NEAR RPC nodes. Client is thread-safe and can be used from multiple
// goroutines.
type Client struct {
	endpoint  string
	transport Transport
	log       *zap.Logger
	opts      Options

	latestReqID *atomic.Uint64
	// getNextRequestID returns an ID to be used for the subsequent request creation.
	// It is defined on Client, so that our testing code can override this method
	// for the sake of more predictable request IDs generation behavior.
	getNextRequestID func() nearrpc.RequestID
}

// Options defines options for the RPC client. All values are optional.
type Options struct {
	// Logger is used for per-call debug logging, no logging by default.
	Logger *zap.Logger
	// Headers are added to every HTTP request.
	Headers map[string]string
	// DialTimeout defaults to 4 seconds.
	DialTimeout time.Duration
	// RequestTimeout is the whole HTTP exchange timeout, it defaults to 10
	// seconds.
	RequestTimeout time.Duration
	// Limit total number of connections per host. No limit by default.
	MaxConnsPerHost int
	// StringRequestIDs makes the client use random UUIDs as request IDs
	// instead of increasing numbers.
	StringRequestIDs bool
	// Transport replaces the default HTTP transport, endpoint and HTTP
	// specific options are ignored then.
	Transport Transport
}

// HTTPTransport is the default Transport sending requests via HTTP POST.
type HTTPTransport struct {
	cli      *http.Client
	endpoint *url.URL
	headers  map[string]string
}

// New returns a new Client ready to use.
func New(endpoint string, opts Options) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	transport := opts.Transport
	if transport == nil {
		t, err := NewHTTPTransport(endpoint, opts)
		if err != nil {
			return nil, err
		}
		transport = t
	}
	cl := &Client{
		endpoint:    endpoint,
		transport:   transport,
		log:         opts.Logger,
		opts:        opts,
		latestReqID: atomic.NewUint64(0),
	}
	cl.getNextRequestID = cl.getRequestID
	return cl, nil
}

// NewHTTPTransport creates an HTTP transport for the given endpoint using
// timeouts, headers and connection limit from opts.
func NewHTTPTransport(endpoint string, opts Options) (*HTTPTransport, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &HTTPTransport{
		cli: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: opts.DialTimeout,
				}).DialContext,
				MaxConnsPerHost: opts.MaxConnsPerHost,
			},
			Timeout: opts.RequestTimeout,
		},
		endpoint: u,
		headers:  opts.Headers,
	}, nil
}

// Send implements the Transport interface.
func (t *HTTPTransport) Send(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	resp, err := t.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// The node might send us a proper JSON-RPC response anyway, so look there
	// first and if it parses, it has more relevant data than HTTP error code.
	if resp.StatusCode != http.StatusOK {
		if _, err := nearrpc.ParseResponse(body); err != nil {
			return nil, fmt.Errorf("HTTP %d/%s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
	}
	return body, nil
}

// Close closes unused underlying network connections.
func (t *HTTPTransport) Close() {
	t.cli.CloseIdleConnections()
}

func (c *Client) getRequestID() nearrpc.RequestID {
	if c.opts.StringRequestIDs {
		return nearrpc.StringID(uuid.NewString())
	}
	return nearrpc.NumericID(c.latestReqID.Inc())
}

// Endpoint returns the client endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close closes unused underlying network connections of the default
// transport.
func (c *Client) Close() {
	if t, ok := c.transport.(*HTTPTransport); ok {
		t.Close()
	}
}

// decoder adapts method-specific error decoders to a common signature.
func decoder[T rpcerr.Converter](decode func(nearrpc.Cause) T) func(nearrpc.Cause) rpcerr.Converter {
	return func(c nearrpc.Cause) rpcerr.Converter {
		return decode(c)
	}
}

// performRequest sends params to the method and decodes the result into v.
// Errors reported by the node are decoded with decodeErr.
func (c *Client) performRequest(ctx context.Context, method string, params any, v any, decodeErr func(nearrpc.Cause) rpcerr.Converter) error {
	var (
		start = time.Now()
		id    nearrpc.RequestID
		err   = c.doRequest(ctx, method, params, v, decodeErr, &id)
		took  = time.Since(start)
	)
	addCallMetrics(method, took, err)
	if err != nil {
		c.log.Debug("RPC call failed",
			zap.String("method", method),
			zap.Stringer("id", id),
			zap.Duration("duration", took),
			zap.Error(err))
		return err
	}
	c.log.Debug("RPC call",
		zap.String("method", method),
		zap.Stringer("id", id),
		zap.Duration("duration", took))
	return nil
}

func (c *Client) doRequest(ctx context.Context, method string, params any, v any, decodeErr func(nearrpc.Cause) rpcerr.Converter, id *nearrpc.RequestID) error {
	p, err := json.Marshal(params)
	if err != nil {
		var me *json.MarshalerError
		for errors.As(err, &me) {
			err = me.Err
		}
		var rpcErr *nearrpc.Error
		if errors.As(err, &rpcErr) {
			return rpcErr
		}
		return nearrpc.NewParseError("Failed parsing args: " + err.Error())
	}
	*id = c.getNextRequestID()
	payload, err := json.Marshal(nearrpc.NewRequest(method, p, *id))
	if err != nil {
		return nearrpc.NewParseError("Failed parsing args: " + err.Error())
	}

	raw, err := c.transport.Send(ctx, payload)
	if err != nil {
		return &nearrpc.TransportError{Err: err}
	}
	resp, err := nearrpc.ParseResponse(raw)
	if err != nil {
		return err
	}
	if !resp.MatchesID(*id) {
		return nearrpc.NewInternalError(fmt.Sprintf("response id %s doesn't match request id %s", resp.ID, id))
	}
	if resp.Error != nil {
		return convertError(resp.Error, decodeErr)
	}
	if err := json.Unmarshal(resp.Result, v); err != nil {
		return nearrpc.NewInternalError(fmt.Sprintf("failed to decode %s result: %s", method, err))
	}
	return nil
}

// convertError attaches the method-specific error to the one returned by the
// node. Request validation, legacy and class-only errors are returned as is,
// bare variants are converted into the full form.
func convertError(e *nearrpc.Error, decodeErr func(nearrpc.Cause) rpcerr.Converter) error {
	if e.IsRequestValidationError() || e.IsLegacy() || e.IsClassOnly() {
		return e
	}
	typed := decodeErr(e.Variant())
	if e.Cause == nil {
		return typed.RPCError()
	}
	e.Err = typed
	return e
}
