package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/request"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/rpcerr"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// echoTransport answers every request with the given result echoing its id.
type echoTransport struct {
	lock   sync.Mutex
	reqs   []nearrpc.Request
	result string
}

func (t *echoTransport) Send(_ context.Context, payload []byte) ([]byte, error) {
	var r nearrpc.Request
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, err
	}
	t.lock.Lock()
	t.reqs = append(t.reqs, r)
	t.lock.Unlock()
	id, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf(`{"jsonrpc":"2.0","id":%s,"result":%s}`, id, t.result)), nil
}

const gasPriceResult = `{"gas_price":"1"}`

func TestNew(t *testing.T) {
	c, err := New("http://localhost:3030", Options{})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3030", c.Endpoint())
	c.Close()

	_, err = New("ws://localhost:3030", Options{})
	require.Error(t, err)

	_, err = New("ws://localhost:3030", Options{Transport: new(echoTransport)})
	require.NoError(t, err)
}

func TestRequestIDs(t *testing.T) {
	t.Run("numeric", func(t *testing.T) {
		tr := &echoTransport{result: gasPriceResult}
		c, err := New("", Options{Transport: tr})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = c.GasPrice(context.Background(), nil)
			require.NoError(t, err)
		}
		require.Len(t, tr.reqs, 3)
		for i, r := range tr.reqs {
			require.False(t, r.ID.IsString())
			require.Equal(t, nearrpc.NumericID(uint64(i+1)), r.ID)
			require.Equal(t, nearrpc.JSONRPCVersion, r.JSONRPC)
		}
	})
	t.Run("string", func(t *testing.T) {
		tr := &echoTransport{result: gasPriceResult}
		c, err := New("", Options{Transport: tr, StringRequestIDs: true})
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err = c.GasPrice(context.Background(), nil)
			require.NoError(t, err)
		}
		require.True(t, tr.reqs[0].ID.IsString())
		require.NotEqual(t, tr.reqs[0].ID, tr.reqs[1].ID)
	})
	t.Run("concurrent", func(t *testing.T) {
		tr := &echoTransport{result: gasPriceResult}
		c, err := New("", Options{Transport: tr})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.GasPrice(context.Background(), nil)
				require.NoError(t, err)
			}()
		}
		wg.Wait()
		seen := make(map[nearrpc.RequestID]bool)
		for _, r := range tr.reqs {
			require.False(t, seen[r.ID])
			seen[r.ID] = true
		}
		require.Len(t, seen, 20)
	})
}

func TestInvalidParamsNotSent(t *testing.T) {
	var hits = atomic.NewInt32(0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Inc()
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, Options{})
	require.NoError(t, err)

	t.Run("no transaction", func(t *testing.T) {
		_, err := c.SendTransaction(context.Background(), nil)
		var rpcErr *nearrpc.Error
		require.ErrorAs(t, err, &rpcErr)
		require.True(t, rpcErr.IsParseError())
		require.Equal(t, int64(nearrpc.ParseErrorCode), rpcErr.Code)
		require.Contains(t, err.Error(), "Failed parsing args: no transaction")
	})
	t.Run("bad block reference", func(t *testing.T) {
		_, err := c.Block(context.Background(), nearrpc.BlockReference{})
		var rpcErr *nearrpc.Error
		require.ErrorAs(t, err, &rpcErr)
		require.True(t, rpcErr.IsParseError())
		require.Contains(t, err.Error(), nearrpc.ErrInvalidBlockReference.Error())
	})
	t.Run("bad account", func(t *testing.T) {
		_, err := c.ViewAccount(context.Background(), finalRef, "Not An Account")
		var rpcErr *nearrpc.Error
		require.ErrorAs(t, err, &rpcErr)
		require.True(t, rpcErr.IsParseError())
	})
	require.Equal(t, int32(0), hits.Load())
}

func TestResponseValidation(t *testing.T) {
	testCases := map[string]struct {
		response string
		message  string
	}{
		"id mismatch": {
			response: `{"jsonrpc":"2.0","id":2,"result":{"gas_price":"1"}}`,
			message:  "response id 2 doesn't match request id 1",
		},
		"null id with result": {
			response: `{"jsonrpc":"2.0","id":null,"result":{"gas_price":"1"}}`,
			message:  "doesn't match request id 1",
		},
		"undecodable result": {
			response: `{"jsonrpc":"2.0","id":1,"result":[1]}`,
			message:  "failed to decode gas_price result",
		},
		"invalid JSON": {
			response: `{"jsonrpc":"2.0","id":1,`,
			message:  "invalid response JSON",
		},
		"both result and error": {
			response: `{"jsonrpc":"2.0","id":1,"result":{},"error":{"code":-32000,"message":"Server error"}}`,
			message:  "both result and error",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			srv := initTestServer(t, tc.response, nil)
			c, err := New(srv.URL, Options{})
			require.NoError(t, err)

			_, err = c.GasPrice(context.Background(), nil)
			var rpcErr *nearrpc.Error
			require.ErrorAs(t, err, &rpcErr)
			require.True(t, rpcErr.IsInternalError())
			require.Contains(t, err.Error(), tc.message)
		})
	}

	t.Run("null id with error", func(t *testing.T) {
		srv := initTestServer(t, `{"jsonrpc":"2.0","id":null,"error":{"name":"REQUEST_VALIDATION_ERROR","cause":{"name":"PARSE_ERROR","info":{"error_message":"bad"}},"code":-32700,"message":"Parse error","data":"bad"}}`, nil)
		c, err := New(srv.URL, Options{})
		require.NoError(t, err)

		_, err = c.GasPrice(context.Background(), nil)
		var rpcErr *nearrpc.Error
		require.ErrorAs(t, err, &rpcErr)
		require.True(t, rpcErr.IsParseError())
	})
}

func TestTransportErrors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "oops", http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)
		c, err := New(srv.URL, Options{})
		require.NoError(t, err)

		_, err = c.Status(context.Background())
		require.True(t, nearrpc.IsTransportError(err))
		require.Contains(t, err.Error(), "HTTP 500/Internal Server Error")
	})
	t.Run("HTTP error with JSON body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"name":"HANDLER_ERROR","cause":{"name":"NODE_IS_SYNCING"},"code":-32000,"message":"Server error","data":"Node is syncing"}}`))
		}))
		t.Cleanup(srv.Close)
		c, err := New(srv.URL, Options{})
		require.NoError(t, err)

		_, err = c.Status(context.Background())
		require.False(t, nearrpc.IsTransportError(err))
		var rpcErr *nearrpc.Error
		require.ErrorAs(t, err, &rpcErr)
		require.True(t, rpcErr.IsHandlerError())
	})
	t.Run("HTTP error with non-RPC JSON body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"rate limited"}`))
		}))
		t.Cleanup(srv.Close)
		c, err := New(srv.URL, Options{})
		require.NoError(t, err)

		_, err = c.Status(context.Background())
		require.True(t, nearrpc.IsTransportError(err))
		require.Contains(t, err.Error(), "HTTP 429/Too Many Requests")
		var rpcErr *nearrpc.Error
		require.False(t, errors.As(err, &rpcErr))
	})
	t.Run("canceled", func(t *testing.T) {
		srv := initTestServer(t, `{"jsonrpc":"2.0","id":1,"result":{}}`, nil)
		c, err := New(srv.URL, Options{})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = c.Status(ctx)
		require.True(t, nearrpc.IsTransportError(err))
		require.ErrorIs(t, err, context.Canceled)
	})
	t.Run("timeout", func(t *testing.T) {
		done := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			<-done
		}))
		t.Cleanup(srv.Close)
		t.Cleanup(func() { close(done) })
		c, err := New(srv.URL, Options{RequestTimeout: 50 * time.Millisecond})
		require.NoError(t, err)

		_, err = c.SendTransaction(context.Background(), mustTx())
		require.True(t, nearrpc.IsTransportError(err))
		var netErr net.Error
		require.ErrorAs(t, err, &netErr)
		require.True(t, netErr.Timeout())
		var txErr *rpcerr.TransactionError
		require.False(t, errors.As(err, &txErr))
	})
	t.Run("custom transport", func(t *testing.T) {
		fail := errors.New("no route")
		c, err := New("", Options{Transport: failingTransport{fail}})
		require.NoError(t, err)

		_, err = c.Status(context.Background())
		require.ErrorIs(t, err, fail)
		require.True(t, nearrpc.IsTransportError(err))
	})
}

type failingTransport struct {
	err error
}

func (t failingTransport) Send(context.Context, []byte) ([]byte, error) {
	return nil, t.err
}

func TestHeaders(t *testing.T) {
	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"gas_price":"1"}}`))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, Options{Headers: map[string]string{"X-Api-Key": "secret"}})
	require.NoError(t, err)

	_, err = c.GasPrice(context.Background(), nil)
	require.NoError(t, err)
	h := <-headers
	require.Equal(t, "secret", h.Get("X-Api-Key"))
	require.Equal(t, "application/json", h.Get("Content-Type"))
}

func TestMetrics(t *testing.T) {
	tr := &echoTransport{result: gasPriceResult}
	c, err := New("", Options{Transport: tr})
	require.NoError(t, err)

	var (
		calls  = testutil.ToFloat64(rpcCalls.WithLabelValues(request.MethodGasPrice))
		parse  = testutil.ToFloat64(rpcErrors.WithLabelValues(request.MethodBroadcastTxAsync, nearrpc.RequestValidationErrorName))
		broken = testutil.ToFloat64(rpcErrors.WithLabelValues(request.MethodStatus, classTransport))
	)
	_, err = c.GasPrice(context.Background(), nil)
	require.NoError(t, err)
	_, err = c.SendTransactionAsync(context.Background(), nil)
	require.Error(t, err)

	require.Equal(t, calls+1, testutil.ToFloat64(rpcCalls.WithLabelValues(request.MethodGasPrice)))
	require.Equal(t, parse+1, testutil.ToFloat64(rpcErrors.WithLabelValues(request.MethodBroadcastTxAsync, nearrpc.RequestValidationErrorName)))

	c, err = New("", Options{Transport: failingTransport{errors.New("down")}})
	require.NoError(t, err)
	_, err = c.Status(context.Background())
	require.Error(t, err)
	require.Equal(t, broken+1, testutil.ToFloat64(rpcErrors.WithLabelValues(request.MethodStatus, classTransport)))
}

func TestErrorClass(t *testing.T) {
	require.Equal(t, classTransport, errorClass(&nearrpc.TransportError{Err: errors.New("x")}))
	require.Equal(t, classLegacy, errorClass(&nearrpc.Error{Code: -32000, Message: "Server error"}))
	require.Equal(t, nearrpc.InternalErrorName, errorClass(nearrpc.NewInternalError("x")))
	require.Equal(t, classUnknown, errorClass(errors.New("x")))
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := &echoTransport{result: gasPriceResult}
	c, err := New("", Options{Transport: tr, Logger: zap.New(core)})
	require.NoError(t, err)
	c.getNextRequestID = func() nearrpc.RequestID { return nearrpc.StringID("fixed") }

	_, err = c.GasPrice(context.Background(), nil)
	require.NoError(t, err)
	_, err = c.SendTransaction(context.Background(), nil)
	require.Error(t, err)

	ok := logs.FilterMessage("RPC call").All()
	require.Len(t, ok, 1)
	require.Equal(t, request.MethodGasPrice, ok[0].ContextMap()["method"])
	require.Equal(t, "fixed", ok[0].ContextMap()["id"])

	failed := logs.FilterMessage("RPC call failed").All()
	require.Len(t, failed, 1)
	require.Equal(t, request.MethodBroadcastTxCommit, failed[0].ContextMap()["method"])
	require.Contains(t, failed[0].ContextMap()["error"], "no transaction")
}
