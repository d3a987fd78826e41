package nearrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	testCases := map[string]struct {
		err      *Error
		name     string
		cause    string
		code     int64
		message  string
		errorStr string
	}{
		"parse": {
			err:      NewParseError("bad params"),
			name:     RequestValidationErrorName,
			cause:    ParseErrorName,
			code:     ParseErrorCode,
			message:  "Parse error",
			errorStr: "Parse error (-32700) - bad params",
		},
		"method not found": {
			err:      NewMethodNotFoundError("foo"),
			name:     RequestValidationErrorName,
			cause:    MethodNotFoundName,
			code:     MethodNotFoundCode,
			message:  "Method not found",
			errorStr: "Method not found (-32601) - foo",
		},
		"internal": {
			err:      NewInternalError("boom"),
			name:     InternalErrorName,
			cause:    InternalErrorName,
			code:     ServerErrorCode,
			message:  "Internal error: boom",
			errorStr: "Internal error: boom (-32000) - boom",
		},
		"handler": {
			err:      NewInternalOrHandlerError(nil, Cause{Name: "NOT_SYNCED_YET"}, "not synced"),
			name:     HandlerErrorName,
			cause:    "NOT_SYNCED_YET",
			code:     ServerErrorCode,
			message:  "not synced",
			errorStr: "not synced (-32000)",
		},
		"internal from cause": {
			err:      NewInternalOrHandlerError(json.RawMessage(`{"x":1}`), Cause{Name: InternalErrorName}, "limits"),
			name:     InternalErrorName,
			cause:    InternalErrorName,
			code:     ServerErrorCode,
			message:  "limits",
			errorStr: `limits (-32000) - {"x":1}`,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.name, tc.err.Name)
			require.Equal(t, tc.cause, tc.err.Variant().Name)
			require.Equal(t, tc.code, tc.err.Code)
			require.Equal(t, tc.message, tc.err.Message)
			require.Equal(t, tc.errorStr, tc.err.Error())
		})
	}
	require.True(t, NewParseError("x").IsParseError())
	require.False(t, NewMethodNotFoundError("x").IsParseError())
	require.True(t, NewHandlerError(nil, Cause{Name: "X"}, "").IsHandlerError())
}

func TestErrorForms(t *testing.T) {
	var full Error
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "HANDLER_ERROR",
		"cause": {"name": "UNKNOWN_BLOCK", "info": {"block_reference": {"block_id": 1}}},
		"code": -32000,
		"message": "Server error",
		"data": "DB Not Found Error: BLOCK HEIGHT: 1 \n Cause: Unknown"
	}`), &full))
	require.True(t, full.IsHandlerError())
	require.Equal(t, "UNKNOWN_BLOCK", full.Variant().Name)
	require.JSONEq(t, `{"block_reference":{"block_id":1}}`, string(full.Variant().Info))

	var bare Error
	require.NoError(t, json.Unmarshal([]byte(`{"name":"UNKNOWN_BLOCK","info":{"error_message":"DB Not Found"}}`), &bare))
	require.Equal(t, "UNKNOWN_BLOCK", bare.Variant().Name)
	require.JSONEq(t, `{"error_message":"DB Not Found"}`, string(bare.Variant().Info))
	require.False(t, bare.IsLegacy())

	var legacy Error
	require.NoError(t, json.Unmarshal([]byte(`{"code":-32000,"message":"Server error","data":"whatever"}`), &legacy))
	require.True(t, legacy.IsLegacy())
	require.Equal(t, "Server error (-32000) - whatever", legacy.Error())
	require.False(t, legacy.IsClassOnly())
	require.False(t, bare.IsClassOnly())

	var classOnly Error
	require.NoError(t, json.Unmarshal([]byte(`{"name":"HANDLER_ERROR","code":-32000,"message":"Server error","data":"something"}`), &classOnly))
	require.True(t, classOnly.IsClassOnly())
	require.False(t, classOnly.IsLegacy())

	var bareInternal Error
	require.NoError(t, json.Unmarshal([]byte(`{"name":"INTERNAL_ERROR","info":{"error_message":"oops"}}`), &bareInternal))
	require.False(t, bareInternal.IsClassOnly())
}

type typedErr struct{}

func (typedErr) Error() string { return "typed" }

func TestErrorUnwrap(t *testing.T) {
	e := NewHandlerError(nil, Cause{Name: "X"}, "x")
	e.Err = typedErr{}
	wrapped := fmt.Errorf("call failed: %w", e)

	var rpcErr *Error
	require.True(t, errors.As(wrapped, &rpcErr))
	var typed typedErr
	require.True(t, errors.As(wrapped, &typed))
}

func TestTransportError(t *testing.T) {
	err := fmt.Errorf("send: %w", &TransportError{Err: context.DeadlineExceeded})
	require.True(t, IsTransportError(err))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, "send: transport error: context deadline exceeded", err.Error())
	require.False(t, IsTransportError(NewInternalError("x")))
}
