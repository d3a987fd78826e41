/*
Package nearrpc contains a set of types used for JSON-RPC communication with
NEAR nodes. It defines basic request/response types, the generic error
taxonomy every method-specific error collapses into and block references
shared by many requests.
*/
package nearrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const (
	// JSONRPCVersion is the only JSON-RPC protocol version supported.
	JSONRPCVersion = "2.0"
)

type (
	// Request represents JSON-RPC request. Params are passed as is, so they
	// can be either a positional array or a named object depending on the
	// method.
	Request struct {
		// JSONRPC is the protocol version, only valid when it contains JSONRPCVersion.
		JSONRPC string `json:"jsonrpc"`
		// ID is an identifier associated with this request, it's echoed back
		// by the node.
		ID RequestID `json:"id"`
		// Method is the method being called.
		Method string `json:"method"`
		// Params is a set of method-specific parameters, omitted when empty.
		Params json.RawMessage `json:"params,omitempty"`
	}

	// Response represents a standard JSON-RPC 2.0 response. Exactly one of
	// Result and Error is set for responses returned by ParseResponse.
	Response struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      *RequestID      `json:"id"`
		Result  json.RawMessage `json:"result,omitempty"`
		Error   *Error          `json:"error,omitempty"`
	}

	// RequestID is either a number or a string, both are allowed by
	// JSON-RPC. The zero value is numeric 0.
	RequestID struct {
		num   uint64
		str   string
		isStr bool
	}

	// rawResponse keeps every field undecoded, so that absent and null
	// values can be told apart.
	rawResponse struct {
		JSONRPC *string         `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  json.RawMessage `json:"result"`
		Error   json.RawMessage `json:"error"`
	}
)

var errInvalidRequestID = errors.New("request ID must be a number or a string")

// NewRequest creates a JSON-RPC 2.0 request. An empty params value is
// omitted from the wire form.
func NewRequest(method string, params json.RawMessage, id RequestID) Request {
	return Request{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// NumericID returns a numeric request identifier.
func NumericID(n uint64) RequestID {
	return RequestID{num: n}
}

// StringID returns a string request identifier.
func StringID(s string) RequestID {
	return RequestID{str: s, isStr: true}
}

// IsString returns true for string identifiers.
func (id RequestID) IsString() bool {
	return id.isStr
}

// String implements the fmt.Stringer interface.
func (id RequestID) String() string {
	if id.isStr {
		return id.str
	}
	return strconv.FormatUint(id.num, 10)
}

// MarshalJSON implements the json.Marshaler interface.
func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.isStr {
		return json.Marshal(id.str)
	}
	return []byte(strconv.FormatUint(id.num, 10)), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = NumericID(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = StringID(s)
		return nil
	}
	return fmt.Errorf("%w: %s", errInvalidRequestID, data)
}

// ParseResponse decodes a JSON-RPC 2.0 response envelope. Any malformed
// input (invalid JSON, missing id, both or neither of result and error, a
// wrong protocol version) is reported as an internal *Error.
func ParseResponse(data []byte) (*Response, error) {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewInternalError(fmt.Sprintf("invalid response JSON: %s", err))
	}
	if raw.JSONRPC != nil && *raw.JSONRPC != JSONRPCVersion {
		return nil, NewInternalError(fmt.Sprintf("unsupported JSON-RPC version %q", *raw.JSONRPC))
	}
	if raw.ID == nil {
		return nil, NewInternalError("response has no id")
	}
	if isNull(raw.Error) {
		raw.Error = nil
	}
	switch {
	case raw.Result != nil && raw.Error != nil:
		return nil, NewInternalError("response has both result and error")
	case raw.Result == nil && raw.Error == nil:
		return nil, NewInternalError("response has neither result nor error")
	}

	resp := &Response{JSONRPC: JSONRPCVersion, Result: raw.Result}
	if !isNull(raw.ID) {
		id := new(RequestID)
		if err := json.Unmarshal(raw.ID, id); err != nil {
			return nil, NewInternalError(fmt.Sprintf("invalid response id: %s", err))
		}
		resp.ID = id
	}
	if raw.Error != nil {
		rpcErr := new(Error)
		if err := json.Unmarshal(raw.Error, rpcErr); err != nil {
			return nil, NewInternalError(fmt.Sprintf("invalid response error: %s", err))
		}
		resp.Error = rpcErr
	}
	return resp, nil
}

// MatchesID checks whether the response belongs to the request with the
// given id. A null id is only acceptable for error responses, it's used by
// nodes that could not read the request id at all.
func (r *Response) MatchesID(id RequestID) bool {
	if r.ID == nil {
		return r.Error != nil
	}
	return *r.ID == id
}

func isNull(data json.RawMessage) bool {
	return string(data) == "null"
}
