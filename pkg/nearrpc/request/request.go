/*
Package request contains typed parameters of NEAR JSON-RPC methods. Every
type marshals into the exact wire parameters of its method and has a Parse
function accepting all the parameter shapes nodes accept, so that untyped
input can be normalized. Methods accepting several shapes try them in a fixed
order and return the first success.
*/
package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
)

// Wire method names.
const (
	MethodStatus               = "status"
	MethodBroadcastTxCommit    = "broadcast_tx_commit"
	MethodBroadcastTxAsync     = "broadcast_tx_async"
	MethodTx                   = "tx"
	MethodTxStatusWithReceipts = "EXPERIMENTAL_tx_status"
	MethodQuery                = "query"
	MethodBlock                = "block"
	MethodChangesInBlock       = "EXPERIMENTAL_changes_in_block"
	MethodChanges              = "EXPERIMENTAL_changes"
	MethodChunk                = "chunk"
	MethodValidators           = "validators"
	MethodProtocolConfig       = "EXPERIMENTAL_protocol_config"
	MethodLightClientProof     = "EXPERIMENTAL_light_client_proof"
	MethodGasPrice             = "gas_price"
	MethodNetworkInfo          = "network_info"
)

type (
	// Status is the request of the status method, it has no parameters.
	Status struct{}

	// NetworkInfo is the request of the network_info method, it has no
	// parameters.
	NetworkInfo struct{}
)

var emptyParams = []byte("[]")

// Parse normalizes raw parameters of the given method into the corresponding
// request type (e.g. *Block for MethodBlock). Unknown methods yield a method
// not found error.
func Parse(method string, raw json.RawMessage) (any, error) {
	switch method {
	case MethodStatus:
		return untyped(ParseStatus(raw))
	case MethodBroadcastTxCommit, MethodBroadcastTxAsync:
		return untyped(ParseBroadcastTx(raw))
	case MethodTx, MethodTxStatusWithReceipts:
		return untyped(ParseTxStatus(raw))
	case MethodQuery:
		return untyped(ParseQuery(raw))
	case MethodBlock:
		return untyped(ParseBlock(raw))
	case MethodChangesInBlock:
		return untyped(ParseBlockChanges(raw))
	case MethodChanges:
		return untyped(ParseChanges(raw))
	case MethodChunk:
		return untyped(ParseChunk(raw))
	case MethodValidators:
		return untyped(ParseValidators(raw))
	case MethodProtocolConfig:
		return untyped(ParseProtocolConfig(raw))
	case MethodLightClientProof:
		return untyped(ParseLightClientProof(raw))
	case MethodGasPrice:
		return untyped(ParseGasPrice(raw))
	case MethodNetworkInfo:
		return untyped(ParseNetworkInfo(raw))
	}
	return nil, nearrpc.NewMethodNotFoundError(method)
}

// untyped drops the pointer type, it never returns a typed nil.
func untyped[T any](v *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseStatus accepts absent, null or empty array parameters.
func ParseStatus(raw json.RawMessage) (*Status, error) {
	if err := parseNoParams(raw); err != nil {
		return nil, err
	}
	return &Status{}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (Status) MarshalJSON() ([]byte, error) {
	return emptyParams, nil
}

// ParseNetworkInfo accepts absent, null or empty array parameters.
func ParseNetworkInfo(raw json.RawMessage) (*NetworkInfo, error) {
	if err := parseNoParams(raw); err != nil {
		return nil, err
	}
	return &NetworkInfo{}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (NetworkInfo) MarshalJSON() ([]byte, error) {
	return emptyParams, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

func parseNoParams(raw json.RawMessage) error {
	if isAbsent(raw) {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) != 0 {
		return nearrpc.NewParseError("Failed parsing args: no parameters expected")
	}
	return nil
}

// parseParams decodes named or positional parameters into v.
func parseParams(raw json.RawMessage, v any) error {
	if isAbsent(raw) {
		return nearrpc.NewParseError("Require at least one parameter")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return parseError(err)
	}
	return nil
}

// parsePositional decodes a positional array of exactly len(vs) elements.
func parsePositional(raw json.RawMessage, vs ...any) error {
	var arr []json.RawMessage
	if err := parseParams(raw, &arr); err != nil {
		return err
	}
	if len(arr) != len(vs) {
		return nearrpc.NewParseError(fmt.Sprintf("Failed parsing args: invalid length %d, expected a tuple of size %d", len(arr), len(vs)))
	}
	for i := range vs {
		if err := json.Unmarshal(arr[i], vs[i]); err != nil {
			return parseError(err)
		}
	}
	return nil
}

func parseError(err error) error {
	return nearrpc.NewParseError("Failed parsing args: " + err.Error())
}

// marshalFields merges the block reference with request-specific fields.
func marshalFields(ref nearrpc.BlockReference, extra map[string]any) ([]byte, error) {
	fields, err := ref.Fields()
	if err != nil {
		return nil, err
	}
	for k, v := range extra {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", k, err)
		}
		fields[k] = data
	}
	return json.Marshal(fields)
}
