package rpcerr

import (
	"encoding/json"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/util"
)

// TransactionError is an error of tx, EXPERIMENTAL_tx_status and
// broadcast_tx_* methods.
type TransactionError struct {
	Name string
	// Context is the invalid transaction reason for InvalidTransaction, it
	// isn't a part of the serialized variant.
	Context json.RawMessage
	// TransactionHash is set for RequestRouted and UnknownTransaction.
	TransactionHash util.CryptoHash
	// DebugInfo is set for InternalError.
	DebugInfo string
}

type (
	invalidTxInfo struct {
		Context json.RawMessage `json:"context,omitempty"`
	}

	routedInfo struct {
		TransactionHash util.CryptoHash `json:"transaction_hash"`
	}

	unknownTxInfo struct {
		RequestedTransactionHash util.CryptoHash `json:"requested_transaction_hash"`
	}

	debugInfo struct {
		DebugInfo string `json:"debug_info"`
	}
)

// DecodeTransactionError decodes transaction error from the variant.
func DecodeTransactionError(c nearrpc.Cause) *TransactionError {
	switch c.Name {
	case InvalidTransaction:
		var info invalidTxInfo
		if decodeInfo(c, &info) {
			return &TransactionError{Name: c.Name, Context: info.Context}
		}
	case DoesNotTrackShard, TimeoutError:
		return &TransactionError{Name: c.Name}
	case RequestRouted:
		var info routedInfo
		if len(c.Info) != 0 && decodeInfo(c, &info) {
			return &TransactionError{Name: c.Name, TransactionHash: info.TransactionHash}
		}
	case UnknownTransaction:
		var info unknownTxInfo
		if len(c.Info) != 0 && decodeInfo(c, &info) {
			return &TransactionError{Name: c.Name, TransactionHash: info.RequestedTransactionHash}
		}
	case InternalError:
		var info debugInfo
		if decodeInfo(c, &info) {
			return &TransactionError{Name: c.Name, DebugInfo: info.DebugInfo}
		}
	}
	return &TransactionError{Name: InternalError, DebugInfo: unexpected(c)}
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	switch e.Name {
	case InvalidTransaction:
		return "An error happened during transaction execution: " + string(e.Context)
	case DoesNotTrackShard:
		return "Node doesn't track this shard. Cannot determine whether the transaction is valid"
	case RequestRouted:
		return "Transaction with hash " + e.TransactionHash.String() + " was routed"
	case UnknownTransaction:
		return "Transaction " + e.TransactionHash.String() + " doesn't exist"
	case TimeoutError:
		return "Timeout"
	default:
		return limitsMessage(e.DebugInfo)
	}
}

// RPCError converts the error into the generic form. The invalid transaction
// context is passed as data.
func (e *TransactionError) RPCError() *nearrpc.Error {
	switch e.Name {
	case InvalidTransaction:
		var data any = e.Error()
		if len(e.Context) != 0 {
			data = e.Context
		}
		return convert("TransactionError", e, e.Name, struct{}{}, data)
	case DoesNotTrackShard, TimeoutError:
		return convert("TransactionError", e, e.Name, nil, e.Error())
	case RequestRouted:
		return convert("TransactionError", e, e.Name, routedInfo{e.TransactionHash}, e.Error())
	case UnknownTransaction:
		return convert("TransactionError", e, e.Name, unknownTxInfo{e.TransactionHash}, e.Error())
	default:
		return convert("TransactionError", e, InternalError, debugInfo{e.DebugInfo}, e.Error())
	}
}
