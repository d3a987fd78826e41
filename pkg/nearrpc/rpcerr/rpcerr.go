/*
Package rpcerr contains method-specific errors of NEAR JSON-RPC methods. Each
of them is decoded from the variant (cause) of a generic nearrpc.Error and
converted back into the generic form with RPCError.
*/
package rpcerr

import (
	"encoding/json"
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
)

// Variant tags used by method-specific errors.
const (
	InternalError = "INTERNAL_ERROR"
	UnknownBlock  = "UNKNOWN_BLOCK"
	NotSyncedYet  = "NOT_SYNCED_YET"

	InvalidTransaction = "INVALID_TRANSACTION"
	DoesNotTrackShard  = "DOES_NOT_TRACK_SHARD"
	RequestRouted      = "REQUEST_ROUTED"
	UnknownTransaction = "UNKNOWN_TRANSACTION"
	TimeoutError       = "TIMEOUT_ERROR"

	NoSyncedBlocks         = "NO_SYNCED_BLOCKS"
	UnavailableShard       = "UNAVAILABLE_SHARD"
	GarbageCollectedBlock  = "GARBAGE_COLLECTED_BLOCK"
	InvalidAccount         = "INVALID_ACCOUNT"
	UnknownAccount         = "UNKNOWN_ACCOUNT"
	NoContractCode         = "NO_CONTRACT_CODE"
	TooLargeContractState  = "TOO_LARGE_CONTRACT_STATE"
	UnknownAccessKey       = "UNKNOWN_ACCESS_KEY"
	ContractExecutionError = "CONTRACT_EXECUTION_ERROR"

	InvalidShardID = "INVALID_SHARD_ID"
	UnknownChunk   = "UNKNOWN_CHUNK"

	UnknownEpoch             = "UNKNOWN_EPOCH"
	ValidatorInfoUnavailable = "VALIDATOR_INFO_UNAVAILABLE"

	InconsistentState           = "INCONSISTENT_STATE"
	NotConfirmed                = "NOT_CONFIRMED"
	UnknownTransactionOrReceipt = "UNKNOWN_TRANSACTION_OR_RECEIPT"

	NodeIsSyncing    = "NODE_IS_SYNCING"
	NoNewBlocks      = "NO_NEW_BLOCKS"
	EpochOutOfBounds = "EPOCH_OUT_OF_BOUNDS"
)

// Converter is implemented by every method-specific error.
type Converter interface {
	error
	RPCError() *nearrpc.Error
}

type errorMessageInfo struct {
	ErrorMessage string `json:"error_message"`
}

// decodeInfo decodes the variant payload into v, absent payload is fine for
// variants that carry nothing.
func decodeInfo(c nearrpc.Cause, v any) bool {
	if len(c.Info) == 0 || string(c.Info) == "null" {
		return true
	}
	return json.Unmarshal(c.Info, v) == nil
}

// unexpected renders a variant that doesn't belong to the method.
func unexpected(c nearrpc.Cause) string {
	if len(c.Info) == 0 {
		return fmt.Sprintf("unexpected error variant %s", c.Name)
	}
	return fmt.Sprintf("unexpected error variant %s: %s", c.Name, c.Info)
}

func limitsMessage(msg string) string {
	return "The node reached its limits. Try again later. More details: " + msg
}

func blockNotObservedMessage(msg string) string {
	return "Block either has never been observed on the node or has been garbage collected: " + msg
}

// convert builds the generic error for the given variant of the typ error.
// Nil data means the serialized variant itself is used as data.
func convert(typ string, err error, name string, info any, data any) *nearrpc.Error {
	cause := nearrpc.Cause{Name: name}
	if info != nil {
		raw, mErr := json.Marshal(info)
		if mErr != nil {
			return nearrpc.NewInternalError(fmt.Sprintf("Failed to serialize %s: %v", typ, mErr))
		}
		cause.Info = raw
	}
	if data == nil {
		data = cause
	}
	rawData, mErr := json.Marshal(data)
	if mErr != nil {
		return nearrpc.NewInternalError(fmt.Sprintf("Failed to serialize %s: %v", typ, mErr))
	}
	res := nearrpc.NewInternalOrHandlerError(rawData, cause, err.Error())
	res.Err = err
	return res
}
