package rpcerr

import (
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
)

// LightClientProofError is an error of EXPERIMENTAL_light_client_proof
// method.
type LightClientProofError struct {
	Name         string
	ErrorMessage string
	// NumberOfShards and ExecutionOutcomeShardID are set for
	// InconsistentState.
	NumberOfShards          uint64
	ExecutionOutcomeShardID uint64
	// TransactionOrReceiptID is set for NotConfirmed,
	// UnknownTransactionOrReceipt and UnavailableShard.
	TransactionOrReceiptID string
	// ShardID is set for UnavailableShard.
	ShardID uint64
}

type (
	inconsistentStateInfo struct {
		NumberOrShards          uint64 `json:"number_or_shards"`
		ExecutionOutcomeShardID uint64 `json:"execution_outcome_shard_id"`
	}

	txOrReceiptInfo struct {
		TransactionOrReceiptID string `json:"transaction_or_receipt_id"`
	}

	unavailableShardInfo struct {
		TransactionOrReceiptID string `json:"transaction_or_receipt_id"`
		ShardID                uint64 `json:"shard_id"`
	}
)

// DecodeLightClientProofError decodes light client proof error from the
// variant.
func DecodeLightClientProofError(c nearrpc.Cause) *LightClientProofError {
	switch c.Name {
	case UnknownBlock, InternalError:
		var info errorMessageInfo
		if decodeInfo(c, &info) {
			return &LightClientProofError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	case InconsistentState:
		var info inconsistentStateInfo
		if decodeInfo(c, &info) {
			return &LightClientProofError{
				Name:                    c.Name,
				NumberOfShards:          info.NumberOrShards,
				ExecutionOutcomeShardID: info.ExecutionOutcomeShardID,
			}
		}
	case NotConfirmed, UnknownTransactionOrReceipt:
		var info txOrReceiptInfo
		if decodeInfo(c, &info) {
			return &LightClientProofError{Name: c.Name, TransactionOrReceiptID: info.TransactionOrReceiptID}
		}
	case UnavailableShard:
		var info unavailableShardInfo
		if decodeInfo(c, &info) {
			return &LightClientProofError{
				Name:                   c.Name,
				TransactionOrReceiptID: info.TransactionOrReceiptID,
				ShardID:                info.ShardID,
			}
		}
	}
	return &LightClientProofError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *LightClientProofError) Error() string {
	switch e.Name {
	case UnknownBlock:
		return blockNotObservedMessage(e.ErrorMessage)
	case InconsistentState:
		return fmt.Sprintf("Inconsistent state. Total number of shards is %d but the execution outcome is in shard %d",
			e.NumberOfShards, e.ExecutionOutcomeShardID)
	case NotConfirmed:
		return e.TransactionOrReceiptID + " has not been confirmed"
	case UnknownTransactionOrReceipt:
		return e.TransactionOrReceiptID + " does not exist"
	case UnavailableShard:
		return fmt.Sprintf("Node doesn't track the shard where %s is executed", e.TransactionOrReceiptID)
	default:
		return limitsMessage(e.ErrorMessage)
	}
}

// RPCError converts the error into the generic form.
func (e *LightClientProofError) RPCError() *nearrpc.Error {
	var (
		name = e.Name
		info any
	)
	switch e.Name {
	case UnknownBlock:
		info = errorMessageInfo{e.ErrorMessage}
	case InconsistentState:
		info = inconsistentStateInfo{e.NumberOfShards, e.ExecutionOutcomeShardID}
	case NotConfirmed, UnknownTransactionOrReceipt:
		info = txOrReceiptInfo{e.TransactionOrReceiptID}
	case UnavailableShard:
		info = unavailableShardInfo{e.TransactionOrReceiptID, e.ShardID}
	default:
		name = InternalError
		info = errorMessageInfo{e.ErrorMessage}
	}
	return convert("LightClientProofError", e, name, info, e.Error())
}
