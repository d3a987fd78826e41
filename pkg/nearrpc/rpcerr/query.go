package rpcerr

import (
	"encoding/json"
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/util"
)

// QueryError is an error of the query method. Which fields are set depends
// on the Name:
//   - UnavailableShard: ShardID
//   - GarbageCollectedBlock: BlockHeight, BlockHash
//   - UnknownBlock: BlockReference
//   - InvalidAccount, UnknownAccount, NoContractCode, TooLargeContractState:
//     AccountID, BlockHeight, BlockHash
//   - UnknownAccessKey: PublicKey, BlockHeight, BlockHash
//   - ContractExecutionError: VMError, BlockHeight, BlockHash
//   - InternalError: ErrorMessage
type QueryError struct {
	Name string

	ShardID        uint64
	BlockHeight    uint64
	BlockHash      util.CryptoHash
	BlockReference json.RawMessage
	// AccountID is kept as is, it's not necessarily valid.
	AccountID    string
	PublicKey    string
	VMError      string
	ErrorMessage string
}

type (
	shardInfo struct {
		RequestedShardID uint64 `json:"requested_shard_id"`
	}

	blockInfo struct {
		BlockHeight uint64          `json:"block_height"`
		BlockHash   util.CryptoHash `json:"block_hash"`
	}

	blockRefInfo struct {
		BlockReference json.RawMessage `json:"block_reference"`
	}

	requestedAccountInfo struct {
		RequestedAccountID string `json:"requested_account_id"`
		blockInfo
	}

	contractInfo struct {
		ContractAccountID string `json:"contract_account_id"`
		blockInfo
	}

	accessKeyInfo struct {
		PublicKey string `json:"public_key"`
		blockInfo
	}

	vmErrorInfo struct {
		VMError string `json:"vm_error"`
		blockInfo
	}
)

// NewContractExecutionError creates a query error for function calls that
// failed inside the contract. Nodes report these as a part of the result.
func NewContractExecutionError(vmError string, height uint64, hash util.CryptoHash) *QueryError {
	return &QueryError{
		Name:        ContractExecutionError,
		VMError:     vmError,
		BlockHeight: height,
		BlockHash:   hash,
	}
}

// DecodeQueryError decodes query error from the variant.
func DecodeQueryError(c nearrpc.Cause) *QueryError {
	e := &QueryError{Name: c.Name}
	ok := true
	switch c.Name {
	case NoSyncedBlocks:
	case UnavailableShard:
		var info shardInfo
		ok = decodeInfo(c, &info)
		e.ShardID = info.RequestedShardID
	case GarbageCollectedBlock:
		var info blockInfo
		ok = decodeInfo(c, &info)
		e.BlockHeight, e.BlockHash = info.BlockHeight, info.BlockHash
	case UnknownBlock:
		var info blockRefInfo
		ok = decodeInfo(c, &info)
		e.BlockReference = info.BlockReference
	case InvalidAccount, UnknownAccount:
		var info requestedAccountInfo
		ok = decodeInfo(c, &info)
		e.AccountID = info.RequestedAccountID
		e.BlockHeight, e.BlockHash = info.BlockHeight, info.BlockHash
	case NoContractCode, TooLargeContractState:
		var info contractInfo
		ok = decodeInfo(c, &info)
		e.AccountID = info.ContractAccountID
		e.BlockHeight, e.BlockHash = info.BlockHeight, info.BlockHash
	case UnknownAccessKey:
		var info accessKeyInfo
		ok = decodeInfo(c, &info)
		e.PublicKey = info.PublicKey
		e.BlockHeight, e.BlockHash = info.BlockHeight, info.BlockHash
	case ContractExecutionError:
		var info vmErrorInfo
		ok = decodeInfo(c, &info)
		e.VMError = info.VMError
		e.BlockHeight, e.BlockHash = info.BlockHeight, info.BlockHash
	case InternalError:
		var info errorMessageInfo
		ok = decodeInfo(c, &info)
		e.ErrorMessage = info.ErrorMessage
	default:
		ok = false
	}
	if !ok {
		return &QueryError{Name: InternalError, ErrorMessage: unexpected(c)}
	}
	return e
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	switch e.Name {
	case NoSyncedBlocks:
		return "There are no fully synchronized blocks on the node yet"
	case UnavailableShard:
		return fmt.Sprintf("The node does not track the shard ID %d", e.ShardID)
	case GarbageCollectedBlock:
		return fmt.Sprintf("The data for block #%d is garbage collected on this node, use an archival node to fetch historical data", e.BlockHeight)
	case UnknownBlock:
		return blockNotObservedMessage(string(e.BlockReference))
	case InvalidAccount:
		return fmt.Sprintf("Account ID %s is invalid", e.AccountID)
	case UnknownAccount:
		return fmt.Sprintf("account %s does not exist while viewing", e.AccountID)
	case NoContractCode:
		return fmt.Sprintf("Contract code for contract ID #%s has never been observed on the node", e.AccountID)
	case TooLargeContractState:
		return fmt.Sprintf("State of contract %s is too large to be viewed", e.AccountID)
	case UnknownAccessKey:
		return fmt.Sprintf("Access key for public key %s has never been observed on the node", e.PublicKey)
	case ContractExecutionError:
		return "Function call returned an error: " + e.VMError
	default:
		return limitsMessage(e.ErrorMessage)
	}
}

// RPCError converts the error into the generic form.
func (e *QueryError) RPCError() *nearrpc.Error {
	var (
		name = e.Name
		info any
		blk  = blockInfo{BlockHeight: e.BlockHeight, BlockHash: e.BlockHash}
	)
	switch e.Name {
	case NoSyncedBlocks:
	case UnavailableShard:
		info = shardInfo{e.ShardID}
	case GarbageCollectedBlock:
		info = blk
	case UnknownBlock:
		info = blockRefInfo{e.BlockReference}
	case InvalidAccount, UnknownAccount:
		info = requestedAccountInfo{e.AccountID, blk}
	case NoContractCode, TooLargeContractState:
		info = contractInfo{e.AccountID, blk}
	case UnknownAccessKey:
		info = accessKeyInfo{e.PublicKey, blk}
	case ContractExecutionError:
		info = vmErrorInfo{e.VMError, blk}
	default:
		name = InternalError
		info = errorMessageInfo{e.ErrorMessage}
	}
	return convert("QueryError", e, name, info, e.Error())
}
