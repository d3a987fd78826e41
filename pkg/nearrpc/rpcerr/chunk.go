package rpcerr

import (
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/util"
)

type (
	// ChunkError is an error of the chunk method.
	ChunkError struct {
		// Name is one of UnknownBlock, InvalidShardID, UnknownChunk and
		// InternalError.
		Name         string
		ErrorMessage string
		ShardID      uint64
		ChunkHash    util.CryptoHash
	}

	// ValidatorError is an error of the validators method.
	ValidatorError struct {
		// Name is one of UnknownEpoch, ValidatorInfoUnavailable and
		// InternalError.
		Name         string
		ErrorMessage string
	}

	// GasPriceError is an error of the gas_price method.
	GasPriceError struct {
		// Name is either UnknownBlock or InternalError.
		Name         string
		ErrorMessage string
	}

	shardIDInfo struct {
		ShardID uint64 `json:"shard_id"`
	}

	chunkHashInfo struct {
		ChunkHash util.CryptoHash `json:"chunk_hash"`
	}
)

// DecodeChunkError decodes chunk error from the variant.
func DecodeChunkError(c nearrpc.Cause) *ChunkError {
	switch c.Name {
	case UnknownBlock, InternalError:
		var info errorMessageInfo
		if decodeInfo(c, &info) {
			return &ChunkError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	case InvalidShardID:
		var info shardIDInfo
		if decodeInfo(c, &info) {
			return &ChunkError{Name: c.Name, ShardID: info.ShardID}
		}
	case UnknownChunk:
		var info chunkHashInfo
		if len(c.Info) != 0 && decodeInfo(c, &info) {
			return &ChunkError{Name: c.Name, ChunkHash: info.ChunkHash}
		}
	}
	return &ChunkError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *ChunkError) Error() string {
	switch e.Name {
	case UnknownBlock:
		return blockNotObservedMessage(e.ErrorMessage)
	case InvalidShardID:
		return fmt.Sprintf("Shard id %d does not exist", e.ShardID)
	case UnknownChunk:
		return fmt.Sprintf("Chunk with hash %s has never been observed on this node", e.ChunkHash)
	default:
		return limitsMessage(e.ErrorMessage)
	}
}

// RPCError converts the error into the generic form.
func (e *ChunkError) RPCError() *nearrpc.Error {
	switch e.Name {
	case UnknownBlock:
		return convert("ChunkError", e, e.Name, errorMessageInfo{e.ErrorMessage}, e.Error())
	case InvalidShardID:
		return convert("ChunkError", e, e.Name, shardIDInfo{e.ShardID}, e.Error())
	case UnknownChunk:
		return convert("ChunkError", e, e.Name, chunkHashInfo{e.ChunkHash}, e.Error())
	default:
		return convert("ChunkError", e, InternalError, errorMessageInfo{e.ErrorMessage}, e.Error())
	}
}

// DecodeValidatorError decodes validators error from the variant.
func DecodeValidatorError(c nearrpc.Cause) *ValidatorError {
	switch c.Name {
	case UnknownEpoch, ValidatorInfoUnavailable:
		return &ValidatorError{Name: c.Name}
	case InternalError:
		var info errorMessageInfo
		if decodeInfo(c, &info) {
			return &ValidatorError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	}
	return &ValidatorError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *ValidatorError) Error() string {
	switch e.Name {
	case UnknownEpoch:
		return "Epoch not found"
	case ValidatorInfoUnavailable:
		return "Validator info unavailable"
	default:
		return limitsMessage(e.ErrorMessage)
	}
}

// RPCError converts the error into the generic form.
func (e *ValidatorError) RPCError() *nearrpc.Error {
	switch e.Name {
	case UnknownEpoch, ValidatorInfoUnavailable:
		return convert("ValidatorError", e, e.Name, nil, e.Error())
	default:
		return convert("ValidatorError", e, InternalError, errorMessageInfo{e.ErrorMessage}, e.Error())
	}
}

// DecodeGasPriceError decodes gas price error from the variant.
func DecodeGasPriceError(c nearrpc.Cause) *GasPriceError {
	switch c.Name {
	case UnknownBlock, InternalError:
		var info errorMessageInfo
		if decodeInfo(c, &info) {
			return &GasPriceError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	}
	return &GasPriceError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *GasPriceError) Error() string {
	if e.Name == UnknownBlock {
		return blockNotObservedMessage(e.ErrorMessage)
	}
	return limitsMessage(e.ErrorMessage)
}

// RPCError converts the error into the generic form.
func (e *GasPriceError) RPCError() *nearrpc.Error {
	name := e.Name
	if name != UnknownBlock {
		name = InternalError
	}
	return convert("GasPriceError", e, name, errorMessageInfo{e.ErrorMessage}, e.Error())
}
