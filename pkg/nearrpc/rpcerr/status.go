package rpcerr

import (
	"fmt"
	"math"
	"time"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/util"
)

type (
	// StatusError is an error of the status method.
	StatusError struct {
		// Name is one of NodeIsSyncing, NoNewBlocks, EpochOutOfBounds and
		// InternalError.
		Name         string
		ErrorMessage string
		// Elapsed is set for NoNewBlocks.
		Elapsed time.Duration
		// EpochID is set for EpochOutOfBounds.
		EpochID util.CryptoHash
	}

	// NetworkInfoError is an error of the network_info method, it only has
	// the InternalError variant.
	NetworkInfoError struct {
		ErrorMessage string
	}

	// duration is the wire form of time.Duration.
	duration struct {
		Secs  uint64 `json:"secs"`
		Nanos uint32 `json:"nanos"`
	}

	noNewBlocksInfo struct {
		Elapsed duration `json:"elapsed"`
	}

	epochInfo struct {
		EpochID util.CryptoHash `json:"epoch_id"`
	}
)

// maxElapsedSecs is the number of whole seconds fitting into time.Duration.
const maxElapsedSecs = uint64(math.MaxInt64 / int64(time.Second))

// duration converts the wire form to time.Duration, values not fitting into
// it are clamped to the maximum.
func (d duration) duration() time.Duration {
	if d.Secs > maxElapsedSecs {
		return time.Duration(math.MaxInt64)
	}
	res := time.Duration(d.Secs) * time.Second
	nanos := time.Duration(d.Nanos)
	if nanos > math.MaxInt64-res {
		return math.MaxInt64
	}
	return res + nanos
}

// DecodeStatusError decodes status error from the variant.
func DecodeStatusError(c nearrpc.Cause) *StatusError {
	switch c.Name {
	case NodeIsSyncing:
		return &StatusError{Name: c.Name}
	case NoNewBlocks:
		var info noNewBlocksInfo
		if decodeInfo(c, &info) {
			return &StatusError{Name: c.Name, Elapsed: info.Elapsed.duration()}
		}
	case EpochOutOfBounds:
		var info epochInfo
		if len(c.Info) != 0 && decodeInfo(c, &info) {
			return &StatusError{Name: c.Name, EpochID: info.EpochID}
		}
	case InternalError:
		var info errorMessageInfo
		if decodeInfo(c, &info) {
			return &StatusError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	}
	return &StatusError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	switch e.Name {
	case NodeIsSyncing:
		return "Node is syncing"
	case NoNewBlocks:
		return fmt.Sprintf("No blocks for %s", e.Elapsed)
	case EpochOutOfBounds:
		return fmt.Sprintf("Epoch Out Of Bounds %s", e.EpochID)
	default:
		return limitsMessage(e.ErrorMessage)
	}
}

// RPCError converts the error into the generic form.
func (e *StatusError) RPCError() *nearrpc.Error {
	switch e.Name {
	case NodeIsSyncing:
		return convert("StatusError", e, e.Name, nil, e.Error())
	case NoNewBlocks:
		info := noNewBlocksInfo{Elapsed: duration{
			Secs:  uint64(e.Elapsed / time.Second),
			Nanos: uint32(e.Elapsed % time.Second),
		}}
		return convert("StatusError", e, e.Name, info, e.Error())
	case EpochOutOfBounds:
		return convert("StatusError", e, e.Name, epochInfo{e.EpochID}, e.Error())
	default:
		return convert("StatusError", e, InternalError, errorMessageInfo{e.ErrorMessage}, e.Error())
	}
}

// DecodeNetworkInfoError decodes network info error from the variant.
func DecodeNetworkInfoError(c nearrpc.Cause) *NetworkInfoError {
	var info errorMessageInfo
	if c.Name == InternalError && decodeInfo(c, &info) {
		return &NetworkInfoError{ErrorMessage: info.ErrorMessage}
	}
	return &NetworkInfoError{ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *NetworkInfoError) Error() string {
	return "Internal error: " + e.ErrorMessage
}

// RPCError converts the error into the generic form, the serialized variant
// is used both as the cause and the data.
func (e *NetworkInfoError) RPCError() *nearrpc.Error {
	return convert("NetworkInfoError", e, InternalError, errorMessageInfo{e.ErrorMessage}, nil)
}
