package rpcerr

import (
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
)

type (
	// BlockError is an error of the block method.
	BlockError struct {
		// Name is one of UnknownBlock, NotSyncedYet and InternalError.
		Name         string
		ErrorMessage string
	}

	// StateChangesError is an error of EXPERIMENTAL_changes and
	// EXPERIMENTAL_changes_in_block methods, it has the same variants as
	// BlockError.
	StateChangesError struct {
		Name         string
		ErrorMessage string
	}

	// ProtocolConfigError is an error of EXPERIMENTAL_protocol_config
	// method.
	ProtocolConfigError struct {
		// Name is either UnknownBlock or InternalError.
		Name         string
		ErrorMessage string
	}
)

// DecodeBlockError decodes block method error from the variant.
func DecodeBlockError(c nearrpc.Cause) *BlockError {
	var info errorMessageInfo
	switch c.Name {
	case UnknownBlock, InternalError, NotSyncedYet:
		if decodeInfo(c, &info) {
			return &BlockError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	}
	return &BlockError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *BlockError) Error() string {
	switch e.Name {
	case UnknownBlock:
		return "Block not found: " + e.ErrorMessage
	case NotSyncedYet:
		return "There are no fully synchronized blocks yet"
	default:
		return limitsMessage(e.ErrorMessage)
	}
}

// RPCError converts the error into the generic form.
func (e *BlockError) RPCError() *nearrpc.Error {
	switch e.Name {
	case UnknownBlock:
		// The message isn't a part of the variant payload.
		return convert("BlockError", e, e.Name, struct{}{},
			fmt.Sprintf("DB Not Found Error: %s \n Cause: Unknown", e.ErrorMessage))
	case NotSyncedYet:
		return convert("BlockError", e, e.Name, nil, e.Error())
	default:
		return convert("BlockError", e, InternalError, errorMessageInfo{e.ErrorMessage}, e.Error())
	}
}

// DecodeStateChangesError decodes state changes error from the variant.
func DecodeStateChangesError(c nearrpc.Cause) *StateChangesError {
	var info errorMessageInfo
	switch c.Name {
	case UnknownBlock, InternalError, NotSyncedYet:
		if decodeInfo(c, &info) {
			return &StateChangesError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	}
	return &StateChangesError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *StateChangesError) Error() string {
	return (*BlockError)(e).Error()
}

// RPCError converts the error into the generic form, the serialized variant
// is used both as the cause and the data.
func (e *StateChangesError) RPCError() *nearrpc.Error {
	switch e.Name {
	case UnknownBlock:
		return convert("StateChangesError", e, e.Name, struct{}{}, nil)
	case NotSyncedYet:
		return convert("StateChangesError", e, e.Name, nil, nil)
	default:
		return convert("StateChangesError", e, InternalError, errorMessageInfo{e.ErrorMessage}, nil)
	}
}

// DecodeProtocolConfigError decodes protocol config error from the variant.
func DecodeProtocolConfigError(c nearrpc.Cause) *ProtocolConfigError {
	var info errorMessageInfo
	switch c.Name {
	case UnknownBlock, InternalError:
		if decodeInfo(c, &info) {
			return &ProtocolConfigError{Name: c.Name, ErrorMessage: info.ErrorMessage}
		}
	}
	return &ProtocolConfigError{Name: InternalError, ErrorMessage: unexpected(c)}
}

// Error implements the error interface.
func (e *ProtocolConfigError) Error() string {
	if e.Name == UnknownBlock {
		return "Block has never been observed: " + e.ErrorMessage
	}
	return limitsMessage(e.ErrorMessage)
}

// RPCError converts the error into the generic form.
func (e *ProtocolConfigError) RPCError() *nearrpc.Error {
	if e.Name == UnknownBlock {
		return convert("ProtocolConfigError", e, e.Name, struct{}{}, "Block Not Found: "+e.ErrorMessage)
	}
	return convert("ProtocolConfigError", e, InternalError, errorMessageInfo{e.ErrorMessage}, e.Error())
}
