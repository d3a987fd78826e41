package nearrpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error class names, they're used as the top-level name of an error.
const (
	RequestValidationErrorName = "REQUEST_VALIDATION_ERROR"
	HandlerErrorName           = "HANDLER_ERROR"
	InternalErrorName          = "INTERNAL_ERROR"
)

// Request validation cause names.
const (
	ParseErrorName     = "PARSE_ERROR"
	MethodNotFoundName = "METHOD_NOT_FOUND"
)

// Stable error codes.
const (
	ParseErrorCode     = -32700
	MethodNotFoundCode = -32601
	ServerErrorCode    = -32000
)

type (
	// Error is the generic JSON-RPC error every method-specific error is
	// converted into. Nodes send it either in the full form (name, cause,
	// code, message, data) or in the bare one (name and info only), both
	// are accepted.
	Error struct {
		// Name is the error class for the full form and the variant tag for
		// the bare one.
		Name  string `json:"name,omitempty"`
		Cause *Cause `json:"cause,omitempty"`
		// Info is only present in the bare form.
		Info    json.RawMessage `json:"info,omitempty"`
		Code    int64           `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data,omitempty"`

		// Err is the method-specific error this one was converted from.
		Err error `json:"-"`
	}

	// Cause is the variant tag with its payload.
	Cause struct {
		Name string          `json:"name"`
		Info json.RawMessage `json:"info,omitempty"`
	}

	// TransportError is returned when no response was obtained from the node
	// at all (connection failure, timeout, non-JSON HTTP error reply).
	TransportError struct {
		Err error
	}
)

// NewParseError creates a request validation error for invalid request
// parameters, such requests are never sent.
func NewParseError(msg string) *Error {
	return &Error{
		Name:    RequestValidationErrorName,
		Cause:   &Cause{Name: ParseErrorName, Info: mustInfo(map[string]string{"error_message": msg})},
		Code:    ParseErrorCode,
		Message: "Parse error",
		Data:    jsonString(msg),
	}
}

// NewMethodNotFoundError creates a request validation error for unknown
// methods.
func NewMethodNotFoundError(method string) *Error {
	return &Error{
		Name:    RequestValidationErrorName,
		Cause:   &Cause{Name: MethodNotFoundName, Info: mustInfo(map[string]string{"method_name": method})},
		Code:    MethodNotFoundCode,
		Message: "Method not found",
		Data:    jsonString(method),
	}
}

// NewInternalError creates an internal error with the given message. It's
// used for failures on the client side like undecodable responses.
func NewInternalError(msg string) *Error {
	return &Error{
		Name:    InternalErrorName,
		Cause:   &Cause{Name: InternalErrorName, Info: mustInfo(map[string]string{"error_message": msg})},
		Code:    ServerErrorCode,
		Message: "Internal error: " + msg,
		Data:    jsonString(msg),
	}
}

// NewHandlerError creates an error reported by a method handler.
func NewHandlerError(data json.RawMessage, cause Cause, message string) *Error {
	return &Error{
		Name:    HandlerErrorName,
		Cause:   &cause,
		Code:    ServerErrorCode,
		Message: message,
		Data:    data,
	}
}

// NewInternalOrHandlerError creates an internal error if the cause is
// INTERNAL_ERROR and a handler error otherwise.
func NewInternalOrHandlerError(data json.RawMessage, cause Cause, message string) *Error {
	e := NewHandlerError(data, cause, message)
	if cause.Name == InternalErrorName {
		e.Name = InternalErrorName
	}
	return e
}

// Variant returns the variant tag and payload of the error regardless of the
// form it was received in.
func (e *Error) Variant() Cause {
	if e.Cause != nil {
		return *e.Cause
	}
	return Cause{Name: e.Name, Info: e.Info}
}

// IsRequestValidationError returns true for parse and method not found errors.
func (e *Error) IsRequestValidationError() bool {
	return e.Name == RequestValidationErrorName
}

// IsHandlerError returns true for errors reported by method handlers.
func (e *Error) IsHandlerError() bool {
	return e.Name == HandlerErrorName
}

// IsInternalError returns true for internal errors.
func (e *Error) IsInternalError() bool {
	return e.Name == InternalErrorName
}

// IsParseError returns true for request parameters parsing errors.
func (e *Error) IsParseError() bool {
	return e.IsRequestValidationError() && e.Cause != nil && e.Cause.Name == ParseErrorName
}

// IsLegacy returns true for errors carrying no class and no variant, only
// code, message and data.
func (e *Error) IsLegacy() bool {
	return e.Name == "" && e.Cause == nil
}

// IsClassOnly returns true for full-form errors naming a class but carrying
// no variant. Bare variants have no code, so they never match.
func (e *Error) IsClassOnly() bool {
	if e.Cause != nil || e.Code == 0 {
		return false
	}
	return e.IsRequestValidationError() || e.IsHandlerError() || e.IsInternalError()
}

// Error implements the error interface.
func (e *Error) Error() string {
	data := e.dataString()
	if len(data) == 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%d) - %s", e.Message, e.Code, data)
}

// Unwrap returns the method-specific error if there is one.
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) dataString() string {
	if len(e.Data) == 0 || isNull(e.Data) {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Data, &s); err == nil {
		return s
	}
	return string(e.Data)
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError checks whether err is a *TransportError or wraps one.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func jsonString(s string) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}

// mustInfo marshals payloads that can't fail to be marshaled.
func mustInfo(v map[string]string) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
