/*
Package transaction provides the signed transaction value accepted by the
node's broadcast and status methods. Building and signing transactions is
left to the caller; this package only carries the serialized result.
*/
package transaction

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmpty is returned when a signed transaction has no bytes.
var ErrEmpty = errors.New("empty signed transaction")

// Signed is an opaque, already serialized and signed transaction. Its JSON
// form is a base64 string.
type Signed struct {
	data []byte
}

// NewSigned wraps the given serialized transaction. The slice is copied.
func NewSigned(b []byte) (*Signed, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	return &Signed{data: append([]byte(nil), b...)}, nil
}

// NewSignedFromBase64 decodes a base64-encoded signed transaction.
func NewSignedFromBase64(s string) (*Signed, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signed transaction: %w", err)
	}
	return NewSigned(b)
}

// Bytes returns a copy of the serialized transaction.
func (s *Signed) Bytes() []byte {
	return append([]byte(nil), s.data...)
}

// Base64 returns the wire representation of the transaction.
func (s *Signed) Base64() string {
	return base64.StdEncoding.EncodeToString(s.data)
}

// Equals returns true if both transactions carry the same bytes.
func (s *Signed) Equals(other *Signed) bool {
	if s == nil || other == nil {
		return s == other
	}
	return string(s.data) == string(other.data)
}

// MarshalJSON implements the json.Marshaler interface.
func (s Signed) MarshalJSON() ([]byte, error) {
	if len(s.data) == 0 {
		return nil, ErrEmpty
	}
	return json.Marshal(s.Base64())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signed) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	tx, err := NewSignedFromBase64(str)
	if err != nil {
		return err
	}
	*s = *tx
	return nil
}
