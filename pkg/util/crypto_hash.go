package util

import (
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

// CryptoHashSize is the size of CryptoHash in bytes.
const CryptoHashSize = 32

// CryptoHash is a 32 byte long hash (block, chunk, transaction or receipt
// hash). Its text form is base58.
type CryptoHash [CryptoHashSize]uint8

// CryptoHashDecodeString attempts to decode the given base58 string into a
// CryptoHash.
func CryptoHashDecodeString(s string) (u CryptoHash, err error) {
	b, err := base58.Decode(s)
	if err != nil {
		return u, fmt.Errorf("invalid base58 hash %q: %w", s, err)
	}
	return CryptoHashDecodeBytes(b)
}

// CryptoHashDecodeBytes attempts to decode the given byte slice into a
// CryptoHash.
func CryptoHashDecodeBytes(b []byte) (u CryptoHash, err error) {
	if len(b) != CryptoHashSize {
		return u, fmt.Errorf("expected []byte of size %d got %d", CryptoHashSize, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Bytes returns a byte slice representation of h.
func (h CryptoHash) Bytes() []byte {
	b := make([]byte, CryptoHashSize)
	copy(b, h[:])
	return b
}

// Equals returns true if both CryptoHash values are the same.
func (h CryptoHash) Equals(other CryptoHash) bool {
	return h == other
}

// String implements the stringer interface.
func (h CryptoHash) String() string {
	return base58.Encode(h[:])
}

// MarshalText implements the encoding.TextMarshaler interface, it allows
// CryptoHash to be used as a JSON object key.
func (h CryptoHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *CryptoHash) UnmarshalText(text []byte) (err error) {
	*h, err = CryptoHashDecodeString(string(text))
	return err
}

// MarshalJSON implements the json marshaller interface.
func (h CryptoHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON implements the json unmarshaller interface.
func (h *CryptoHash) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return err
	}
	*h, err = CryptoHashDecodeString(js)
	return err
}
