/*
Package result contains result types of NEAR JSON-RPC methods. All of them
decode node responses and encode back into the same wire form.
*/
package result

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type (
	// Signature is a signature in "<key type>:<base58 data>" form.
	Signature string

	// U64String is a uint64 encoded as a JSON string, it's used where values
	// don't fit into a float64 (nanosecond timestamps).
	U64String uint64

	// ByteArray is a byte slice encoded as a JSON array of numbers instead of
	// base64.
	ByteArray []byte

	// Rational is a fraction encoded as [numerator, denominator].
	Rational [2]int64
)

// MarshalJSON implements the json.Marshaler interface.
func (u U64String) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *U64String) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 string: %w", err)
	}
	*u = U64String(v)
	return nil
}

// MarshalJSON implements the json.Marshaler interface. Nil array is encoded
// as null, empty one as [].
func (b ByteArray) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	res := make([]byte, 0, 2+4*len(b))
	res = append(res, '[')
	for i, v := range b {
		if i > 0 {
			res = append(res, ',')
		}
		res = strconv.AppendUint(res, uint64(v), 10)
	}
	return append(res, ']'), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var arr []uint8
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*b = arr
	return nil
}

// Float returns the fraction value.
func (r Rational) Float() float64 {
	if r[1] == 0 {
		return 0
	}
	return float64(r[0]) / float64(r[1])
}
