package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// yoctoPerNEAR is the number of yoctoNEAR in one NEAR (10^24).
var yoctoPerNEAR = new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)

var errBalanceOverflow = errors.New("balance doesn't fit into 128 bits")

// Balance is an amount of yoctoNEAR. Node uses unsigned 128-bit integers
// for it and always encodes them as decimal JSON strings.
type Balance struct {
	v uint256.Int
}

// NewBalance creates a Balance from the given uint64 value.
func NewBalance(v uint64) Balance {
	var b Balance
	b.v.SetUint64(v)
	return b
}

// BalanceFromString parses a decimal string into a Balance.
func BalanceFromString(s string) (Balance, error) {
	var b Balance
	if s == "" || s[0] == '-' || s[0] == '+' {
		return Balance{}, fmt.Errorf("invalid balance %q", s)
	}
	if err := b.v.SetFromDecimal(s); err != nil {
		return Balance{}, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	if b.v.BitLen() > 128 {
		return Balance{}, errBalanceOverflow
	}
	return b, nil
}

// BalanceFromBig converts a big.Int into a Balance.
func BalanceFromBig(i *big.Int) (Balance, error) {
	var b Balance
	if i.Sign() < 0 {
		return b, errors.New("negative balance")
	}
	if overflow := b.v.SetFromBig(i); overflow || b.v.BitLen() > 128 {
		return Balance{}, errBalanceOverflow
	}
	return b, nil
}

// Big returns a big.Int representation of b.
func (b Balance) Big() *big.Int {
	return b.v.ToBig()
}

// IsZero returns true if b is zero.
func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Cmp compares b and o and returns -1, 0 or 1.
func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

// String implements the stringer interface, it returns a decimal yoctoNEAR
// amount.
func (b Balance) String() string {
	return b.v.ToBig().String()
}

// NEAR returns b formatted as a NEAR amount with up to 24 decimal places.
func (b Balance) NEAR() string {
	q, r := new(big.Int).QuoRem(b.v.ToBig(), yoctoPerNEAR, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := r.String()
	frac = strings.Repeat("0", 24-len(frac)) + frac
	return q.String() + "." + strings.TrimRight(frac, "0")
}

// MarshalJSON implements the json.Marshaler interface.
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface. Numbers are
// accepted too, some old nodes send small amounts unquoted.
func (b *Balance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("balance is neither a string nor a number: %w", err)
		}
		s = n.String()
	}
	v, err := BalanceFromString(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}
