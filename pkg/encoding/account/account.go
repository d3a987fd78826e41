/*
Package account implements NEAR account identifiers and their validation
rules.
*/
package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Length limits for account IDs.
const (
	MinLength = 2
	MaxLength = 64
)

// implicitLength is the length of an implicit (hex-encoded ed25519 key)
// account ID.
const implicitLength = 64

var (
	// ErrTooShort is returned for IDs shorter than MinLength.
	ErrTooShort = errors.New("account ID is too short")
	// ErrTooLong is returned for IDs longer than MaxLength.
	ErrTooLong = errors.New("account ID is too long")
	// ErrInvalidChar is returned for IDs with characters not matching the
	// allowed pattern.
	ErrInvalidChar = errors.New("account ID has invalid characters or separators")

	validID = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)
	hexID   = regexp.MustCompile(`^[0-9a-f]+$`)
)

// ID is a validated account identifier like "alice.near".
type ID string

// NewID validates the given string and returns it as an ID.
func NewID(s string) (ID, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	return ID(s), nil
}

// Validate checks s against the account ID rules.
func Validate(s string) error {
	switch {
	case len(s) < MinLength:
		return fmt.Errorf("%w: %q", ErrTooShort, s)
	case len(s) > MaxLength:
		return fmt.Errorf("%w: %q", ErrTooLong, s)
	case !validID.MatchString(s):
		return fmt.Errorf("%w: %q", ErrInvalidChar, s)
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (id ID) String() string {
	return string(id)
}

// IsImplicit returns true for implicit accounts (64 lowercase hex chars).
func (id ID) IsImplicit() bool {
	return len(id) == implicitLength && hexID.MatchString(string(id))
}

// IsTopLevel returns true if id has no parent account.
func (id ID) IsTopLevel() bool {
	return !strings.Contains(string(id), ".")
}

// IsSubAccountOf returns true if id is a direct sub-account of parent.
func (id ID) IsSubAccountOf(parent ID) bool {
	prefix, ok := strings.CutSuffix(string(id), "."+string(parent))
	return ok && prefix != "" && !strings.Contains(prefix, ".")
}

// UnmarshalJSON implements the json.Unmarshaler interface, it validates the
// ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := NewID(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}
