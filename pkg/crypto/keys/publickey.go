package keys

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// KeyType is a public key algorithm.
type KeyType byte

// Supported key types, the values match the node's binary encoding.
const (
	ED25519   KeyType = 0
	SECP256K1 KeyType = 1
)

// secp256k1KeySize is the size of an uncompressed secp256k1 key without the
// 0x04 prefix, that's the form used by the node.
const secp256k1KeySize = 64

var errUnknownKeyType = errors.New("unknown key type")

// String implements the fmt.Stringer interface.
func (t KeyType) String() string {
	switch t {
	case ED25519:
		return "ed25519"
	case SECP256K1:
		return "secp256k1"
	default:
		return fmt.Sprintf("KeyType(%d)", byte(t))
	}
}

// KeyTypeFromString parses key type name.
func KeyTypeFromString(s string) (KeyType, error) {
	switch strings.ToLower(s) {
	case "ed25519":
		return ED25519, nil
	case "secp256k1":
		return SECP256K1, nil
	default:
		return 0, fmt.Errorf("%w: %s", errUnknownKeyType, s)
	}
}

func (t KeyType) size() int {
	if t == SECP256K1 {
		return secp256k1KeySize
	}
	return ed25519.PublicKeySize
}

// PublicKey is an account access key as the node sees it: a key type and
// raw key data. Text form is "<type>:<base58 data>", a missing type prefix
// means ed25519.
type PublicKey struct {
	Type KeyType
	Data []byte
}

// NewPublicKeyFromString parses a public key from its text form.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	var (
		typ  = ED25519
		data = s
	)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		t, err := KeyTypeFromString(s[:i])
		if err != nil {
			return nil, err
		}
		typ, data = t, s[i+1:]
	}
	b, err := base58.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("invalid public key data: %w", err)
	}
	if len(b) != typ.size() {
		return nil, fmt.Errorf("invalid %s key length: expected %d got %d", typ, typ.size(), len(b))
	}
	return &PublicKey{Type: typ, Data: b}, nil
}

// NewPublicKeyFromED25519 wraps ed25519 public key.
func NewPublicKeyFromED25519(k ed25519.PublicKey) *PublicKey {
	data := make([]byte, len(k))
	copy(data, k)
	return &PublicKey{Type: ED25519, Data: data}
}

// Equal returns true in case public keys are equal.
func (p *PublicKey) Equal(key *PublicKey) bool {
	return p.Type == key.Type && string(p.Data) == string(key.Data)
}

// String implements the fmt.Stringer interface.
func (p PublicKey) String() string {
	return p.Type.String() + ":" + base58.Encode(p.Data)
}

// MarshalJSON implements the json.Marshaler interface.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	k, err := NewPublicKeyFromString(s)
	if err != nil {
		return err
	}
	*p = *k
	return nil
}
