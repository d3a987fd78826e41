package request

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
)

type (
	// Block is the request of the block method.
	Block struct {
		BlockReference nearrpc.BlockReference
	}

	// BlockChanges is the request of the EXPERIMENTAL_changes_in_block
	// method.
	BlockChanges struct {
		BlockReference nearrpc.BlockReference
	}

	// ProtocolConfig is the request of the EXPERIMENTAL_protocol_config
	// method.
	ProtocolConfig struct {
		BlockReference nearrpc.BlockReference
	}

	// ChangesType is the kind of state changes requested.
	ChangesType string

	// AccountWithPublicKey identifies a single access key.
	AccountWithPublicKey struct {
		AccountID account.ID     `json:"account_id"`
		PublicKey keys.PublicKey `json:"public_key"`
	}

	// Changes is the request of the EXPERIMENTAL_changes method. AccountIDs
	// are used by all change types except single access key changes which
	// use Keys. KeyPrefix is only used by data changes.
	Changes struct {
		BlockReference nearrpc.BlockReference
		ChangesType    ChangesType
		AccountIDs     []account.ID
		Keys           []AccountWithPublicKey
		KeyPrefix      []byte
	}

	changesAux struct {
		ChangesType ChangesType            `json:"changes_type"`
		AccountIDs  []account.ID           `json:"account_ids"`
		Keys        []AccountWithPublicKey `json:"keys"`
		KeyPrefix   *string                `json:"key_prefix_base64"`
	}
)

// Supported state change types.
const (
	AccountChanges         ChangesType = "account_changes"
	SingleAccessKeyChanges ChangesType = "single_access_key_changes"
	AllAccessKeyChanges    ChangesType = "all_access_key_changes"
	ContractCodeChanges    ChangesType = "contract_code_changes"
	DataChanges            ChangesType = "data_changes"
)

// ParseBlock accepts a positional block ID first and a named block
// reference second.
func ParseBlock(raw json.RawMessage) (*Block, error) {
	var id nearrpc.BlockID
	if err := parsePositional(raw, &id); err == nil {
		return &Block{BlockReference: nearrpc.BlockRefByID(id)}, nil
	}
	r := new(Block)
	if err := parseParams(raw, &r.BlockReference); err != nil {
		return nil, err
	}
	return r, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.BlockReference)
}

// ParseBlockChanges accepts a named block reference.
func ParseBlockChanges(raw json.RawMessage) (*BlockChanges, error) {
	r := new(BlockChanges)
	if err := parseParams(raw, &r.BlockReference); err != nil {
		return nil, err
	}
	return r, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r BlockChanges) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.BlockReference)
}

// ParseProtocolConfig accepts a named block reference.
func ParseProtocolConfig(raw json.RawMessage) (*ProtocolConfig, error) {
	r := new(ProtocolConfig)
	if err := parseParams(raw, &r.BlockReference); err != nil {
		return nil, err
	}
	return r, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r ProtocolConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.BlockReference)
}

// ParseChanges accepts a named block reference with changes_type and the
// fields this type requires.
func ParseChanges(raw json.RawMessage) (*Changes, error) {
	r := new(Changes)
	if err := parseParams(raw, &r.BlockReference); err != nil {
		return nil, err
	}
	var aux changesAux
	if err := parseParams(raw, &aux); err != nil {
		return nil, err
	}
	r.ChangesType = aux.ChangesType
	r.AccountIDs = aux.AccountIDs
	r.Keys = aux.Keys
	if aux.KeyPrefix != nil {
		prefix, err := base64.StdEncoding.DecodeString(*aux.KeyPrefix)
		if err != nil {
			return nil, parseError(fmt.Errorf("key_prefix_base64: %w", err))
		}
		r.KeyPrefix = prefix
	}
	if err := r.validate(); err != nil {
		return nil, parseError(err)
	}
	return r, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r Changes) MarshalJSON() ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	fields := map[string]any{"changes_type": r.ChangesType}
	switch r.ChangesType {
	case SingleAccessKeyChanges:
		fields["keys"] = r.Keys
	case DataChanges:
		fields["account_ids"] = r.AccountIDs
		fields["key_prefix_base64"] = base64.StdEncoding.EncodeToString(r.KeyPrefix)
	default:
		fields["account_ids"] = r.AccountIDs
	}
	return marshalFields(r.BlockReference, fields)
}

func (r Changes) validate() error {
	switch r.ChangesType {
	case SingleAccessKeyChanges:
		if len(r.Keys) == 0 {
			return fmt.Errorf("%s require keys", r.ChangesType)
		}
	case AccountChanges, AllAccessKeyChanges, ContractCodeChanges, DataChanges:
		if len(r.AccountIDs) == 0 {
			return fmt.Errorf("%s require account_ids", r.ChangesType)
		}
	default:
		return fmt.Errorf("unknown changes_type %q", r.ChangesType)
	}
	return nil
}
