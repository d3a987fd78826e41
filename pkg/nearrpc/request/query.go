package request

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
)

// QueryKind is the request_type of a query.
type QueryKind string

// Supported query kinds.
const (
	ViewAccount       QueryKind = "view_account"
	ViewCode          QueryKind = "view_code"
	ViewState         QueryKind = "view_state"
	ViewAccessKey     QueryKind = "view_access_key"
	ViewAccessKeyList QueryKind = "view_access_key_list"
	CallFunction      QueryKind = "call_function"
)

type (
	// Query is the request of the query method. Kind selects which of the
	// other fields are used: PublicKey by view_access_key, MethodName and
	// Args by call_function, Prefix and IncludeProof by view_state.
	Query struct {
		BlockReference nearrpc.BlockReference
		Kind           QueryKind
		AccountID      account.ID
		PublicKey      *keys.PublicKey
		MethodName     string
		Args           []byte
		Prefix         []byte
		IncludeProof   bool
	}

	queryAux struct {
		RequestType  QueryKind       `json:"request_type"`
		AccountID    *account.ID     `json:"account_id"`
		PublicKey    *keys.PublicKey `json:"public_key"`
		MethodName   *string         `json:"method_name"`
		ArgsBase64   *string         `json:"args_base64"`
		PrefixBase64 *string         `json:"prefix_base64"`
		IncludeProof bool            `json:"include_proof"`
	}
)

// NewViewAccount creates a query for account details.
func NewViewAccount(ref nearrpc.BlockReference, id account.ID) *Query {
	return &Query{BlockReference: ref, Kind: ViewAccount, AccountID: id}
}

// NewViewCode creates a query for the contract code of the account.
func NewViewCode(ref nearrpc.BlockReference, id account.ID) *Query {
	return &Query{BlockReference: ref, Kind: ViewCode, AccountID: id}
}

// NewViewState creates a query for contract state under the given key
// prefix.
func NewViewState(ref nearrpc.BlockReference, id account.ID, prefix []byte) *Query {
	return &Query{BlockReference: ref, Kind: ViewState, AccountID: id, Prefix: prefix}
}

// NewViewAccessKey creates a query for a single access key.
func NewViewAccessKey(ref nearrpc.BlockReference, id account.ID, pk *keys.PublicKey) *Query {
	return &Query{BlockReference: ref, Kind: ViewAccessKey, AccountID: id, PublicKey: pk}
}

// NewViewAccessKeyList creates a query for all access keys of the account.
func NewViewAccessKeyList(ref nearrpc.BlockReference, id account.ID) *Query {
	return &Query{BlockReference: ref, Kind: ViewAccessKeyList, AccountID: id}
}

// NewCallFunction creates a query calling a view method of the contract.
func NewCallFunction(ref nearrpc.BlockReference, id account.ID, method string, args []byte) *Query {
	return &Query{BlockReference: ref, Kind: CallFunction, AccountID: id, MethodName: method, Args: args}
}

// ParseQuery accepts a legacy positional [path, base58 data] pair first and
// a named object with request_type second. Legacy queries always use
// optimistic finality.
func ParseQuery(raw json.RawMessage) (*Query, error) {
	var path, data string
	if err := parsePositional(raw, &path, &data); err == nil {
		return parseLegacyQuery(path, data)
	}

	r := new(Query)
	if err := parseParams(raw, &r.BlockReference); err != nil {
		return nil, err
	}
	var aux queryAux
	if err := parseParams(raw, &aux); err != nil {
		return nil, err
	}
	r.Kind = aux.RequestType
	if aux.AccountID != nil {
		r.AccountID = *aux.AccountID
	}
	r.PublicKey = aux.PublicKey
	if aux.MethodName != nil {
		r.MethodName = *aux.MethodName
	}
	var err error
	if r.Args, err = decodeBase64Field("args_base64", aux.ArgsBase64); err != nil {
		return nil, parseError(err)
	}
	if r.Prefix, err = decodeBase64Field("prefix_base64", aux.PrefixBase64); err != nil {
		return nil, parseError(err)
	}
	r.IncludeProof = aux.IncludeProof
	if err := r.validate(aux); err != nil {
		return nil, parseError(err)
	}
	return r, nil
}

func parseLegacyQuery(path, data string) (*Query, error) {
	dataBytes, err := base58.Decode(data)
	if err != nil && data != "" {
		return nil, parseError(fmt.Errorf("invalid base58 query data: %w", err))
	}
	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 2 {
		return nil, parseError(fmt.Errorf("not enough query parameters provided in %q", path))
	}
	id, err := account.NewID(parts[1])
	if err != nil {
		return nil, parseError(err)
	}
	ref := nearrpc.BlockRefByFinality(nearrpc.FinalityOptimistic)
	switch {
	case parts[0] == "account" && len(parts) == 2:
		return NewViewAccount(ref, id), nil
	case parts[0] == "code" && len(parts) == 2:
		return NewViewCode(ref, id), nil
	case parts[0] == "contract" && len(parts) == 2:
		return NewViewState(ref, id, dataBytes), nil
	case parts[0] == "access_key" && len(parts) == 2:
		return NewViewAccessKeyList(ref, id), nil
	case parts[0] == "access_key" && len(parts) == 3:
		pk, err := keys.NewPublicKeyFromString(parts[2])
		if err != nil {
			return nil, parseError(err)
		}
		return NewViewAccessKey(ref, id, pk), nil
	case parts[0] == "call" && len(parts) == 3:
		return NewCallFunction(ref, id, parts[2], dataBytes), nil
	}
	return nil, parseError(fmt.Errorf("unknown path %q", path))
}

// MarshalJSON implements the json.Marshaler interface.
func (r Query) MarshalJSON() ([]byte, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"request_type": r.Kind,
		"account_id":   r.AccountID,
	}
	switch r.Kind {
	case ViewState:
		fields["prefix_base64"] = base64.StdEncoding.EncodeToString(r.Prefix)
		if r.IncludeProof {
			fields["include_proof"] = true
		}
	case ViewAccessKey:
		fields["public_key"] = r.PublicKey
	case CallFunction:
		fields["method_name"] = r.MethodName
		fields["args_base64"] = base64.StdEncoding.EncodeToString(r.Args)
	}
	return marshalFields(r.BlockReference, fields)
}

// check verifies the fields used by the query kind are set.
func (r Query) check() error {
	if err := account.Validate(string(r.AccountID)); err != nil {
		return err
	}
	switch r.Kind {
	case ViewAccount, ViewCode, ViewState, ViewAccessKeyList:
	case ViewAccessKey:
		if r.PublicKey == nil {
			return fmt.Errorf("%s requires public_key", r.Kind)
		}
	case CallFunction:
		if r.MethodName == "" {
			return fmt.Errorf("%s requires method_name", r.Kind)
		}
	default:
		return fmt.Errorf("unknown request_type %q", r.Kind)
	}
	return nil
}

// validate checks decoded named parameters, fields without defaults must
// be present.
func (r Query) validate(aux queryAux) error {
	if aux.AccountID == nil {
		return fmt.Errorf("missing field account_id")
	}
	switch r.Kind {
	case ViewState:
		if aux.PrefixBase64 == nil {
			return fmt.Errorf("missing field prefix_base64")
		}
	case CallFunction:
		if aux.ArgsBase64 == nil {
			return fmt.Errorf("missing field args_base64")
		}
	}
	return r.check()
}

func decodeBase64Field(name string, s *string) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}
