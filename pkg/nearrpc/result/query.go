package result

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/request"
	"github.com/russellwmy/near-api-go/pkg/util"
)

const fullAccessPermission = "FullAccess"

var errUnknownQueryResult = errors.New("unknown query result")

type (
	// Query is the result of the query method. Exactly one of the view
	// fields is set, or Error for nodes reporting call failures inside the
	// result.
	Query struct {
		BlockHeight uint64
		BlockHash   util.CryptoHash

		Account       *Account
		ContractCode  *ContractCode
		ViewState     *ViewState
		CallResult    *CallResult
		AccessKey     *AccessKey
		AccessKeyList *AccessKeyList

		Error string
	}

	// Account is the result of the view_account query.
	Account struct {
		Amount        util.Balance    `json:"amount"`
		Locked        util.Balance    `json:"locked"`
		CodeHash      util.CryptoHash `json:"code_hash"`
		StorageUsage  uint64          `json:"storage_usage"`
		StoragePaidAt uint64          `json:"storage_paid_at"`
	}

	// ContractCode is the result of the view_code query.
	ContractCode struct {
		Code []byte          `json:"code_base64"`
		Hash util.CryptoHash `json:"hash"`
	}

	// StateItem is a single contract storage entry.
	StateItem struct {
		Key   []byte `json:"key"`
		Value []byte `json:"value"`
	}

	// ViewState is the result of the view_state query.
	ViewState struct {
		Values []StateItem `json:"values"`
		Proof  []string    `json:"proof,omitempty"`
	}

	// CallResult is the result of the call_function query.
	CallResult struct {
		Result ByteArray `json:"result"`
		Logs   []string  `json:"logs"`
	}

	// AccessKey is the result of the view_access_key query.
	AccessKey struct {
		Nonce      uint64              `json:"nonce"`
		Permission AccessKeyPermission `json:"permission"`
	}

	// AccessKeyPermission is either full access (nil FunctionCall) or a
	// function call permission.
	AccessKeyPermission struct {
		FunctionCall *FunctionCallPermission
	}

	// FunctionCallPermission restricts a key to calling the given methods of
	// the receiver. Nil Allowance means unlimited.
	FunctionCallPermission struct {
		Allowance   *util.Balance `json:"allowance"`
		ReceiverID  account.ID    `json:"receiver_id"`
		MethodNames []string      `json:"method_names"`
	}

	// AccessKeyInfo is an access key with its public key.
	AccessKeyInfo struct {
		PublicKey keys.PublicKey `json:"public_key"`
		AccessKey AccessKey      `json:"access_key"`
	}

	// AccessKeyList is the result of the view_access_key_list query.
	AccessKeyList struct {
		Keys []AccessKeyInfo `json:"keys"`
	}

	queryHeader struct {
		BlockHeight uint64          `json:"block_height"`
		BlockHash   util.CryptoHash `json:"block_hash"`
	}

	queryError struct {
		Error string   `json:"error"`
		Logs  []string `json:"logs"`
	}
)

// Kind returns the query kind the result corresponds to, it's empty for
// error results.
func (q *Query) Kind() request.QueryKind {
	switch {
	case q.Account != nil:
		return request.ViewAccount
	case q.ContractCode != nil:
		return request.ViewCode
	case q.ViewState != nil:
		return request.ViewState
	case q.CallResult != nil:
		return request.CallFunction
	case q.AccessKeyList != nil:
		return request.ViewAccessKeyList
	case q.AccessKey != nil:
		return request.ViewAccessKey
	}
	return ""
}

// view returns the only view set.
func (q *Query) view() (any, error) {
	var (
		res any
		n   int
	)
	for _, v := range []struct {
		set bool
		val any
	}{
		{q.Account != nil, q.Account},
		{q.ContractCode != nil, q.ContractCode},
		{q.ViewState != nil, q.ViewState},
		{q.CallResult != nil, q.CallResult},
		{q.AccessKey != nil, q.AccessKey},
		{q.AccessKeyList != nil, q.AccessKeyList},
	} {
		if v.set {
			res = v.val
			n++
		}
	}
	if q.Error != "" {
		res = queryError{Error: q.Error, Logs: []string{}}
		n++
	}
	if n != 1 {
		return nil, fmt.Errorf("query result must have exactly one view, got %d", n)
	}
	return res, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (q Query) MarshalJSON() ([]byte, error) {
	view, err := q.view()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields["block_height"], err = json.Marshal(q.BlockHeight); err != nil {
		return nil, err
	}
	if fields["block_hash"], err = json.Marshal(q.BlockHash); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// UnmarshalJSON implements the json.Unmarshaler interface. The view is
// chosen by probing for distinctive fields in a fixed order.
func (q *Query) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var hdr queryHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return err
	}
	res := Query{BlockHeight: hdr.BlockHeight, BlockHash: hdr.BlockHash}
	has := func(names ...string) bool {
		for _, k := range names {
			if _, ok := fields[k]; !ok {
				return false
			}
		}
		return true
	}

	var target any
	switch {
	case has("amount"):
		res.Account = new(Account)
		target = res.Account
	case has("code_base64"):
		res.ContractCode = new(ContractCode)
		target = res.ContractCode
	case has("values"):
		res.ViewState = new(ViewState)
		target = res.ViewState
	case has("result"):
		res.CallResult = new(CallResult)
		target = res.CallResult
	case has("keys"):
		res.AccessKeyList = new(AccessKeyList)
		target = res.AccessKeyList
	case has("nonce", "permission"):
		res.AccessKey = new(AccessKey)
		target = res.AccessKey
	case has("error"):
		var qe queryError
		if err := json.Unmarshal(data, &qe); err != nil {
			return err
		}
		res.Error = qe.Error
	default:
		return fmt.Errorf("%w: %s", errUnknownQueryResult, data)
	}
	if target != nil {
		if err := json.Unmarshal(data, target); err != nil {
			return err
		}
	}
	*q = res
	return nil
}

// IsFullAccess returns true for full access permissions.
func (p AccessKeyPermission) IsFullAccess() bool {
	return p.FunctionCall == nil
}

// MarshalJSON implements the json.Marshaler interface.
func (p AccessKeyPermission) MarshalJSON() ([]byte, error) {
	if p.FunctionCall == nil {
		return json.Marshal(fullAccessPermission)
	}
	return json.Marshal(map[string]*FunctionCallPermission{"FunctionCall": p.FunctionCall})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *AccessKeyPermission) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != fullAccessPermission {
			return fmt.Errorf("unknown permission %q", s)
		}
		*p = AccessKeyPermission{}
		return nil
	}
	var aux struct {
		FunctionCall *FunctionCallPermission `json:"FunctionCall"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.FunctionCall == nil {
		return fmt.Errorf("unknown permission: %s", data)
	}
	*p = AccessKeyPermission{FunctionCall: aux.FunctionCall}
	return nil
}
