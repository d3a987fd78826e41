package result

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

const createAccountAction = "CreateAccount"

var errInvalidAction = errors.New("action must have exactly one kind")

type (
	// SignedTransactionView is a transaction as seen by the node.
	SignedTransactionView struct {
		SignerID    account.ID      `json:"signer_id"`
		PublicKey   keys.PublicKey  `json:"public_key"`
		Nonce       uint64          `json:"nonce"`
		ReceiverID  account.ID      `json:"receiver_id"`
		Actions     []Action        `json:"actions"`
		PriorityFee uint64          `json:"priority_fee,omitempty"`
		Signature   Signature       `json:"signature"`
		Hash        util.CryptoHash `json:"hash"`
	}

	// Action is a single transaction action, exactly one of the fields is
	// set.
	Action struct {
		CreateAccount  bool                  `json:"-"`
		DeployContract *DeployContractAction `json:"DeployContract,omitempty"`
		FunctionCall   *FunctionCallAction   `json:"FunctionCall,omitempty"`
		Transfer       *TransferAction       `json:"Transfer,omitempty"`
		Stake          *StakeAction          `json:"Stake,omitempty"`
		AddKey         *AddKeyAction         `json:"AddKey,omitempty"`
		DeleteKey      *DeleteKeyAction      `json:"DeleteKey,omitempty"`
		DeleteAccount  *DeleteAccountAction  `json:"DeleteAccount,omitempty"`
		// Delegate is a meta transaction action, it's kept undecoded.
		Delegate json.RawMessage `json:"Delegate,omitempty"`
	}

	// DeployContractAction deploys the code to the receiver account.
	DeployContractAction struct {
		Code []byte `json:"code"`
	}

	// FunctionCallAction calls a contract method.
	FunctionCallAction struct {
		MethodName string       `json:"method_name"`
		Args       []byte       `json:"args"`
		Gas        uint64       `json:"gas"`
		Deposit    util.Balance `json:"deposit"`
	}

	// TransferAction transfers tokens to the receiver account.
	TransferAction struct {
		Deposit util.Balance `json:"deposit"`
	}

	// StakeAction stakes tokens with the given key.
	StakeAction struct {
		Stake     util.Balance   `json:"stake"`
		PublicKey keys.PublicKey `json:"public_key"`
	}

	// AddKeyAction adds an access key to the receiver account.
	AddKeyAction struct {
		PublicKey keys.PublicKey `json:"public_key"`
		AccessKey AccessKey      `json:"access_key"`
	}

	// DeleteKeyAction removes an access key from the receiver account.
	DeleteKeyAction struct {
		PublicKey keys.PublicKey `json:"public_key"`
	}

	// DeleteAccountAction removes the receiver account.
	DeleteAccountAction struct {
		BeneficiaryID account.ID `json:"beneficiary_id"`
	}

	// ReceiptView is a receipt as seen by the node, its body is kept
	// undecoded.
	ReceiptView struct {
		PredecessorID account.ID      `json:"predecessor_id"`
		ReceiverID    account.ID      `json:"receiver_id"`
		ReceiptID     util.CryptoHash `json:"receipt_id"`
		Receipt       json.RawMessage `json:"receipt,omitempty"`
		Priority      uint64          `json:"priority,omitempty"`
	}

	// MerklePathItem is an element of a merkle proof.
	MerklePathItem struct {
		Hash      util.CryptoHash `json:"hash"`
		Direction string          `json:"direction"`
	}

	// ExecutionOutcome is the outcome of a transaction or receipt execution.
	ExecutionOutcome struct {
		Logs        []string          `json:"logs"`
		ReceiptIDs  []util.CryptoHash `json:"receipt_ids"`
		GasBurnt    uint64            `json:"gas_burnt"`
		TokensBurnt util.Balance      `json:"tokens_burnt"`
		ExecutorID  account.ID        `json:"executor_id"`
		Status      ExecutionStatus   `json:"status"`
		Metadata    json.RawMessage   `json:"metadata,omitempty"`
	}

	// ExecutionOutcomeWithID is an execution outcome with its proof.
	ExecutionOutcomeWithID struct {
		Proof     []MerklePathItem `json:"proof"`
		BlockHash util.CryptoHash  `json:"block_hash"`
		ID        util.CryptoHash  `json:"id"`
		Outcome   ExecutionOutcome `json:"outcome"`
	}

	// ExecutionStatus is the status of a single execution outcome. Unknown
	// is the state when none of the fields is set.
	ExecutionStatus struct {
		Failure          json.RawMessage  `json:"Failure,omitempty"`
		SuccessValue     *[]byte          `json:"SuccessValue,omitempty"`
		SuccessReceiptID *util.CryptoHash `json:"SuccessReceiptId,omitempty"`
	}

	// FinalExecutionStatus is the overall status of a transaction. When
	// none of Failure and SuccessValue is set, the State string is used
	// ("NotStarted" or "Started").
	FinalExecutionStatus struct {
		State        string          `json:"-"`
		Failure      json.RawMessage `json:"Failure,omitempty"`
		SuccessValue *[]byte         `json:"SuccessValue,omitempty"`
	}

	// FinalExecutionOutcome is the result of the tx and broadcast_tx_commit
	// methods.
	FinalExecutionOutcome struct {
		FinalExecutionStatus string                   `json:"final_execution_status,omitempty"`
		Status               FinalExecutionStatus     `json:"status"`
		Transaction          SignedTransactionView    `json:"transaction"`
		TransactionOutcome   ExecutionOutcomeWithID   `json:"transaction_outcome"`
		ReceiptsOutcome      []ExecutionOutcomeWithID `json:"receipts_outcome"`
	}

	// FinalExecutionOutcomeWithReceipts is the result of the
	// EXPERIMENTAL_tx_status method.
	FinalExecutionOutcomeWithReceipts struct {
		FinalExecutionOutcome
		Receipts []ReceiptView `json:"receipts"`
	}
)

// Execution status strings.
const (
	StatusUnknown    = "Unknown"
	StatusNotStarted = "NotStarted"
	StatusStarted    = "Started"
)

// MarshalJSON implements the json.Marshaler interface.
func (a Action) MarshalJSON() ([]byte, error) {
	if a.CreateAccount {
		if a.count() != 0 {
			return nil, errInvalidAction
		}
		return json.Marshal(createAccountAction)
	}
	if a.count() != 1 {
		return nil, errInvalidAction
	}
	type plain Action
	return json.Marshal(plain(a))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != createAccountAction {
			return fmt.Errorf("unknown action %q", s)
		}
		*a = Action{CreateAccount: true}
		return nil
	}
	type plain Action
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	res := Action(p)
	if res.count() != 1 {
		return fmt.Errorf("%w: %s", errInvalidAction, data)
	}
	*a = res
	return nil
}

func (a Action) count() int {
	var n int
	for _, set := range []bool{
		a.DeployContract != nil,
		a.FunctionCall != nil,
		a.Transfer != nil,
		a.Stake != nil,
		a.AddKey != nil,
		a.DeleteKey != nil,
		a.DeleteAccount != nil,
		len(a.Delegate) != 0,
	} {
		if set {
			n++
		}
	}
	return n
}

// IsUnknown returns true if no outcome is known yet.
func (s ExecutionStatus) IsUnknown() bool {
	return s.Failure == nil && s.SuccessValue == nil && s.SuccessReceiptID == nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s ExecutionStatus) MarshalJSON() ([]byte, error) {
	if s.IsUnknown() {
		return json.Marshal(StatusUnknown)
	}
	type plain ExecutionStatus
	return json.Marshal(plain(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *ExecutionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != StatusUnknown {
			return fmt.Errorf("unknown execution status %q", str)
		}
		*s = ExecutionStatus{}
		return nil
	}
	type plain ExecutionStatus
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if ExecutionStatus(p).IsUnknown() {
		return fmt.Errorf("empty execution status: %s", data)
	}
	*s = ExecutionStatus(p)
	return nil
}

// IsSuccess returns true for successfully executed transactions.
func (s FinalExecutionStatus) IsSuccess() bool {
	return s.SuccessValue != nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s FinalExecutionStatus) MarshalJSON() ([]byte, error) {
	if s.Failure == nil && s.SuccessValue == nil {
		if s.State != StatusNotStarted && s.State != StatusStarted {
			return nil, fmt.Errorf("unknown final execution status %q", s.State)
		}
		return json.Marshal(s.State)
	}
	type plain FinalExecutionStatus
	return json.Marshal(plain(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *FinalExecutionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != StatusNotStarted && str != StatusStarted {
			return fmt.Errorf("unknown final execution status %q", str)
		}
		*s = FinalExecutionStatus{State: str}
		return nil
	}
	type plain FinalExecutionStatus
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Failure == nil && p.SuccessValue == nil {
		return fmt.Errorf("empty final execution status: %s", data)
	}
	*s = FinalExecutionStatus(p)
	return nil
}
