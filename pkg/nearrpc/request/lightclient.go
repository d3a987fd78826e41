package request

import (
	"encoding/json"
	"fmt"

	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

// ProofType is the kind of outcome a light client proof is requested for.
type ProofType string

// Supported proof types.
const (
	ProofTransaction ProofType = "transaction"
	ProofReceipt     ProofType = "receipt"
)

// LightClientProof is the request of the EXPERIMENTAL_light_client_proof
// method. Transaction proofs use TransactionHash and SenderID, receipt
// proofs use ReceiptID and ReceiverID.
type LightClientProof struct {
	Type            ProofType       `json:"type"`
	TransactionHash util.CryptoHash `json:"transaction_hash,omitzero"`
	SenderID        account.ID      `json:"sender_id,omitempty"`
	ReceiptID       util.CryptoHash `json:"receipt_id,omitzero"`
	ReceiverID      account.ID      `json:"receiver_id,omitempty"`
	LightClientHead util.CryptoHash `json:"light_client_head"`
}

// NewTransactionProof requests an execution proof of the given transaction.
func NewTransactionProof(hash util.CryptoHash, sender account.ID, head util.CryptoHash) *LightClientProof {
	return &LightClientProof{Type: ProofTransaction, TransactionHash: hash, SenderID: sender, LightClientHead: head}
}

// NewReceiptProof requests an execution proof of the given receipt.
func NewReceiptProof(id util.CryptoHash, receiver account.ID, head util.CryptoHash) *LightClientProof {
	return &LightClientProof{Type: ProofReceipt, ReceiptID: id, ReceiverID: receiver, LightClientHead: head}
}

// ParseLightClientProof accepts a named object tagged with type.
func ParseLightClientProof(raw json.RawMessage) (*LightClientProof, error) {
	r := new(LightClientProof)
	if err := parseParams(raw, r); err != nil {
		return nil, err
	}
	if err := r.check(); err != nil {
		return nil, parseError(err)
	}
	return r, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r LightClientProof) MarshalJSON() ([]byte, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	type plain LightClientProof
	return json.Marshal(plain(r))
}

func (r LightClientProof) check() error {
	switch r.Type {
	case ProofTransaction:
		if r.SenderID == "" {
			return fmt.Errorf("%s proof requires sender_id", r.Type)
		}
	case ProofReceipt:
		if r.ReceiverID == "" {
			return fmt.Errorf("%s proof requires receiver_id", r.Type)
		}
	default:
		return fmt.Errorf("unknown proof type %q", r.Type)
	}
	return nil
}
