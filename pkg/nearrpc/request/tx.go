package request

import (
	"encoding/json"
	"errors"

	"github.com/russellwmy/near-api-go/pkg/core/transaction"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

var errNoTransaction = errors.New("no transaction")

type (
	// TransactionInfo identifies a transaction either by its signed bytes or
	// by the hash and sender of a previously submitted one. Exactly one of
	// SignedTransaction and the (Hash, SenderAccountID) pair is used.
	TransactionInfo struct {
		SignedTransaction *transaction.Signed
		Hash              util.CryptoHash
		SenderAccountID   account.ID
	}

	// TxStatus is the request of the tx and EXPERIMENTAL_tx_status methods.
	TxStatus struct {
		TransactionInfo TransactionInfo
	}

	// BroadcastTx is the request of the broadcast_tx_commit and
	// broadcast_tx_async methods.
	BroadcastTx struct {
		SignedTransaction *transaction.Signed
	}
)

// TxByValue identifies a transaction by its signed bytes.
func TxByValue(tx *transaction.Signed) TransactionInfo {
	return TransactionInfo{SignedTransaction: tx}
}

// TxByID identifies a transaction by its hash and sender.
func TxByID(hash util.CryptoHash, sender account.ID) TransactionInfo {
	return TransactionInfo{Hash: hash, SenderAccountID: sender}
}

// IsByID returns true if the transaction is identified by hash and sender.
func (i TransactionInfo) IsByID() bool {
	return i.SignedTransaction == nil
}

// ParseTxStatus accepts a positional (hash, sender account ID) pair first
// and a positional base64 signed transaction second.
func ParseTxStatus(raw json.RawMessage) (*TxStatus, error) {
	var (
		hash   util.CryptoHash
		sender account.ID
	)
	if err := parsePositional(raw, &hash, &sender); err == nil {
		return &TxStatus{TransactionInfo: TxByID(hash, sender)}, nil
	}
	tx, err := parseSignedTransaction(raw)
	if err != nil {
		return nil, err
	}
	return &TxStatus{TransactionInfo: TxByValue(tx)}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r TxStatus) MarshalJSON() ([]byte, error) {
	info := r.TransactionInfo
	if !info.IsByID() {
		return json.Marshal([]any{info.SignedTransaction})
	}
	if err := account.Validate(string(info.SenderAccountID)); err != nil {
		return nil, err
	}
	return json.Marshal([]any{info.Hash, info.SenderAccountID})
}

// ParseBroadcastTx accepts a positional base64 signed transaction.
func ParseBroadcastTx(raw json.RawMessage) (*BroadcastTx, error) {
	tx, err := parseSignedTransaction(raw)
	if err != nil {
		return nil, err
	}
	return &BroadcastTx{SignedTransaction: tx}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r BroadcastTx) MarshalJSON() ([]byte, error) {
	if r.SignedTransaction == nil {
		return nil, errNoTransaction
	}
	return json.Marshal([]any{r.SignedTransaction})
}

func parseSignedTransaction(raw json.RawMessage) (*transaction.Signed, error) {
	tx := new(transaction.Signed)
	if err := parsePositional(raw, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
