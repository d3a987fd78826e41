package result

import (
	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

type (
	// StateChangesInBlock is the result of the EXPERIMENTAL_changes_in_block
	// method, it lists accounts touched in the block.
	StateChangesInBlock struct {
		BlockHash util.CryptoHash   `json:"block_hash"`
		Changes   []StateChangeKind `json:"changes"`
	}

	// StateChangeKind is the kind of change made to an account, the type is
	// one of account_touched, access_key_touched, data_touched or
	// contract_code_touched.
	StateChangeKind struct {
		Type      string     `json:"type"`
		AccountID account.ID `json:"account_id"`
	}

	// StateChanges is the result of the EXPERIMENTAL_changes method.
	StateChanges struct {
		BlockHash util.CryptoHash        `json:"block_hash"`
		Changes   []StateChangeWithCause `json:"changes"`
	}

	// StateChangeWithCause is a single state change. Type is one of
	// account_update, account_deletion, access_key_update,
	// access_key_deletion, data_update, data_deletion, contract_code_update
	// or contract_code_deletion, it defines which Change fields are set.
	StateChangeWithCause struct {
		Cause  StateChangeCause `json:"cause"`
		Type   string           `json:"type"`
		Change StateChangeValue `json:"change"`
	}

	// StateChangeCause describes why the state was changed.
	StateChangeCause struct {
		Type        string           `json:"type"`
		TxHash      *util.CryptoHash `json:"tx_hash,omitempty"`
		ReceiptHash *util.CryptoHash `json:"receipt_hash,omitempty"`
	}

	// StateChangeValue is the changed value.
	StateChangeValue struct {
		AccountID account.ID `json:"account_id"`

		Amount        *util.Balance    `json:"amount,omitempty"`
		Locked        *util.Balance    `json:"locked,omitempty"`
		CodeHash      *util.CryptoHash `json:"code_hash,omitempty"`
		StorageUsage  *uint64          `json:"storage_usage,omitempty"`
		StoragePaidAt *uint64          `json:"storage_paid_at,omitempty"`

		PublicKey *keys.PublicKey `json:"public_key,omitempty"`
		AccessKey *AccessKey      `json:"access_key,omitempty"`

		Key   []byte `json:"key_base64,omitempty"`
		Value []byte `json:"value_base64,omitempty"`

		Code []byte `json:"code_base64,omitempty"`
	}
)
