package result

import (
	"encoding/json"

	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

type (
	// Status is the result of the status method.
	Status struct {
		Version               NodeVersion      `json:"version"`
		ChainID               string           `json:"chain_id"`
		ProtocolVersion       uint32           `json:"protocol_version"`
		LatestProtocolVersion uint32           `json:"latest_protocol_version"`
		RPCAddr               *string          `json:"rpc_addr,omitempty"`
		Validators            []ValidatorInfo  `json:"validators"`
		SyncInfo              SyncInfo         `json:"sync_info"`
		ValidatorAccountID    *account.ID      `json:"validator_account_id"`
		ValidatorPublicKey    *keys.PublicKey  `json:"validator_public_key,omitempty"`
		NodePublicKey         *keys.PublicKey  `json:"node_public_key,omitempty"`
		NodeKey               *keys.PublicKey  `json:"node_key,omitempty"`
		UptimeSec             int64            `json:"uptime_sec"`
		GenesisHash           *util.CryptoHash `json:"genesis_hash,omitempty"`
		DetailedDebugStatus   json.RawMessage  `json:"detailed_debug_status,omitempty"`
	}

	// NodeVersion is the node software version.
	NodeVersion struct {
		Version      string `json:"version"`
		Build        string `json:"build"`
		Commit       string `json:"commit,omitempty"`
		RustcVersion string `json:"rustc_version,omitempty"`
	}

	// ValidatorInfo is a current validator.
	ValidatorInfo struct {
		AccountID account.ID `json:"account_id"`
		IsSlashed bool       `json:"is_slashed,omitempty"`
	}

	// SyncInfo describes the node synchronization state. Times are kept in
	// the node's RFC 3339 form.
	SyncInfo struct {
		LatestBlockHash     util.CryptoHash  `json:"latest_block_hash"`
		LatestBlockHeight   uint64           `json:"latest_block_height"`
		LatestStateRoot     util.CryptoHash  `json:"latest_state_root"`
		LatestBlockTime     string           `json:"latest_block_time"`
		Syncing             bool             `json:"syncing"`
		EarliestBlockHash   *util.CryptoHash `json:"earliest_block_hash,omitempty"`
		EarliestBlockHeight *uint64          `json:"earliest_block_height,omitempty"`
		EarliestBlockTime   *string          `json:"earliest_block_time,omitempty"`
		EpochID             *util.CryptoHash `json:"epoch_id,omitempty"`
		EpochStartHeight    *uint64          `json:"epoch_start_height,omitempty"`
	}
)
