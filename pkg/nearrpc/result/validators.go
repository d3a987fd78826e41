package result

import (
	"encoding/json"

	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

type (
	// EpochValidatorInfo is the result of the validators method.
	EpochValidatorInfo struct {
		CurrentValidators []CurrentEpochValidatorInfo `json:"current_validators"`
		NextValidators    []NextEpochValidatorInfo    `json:"next_validators"`
		CurrentFishermen  []ValidatorStake            `json:"current_fishermen"`
		NextFishermen     []ValidatorStake            `json:"next_fishermen"`
		CurrentProposals  []ValidatorStake            `json:"current_proposals"`
		PrevEpochKickout  []ValidatorKickout          `json:"prev_epoch_kickout"`
		EpochStartHeight  uint64                      `json:"epoch_start_height"`
		EpochHeight       uint64                      `json:"epoch_height"`
	}

	// CurrentEpochValidatorInfo describes a validator of the current epoch.
	CurrentEpochValidatorInfo struct {
		AccountID         account.ID     `json:"account_id"`
		PublicKey         keys.PublicKey `json:"public_key"`
		IsSlashed         bool           `json:"is_slashed"`
		Stake             util.Balance   `json:"stake"`
		Shards            []uint64       `json:"shards"`
		NumProducedBlocks uint64         `json:"num_produced_blocks"`
		NumExpectedBlocks uint64         `json:"num_expected_blocks"`
		NumProducedChunks uint64         `json:"num_produced_chunks,omitempty"`
		NumExpectedChunks uint64         `json:"num_expected_chunks,omitempty"`
	}

	// NextEpochValidatorInfo describes a validator of the next epoch.
	NextEpochValidatorInfo struct {
		AccountID account.ID     `json:"account_id"`
		PublicKey keys.PublicKey `json:"public_key"`
		Stake     util.Balance   `json:"stake"`
		Shards    []uint64       `json:"shards"`
	}

	// ValidatorKickout is a validator removed in the previous epoch with
	// the reason kept undecoded.
	ValidatorKickout struct {
		AccountID account.ID      `json:"account_id"`
		Reason    json.RawMessage `json:"reason"`
	}
)
