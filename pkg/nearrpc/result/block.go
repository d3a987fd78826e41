package result

import (
	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

type (
	// Block is the result of the block method.
	Block struct {
		Author account.ID    `json:"author,omitempty"`
		Header BlockHeader   `json:"header"`
		Chunks []ChunkHeader `json:"chunks"`
	}

	// BlockHeader is a block header view.
	BlockHeader struct {
		Height                uint64           `json:"height"`
		PrevHeight            *uint64          `json:"prev_height,omitempty"`
		EpochID               util.CryptoHash  `json:"epoch_id"`
		NextEpochID           util.CryptoHash  `json:"next_epoch_id"`
		Hash                  util.CryptoHash  `json:"hash"`
		PrevHash              util.CryptoHash  `json:"prev_hash"`
		PrevStateRoot         util.CryptoHash  `json:"prev_state_root"`
		BlockBodyHash         *util.CryptoHash `json:"block_body_hash,omitempty"`
		ChunkReceiptsRoot     util.CryptoHash  `json:"chunk_receipts_root"`
		ChunkHeadersRoot      util.CryptoHash  `json:"chunk_headers_root"`
		ChunkTxRoot           util.CryptoHash  `json:"chunk_tx_root"`
		OutcomeRoot           util.CryptoHash  `json:"outcome_root"`
		ChunksIncluded        uint64           `json:"chunks_included"`
		ChallengesRoot        util.CryptoHash  `json:"challenges_root"`
		Timestamp             uint64           `json:"timestamp"`
		TimestampNanosec      U64String        `json:"timestamp_nanosec"`
		RandomValue           util.CryptoHash  `json:"random_value"`
		ValidatorProposals    []ValidatorStake `json:"validator_proposals"`
		ChunkMask             []bool           `json:"chunk_mask"`
		GasPrice              util.Balance     `json:"gas_price"`
		BlockOrdinal          *uint64          `json:"block_ordinal,omitempty"`
		TotalSupply           util.Balance     `json:"total_supply"`
		LastFinalBlock        util.CryptoHash  `json:"last_final_block"`
		LastDSFinalBlock      util.CryptoHash  `json:"last_ds_final_block"`
		NextBPHash            util.CryptoHash  `json:"next_bp_hash"`
		BlockMerkleRoot       util.CryptoHash  `json:"block_merkle_root"`
		EpochSyncDataHash     *util.CryptoHash `json:"epoch_sync_data_hash,omitempty"`
		Approvals             []*Signature     `json:"approvals"`
		Signature             Signature        `json:"signature"`
		LatestProtocolVersion uint32           `json:"latest_protocol_version"`
	}

	// ChunkHeader is a chunk header view.
	ChunkHeader struct {
		ChunkHash            util.CryptoHash  `json:"chunk_hash"`
		PrevBlockHash        util.CryptoHash  `json:"prev_block_hash"`
		OutcomeRoot          util.CryptoHash  `json:"outcome_root"`
		PrevStateRoot        util.CryptoHash  `json:"prev_state_root"`
		EncodedMerkleRoot    util.CryptoHash  `json:"encoded_merkle_root"`
		EncodedLength        uint64           `json:"encoded_length"`
		HeightCreated        uint64           `json:"height_created"`
		HeightIncluded       uint64           `json:"height_included"`
		ShardID              uint64           `json:"shard_id"`
		GasUsed              uint64           `json:"gas_used"`
		GasLimit             uint64           `json:"gas_limit"`
		RentPaid             util.Balance     `json:"rent_paid"`
		ValidatorReward      util.Balance     `json:"validator_reward"`
		BalanceBurnt         util.Balance     `json:"balance_burnt"`
		OutgoingReceiptsRoot util.CryptoHash  `json:"outgoing_receipts_root"`
		TxRoot               util.CryptoHash  `json:"tx_root"`
		ValidatorProposals   []ValidatorStake `json:"validator_proposals"`
		Signature            Signature        `json:"signature"`
	}

	// ValidatorStake is a validator proposal or a stake of a fisherman.
	ValidatorStake struct {
		AccountID                   account.ID     `json:"account_id"`
		PublicKey                   keys.PublicKey `json:"public_key"`
		Stake                       util.Balance   `json:"stake"`
		ValidatorStakeStructVersion string         `json:"validator_stake_struct_version,omitempty"`
	}

	// Chunk is the result of the chunk method.
	Chunk struct {
		Author       account.ID              `json:"author,omitempty"`
		Header       ChunkHeader             `json:"header"`
		Transactions []SignedTransactionView `json:"transactions"`
		Receipts     []ReceiptView           `json:"receipts"`
	}
)
