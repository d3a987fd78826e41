package result

import "github.com/russellwmy/near-api-go/pkg/util"

type (
	// LightClientProof is the result of the EXPERIMENTAL_light_client_proof
	// method.
	LightClientProof struct {
		OutcomeProof     ExecutionOutcomeWithID `json:"outcome_proof"`
		OutcomeRootProof []MerklePathItem       `json:"outcome_root_proof"`
		BlockHeaderLite  LightClientBlockLite   `json:"block_header_lite"`
		BlockProof       []MerklePathItem       `json:"block_proof"`
	}

	// LightClientBlockLite is a block header reduced to what light clients
	// need.
	LightClientBlockLite struct {
		PrevBlockHash util.CryptoHash  `json:"prev_block_hash"`
		InnerRestHash util.CryptoHash  `json:"inner_rest_hash"`
		InnerLite     BlockHeaderInner `json:"inner_lite"`
	}

	// BlockHeaderInner is the lite part of a block header.
	BlockHeaderInner struct {
		Height           uint64          `json:"height"`
		EpochID          util.CryptoHash `json:"epoch_id"`
		NextEpochID      util.CryptoHash `json:"next_epoch_id"`
		PrevStateRoot    util.CryptoHash `json:"prev_state_root"`
		OutcomeRoot      util.CryptoHash `json:"outcome_root"`
		Timestamp        uint64          `json:"timestamp"`
		TimestampNanosec U64String       `json:"timestamp_nanosec"`
		NextBPHash       util.CryptoHash `json:"next_bp_hash"`
		BlockMerkleRoot  util.CryptoHash `json:"block_merkle_root"`
	}
)
