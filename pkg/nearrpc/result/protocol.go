package result

import (
	"encoding/json"

	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/util"
)

// ProtocolConfig is the result of the EXPERIMENTAL_protocol_config method.
// Runtime configuration and shard layout are kept undecoded.
type ProtocolConfig struct {
	ProtocolVersion                 uint32          `json:"protocol_version"`
	GenesisTime                     string          `json:"genesis_time"`
	ChainID                         string          `json:"chain_id"`
	GenesisHeight                   uint64          `json:"genesis_height"`
	NumBlockProducerSeats           uint64          `json:"num_block_producer_seats"`
	NumBlockProducerSeatsPerShard   []uint64        `json:"num_block_producer_seats_per_shard"`
	AvgHiddenValidatorSeatsPerShard []uint64        `json:"avg_hidden_validator_seats_per_shard"`
	DynamicResharding               bool            `json:"dynamic_resharding"`
	ProtocolUpgradeStakeThreshold   Rational        `json:"protocol_upgrade_stake_threshold"`
	EpochLength                     uint64          `json:"epoch_length"`
	GasLimit                        uint64          `json:"gas_limit"`
	MinGasPrice                     util.Balance    `json:"min_gas_price"`
	MaxGasPrice                     util.Balance    `json:"max_gas_price"`
	BlockProducerKickoutThreshold   uint8           `json:"block_producer_kickout_threshold"`
	ChunkProducerKickoutThreshold   uint8           `json:"chunk_producer_kickout_threshold"`
	OnlineMinThreshold              Rational        `json:"online_min_threshold"`
	OnlineMaxThreshold              Rational        `json:"online_max_threshold"`
	GasPriceAdjustmentRate          Rational        `json:"gas_price_adjustment_rate"`
	RuntimeConfig                   json.RawMessage `json:"runtime_config,omitempty"`
	TransactionValidityPeriod       uint64          `json:"transaction_validity_period"`
	ProtocolRewardRate              Rational        `json:"protocol_reward_rate"`
	MaxInflationRate                Rational        `json:"max_inflation_rate"`
	NumBlocksPerYear                uint64          `json:"num_blocks_per_year"`
	ProtocolTreasuryAccount         account.ID      `json:"protocol_treasury_account"`
	FishermenThreshold              util.Balance    `json:"fishermen_threshold"`
	MinimumStakeDivisor             uint64          `json:"minimum_stake_divisor"`
	ShardLayout                     json.RawMessage `json:"shard_layout,omitempty"`
}

// GasPrice is the result of the gas_price method.
type GasPrice struct {
	GasPrice util.Balance `json:"gas_price"`
}
