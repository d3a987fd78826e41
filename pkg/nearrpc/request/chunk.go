package request

import (
	"encoding/json"
	"errors"

	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/util"
)

var errNoChunkReference = errors.New("chunk reference requires chunk_id or block_id with shard_id")

type (
	// ChunkReference selects a chunk either by its hash or by the block and
	// shard it belongs to. ChunkHash is used when BlockID is nil.
	ChunkReference struct {
		ChunkHash util.CryptoHash
		BlockID   *nearrpc.BlockID
		ShardID   uint64
	}

	// Chunk is the request of the chunk method.
	Chunk struct {
		ChunkReference ChunkReference
	}

	chunkAux struct {
		ChunkID *util.CryptoHash `json:"chunk_id,omitempty"`
		BlockID *nearrpc.BlockID `json:"block_id,omitempty"`
		ShardID *uint64          `json:"shard_id,omitempty"`
	}

	// EpochReference selects an epoch by its ID, by a block in it or the
	// latest one. Latest is used when both EpochID and BlockID are nil.
	EpochReference struct {
		EpochID *util.CryptoHash
		BlockID *nearrpc.BlockID
	}

	// Validators is the request of the validators method.
	Validators struct {
		EpochReference EpochReference
	}

	epochAux struct {
		EpochID *util.CryptoHash `json:"epoch_id,omitempty"`
		BlockID *nearrpc.BlockID `json:"block_id,omitempty"`
	}

	// GasPrice is the request of the gas_price method, nil BlockID means
	// the latest block.
	GasPrice struct {
		BlockID *nearrpc.BlockID
	}
)

// ChunkByHash references a chunk by its hash.
func ChunkByHash(h util.CryptoHash) ChunkReference {
	return ChunkReference{ChunkHash: h}
}

// ChunkByBlockShard references a chunk by the block and shard ID.
func ChunkByBlockShard(id nearrpc.BlockID, shard uint64) ChunkReference {
	return ChunkReference{BlockID: &id, ShardID: shard}
}

// ParseChunk accepts a positional chunk hash first, a named {chunk_id}
// second and a named {block_id, shard_id} third.
func ParseChunk(raw json.RawMessage) (*Chunk, error) {
	var h util.CryptoHash
	if err := parsePositional(raw, &h); err == nil {
		return &Chunk{ChunkReference: ChunkByHash(h)}, nil
	}
	var aux chunkAux
	if err := parseParams(raw, &aux); err != nil {
		return nil, err
	}
	switch {
	case aux.ChunkID != nil && aux.BlockID == nil && aux.ShardID == nil:
		return &Chunk{ChunkReference: ChunkByHash(*aux.ChunkID)}, nil
	case aux.ChunkID == nil && aux.BlockID != nil && aux.ShardID != nil:
		return &Chunk{ChunkReference: ChunkByBlockShard(*aux.BlockID, *aux.ShardID)}, nil
	}
	return nil, parseError(errNoChunkReference)
}

// MarshalJSON implements the json.Marshaler interface.
func (r Chunk) MarshalJSON() ([]byte, error) {
	ref := r.ChunkReference
	if ref.BlockID == nil {
		return json.Marshal(chunkAux{ChunkID: &ref.ChunkHash})
	}
	return json.Marshal(chunkAux{BlockID: ref.BlockID, ShardID: &ref.ShardID})
}

// EpochLatest references the current epoch.
func EpochLatest() EpochReference {
	return EpochReference{}
}

// EpochByID references an epoch by its ID.
func EpochByID(id util.CryptoHash) EpochReference {
	return EpochReference{EpochID: &id}
}

// EpochByBlockID references the epoch of the given block.
func EpochByBlockID(id nearrpc.BlockID) EpochReference {
	return EpochReference{BlockID: &id}
}

// ParseValidators accepts a positional block ID or null first and a named
// {epoch_id} or {block_id} second.
func ParseValidators(raw json.RawMessage) (*Validators, error) {
	var id *nearrpc.BlockID
	if err := parsePositional(raw, &id); err == nil {
		if id == nil {
			return &Validators{EpochReference: EpochLatest()}, nil
		}
		return &Validators{EpochReference: EpochByBlockID(*id)}, nil
	}
	var aux epochAux
	if err := parseParams(raw, &aux); err != nil {
		return nil, err
	}
	switch {
	case aux.EpochID != nil && aux.BlockID == nil:
		return &Validators{EpochReference: EpochByID(*aux.EpochID)}, nil
	case aux.EpochID == nil && aux.BlockID != nil:
		return &Validators{EpochReference: EpochByBlockID(*aux.BlockID)}, nil
	}
	return nil, parseError(errors.New("epoch reference requires exactly one of epoch_id or block_id"))
}

// MarshalJSON implements the json.Marshaler interface.
func (r Validators) MarshalJSON() ([]byte, error) {
	ref := r.EpochReference
	switch {
	case ref.EpochID != nil && ref.BlockID != nil:
		return nil, errors.New("epoch reference has both epoch_id and block_id")
	case ref.EpochID == nil && ref.BlockID == nil:
		return []byte("[null]"), nil
	}
	return json.Marshal(epochAux{EpochID: ref.EpochID, BlockID: ref.BlockID})
}

// ParseGasPrice accepts a positional block ID or null first and a named
// {block_id} second.
func ParseGasPrice(raw json.RawMessage) (*GasPrice, error) {
	var id *nearrpc.BlockID
	if err := parsePositional(raw, &id); err == nil {
		return &GasPrice{BlockID: id}, nil
	}
	var aux struct {
		BlockID *nearrpc.BlockID `json:"block_id"`
	}
	if err := parseParams(raw, &aux); err != nil {
		return nil, err
	}
	return &GasPrice{BlockID: aux.BlockID}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r GasPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal([]*nearrpc.BlockID{r.BlockID})
}
