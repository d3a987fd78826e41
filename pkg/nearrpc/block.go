package nearrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/russellwmy/near-api-go/pkg/util"
)

// Finality is the commitment level of a block observed by the node.
type Finality string

// Supported finality levels.
const (
	FinalityOptimistic Finality = "optimistic"
	FinalityNearFinal  Finality = "near-final"
	FinalityFinal      Finality = "final"
)

// SyncCheckpoint is a well-known block the node can be asked about.
type SyncCheckpoint string

// Supported sync checkpoints.
const (
	SyncCheckpointGenesis           SyncCheckpoint = "genesis"
	SyncCheckpointEarliestAvailable SyncCheckpoint = "earliest_available"
)

var (
	// ErrInvalidBlockReference is returned for block references that don't
	// have exactly one of block ID, finality or sync checkpoint set.
	ErrInvalidBlockReference = errors.New("block reference must have exactly one of block_id, finality or sync_checkpoint")

	errInvalidBlockID = errors.New("block ID must be a height or a base58 hash")
)

// BlockID identifies a block either by its height or by its hash. The zero
// value is height 0 (genesis).
type BlockID struct {
	height uint64
	hash   util.CryptoHash
	byHash bool
}

// BlockReference selects a block by ID, by finality or by sync checkpoint.
// Exactly one of the fields must be set.
type BlockReference struct {
	BlockID        *BlockID
	Finality       Finality
	SyncCheckpoint SyncCheckpoint
}

// blockReferenceAux is the wire form of BlockReference.
type blockReferenceAux struct {
	BlockID        *BlockID        `json:"block_id,omitempty"`
	Finality       *Finality       `json:"finality,omitempty"`
	SyncCheckpoint *SyncCheckpoint `json:"sync_checkpoint,omitempty"`
}

// BlockHeight returns a BlockID for the block at the given height.
func BlockHeight(h uint64) BlockID {
	return BlockID{height: h}
}

// BlockHash returns a BlockID for the block with the given hash.
func BlockHash(h util.CryptoHash) BlockID {
	return BlockID{hash: h, byHash: true}
}

// Height returns the block height and true if the ID is a height.
func (b BlockID) Height() (uint64, bool) {
	return b.height, !b.byHash
}

// Hash returns the block hash and true if the ID is a hash.
func (b BlockID) Hash() (util.CryptoHash, bool) {
	return b.hash, b.byHash
}

// String implements the fmt.Stringer interface.
func (b BlockID) String() string {
	if b.byHash {
		return b.hash.String()
	}
	return strconv.FormatUint(b.height, 10)
}

// MarshalJSON implements the json.Marshaler interface. Heights are numbers,
// hashes are base58 strings.
func (b BlockID) MarshalJSON() ([]byte, error) {
	if b.byHash {
		return json.Marshal(b.hash.String())
	}
	return []byte(strconv.FormatUint(b.height, 10)), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *BlockID) UnmarshalJSON(data []byte) error {
	var h uint64
	if err := json.Unmarshal(data, &h); err == nil {
		*b = BlockHeight(h)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", errInvalidBlockID, data)
	}
	hash, err := util.CryptoHashDecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidBlockID, err)
	}
	*b = BlockHash(hash)
	return nil
}

// IsValid checks whether f is one of the known finality levels.
func (f Finality) IsValid() bool {
	switch f {
	case FinalityOptimistic, FinalityNearFinal, FinalityFinal:
		return true
	}
	return false
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Finality) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Finality(s).IsValid() {
		return fmt.Errorf("unknown finality %q", s)
	}
	*f = Finality(s)
	return nil
}

// IsValid checks whether c is one of the known sync checkpoints.
func (c SyncCheckpoint) IsValid() bool {
	return c == SyncCheckpointGenesis || c == SyncCheckpointEarliestAvailable
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *SyncCheckpoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !SyncCheckpoint(s).IsValid() {
		return fmt.Errorf("unknown sync checkpoint %q", s)
	}
	*c = SyncCheckpoint(s)
	return nil
}

// BlockRefByID returns a reference to the block with the given ID.
func BlockRefByID(id BlockID) BlockReference {
	return BlockReference{BlockID: &id}
}

// BlockRefByFinality returns a reference to the latest block with the given
// finality.
func BlockRefByFinality(f Finality) BlockReference {
	return BlockReference{Finality: f}
}

// BlockRefBySyncCheckpoint returns a reference to the given checkpoint.
func BlockRefBySyncCheckpoint(c SyncCheckpoint) BlockReference {
	return BlockReference{SyncCheckpoint: c}
}

// Validate checks that exactly one way of selecting a block is used.
func (r BlockReference) Validate() error {
	var set int
	if r.BlockID != nil {
		set++
	}
	if r.Finality != "" {
		if !r.Finality.IsValid() {
			return fmt.Errorf("unknown finality %q", r.Finality)
		}
		set++
	}
	if r.SyncCheckpoint != "" {
		if !r.SyncCheckpoint.IsValid() {
			return fmt.Errorf("unknown sync checkpoint %q", r.SyncCheckpoint)
		}
		set++
	}
	if set != 1 {
		return ErrInvalidBlockReference
	}
	return nil
}

// Equals checks whether both references select a block the same way.
func (r BlockReference) Equals(other BlockReference) bool {
	if (r.BlockID == nil) != (other.BlockID == nil) {
		return false
	}
	if r.BlockID != nil && *r.BlockID != *other.BlockID {
		return false
	}
	return r.Finality == other.Finality && r.SyncCheckpoint == other.SyncCheckpoint
}

// Fields returns the reference as a set of named request parameters, it's
// used by requests adding their own parameters next to the reference.
func (r BlockReference) Fields() (map[string]json.RawMessage, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r BlockReference) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	aux := blockReferenceAux{BlockID: r.BlockID}
	if r.Finality != "" {
		aux.Finality = &r.Finality
	}
	if r.SyncCheckpoint != "" {
		aux.SyncCheckpoint = &r.SyncCheckpoint
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface. Unknown fields are
// ignored, so a reference can be decoded from a bigger parameters object.
func (r *BlockReference) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return ErrInvalidBlockReference
	}
	var aux blockReferenceAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	res := BlockReference{BlockID: aux.BlockID}
	if aux.Finality != nil {
		res.Finality = *aux.Finality
	}
	if aux.SyncCheckpoint != nil {
		res.SyncCheckpoint = *aux.SyncCheckpoint
	}
	if err := res.Validate(); err != nil {
		return err
	}
	*r = res
	return nil
}
