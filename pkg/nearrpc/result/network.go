package result

import (
	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
)

type (
	// NetworkInfo is the result of the network_info method.
	NetworkInfo struct {
		ActivePeers         []PeerInfo      `json:"active_peers"`
		NumActivePeers      uint64          `json:"num_active_peers"`
		PeerMaxCount        uint32          `json:"peer_max_count"`
		SentBytesPerSec     uint64          `json:"sent_bytes_per_sec"`
		ReceivedBytesPerSec uint64          `json:"received_bytes_per_sec"`
		KnownProducers      []KnownProducer `json:"known_producers"`
	}

	// PeerInfo is an active peer of the node.
	PeerInfo struct {
		ID        keys.PublicKey `json:"id"`
		Addr      *string        `json:"addr"`
		AccountID *account.ID    `json:"account_id"`
	}

	// KnownProducer is a block or chunk producer known from the routing
	// table.
	KnownProducer struct {
		AccountID account.ID     `json:"account_id"`
		Addr      *string        `json:"addr"`
		PeerID    keys.PublicKey `json:"peer_id"`
	}
)
