/*
Package keycache provides a cache of access key nonces. Transactions signed
with the same key must have increasing nonces, the cache fetches the current
nonce from the node once and then hands out the next ones locally.
*/
package keycache

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/result"
)

// DefaultSize is the number of keys cached by default.
const DefaultSize = 1024

// AccessKeyViewer is the part of the RPC client used to fetch access keys.
type AccessKeyViewer interface {
	ViewAccessKey(ctx context.Context, ref nearrpc.BlockReference, id account.ID, pk *keys.PublicKey) (*result.AccessKey, error)
}

// Cache keeps the last used nonce per (account, public key) pair. It's safe
// for concurrent use.
type Cache struct {
	client AccessKeyViewer
	// lock serializes nonce updates, the underlying cache is only used for
	// eviction.
	lock  sync.Mutex
	cache *lru.Cache
}

type cacheKey struct {
	account account.ID
	key     string
}

// New creates a cache of the given size (DefaultSize if not positive) filled
// through the client.
func New(client AccessKeyViewer, size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	c, _ := lru.New(size) // Never errors for positive size.
	return &Cache{
		client: client,
		cache:  c,
	}
}

// NextNonce returns the nonce to be used for the next transaction signed
// with the key. The first call for a key fetches its current nonce from the
// node at final block.
func (c *Cache) NextNonce(ctx context.Context, id account.ID, pk keys.PublicKey) (uint64, error) {
	k := cacheKey{account: id, key: pk.String()}

	c.lock.Lock()
	defer c.lock.Unlock()

	if v, ok := c.cache.Get(k); ok {
		nonce := v.(uint64) + 1
		c.cache.Add(k, nonce)
		return nonce, nil
	}
	ak, err := c.client.ViewAccessKey(ctx, nearrpc.BlockRefByFinality(nearrpc.FinalityFinal), id, &pk)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch access key of %s: %w", id, err)
	}
	nonce := ak.Nonce + 1
	c.cache.Add(k, nonce)
	return nonce, nil
}

// Invalidate removes the key from the cache, the next NextNonce call fetches
// it from the node again. It should be used after a transaction failed with
// an invalid nonce.
func (c *Cache) Invalidate(id account.ID, pk keys.PublicKey) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Remove(cacheKey{account: id, key: pk.String()})
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	return c.cache.Len()
}
