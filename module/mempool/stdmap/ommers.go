package stdmap

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultOmmerPoolSize bounds the number of candidate ommer headers kept
// around. Only recent losing tips are ever referenced by new mined blocks,
// so old candidates can be evicted.
const DefaultOmmerPoolSize = 30

// Ommers implements the ommer candidate pool: headers of valid blocks that
// lost against the canonical chain and may be referenced as ommers by future
// mined blocks. The pool is bounded by an LRU cache keyed by header hash.
type Ommers struct {
	cache *lru.Cache // header hash -> *types.Header
}

// NewOmmers creates a new ommer candidate pool with the given capacity.
func NewOmmers(size int) (*Ommers, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("could not initialize ommer cache: %w", err)
	}
	return &Ommers{cache: cache}, nil
}

// AddOmmers offers candidate ommer headers to the pool, evicting the least
// recently offered candidates when full.
func (o *Ommers) AddOmmers(headers ...*types.Header) error {
	for _, header := range headers {
		o.cache.Add(header.Hash(), header)
	}
	return nil
}

// RemoveOmmers evicts the given headers from the pool.
func (o *Ommers) RemoveOmmers(headers ...*types.Header) error {
	for _, header := range headers {
		o.cache.Remove(header.Hash())
	}
	return nil
}

// Has checks whether the header with the given hash is a known candidate.
func (o *Ommers) Has(hash common.Hash) bool {
	return o.cache.Contains(hash)
}

// All returns all candidate ommer headers, least recently offered first.
func (o *Ommers) All() []*types.Header {
	keys := o.cache.Keys()
	headers := make([]*types.Header, 0, len(keys))
	for _, key := range keys {
		if header, ok := o.cache.Get(key); ok {
			headers = append(headers, header.(*types.Header))
		}
	}
	return headers
}

// Size returns the number of candidate ommer headers in the pool.
func (o *Ommers) Size() uint {
	return uint(o.cache.Len())
}
