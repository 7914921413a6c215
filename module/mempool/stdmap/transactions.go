package stdmap

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Transactions implements the pending-transactions memory pool, backed by a
// Go map keyed by transaction hash.
type Transactions struct {
	sync.RWMutex
	txs map[common.Hash]*types.Transaction
}

// NewTransactions creates a new memory pool for pending transactions.
func NewTransactions() *Transactions {
	t := &Transactions{
		txs: make(map[common.Hash]*types.Transaction),
	}
	return t
}

// AddTransactions returns the given transactions to the pending set.
// Transactions already in the pool are left untouched, so re-adding is
// idempotent.
func (t *Transactions) AddTransactions(txs types.Transactions) error {
	t.Lock()
	defer t.Unlock()
	for _, tx := range txs {
		t.txs[tx.Hash()] = tx
	}
	return nil
}

// RemoveTransactions drops the given transactions from the pending set,
// in the order given.
func (t *Transactions) RemoveTransactions(txs types.Transactions) error {
	t.Lock()
	defer t.Unlock()
	for _, tx := range txs {
		delete(t.txs, tx.Hash())
	}
	return nil
}

// Has checks whether the transaction with the given hash is pending.
func (t *Transactions) Has(hash common.Hash) bool {
	t.RLock()
	defer t.RUnlock()
	_, ok := t.txs[hash]
	return ok
}

// All returns all pending transactions from the pool.
func (t *Transactions) All() types.Transactions {
	t.RLock()
	defer t.RUnlock()
	all := make(types.Transactions, 0, len(t.txs))
	for _, tx := range t.txs {
		all = append(all, tx)
	}
	return all
}

// Size returns the number of pending transactions.
func (t *Transactions) Size() uint {
	t.RLock()
	defer t.RUnlock()
	return uint(len(t.txs))
}
