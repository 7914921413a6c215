package module

import (
	"github.com/ethereum/go-ethereum/core/types"
)

// OmmerPool holds headers of valid blocks that lost against the canonical
// chain and may still be referenced as ommers by future mined blocks.
//
// The pool may live in-process or behind a messaging endpoint; either way the
// importer only sends to it and never reads its state.
type OmmerPool interface {
	// AddOmmers offers candidate ommer headers to the pool.
	AddOmmers(headers ...*types.Header) error

	// RemoveOmmers evicts the given headers from the pool, e.g. once they
	// have been included on the canonical chain.
	RemoveOmmers(headers ...*types.Header) error
}

// TransactionPool holds pending transactions waiting for inclusion in a
// block.
type TransactionPool interface {
	// AddTransactions returns transactions to the pending set. Duplicates
	// are ignored; the pending set is keyed by transaction hash.
	AddTransactions(txs types.Transactions) error

	// RemoveTransactions drops transactions from the pending set, preserving
	// the order of the given sequence when applying removals.
	RemoveTransactions(txs types.Transactions) error
}
