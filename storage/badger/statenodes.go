package badger

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/ethereum/go-ethereum/common"

	"github.com/lemastero/mantis/storage"
)

// key prefixes for the state node columns
const (
	codeStateNode       = 0x10 // node hash -> node bytes
	codeStateNodeNumber = 0x11 // node hash -> requesting block number
)

// StateNodes implements persistent storage for re-downloaded state trie
// nodes on top of badger.
type StateNodes struct {
	db *badger.DB
}

func NewStateNodes(db *badger.DB) *StateNodes {
	return &StateNodes{db: db}
}

var _ storage.StateNodes = (*StateNodes)(nil)

// SaveNode stores the node bytes under the node hash and records which block
// number required the node. Re-saving an already stored node is a no-op, so
// repeated repair replies are harmless.
func (s *StateNodes) SaveNode(hash common.Hash, node []byte, blockNumber uint64) error {
	err := s.db.Update(func(tx *badger.Txn) error {
		nodeKey := makeKey(codeStateNode, hash)
		_, err := tx.Get(nodeKey)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not check data: %w", err)
		}

		err = tx.Set(nodeKey, node)
		if err != nil {
			return fmt.Errorf("could not store data: %w", err)
		}

		var number [8]byte
		binary.BigEndian.PutUint64(number[:], blockNumber)
		err = tx.Set(makeKey(codeStateNodeNumber, hash), number[:])
		if err != nil {
			return fmt.Errorf("could not store index: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not save state node %x: %w", hash, err)
	}
	return nil
}

// ByHash retrieves the node with the given hash.
// Returns storage.ErrNotFound if the node is not stored.
func (s *StateNodes) ByHash(hash common.Hash) ([]byte, error) {
	var node []byte
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKey(codeStateNode, hash))
		if err != nil {
			return convertNotFound(err)
		}
		node, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve state node %x: %w", hash, err)
	}
	return node, nil
}

// BlockNumber retrieves the number of the block that required the node with
// the given hash.
// Returns storage.ErrNotFound if the node is not stored.
func (s *StateNodes) BlockNumber(hash common.Hash) (uint64, error) {
	var number uint64
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKey(codeStateNodeNumber, hash))
		if err != nil {
			return convertNotFound(err)
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("invalid block number encoding (%d bytes)", len(val))
			}
			number = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("could not retrieve block number for node %x: %w", hash, err)
	}
	return number, nil
}

func makeKey(code byte, hash common.Hash) []byte {
	return append([]byte{code}, hash[:]...)
}

func convertNotFound(err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return storage.ErrNotFound
	}
	return err
}
