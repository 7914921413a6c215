package badger

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemastero/mantis/storage"
	"github.com/lemastero/mantis/utils/unittest"
)

func TestStateNodesSaveRetrieve(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := NewStateNodes(db)

		hash, node := unittest.StateNodeFixture()
		require.NoError(t, store.SaveNode(hash, node, 42))

		retrieved, err := store.ByHash(hash)
		require.NoError(t, err)
		assert.Equal(t, node, retrieved)

		number, err := store.BlockNumber(hash)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), number)
	})
}

func TestStateNodesSaveTwice(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := NewStateNodes(db)

		hash, node := unittest.StateNodeFixture()
		require.NoError(t, store.SaveNode(hash, node, 42))
		// repeated repair replies are harmless, the first write wins
		require.NoError(t, store.SaveNode(hash, node, 43))

		number, err := store.BlockNumber(hash)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), number)
	})
}

func TestStateNodesNotFound(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := NewStateNodes(db)

		hash, _ := unittest.StateNodeFixture()
		_, err := store.ByHash(hash)
		require.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.BlockNumber(hash)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
