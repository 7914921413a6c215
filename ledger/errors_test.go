package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingNodeError(t *testing.T) {
	hash := [32]byte{0x13, 0x37}
	err := NewMissingNodeError(hash)

	assert.True(t, IsMissingNodeError(err))
	assert.False(t, IsMissingNodeError(assert.AnError))

	wrapped := fmt.Errorf("import failed: %w", err)
	assert.True(t, IsMissingNodeError(wrapped))

	missing, ok := AsMissingNodeError(wrapped)
	require.True(t, ok)
	assert.Equal(t, err.Hash, missing.Hash)
}
