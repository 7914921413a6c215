package ledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MissingNodeError indicates that a state trie node required to execute a
// block is absent from the local store. The node is identified by the
// keccak256 hash of its serialised bytes and can be re-downloaded from peers.
type MissingNodeError struct {
	Hash common.Hash
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("missing state trie node %x", e.Hash)
}

// NewMissingNodeError constructs a MissingNodeError for the given node hash.
func NewMissingNodeError(hash common.Hash) *MissingNodeError {
	return &MissingNodeError{Hash: hash}
}

// IsMissingNodeError returns whether err is or wraps a MissingNodeError.
func IsMissingNodeError(err error) bool {
	var missingNodeErr *MissingNodeError
	return errors.As(err, &missingNodeErr)
}

// AsMissingNodeError unwraps err as a MissingNodeError if possible.
func AsMissingNodeError(err error) (*MissingNodeError, bool) {
	var missingNodeErr *MissingNodeError
	ok := errors.As(err, &missingNodeErr)
	return missingNodeErr, ok
}
