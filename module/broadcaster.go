package module

import (
	"github.com/lemastero/mantis/model/messages"
)

// BlockBroadcaster fans newly adopted blocks out to connected peers.
type BlockBroadcaster interface {
	// BroadcastBlocks announces the given blocks, paired with their total
	// difficulties, to the network.
	BroadcastBlocks(blocks []*messages.NewBlock) error
}
