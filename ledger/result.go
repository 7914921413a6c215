package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

// BlockImportResult describes how the canonical chain was affected by a
// single ImportBlock call. Exactly one of the variants below is returned per
// successfully completed call.
type BlockImportResult interface {
	isBlockImportResult()
}

// BlockImportedToTop reports that the block (and possibly queued descendants)
// extended the canonical chain. Chain lists the adopted blocks oldest first,
// paired positionally with their total difficulties.
type BlockImportedToTop struct {
	Chain             []*types.Block
	TotalDifficulties []*big.Int
}

// BlockEnqueued reports that the block was queued for later import, e.g.
// because it is ahead of the current chain tip.
type BlockEnqueued struct{}

// DuplicateBlock reports that the block is already known.
type DuplicateBlock struct{}

// UnknownParent reports that the block's parent is neither canonical nor
// queued. Normal for broadcast blocks received out of order.
type UnknownParent struct{}

// ChainReorganised reports that importing the block made a competing branch
// the heaviest one. OldBranch lists the displaced blocks, NewBranch the newly
// adopted ones (both oldest first); TotalDifficulties pairs positionally with
// NewBranch.
type ChainReorganised struct {
	OldBranch         []*types.Block
	NewBranch         []*types.Block
	TotalDifficulties []*big.Int
}

// BlockImportFailed reports that the block failed validation or execution.
type BlockImportFailed struct {
	Reason string
}

func (BlockImportedToTop) isBlockImportResult() {}
func (BlockEnqueued) isBlockImportResult()      {}
func (DuplicateBlock) isBlockImportResult()     {}
func (UnknownParent) isBlockImportResult()      {}
func (ChainReorganised) isBlockImportResult()   {}
func (BlockImportFailed) isBlockImportResult()  {}

// BranchResolutionResult classifies a candidate branch relative to the
// current canonical chain.
type BranchResolutionResult interface {
	isBranchResolutionResult()
}

// NewBetterBranch reports that the candidate branch is heavier than the
// canonical suffix it displaces. OldBranch lists the displaced blocks,
// oldest first.
type NewBetterBranch struct {
	OldBranch []*types.Block
}

// NoChainSwitch reports that the candidate branch does not improve on the
// canonical chain.
type NoChainSwitch struct{}

// UnknownBranch reports that the candidate branch cannot be connected to any
// known block; more history is needed to classify it.
type UnknownBranch struct{}

// InvalidBranch reports that the candidate headers do not form a valid chain.
type InvalidBranch struct{}

func (NewBetterBranch) isBranchResolutionResult() {}
func (NoChainSwitch) isBranchResolutionResult()   {}
func (UnknownBranch) isBranchResolutionResult()   {}
func (InvalidBranch) isBranchResolutionResult()   {}
