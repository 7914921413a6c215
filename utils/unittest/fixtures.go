package unittest

import (
	"math/big"
	"math/rand"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// HashFixture returns a pseudo-random hash.
func HashFixture() common.Hash {
	var hash common.Hash
	rand.Read(hash[:])
	return hash
}

// AddressFixture returns a pseudo-random address.
func AddressFixture() common.Address {
	var addr common.Address
	rand.Read(addr[:])
	return addr
}

// HeaderFixture returns a header with a pseudo-random identity at the given
// number. The random extra data makes distinct fixtures hash differently.
func HeaderFixture(number uint64) *types.Header {
	extra := make([]byte, 24)
	rand.Read(extra)
	return &types.Header{
		ParentHash: HashFixture(),
		Root:       HashFixture(),
		Number:     new(big.Int).SetUint64(number),
		Difficulty: big.NewInt(int64(rand.Intn(1000) + 1)),
		GasLimit:   8_000_000,
		Time:       rand.Uint64(),
		Extra:      extra,
	}
}

// TransactionFixture returns a pseudo-random legacy transaction.
func TransactionFixture() *types.Transaction {
	to := AddressFixture()
	return types.NewTx(&types.LegacyTx{
		Nonce:    rand.Uint64(),
		GasPrice: big.NewInt(int64(rand.Intn(1_000_000) + 1)),
		Gas:      21_000,
		To:       &to,
		Value:    big.NewInt(int64(rand.Intn(1_000_000))),
	})
}

// TransactionsFixture returns n pseudo-random transactions.
func TransactionsFixture(n int) types.Transactions {
	txs := make(types.Transactions, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, TransactionFixture())
	}
	return txs
}

// BlockFixture returns a block with a pseudo-random identity and a couple of
// transactions.
func BlockFixture() *types.Block {
	return BlockWithNumberFixture(rand.Uint64() % 10_000)
}

// BlockWithNumberFixture returns a block at the given number with a couple
// of transactions.
func BlockWithNumberFixture(number uint64) *types.Block {
	return types.NewBlockWithHeader(HeaderFixture(number)).
		WithBody(TransactionsFixture(2), nil)
}

// BlockWithParentFixture returns a block whose parent pointers reference the
// given header.
func BlockWithParentFixture(parent *types.Header) *types.Block {
	header := HeaderFixture(parent.Number.Uint64() + 1)
	header.ParentHash = parent.Hash()
	return types.NewBlockWithHeader(header).
		WithBody(TransactionsFixture(2), nil)
}

// BlockWithUnclesFixture returns a block at the given number declaring the
// given uncle headers.
func BlockWithUnclesFixture(number uint64, uncles []*types.Header) *types.Block {
	return types.NewBlockWithHeader(HeaderFixture(number)).
		WithBody(TransactionsFixture(2), uncles)
}

// ChainFixture returns n connected blocks, oldest first, starting at the
// given number (a starting number of 0 is treated as 1).
func ChainFixture(n int, from uint64) []*types.Block {
	if from == 0 {
		from = 1
	}
	blocks := make([]*types.Block, 0, n)
	parent := HeaderFixture(from - 1)
	for i := 0; i < n; i++ {
		block := BlockWithParentFixture(parent)
		blocks = append(blocks, block)
		parent = block.Header()
	}
	return blocks
}

// TotalDifficultiesFixture returns monotonically increasing total
// difficulties for the given blocks.
func TotalDifficultiesFixture(blocks []*types.Block) []*big.Int {
	tds := make([]*big.Int, 0, len(blocks))
	td := big.NewInt(int64(rand.Intn(1_000_000) + 1))
	for _, block := range blocks {
		td = new(big.Int).Add(td, block.Difficulty())
		tds = append(tds, td)
	}
	return tds
}

// StateNodeFixture returns pseudo-random trie node bytes together with their
// keccak256 hash.
func StateNodeFixture() (common.Hash, []byte) {
	node := make([]byte, 64)
	rand.Read(node)
	return crypto.Keccak256Hash(node), node
}
