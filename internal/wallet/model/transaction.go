package model

import (
	"math/big"
	"time"
)

// Transaction is the currency-neutral ledger shape replayed by the UTXO cache.
type Transaction struct {
	Hash    string
	Date    time.Time
	Block   *BlockHeader
	Inputs  []Input
	Outputs []Output
}

// Input references a previous transaction output.
type Input struct {
	PrevHash  string
	PrevIndex uint32
	Coinbase  bool
	// Address and Amount are known when the explorer resolved the spent output.
	Address string
	Amount  *big.Int
}

// Key returns the UTXO key spent by this input.
func (in Input) Key() UtxoKey {
	return UtxoKey{TxHash: in.PrevHash, OutputIndex: in.PrevIndex}
}

// Output is a value created by a transaction.
type Output struct {
	Index   uint32
	Address string
	Amount  *big.Int
}

// Confirmed reports whether the transaction is included in a block.
func (t Transaction) Confirmed() bool {
	return t.Block != nil
}
