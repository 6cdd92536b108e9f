package model

import (
	"fmt"
	"math/big"
)

// UtxoKey references one transaction output.
type UtxoKey struct {
	TxHash      string
	OutputIndex uint32
}

func (k UtxoKey) String() string {
	return fmt.Sprintf("%s:%d", k.TxHash, k.OutputIndex)
}

// Less orders keys by hash then index.
func (k UtxoKey) Less(o UtxoKey) bool {
	if k.TxHash != o.TxHash {
		return k.TxHash < o.TxHash
	}
	return k.OutputIndex < o.OutputIndex
}

// UtxoValue is the spendable amount at a key.
type UtxoValue struct {
	Amount      *big.Int
	Address     string
	BlockHeight *uint64
}

// Utxo pairs a key with its value.
type Utxo struct {
	Key   UtxoKey
	Value UtxoValue
}
