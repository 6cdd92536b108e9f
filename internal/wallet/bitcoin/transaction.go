package bitcoin

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Transaction is a node transaction reduced to what an account needs.
type Transaction struct {
	Hash  string
	Date  time.Time
	Block *model.BlockHeader
	// Fee is set when every input value was resolved.
	Fee     *btcutil.Amount
	Inputs  []Input
	Outputs []Output
}

type Input struct {
	PrevHash  string
	PrevIndex uint32
	Coinbase  bool
	// Address and Value describe the spent output once resolved.
	Address  string
	Value    btcutil.Amount
	Resolved bool
}

type Output struct {
	Index   uint32
	Address string
	Value   btcutil.Amount
}

// Normalize maps a transaction to the ledger shape replayed by the utxo cache.
func Normalize(tx Transaction) model.Transaction {
	out := model.Transaction{
		Hash:    tx.Hash,
		Date:    tx.Date,
		Block:   tx.Block,
		Inputs:  make([]model.Input, 0, len(tx.Inputs)),
		Outputs: make([]model.Output, 0, len(tx.Outputs)),
	}
	for _, in := range tx.Inputs {
		normalized := model.Input{
			PrevHash:  in.PrevHash,
			PrevIndex: in.PrevIndex,
			Coinbase:  in.Coinbase,
		}
		if in.Resolved {
			normalized.Address = in.Address
			normalized.Amount = big.NewInt(int64(in.Value))
		}
		out.Inputs = append(out.Inputs, normalized)
	}
	for _, o := range tx.Outputs {
		out.Outputs = append(out.Outputs, model.Output{
			Index:   o.Index,
			Address: o.Address,
			Amount:  big.NewInt(int64(o.Value)),
		})
	}
	return out
}
