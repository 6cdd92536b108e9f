package clickhouse

import (
	"fmt"
	"math/big"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type txRecord struct {
	Hash    string         `json:"hash"`
	Date    time.Time      `json:"date"`
	Inputs  []inputRecord  `json:"inputs"`
	Outputs []outputRecord `json:"outputs"`
}

type inputRecord struct {
	PrevHash  string `json:"prev_hash"`
	PrevIndex uint32 `json:"prev_index"`
	Coinbase  bool   `json:"coinbase,omitempty"`
	Address   string `json:"address,omitempty"`
	Amount    string `json:"amount,omitempty"`
}

type outputRecord struct {
	Index   uint32 `json:"index"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func encodeTransactions(txs []model.Transaction) (string, error) {
	records := make([]txRecord, 0, len(txs))
	for _, tx := range txs {
		rec := txRecord{
			Hash:    tx.Hash,
			Date:    tx.Date.UTC(),
			Inputs:  make([]inputRecord, 0, len(tx.Inputs)),
			Outputs: make([]outputRecord, 0, len(tx.Outputs)),
		}
		for _, in := range tx.Inputs {
			ir := inputRecord{
				PrevHash:  in.PrevHash,
				PrevIndex: in.PrevIndex,
				Coinbase:  in.Coinbase,
				Address:   in.Address,
			}
			if in.Amount != nil {
				ir.Amount = in.Amount.String()
			}
			rec.Inputs = append(rec.Inputs, ir)
		}
		for _, out := range tx.Outputs {
			rec.Outputs = append(rec.Outputs, outputRecord{
				Index:   out.Index,
				Address: out.Address,
				Amount:  amountString(out.Amount),
			})
		}
		records = append(records, rec)
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}
	return string(payload), nil
}

// decodeTransactions restores the transactions of a block and attaches them to header.
func decodeTransactions(payload string, header model.BlockHeader) ([]model.Transaction, error) {
	if payload == "" {
		return nil, nil
	}

	var records []txRecord
	if err := json.UnmarshalFromString(payload, &records); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	txs := make([]model.Transaction, 0, len(records))
	for _, rec := range records {
		block := header
		tx := model.Transaction{
			Hash:    rec.Hash,
			Date:    rec.Date.UTC(),
			Block:   &block,
			Inputs:  make([]model.Input, 0, len(rec.Inputs)),
			Outputs: make([]model.Output, 0, len(rec.Outputs)),
		}
		for _, ir := range rec.Inputs {
			in := model.Input{
				PrevHash:  ir.PrevHash,
				PrevIndex: ir.PrevIndex,
				Coinbase:  ir.Coinbase,
				Address:   ir.Address,
			}
			if ir.Amount != "" {
				amount, ok := new(big.Int).SetString(ir.Amount, 10)
				if !ok {
					return nil, fmt.Errorf("decode transactions: input amount %q", ir.Amount)
				}
				in.Amount = amount
			}
			tx.Inputs = append(tx.Inputs, in)
		}
		for _, o := range rec.Outputs {
			amount, ok := new(big.Int).SetString(o.Amount, 10)
			if !ok {
				return nil, fmt.Errorf("decode transactions: output amount %q", o.Amount)
			}
			tx.Outputs = append(tx.Outputs, model.Output{Index: o.Index, Address: o.Address, Amount: amount})
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
