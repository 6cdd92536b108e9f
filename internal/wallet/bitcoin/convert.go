package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/safe"
)

// btcToAmount converts a node reported BTC value to satoshis.
func btcToAmount(value float64) (btcutil.Amount, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return amt, nil
}

func headerFromVerbose(src *btcjson.GetBlockHeaderVerboseResult) (model.BlockHeader, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("block %s height: %w", src.Hash, err)
	}
	return model.BlockHeader{
		Height: height,
		Hash:   src.Hash,
		Time:   time.Unix(src.Time, 0).UTC(),
	}, nil
}

func headerFromBlock(src *btcjson.GetBlockVerboseTxResult) (model.BlockHeader, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("block %s height: %w", src.Hash, err)
	}
	return model.BlockHeader{
		Height: height,
		Hash:   src.Hash,
		Time:   time.Unix(src.Time, 0).UTC(),
	}, nil
}

// convertOutputs decodes the outputs of a raw transaction.
func (d scriptDecoder) convertOutputs(raw btcjson.TxRawResult) ([]Output, error) {
	outputs := make([]Output, 0, len(raw.Vout))
	for idx, vout := range raw.Vout {
		value, err := btcToAmount(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d value: %w", raw.Txid, idx, err)
		}
		address, err := d.address(vout.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d address: %w", raw.Txid, idx, err)
		}
		outputs = append(outputs, Output{Index: vout.N, Address: address, Value: value})
	}
	return outputs, nil
}

// convertInputs maps the inputs of a raw transaction without resolving their prevouts.
func convertInputs(raw btcjson.TxRawResult) []Input {
	inputs := make([]Input, 0, len(raw.Vin))
	for _, vin := range raw.Vin {
		if vin.IsCoinBase() {
			inputs = append(inputs, Input{Coinbase: true, Resolved: true})
			continue
		}
		inputs = append(inputs, Input{PrevHash: vin.Txid, PrevIndex: vin.Vout})
	}
	return inputs
}

// withFee sets the fee once every input is resolved. Coinbase transactions carry none.
func withFee(tx Transaction) Transaction {
	var in, out btcutil.Amount
	for _, input := range tx.Inputs {
		if input.Coinbase {
			return tx
		}
		if !input.Resolved {
			return tx
		}
		in += input.Value
	}
	for _, output := range tx.Outputs {
		out += output.Value
	}
	if in >= out {
		fee := in - out
		tx.Fee = &fee
	}
	return tx
}
