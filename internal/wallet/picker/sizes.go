package picker

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txsizes"
)

// SizeModel estimates serialized transaction sizes in (virtual) bytes.
type SizeModel struct {
	// Overhead covers version, lock time and any segwit marker.
	Overhead int
	// InputSize is the size of one spent input including its signature script or witness.
	InputSize int
	// OutputSize is the size of one recipient output.
	OutputSize int
	// ChangeOutputSize is the size of the change output.
	ChangeOutputSize int
	// ChangeSpendSize is the size of the input that will later spend the change.
	ChangeSpendSize int
}

var (
	// P2PKH sizes legacy pay-to-pubkey-hash spends.
	P2PKH = SizeModel{
		Overhead:         8,
		InputSize:        txsizes.RedeemP2PKHInputSize,
		OutputSize:       txsizes.P2PKHOutputSize,
		ChangeOutputSize: txsizes.P2PKHOutputSize,
		ChangeSpendSize:  txsizes.RedeemP2PKHInputSize,
	}
	// P2WPKH sizes native segwit spends, witness data discounted to virtual bytes.
	P2WPKH = SizeModel{
		Overhead:         9,
		InputSize:        p2wpkhInputVSize,
		OutputSize:       txsizes.P2WPKHOutputSize,
		ChangeOutputSize: txsizes.P2WPKHOutputSize,
		ChangeSpendSize:  p2wpkhInputVSize,
	}
)

const p2wpkhInputVSize = txsizes.RedeemP2WPKHInputSize +
	(txsizes.RedeemP2WPKHInputWitnessWeight+3)/4

// TxSize returns the size of a transaction without change. Input and output counts are
// serialized as var-ints, so crossing 253 entries grows the size.
func (m SizeModel) TxSize(inputs, outputs int) int {
	return m.Overhead +
		wire.VarIntSerializeSize(uint64(inputs)) +
		wire.VarIntSerializeSize(uint64(outputs)) +
		inputs*m.InputSize +
		outputs*m.OutputSize
}

// TxSizeWithChange returns the size of a transaction carrying an extra change output.
func (m SizeModel) TxSizeWithChange(inputs, outputs int) int {
	return m.TxSize(inputs, outputs) - wire.VarIntSerializeSize(uint64(outputs)) +
		wire.VarIntSerializeSize(uint64(outputs+1)) + m.ChangeOutputSize
}

func (m SizeModel) valid() bool {
	return m.Overhead >= 0 && m.InputSize > 0 && m.OutputSize > 0 &&
		m.ChangeOutputSize > 0 && m.ChangeSpendSize > 0
}
