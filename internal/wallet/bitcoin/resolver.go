package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// prevoutResolver looks up the outputs spent by inputs. It is seeded with the outputs of
// the blocks being scanned and falls back to getrawtransaction for the rest.
type prevoutResolver struct {
	node    Node
	decoder scriptDecoder
	known   map[model.UtxoKey]Output
	fetched map[string]struct{}
}

func newPrevoutResolver(node Node, decoder scriptDecoder) *prevoutResolver {
	return &prevoutResolver{
		node:    node,
		decoder: decoder,
		known:   make(map[model.UtxoKey]Output),
		fetched: make(map[string]struct{}),
	}
}

func (r *prevoutResolver) seed(txHash string, outputs []Output) {
	for _, o := range outputs {
		r.known[model.UtxoKey{TxHash: txHash, OutputIndex: o.Index}] = o
	}
	r.fetched[txHash] = struct{}{}
}

func (r *prevoutResolver) resolve(inputs []Input) error {
	for i := range inputs {
		in := &inputs[i]
		if in.Coinbase || in.Resolved {
			continue
		}
		key := model.UtxoKey{TxHash: in.PrevHash, OutputIndex: in.PrevIndex}
		out, ok := r.known[key]
		if !ok {
			if err := r.fetch(in.PrevHash); err != nil {
				return err
			}
			if out, ok = r.known[key]; !ok {
				return fmt.Errorf("prevout %s not found", key)
			}
		}
		in.Address = out.Address
		in.Value = out.Value
		in.Resolved = true
	}
	return nil
}

func (r *prevoutResolver) fetch(txHash string) error {
	if _, done := r.fetched[txHash]; done {
		return nil
	}
	hash, err := chainhash.NewHashFromStr(txHash)
	if err != nil {
		return fmt.Errorf("parse prevout hash %s: %w", txHash, err)
	}
	raw, err := r.node.GetRawTransactionVerbose(hash)
	if err != nil {
		return fmt.Errorf("get prevout transaction %s: %w", txHash, err)
	}
	outputs, err := r.decoder.convertOutputs(*raw)
	if err != nil {
		return err
	}
	r.seed(txHash, outputs)
	return nil
}
