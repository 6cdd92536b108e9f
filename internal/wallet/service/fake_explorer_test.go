package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/synchronizer"
)

var genesisTime = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// testAddress derives a distinct regtest P2WPKH address per seed.
func testAddress(t *testing.T, seed byte) string {
	t.Helper()

	var program [20]byte
	for i := range program {
		program[i] = seed
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(program[:], &chaincfg.RegressionNetParams)
	if err != nil {
		t.Fatalf("derive address: %v", err)
	}
	return addr.EncodeAddress()
}

func txHash(label string) string {
	return chainhash.DoubleHashH([]byte(label)).String()
}

type fakeBlock struct {
	header model.BlockHeader
	txs    []bitcoin.Transaction
}

// fakeExplorer serves a fixed chain and answers every query with a single page.
type fakeExplorer struct {
	mu      sync.Mutex
	blocks  []fakeBlock
	pushed  [][]byte
	pushErr error
	// failFor makes Transactions fail when the queried addresses contain it.
	failFor string
}

// addBlock appends a block holding txs and returns its header.
func (e *fakeExplorer) addBlock(txs ...bitcoin.Transaction) model.BlockHeader {
	e.mu.Lock()
	defer e.mu.Unlock()

	height := uint64(len(e.blocks))
	header := model.BlockHeader{
		Height: height,
		Hash:   txHash(fmt.Sprintf("block-%d", height)),
		Time:   genesisTime.Add(time.Duration(height) * 10 * time.Minute),
	}
	for i := range txs {
		h := header
		txs[i].Block = &h
		txs[i].Date = header.Time
	}
	e.blocks = append(e.blocks, fakeBlock{header: header, txs: txs})
	return header
}

func (e *fakeExplorer) CurrentBlock(context.Context) (model.BlockHeader, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.blocks) == 0 {
		return model.BlockHeader{}, errors.New("empty chain")
	}
	return e.blocks[len(e.blocks)-1].header, nil
}

func (e *fakeExplorer) Transactions(_ context.Context, addresses []string, fromBlockHash, _ string) (synchronizer.Page[bitcoin.Transaction], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	watched := make(map[string]bool, len(addresses))
	for _, address := range addresses {
		if address == e.failFor {
			return synchronizer.Page[bitcoin.Transaction]{}, errors.New("node unreachable")
		}
		watched[address] = true
	}

	start := 0
	if fromBlockHash != "" {
		start = -1
		for i, b := range e.blocks {
			if b.header.Hash == fromBlockHash {
				start = i + 1
			}
		}
		if start < 0 {
			return synchronizer.Page[bitcoin.Transaction]{}, synchronizer.ErrBlockNotFound
		}
	}

	page := synchronizer.Page[bitcoin.Transaction]{}
	for _, b := range e.blocks[start:] {
		for _, tx := range b.txs {
			if touches(tx, watched) {
				page.Transactions = append(page.Transactions, tx)
			}
		}
	}
	return page, nil
}

func (e *fakeExplorer) PushTransaction(_ context.Context, raw []byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pushErr != nil {
		return "", e.pushErr
	}
	e.pushed = append(e.pushed, raw)
	return txHash(string(raw)), nil
}

func touches(tx bitcoin.Transaction, watched map[string]bool) bool {
	for _, in := range tx.Inputs {
		if watched[in.Address] {
			return true
		}
	}
	for _, out := range tx.Outputs {
		if watched[out.Address] {
			return true
		}
	}
	return false
}

// payment builds a transaction funded by an external address.
func payment(label, from string, outputs ...bitcoin.Output) bitcoin.Transaction {
	for i := range outputs {
		outputs[i].Index = uint32(i)
	}
	return bitcoin.Transaction{
		Hash: txHash(label),
		Inputs: []bitcoin.Input{{
			PrevHash: txHash(label + "-funding"),
			Address:  from,
			Value:    1_000_000,
			Resolved: true,
		}},
		Outputs: outputs,
	}
}

func pay(address string, value btcutil.Amount) bitcoin.Output {
	return bitcoin.Output{Address: address, Value: value}
}
