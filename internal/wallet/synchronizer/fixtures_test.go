package synchronizer

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// fakeChain serves a list of blocks and a mempool the way a node backed explorer would.
type fakeChain struct {
	mu        sync.Mutex
	blocks    []model.Block
	mempool   []model.Transaction
	pageSize  int
	failPages bool
	failHead  error
	gate      chan struct{}
	scanned   []uint64
}

func (c *fakeChain) set(blocks []model.Block, mempool ...model.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks, c.mempool = blocks, mempool
}

func (c *fakeChain) CurrentBlock(ctx context.Context) (model.BlockHeader, error) {
	if c.gate != nil {
		select {
		case <-c.gate:
		case <-ctx.Done():
			return model.BlockHeader{}, ctx.Err()
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failHead != nil {
		return model.BlockHeader{}, c.failHead
	}
	return c.blocks[len(c.blocks)-1].BlockHeader, nil
}

func (c *fakeChain) Transactions(_ context.Context, addresses []string, fromBlockHash, marker string) (Page[model.Transaction], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var from uint64
	if fromBlockHash != "" {
		found := false
		for _, b := range c.blocks {
			if b.Hash == fromBlockHash {
				from, found = b.Height+1, true
				break
			}
		}
		if !found {
			return Page[model.Transaction]{}, fmt.Errorf("block %s: %w", fromBlockHash, ErrBlockNotFound)
		}
	}
	if marker != "" {
		if c.failPages {
			return Page[model.Transaction]{}, fmt.Errorf("connection reset")
		}
		next, err := strconv.ParseUint(marker, 10, 64)
		if err != nil || next < from {
			return Page[model.Transaction]{}, fmt.Errorf("invalid page marker %q", marker)
		}
		from = next
	}

	start := len(c.blocks)
	for i, b := range c.blocks {
		if b.Height >= from {
			start = i
			break
		}
	}
	size := c.pageSize
	if size <= 0 {
		size = len(c.blocks)
	}
	end := start + size
	if end > len(c.blocks) {
		end = len(c.blocks)
	}

	watched := make(map[string]bool, len(addresses))
	for _, a := range addresses {
		watched[a] = true
	}
	page := Page[model.Transaction]{HasNext: end < len(c.blocks)}
	if page.HasNext {
		page.Marker = strconv.FormatUint(c.blocks[end].Height, 10)
	}
	for _, b := range c.blocks[start:end] {
		c.scanned = append(c.scanned, b.Height)
		header := b.BlockHeader
		for _, tx := range b.Transactions {
			if touches(tx, watched) {
				tx.Block = &header
				page.Transactions = append(page.Transactions, tx)
			}
		}
	}
	if !page.HasNext {
		for _, tx := range c.mempool {
			if touches(tx, watched) {
				page.Transactions = append(page.Transactions, tx)
			}
		}
	}
	return page, nil
}

func (c *fakeChain) scannedHeights() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uint64(nil), c.scanned...)
}

func (c *fakeChain) PushTransaction(context.Context, []byte) (string, error) {
	return "", fmt.Errorf("not supported")
}

func touches(tx model.Transaction, watched map[string]bool) bool {
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

type fakeKeychain struct {
	owned map[string]bool
}

func newKeychain(addresses ...string) *fakeKeychain {
	k := &fakeKeychain{owned: make(map[string]bool)}
	for _, a := range addresses {
		k.owned[a] = true
	}
	return k
}

func (k *fakeKeychain) Addresses() []string {
	out := make([]string, 0, len(k.owned))
	for a := range k.owned {
		out = append(out, a)
	}
	return out
}

func (k *fakeKeychain) Contains(address string) bool { return k.owned[address] }

func (k *fakeKeychain) Classify(tx model.Transaction) ([]model.Operation, error) {
	var (
		senders, recipients []string
		in, out, owned      = new(big.Int), new(big.Int), new(big.Int)
		sent                = new(big.Int)
		spends              bool
	)
	for _, i := range tx.Inputs {
		senders = append(senders, i.Address)
		if i.Amount != nil {
			in.Add(in, i.Amount)
		}
		if k.owned[i.Address] {
			spends = true
		}
	}
	for _, o := range tx.Outputs {
		recipients = append(recipients, o.Address)
		out.Add(out, o.Amount)
		if k.owned[o.Address] {
			owned.Add(owned, o.Amount)
		} else {
			sent.Add(sent, o.Amount)
		}
	}

	op := model.Operation{
		TxHash:     tx.Hash,
		Senders:    senders,
		Recipients: recipients,
		Date:       tx.Date,
		Block:      tx.Block,
		Fees:       new(big.Int),
	}
	switch {
	case spends:
		op.Type = model.OperationSend
		op.Amount = sent
		op.Fees = new(big.Int).Sub(in, out)
	case owned.Sign() > 0:
		op.Type = model.OperationReceive
		op.Amount = owned
	default:
		return nil, nil
	}
	return []model.Operation{op}, nil
}

func identity(tx model.Transaction) model.Transaction { return tx }

func header(prefix string, height uint64) model.BlockHeader {
	return model.BlockHeader{
		Height: height,
		Hash:   fmt.Sprintf("%s-%d", prefix, height),
		Time:   time.Date(2024, 1, 1, 0, int(height)*10, 0, 0, time.UTC),
	}
}

// chain builds blocks 1..n with the given prefix; txs places transactions at heights.
func chain(prefix string, n uint64, txs map[uint64][]model.Transaction) []model.Block {
	blocks := make([]model.Block, 0, n)
	for h := uint64(1); h <= n; h++ {
		b := model.Block{BlockHeader: header(prefix, h)}
		for _, tx := range txs[h] {
			tx.Date = b.Time
			b.Transactions = append(b.Transactions, tx)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func receive(hash, address string, amount int64) model.Transaction {
	return model.Transaction{
		Hash:    hash,
		Inputs:  []model.Input{{PrevHash: "funding-" + hash, Address: "stranger", Amount: big.NewInt(amount + 1)}},
		Outputs: []model.Output{{Index: 0, Address: address, Amount: big.NewInt(amount)}},
	}
}

func send(hash string, from model.UtxoKey, fromAddress string, fromAmount, amount, change int64, changeAddress string) model.Transaction {
	return model.Transaction{
		Hash:   hash,
		Inputs: []model.Input{{PrevHash: from.TxHash, PrevIndex: from.OutputIndex, Address: fromAddress, Amount: big.NewInt(fromAmount)}},
		Outputs: []model.Output{
			{Index: 0, Address: "stranger", Amount: big.NewInt(amount)},
			{Index: 1, Address: changeAddress, Amount: big.NewInt(change)},
		},
	}
}
