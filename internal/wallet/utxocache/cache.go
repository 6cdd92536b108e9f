// Package utxocache maintains the set of spendable outputs of a fixed set of watched
// addresses by replaying locally known blocks above a watermark height.
//
// The cache state is owned by a single goroutine. Callers exchange request messages with it
// and receive immutable snapshots, so replays are serialized and never observed half done.
package utxocache

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/dolthub/swiss"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"go.uber.org/zap"
)

const initialCapacity = 1024

type requestKind int

const (
	requestUtxos requestKind = iota
	requestRefresh
	requestInvalidate
)

type request struct {
	ctx       context.Context
	kind      requestKind
	addresses []string
	reply     chan response
}

type response struct {
	snapshot Snapshot
	height   uint64
	err      error
}

// Cache is the UTXO set of one account.
type Cache struct {
	source       BlockSource
	watched      map[string]struct{}
	lowestHeight uint64
	logger       *zap.Logger
	metrics      Metrics

	requests chan request
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// Owned by the run loop.
	entries    *swiss.Map[model.UtxoKey, model.UtxoValue]
	lastHeight uint64
	replayed   bool
}

// New creates a cache bound to source. No watched output may precede lowestHeight.
func New(
	source BlockSource,
	watched []string,
	lowestHeight uint64,
	logger *zap.Logger,
	metrics Metrics,
) (*Cache, error) {
	if source == nil {
		return nil, errors.New("utxo cache block source is required")
	}
	if metrics == nil {
		return nil, errors.New("utxo cache metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	set := make(map[string]struct{}, len(watched))
	for _, addr := range watched {
		set[addr] = struct{}{}
	}

	return &Cache{
		source:       source,
		watched:      set,
		lowestHeight: lowestHeight,
		logger:       logger,
		metrics:      metrics,
		requests:     make(chan request),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
		entries:      swiss.NewMap[model.UtxoKey, model.UtxoValue](initialCapacity),
		lastHeight:   lowestHeight,
	}, nil
}

// Start launches the goroutine owning the cache state.
func (c *Cache) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.run(ctx)
}

// Stop terminates the owning goroutine and waits for it.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
}

// Utxos returns the outputs of addresses (all watched addresses when empty), first replaying
// blocks the source learned since the last call. When the replay fails the previous snapshot
// is returned along with the error.
func (c *Cache) Utxos(ctx context.Context, addresses []string) (Snapshot, error) {
	resp := c.send(ctx, request{kind: requestUtxos, addresses: addresses})
	return resp.snapshot, resp.err
}

// Refresh replays pending blocks and returns the resulting watermark.
func (c *Cache) Refresh(ctx context.Context) (uint64, error) {
	resp := c.send(ctx, request{kind: requestRefresh})
	return resp.height, resp.err
}

// Invalidate drops every entry and rewinds the watermark to the lowest height.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.send(ctx, request{kind: requestInvalidate}).err
}

func (c *Cache) send(ctx context.Context, req request) response {
	req.ctx = ctx
	req.reply = make(chan response, 1)

	select {
	case <-ctx.Done():
		return response{err: ctx.Err()}
	case <-c.done:
		return response{err: ErrStopped}
	case c.requests <- req:
	}

	select {
	case <-ctx.Done():
		return response{err: ctx.Err()}
	case resp := <-req.reply:
		return resp
	}
}

func (c *Cache) run(ctx context.Context) {
	defer c.wg.Done()
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case req := <-c.requests:
			req.reply <- c.handle(req)
		}
	}
}

func (c *Cache) handle(req request) response {
	switch req.kind {
	case requestInvalidate:
		c.invalidate()
		return response{height: c.lastHeight}
	case requestRefresh:
		height, err := c.refresh(req.ctx)
		return response{height: height, err: err}
	default:
		_, err := c.refresh(req.ctx)
		return response{snapshot: c.snapshot(req.addresses), height: c.lastHeight, err: err}
	}
}

func (c *Cache) invalidate() {
	c.entries = swiss.NewMap[model.UtxoKey, model.UtxoValue](initialCapacity)
	c.lastHeight = c.lowestHeight
	c.replayed = false
	c.metrics.ObserveInvalidate()
	c.metrics.SetEntries(0)
	c.logger.Info("utxo cache invalidated", zap.Uint64("lowest_height", c.lowestHeight))
}

func (c *Cache) refresh(ctx context.Context) (uint64, error) {
	if c.lowestHeight > c.lastHeight {
		return c.lastHeight, fmt.Errorf("%w: lowest height %d above watermark %d", ErrInvalidCacheState, c.lowestHeight, c.lastHeight)
	}

	header, err := c.source.LastBlockHeader(ctx)
	if err != nil {
		return c.lastHeight, fmt.Errorf("%w: last block header: %w", ErrReplay, err)
	}
	if header == nil {
		return c.lastHeight, nil
	}
	if header.Height < c.lastHeight {
		return c.lastHeight, fmt.Errorf("%w: block source head %d below watermark %d", ErrInvalidCacheState, header.Height, c.lastHeight)
	}

	from := c.lastHeight + 1
	if !c.replayed {
		from = c.lowestHeight
	}
	if header.Height < from {
		return c.lastHeight, nil
	}

	started := time.Now()
	blocks, err := c.source.Blocks(ctx, from, header.Height)
	if err != nil {
		err = fmt.Errorf("%w: blocks %d..%d: %w", ErrReplay, from, header.Height, err)
		c.metrics.ObserveReplay(err, 0, started)
		return c.lastHeight, err
	}

	d, err := c.stage(blocks, from, header.Height)
	if err != nil {
		c.metrics.ObserveReplay(err, len(blocks), started)
		return c.lastHeight, err
	}
	c.commit(d)
	c.lastHeight = header.Height
	c.replayed = true

	c.metrics.ObserveReplay(nil, len(blocks), started)
	c.metrics.SetEntries(c.entries.Count())
	c.logger.Debug("replayed blocks",
		zap.Uint64("from", from),
		zap.Uint64("to", header.Height),
		zap.Int("blocks", len(blocks)),
		zap.Int("added", len(d.added)),
		zap.Int("removed", len(d.removed)),
	)

	return c.lastHeight, nil
}

type diff struct {
	added   map[model.UtxoKey]model.UtxoValue
	removed map[model.UtxoKey]struct{}
}

// stage computes the effect of blocks without touching the entries, so an invalid block
// leaves the cache exactly as it was.
func (c *Cache) stage(blocks []model.Block, from, to uint64) (diff, error) {
	d := diff{
		added:   make(map[model.UtxoKey]model.UtxoValue),
		removed: make(map[model.UtxoKey]struct{}),
	}

	prev := uint64(0)
	for i, block := range blocks {
		if block.Height < from || block.Height > to {
			return diff{}, fmt.Errorf("%w: block %d outside replay range %d..%d", ErrInvalidCacheState, block.Height, from, to)
		}
		if i > 0 && block.Height <= prev {
			return diff{}, fmt.Errorf("%w: block %d out of order", ErrInvalidCacheState, block.Height)
		}
		prev = block.Height

		height := block.Height
		for _, tx := range block.Transactions {
			for _, in := range tx.Inputs {
				if in.Coinbase {
					continue
				}
				key := in.Key()
				if _, ok := d.added[key]; ok {
					delete(d.added, key)
					continue
				}
				if c.entries.Has(key) {
					d.removed[key] = struct{}{}
				}
			}
			for _, out := range tx.Outputs {
				if _, ok := c.watched[out.Address]; !ok {
					continue
				}
				if out.Amount == nil || out.Amount.Sign() < 0 {
					return diff{}, fmt.Errorf("%w: output %s:%d has invalid amount %v", ErrInvalidCacheState, tx.Hash, out.Index, out.Amount)
				}
				d.added[model.UtxoKey{TxHash: tx.Hash, OutputIndex: out.Index}] = model.UtxoValue{
					Amount:      new(big.Int).Set(out.Amount),
					Address:     out.Address,
					BlockHeight: &height,
				}
			}
		}
	}

	return d, nil
}

func (c *Cache) commit(d diff) {
	for key := range d.removed {
		c.entries.Delete(key)
	}
	for key, value := range d.added {
		c.entries.Put(key, value)
	}
}

func (c *Cache) snapshot(addresses []string) Snapshot {
	var filter map[string]struct{}
	if len(addresses) > 0 {
		filter = make(map[string]struct{}, len(addresses))
		for _, addr := range addresses {
			filter[addr] = struct{}{}
		}
	}

	utxos := make([]model.Utxo, 0, c.entries.Count())
	c.entries.Iter(func(key model.UtxoKey, value model.UtxoValue) bool {
		if filter != nil {
			if _, ok := filter[value.Address]; !ok {
				return false
			}
		}
		utxos = append(utxos, model.Utxo{Key: key, Value: detach(value)})
		return false
	})
	sort.Slice(utxos, func(i, j int) bool { return utxos[i].Key.Less(utxos[j].Key) })

	return Snapshot{Height: c.lastHeight, Utxos: utxos}
}

// detach copies the pointers of v so callers cannot mutate cache entries.
func detach(v model.UtxoValue) model.UtxoValue {
	if v.Amount != nil {
		v.Amount = new(big.Int).Set(v.Amount)
	}
	if v.BlockHeight != nil {
		height := *v.BlockHeight
		v.BlockHeight = &height
	}
	return v
}
