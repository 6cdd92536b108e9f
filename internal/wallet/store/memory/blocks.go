// Package memory holds mutex guarded in-memory implementations of the wallet stores.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// BlockStore is a height indexed block source of one account.
type BlockStore struct {
	mu     sync.RWMutex
	blocks map[uint64]model.Block
}

func NewBlockStore() *BlockStore {
	return &BlockStore{blocks: make(map[uint64]model.Block)}
}

func (s *BlockStore) Blocks(_ context.Context, from, to uint64) ([]model.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Block, 0)
	for height, block := range s.blocks {
		if height >= from && height <= to {
			out = append(out, block)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Height < out[j].Height })
	return out, nil
}

func (s *BlockStore) LastBlockHeader(_ context.Context) (*model.BlockHeader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.highest(func(model.BlockHeader) bool { return true }), nil
}

// LastBlockHeaderBelow returns the highest header strictly below height.
func (s *BlockStore) LastBlockHeaderBelow(_ context.Context, height uint64) (*model.BlockHeader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.highest(func(h model.BlockHeader) bool { return h.Height < height }), nil
}

// LastBlockHeaderAtOrBefore returns the highest header whose time is not after date.
func (s *BlockStore) LastBlockHeaderAtOrBefore(_ context.Context, date time.Time) (*model.BlockHeader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.highest(func(h model.BlockHeader) bool { return !h.Time.After(date) }), nil
}

func (s *BlockStore) highest(match func(model.BlockHeader) bool) *model.BlockHeader {
	var best *model.BlockHeader
	for _, block := range s.blocks {
		if !match(block.BlockHeader) {
			continue
		}
		if best == nil || block.Height > best.Height {
			header := block.BlockHeader
			best = &header
		}
	}
	return best
}

// AddBlocks stores blocks, replacing any block already known at the same height.
func (s *BlockStore) AddBlocks(_ context.Context, blocks []model.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, block := range blocks {
		s.blocks[block.Height] = block
	}
	return nil
}

// RemoveBlocksUpTo drops every block at or below height.
func (s *BlockStore) RemoveBlocksUpTo(_ context.Context, height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for h := range s.blocks {
		if h <= height {
			delete(s.blocks, h)
		}
	}
	return nil
}

// RemoveBlocksFrom drops every block at or above height.
func (s *BlockStore) RemoveBlocksFrom(_ context.Context, height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for h := range s.blocks {
		if h >= height {
			delete(s.blocks, h)
		}
	}
	return nil
}

func (s *BlockStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = make(map[uint64]model.Block)
	return nil
}
