package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

const insertBlocksQuery = `
INSERT INTO wallet_blocks (
	account_uid,
	height,
	hash,
	block_time,
	transactions,
	version,
	is_deleted
) VALUES`

// BlockSource is the block store of one account backed by wallet_blocks.
type BlockSource struct {
	repo       *Repository
	accountUID string
}

func (r *Repository) BlockSource(accountUID string) *BlockSource {
	return &BlockSource{repo: r, accountUID: accountUID}
}

// Blocks returns the blocks with from <= height <= to in ascending order.
func (s *BlockSource) Blocks(ctx context.Context, from, to uint64) (blocks []model.Block, err error) {
	start := time.Now()
	defer func() {
		s.repo.metrics.Observe("blocks", err, start)
	}()

	const query = `
SELECT
	height,
	hash,
	block_time,
	transactions
FROM wallet_blocks FINAL
WHERE account_uid = ? AND is_deleted = 0 AND height >= ? AND height <= ?
ORDER BY height ASC`

	rows, err := s.repo.conn.Query(ctx, query, s.accountUID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer closeRows(rows, &err)

	blocks = make([]model.Block, 0)
	for rows.Next() {
		var (
			header  model.BlockHeader
			payload string
		)
		if err = rows.Scan(&header.Height, &header.Hash, &header.Time, &payload); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		header.Time = header.Time.UTC()
		txs, decodeErr := decodeTransactions(payload, header)
		if decodeErr != nil {
			err = decodeErr
			return nil, fmt.Errorf("block %d: %w", header.Height, err)
		}
		blocks = append(blocks, model.Block{BlockHeader: header, Transactions: txs})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return blocks, nil
}

func (s *BlockSource) LastBlockHeader(ctx context.Context) (*model.BlockHeader, error) {
	return s.lastHeader(ctx, "last_block_header", "", nil)
}

// LastBlockHeaderBelow returns the highest header strictly below height.
func (s *BlockSource) LastBlockHeaderBelow(ctx context.Context, height uint64) (*model.BlockHeader, error) {
	return s.lastHeader(ctx, "last_block_header_below", " AND height < ?", height)
}

// LastBlockHeaderAtOrBefore returns the highest header whose time is not after date.
func (s *BlockSource) LastBlockHeaderAtOrBefore(ctx context.Context, date time.Time) (*model.BlockHeader, error) {
	return s.lastHeader(ctx, "last_block_header_at_or_before", " AND block_time <= ?", date)
}

func (s *BlockSource) lastHeader(ctx context.Context, operation, filter string, arg any) (header *model.BlockHeader, err error) {
	start := time.Now()
	defer func() {
		s.repo.metrics.Observe(operation, err, start)
	}()

	query := `
SELECT
	height,
	hash,
	block_time
FROM wallet_blocks FINAL
WHERE account_uid = ? AND is_deleted = 0` + filter + `
ORDER BY height DESC
LIMIT 1`
	args := []any{s.accountUID}
	if filter != "" {
		args = append(args, arg)
	}

	rows, err := s.repo.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query block header: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate block header: %w", err)
		}
		return nil, nil
	}

	var h model.BlockHeader
	if err = rows.Scan(&h.Height, &h.Hash, &h.Time); err != nil {
		return nil, fmt.Errorf("scan block header: %w", err)
	}
	h.Time = h.Time.UTC()
	return &h, nil
}

// AddBlocks stores blocks, replacing any block already kept at the same height.
func (s *BlockSource) AddBlocks(ctx context.Context, blocks []model.Block) (err error) {
	start := time.Now()
	defer func() {
		s.repo.metrics.Observe("add_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := s.repo.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	version := s.repo.version()
	for _, block := range blocks {
		payload, encodeErr := encodeTransactions(block.Transactions)
		if encodeErr != nil {
			err = encodeErr
			_ = batch.Abort()
			return fmt.Errorf("block %d: %w", block.Height, err)
		}
		if err = batch.Append(
			s.accountUID,
			block.Height,
			block.Hash,
			block.Time,
			payload,
			version,
			uint8(0),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

// RemoveBlocksUpTo deletes the blocks at or below height.
func (s *BlockSource) RemoveBlocksUpTo(ctx context.Context, height uint64) error {
	return s.remove(ctx, "remove_blocks_up_to", " AND height <= ?", height)
}

// RemoveBlocksFrom deletes the blocks at or above height.
func (s *BlockSource) RemoveBlocksFrom(ctx context.Context, height uint64) error {
	return s.remove(ctx, "remove_blocks_from", " AND height >= ?", height)
}

func (s *BlockSource) Clear(ctx context.Context) error {
	return s.remove(ctx, "clear_blocks", "", nil)
}

func (s *BlockSource) remove(ctx context.Context, operation, filter string, arg any) (err error) {
	start := time.Now()
	defer func() {
		s.repo.metrics.Observe(operation, err, start)
	}()

	query := `
SELECT
	height,
	hash,
	block_time
FROM wallet_blocks FINAL
WHERE account_uid = ? AND is_deleted = 0` + filter
	args := []any{s.accountUID}
	if filter != "" {
		args = append(args, arg)
	}

	rows, err := s.repo.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query blocks to remove: %w", err)
	}
	headers := make([]model.BlockHeader, 0)
	for rows.Next() {
		var h model.BlockHeader
		if err = rows.Scan(&h.Height, &h.Hash, &h.Time); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan block header: %w", err)
		}
		headers = append(headers, h)
	}
	if err = rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterate block headers: %w", err)
	}
	if err = rows.Close(); err != nil {
		return fmt.Errorf("close rows: %w", err)
	}

	if len(headers) == 0 {
		return nil
	}

	batch, err := s.repo.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}
	version := s.repo.version()
	for _, h := range headers {
		if err = batch.Append(s.accountUID, h.Height, h.Hash, h.Time, "", version, uint8(1)); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block tombstone: %w", err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block tombstones: %w", err)
	}
	return nil
}
