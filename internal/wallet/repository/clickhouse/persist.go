package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Persist writes deletes, upserts and promotions of one run as a single insert block.
func (r *Repository) Persist(ctx context.Context, changes model.OperationChanges) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("persist", err, start)
	}()

	if changes.Empty() {
		return nil
	}

	touched := make(map[string]struct{}, len(changes.Upserts)+len(changes.Deletes))
	for _, uid := range changes.Deletes {
		touched[uid] = struct{}{}
	}
	for _, op := range changes.Upserts {
		touched[op.UID] = struct{}{}
	}

	var promoted []model.Operation
	if changes.PromoteUpTo != nil {
		promoted, err = r.promotable(ctx, changes.AccountUID, *changes.PromoteUpTo)
		if err != nil {
			return err
		}
	}

	batch, err := r.conn.PrepareBatch(ctx, insertOperationsQuery)
	if err != nil {
		return fmt.Errorf("prepare operations batch: %w", err)
	}

	version := r.version()
	rows := make([][]any, 0, len(changes.Deletes)+len(changes.Upserts)+len(promoted))
	for _, uid := range changes.Deletes {
		rows = append(rows, tombstoneValues(changes.AccountUID, uid, version))
	}
	for _, op := range changes.Upserts {
		op.AccountUID = changes.AccountUID
		if promotes(op, changes.PromoteUpTo) {
			op.Trust = model.TrustTrusted
		}
		rows = append(rows, operationValues(op, version))
	}
	for _, op := range promoted {
		if _, ok := touched[op.UID]; ok {
			continue
		}
		op.Trust = model.TrustTrusted
		rows = append(rows, operationValues(op, version))
	}

	for _, values := range rows {
		if err = batch.Append(values...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append operation: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert operations: %w", err)
	}
	return nil
}

func promotes(op model.Operation, upTo *uint64) bool {
	return upTo != nil && op.Block != nil && op.Block.Height <= *upTo
}

func (r *Repository) promotable(ctx context.Context, accountUID string, upTo uint64) ([]model.Operation, error) {
	const query = `
SELECT` + operationColumns + `
FROM wallet_operations FINAL
WHERE account_uid = ? AND is_deleted = 0 AND block_height <= ? AND trust != 'TRUSTED'`

	ops, err := r.queryOperations(ctx, accountUID, query, accountUID, upTo)
	if err != nil {
		return nil, fmt.Errorf("select promotable operations: %w", err)
	}
	return ops, nil
}

// ResetOperations deletes every operation not confirmed at or below the checkpoint, all of
// them when checkpoint is nil.
func (r *Repository) ResetOperations(ctx context.Context, accountUID string, checkpoint *model.BlockHeader) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("reset_operations", err, start)
	}()

	query := `
SELECT uid
FROM wallet_operations FINAL
WHERE account_uid = ? AND is_deleted = 0`
	args := []any{accountUID}
	if checkpoint != nil {
		query += ` AND (block_height IS NULL OR block_height > ?)`
		args = append(args, checkpoint.Height)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query operations to reset: %w", err)
	}
	uids := make([]string, 0)
	for rows.Next() {
		var uid string
		if err = rows.Scan(&uid); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan operation uid: %w", err)
		}
		uids = append(uids, uid)
	}
	if err = rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterate operation uids: %w", err)
	}
	if err = rows.Close(); err != nil {
		return fmt.Errorf("close rows: %w", err)
	}

	if len(uids) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertOperationsQuery)
	if err != nil {
		return fmt.Errorf("prepare operations batch: %w", err)
	}
	version := r.version()
	for _, uid := range uids {
		if err = batch.Append(tombstoneValues(accountUID, uid, version)...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append tombstone: %w", err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert tombstones: %w", err)
	}
	return nil
}
