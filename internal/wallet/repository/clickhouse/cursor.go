package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Cursor returns the latest saved cursor of an account.
func (r *Repository) Cursor(ctx context.Context, accountUID string) (cursor model.SyncCursor, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("cursor", err, start)
	}()

	const query = `
SELECT
	height,
	hash,
	remote_height,
	updated_at
FROM wallet_sync_cursors FINAL
WHERE account_uid = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, accountUID)
	if err != nil {
		return model.SyncCursor{}, false, fmt.Errorf("query cursor: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.SyncCursor{}, false, fmt.Errorf("iterate cursor: %w", err)
		}
		return model.SyncCursor{}, false, nil
	}

	cursor.AccountUID = accountUID
	if err = rows.Scan(&cursor.Height, &cursor.Hash, &cursor.RemoteHeight, &cursor.UpdatedAt); err != nil {
		return model.SyncCursor{}, false, fmt.Errorf("scan cursor: %w", err)
	}
	return cursor, true, nil
}

func (r *Repository) SaveCursor(ctx context.Context, cursor model.SyncCursor) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_cursor", err, start)
	}()

	const query = `
INSERT INTO wallet_sync_cursors (
	account_uid,
	height,
	hash,
	remote_height,
	updated_at,
	version
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare cursor batch: %w", err)
	}

	if err = batch.Append(
		cursor.AccountUID,
		cursor.Height,
		cursor.Hash,
		cursor.RemoteHeight,
		cursor.UpdatedAt,
		r.version(),
	); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append cursor: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert cursor: %w", err)
	}
	return nil
}
