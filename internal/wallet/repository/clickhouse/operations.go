package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

const operationColumns = `
	uid,
	tx_hash,
	message_index,
	operation_type,
	senders,
	recipients,
	amount,
	fees,
	date,
	block_height,
	block_hash,
	block_time,
	trust`

const insertOperationsQuery = `
INSERT INTO wallet_operations (
	account_uid,` + operationColumns + `,
	version,
	is_deleted
) VALUES`

type operationRow struct {
	UID          string
	TxHash       string
	MessageIndex *uint32
	Type         string
	Senders      []string
	Recipients   []string
	Amount       string
	Fees         *string
	Date         time.Time
	BlockHeight  *uint64
	BlockHash    *string
	BlockTime    *time.Time
	Trust        string
}

func (row *operationRow) dest() []any {
	return []any{
		&row.UID,
		&row.TxHash,
		&row.MessageIndex,
		&row.Type,
		&row.Senders,
		&row.Recipients,
		&row.Amount,
		&row.Fees,
		&row.Date,
		&row.BlockHeight,
		&row.BlockHash,
		&row.BlockTime,
		&row.Trust,
	}
}

func (row operationRow) operation(accountUID string) (model.Operation, error) {
	trust, err := model.ParseTrustLevel(row.Trust)
	if err != nil {
		return model.Operation{}, err
	}
	amount, ok := new(big.Int).SetString(row.Amount, 10)
	if !ok {
		return model.Operation{}, fmt.Errorf("operation %s: invalid amount %q", row.UID, row.Amount)
	}

	op := model.Operation{
		UID:          row.UID,
		AccountUID:   accountUID,
		TxHash:       row.TxHash,
		MessageIndex: row.MessageIndex,
		Type:         model.OperationType(row.Type),
		Senders:      row.Senders,
		Recipients:   row.Recipients,
		Amount:       amount,
		Date:         row.Date.UTC(),
		Trust:        trust,
	}
	if row.Fees != nil {
		fees, ok := new(big.Int).SetString(*row.Fees, 10)
		if !ok {
			return model.Operation{}, fmt.Errorf("operation %s: invalid fees %q", row.UID, *row.Fees)
		}
		op.Fees = fees
	}
	if row.BlockHeight != nil && row.BlockHash != nil {
		block := &model.BlockHeader{Height: *row.BlockHeight, Hash: *row.BlockHash}
		if row.BlockTime != nil {
			block.Time = row.BlockTime.UTC()
		}
		op.Block = block
	}
	return op, nil
}

func operationValues(op model.Operation, version uint64) []any {
	var (
		fees        *string
		blockHeight *uint64
		blockHash   *string
		blockTime   *time.Time
	)
	if op.Fees != nil {
		s := op.Fees.String()
		fees = &s
	}
	if op.Block != nil {
		height, hash, ts := op.Block.Height, op.Block.Hash, op.Block.Time
		blockHeight, blockHash, blockTime = &height, &hash, &ts
	}
	senders, recipients := op.Senders, op.Recipients
	if senders == nil {
		senders = []string{}
	}
	if recipients == nil {
		recipients = []string{}
	}

	return []any{
		op.AccountUID,
		op.UID,
		op.TxHash,
		op.MessageIndex,
		string(op.Type),
		senders,
		recipients,
		amountString(op.Amount),
		fees,
		op.Date,
		blockHeight,
		blockHash,
		blockTime,
		op.Trust.String(),
		version,
		uint8(0),
	}
}

func tombstoneValues(accountUID, uid string, version uint64) []any {
	return []any{
		accountUID,
		uid,
		"",
		(*uint32)(nil),
		"",
		[]string{},
		[]string{},
		"0",
		(*string)(nil),
		time.Unix(0, 0).UTC(),
		(*uint64)(nil),
		(*string)(nil),
		(*time.Time)(nil),
		model.TrustPending.String(),
		version,
		uint8(1),
	}
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

// OperationsToReconcile returns the operations without a block and those confirmed at or
// above fromHeight.
func (r *Repository) OperationsToReconcile(ctx context.Context, accountUID string, fromHeight uint64) (refs []model.OperationRef, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("operations_to_reconcile", err, start)
	}()

	const query = `
SELECT
	uid,
	tx_hash
FROM wallet_operations FINAL
WHERE account_uid = ? AND is_deleted = 0 AND (block_height IS NULL OR block_height >= ?)
ORDER BY uid ASC`

	rows, err := r.conn.Query(ctx, query, accountUID, fromHeight)
	if err != nil {
		return nil, fmt.Errorf("query operations to reconcile: %w", err)
	}
	defer closeRows(rows, &err)

	refs = make([]model.OperationRef, 0)
	for rows.Next() {
		var ref model.OperationRef
		if err = rows.Scan(&ref.UID, &ref.TxHash); err != nil {
			return nil, fmt.Errorf("scan operation ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operation refs: %w", err)
	}
	return refs, nil
}

func (r *Repository) OperationsByUID(ctx context.Context, accountUID string, uids []string) (out map[string]model.Operation, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("operations_by_uid", err, start)
	}()

	out = make(map[string]model.Operation, len(uids))
	if len(uids) == 0 {
		return out, nil
	}

	const query = `
SELECT` + operationColumns + `
FROM wallet_operations FINAL
WHERE account_uid = ? AND is_deleted = 0 AND uid IN ?`

	ops, err := r.queryOperations(ctx, accountUID, query, accountUID, uids)
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		out[op.UID] = op
	}
	return out, nil
}

// Operations returns the account operations ordered by date then uid.
func (r *Repository) Operations(ctx context.Context, accountUID string) (ops []model.Operation, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("operations", err, start)
	}()

	const query = `
SELECT` + operationColumns + `
FROM wallet_operations FINAL
WHERE account_uid = ? AND is_deleted = 0
ORDER BY date ASC, uid ASC`

	return r.queryOperations(ctx, accountUID, query, accountUID)
}

func (r *Repository) queryOperations(ctx context.Context, accountUID, query string, args ...any) (ops []model.Operation, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer closeRows(rows, &err)

	ops = make([]model.Operation, 0)
	for rows.Next() {
		var row operationRow
		if err = rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op, convErr := row.operation(accountUID)
		if convErr != nil {
			err = convErr
			return nil, fmt.Errorf("decode operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return ops, nil
}
