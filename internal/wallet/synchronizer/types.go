package synchronizer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store persists cursors and operations.
	Store interface {
		Cursor(ctx context.Context, accountUID string) (model.SyncCursor, bool, error)
		SaveCursor(ctx context.Context, cursor model.SyncCursor) error
		// OperationsToReconcile returns operations without a block or confirmed at or above fromHeight.
		OperationsToReconcile(ctx context.Context, accountUID string, fromHeight uint64) ([]model.OperationRef, error)
		OperationsByUID(ctx context.Context, accountUID string, uids []string) (map[string]model.Operation, error)
		// Persist applies all changes or none of them.
		Persist(ctx context.Context, changes model.OperationChanges) error
		// ResetOperations deletes operations not confirmed at or below checkpoint, all when nil.
		ResetOperations(ctx context.Context, accountUID string, checkpoint *model.BlockHeader) error
	}
	// BlockSource is the local block store of one account.
	BlockSource interface {
		Blocks(ctx context.Context, from, to uint64) ([]model.Block, error)
		LastBlockHeader(ctx context.Context) (*model.BlockHeader, error)
		LastBlockHeaderBelow(ctx context.Context, height uint64) (*model.BlockHeader, error)
		LastBlockHeaderAtOrBefore(ctx context.Context, date time.Time) (*model.BlockHeader, error)
		AddBlocks(ctx context.Context, blocks []model.Block) error
		RemoveBlocksUpTo(ctx context.Context, height uint64) error
		RemoveBlocksFrom(ctx context.Context, height uint64) error
		Clear(ctx context.Context) error
	}
	// Cache is the utxo cache fed by the block source.
	Cache interface {
		Invalidate(ctx context.Context) error
		Refresh(ctx context.Context) (uint64, error)
	}
	Metrics interface {
		ObserveRun(err error, started time.Time)
		ObserveRollback(depth int)
		ObserveOperations(upserted, deleted int)
	}
)
