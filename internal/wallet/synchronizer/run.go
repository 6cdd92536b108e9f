package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/uid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// runState is threaded through the steps of a run. Steps return an updated copy and never
// mutate the maps or slices of the value they received.
type runState[T any] struct {
	cursor     model.SyncCursor
	head       model.BlockHeader
	checkpoint *model.BlockHeader
	rollbacks  int
	lowest     uint64

	firstPage  Page[T]
	drop       map[string]model.OperationRef
	order      []string
	candidates map[string]model.Operation
	blocks     []model.Block

	upserted int
	deleted  int
	next     model.SyncCursor
}

func (st runState[T]) fromHash() string {
	if st.checkpoint == nil {
		return ""
	}
	return st.checkpoint.Hash
}

func (st runState[T]) fromHeight() uint64 {
	if st.checkpoint == nil {
		return st.lowest
	}
	return st.checkpoint.Height + 1
}

// startMarker makes the first page of a run without a checkpoint begin at the lowest height.
func (st runState[T]) startMarker() string {
	if st.checkpoint != nil || st.lowest == 0 {
		return ""
	}
	return strconv.FormatUint(st.lowest, 10)
}

// belowLowest reports whether ops were confirmed under the lowest height of the account.
func belowLowest(ops []model.Operation, lowest uint64) bool {
	return len(ops) > 0 && ops[0].Block != nil && ops[0].Block.Height < lowest
}

type run[T any] struct {
	s        *Synchronizer[T]
	account  Account[T]
	notifier *Notifier
	logger   *zap.Logger
	machine  *fsm.FSM
}

type step[T any] struct {
	event string
	apply func(ctx context.Context, st runState[T]) (runState[T], error)
}

func (r *run[T]) do(ctx context.Context) (Result, error) {
	r.machine = newMachine(func(from, to State) {
		if from == StateFailed {
			return
		}
		if fraction, ok := fractions[to]; ok {
			r.notifier.emit(Progress{State: to, Fraction: fraction})
		}
	})

	steps := []step[T]{
		{event: eventFetchHead, apply: r.fetchRemoteHead},
		{event: eventReconcile, apply: r.reconcileLocal},
		{event: eventInterpret, apply: r.interpretTransactions},
		{event: eventPersist, apply: r.persist},
		{event: eventUpdateCursor, apply: r.updateCursor},
	}

	var st runState[T]
	for _, s := range steps {
		if err := r.machine.Event(ctx, s.event); err != nil {
			return r.fail(ctx, fmt.Errorf("%s: %w", s.event, err))
		}
		next, err := s.apply(ctx, st)
		if err != nil {
			return r.fail(ctx, err)
		}
		st = next
	}
	if err := r.machine.Event(ctx, eventFinish); err != nil {
		return r.fail(ctx, fmt.Errorf("%s: %w", eventFinish, err))
	}

	return Result{
		AccountUID: r.account.UID,
		Cursor:     st.next,
		Upserted:   st.upserted,
		Deleted:    st.deleted,
		Rollbacks:  st.rollbacks,
	}, nil
}

func (r *run[T]) fail(ctx context.Context, err error) (Result, error) {
	from := r.machine.Current()
	if fsmErr := r.machine.Event(ctx, eventFail); fsmErr == nil {
		r.notifier.emit(Progress{State: StateFailed, Fraction: fractions[State(from)]})
		_ = r.machine.Event(ctx, eventRecover)
	}
	return Result{AccountUID: r.account.UID}, err
}

func (r *run[T]) fetchRemoteHead(ctx context.Context, st runState[T]) (runState[T], error) {
	cursor, ok, err := r.s.store.Cursor(ctx, r.account.UID)
	if err != nil {
		return st, fmt.Errorf("load cursor: %w", err)
	}
	head, err := r.s.explorer.CurrentBlock(ctx)
	if err != nil {
		return st, fmt.Errorf("%w: current block: %w", ErrRemoteUnavailable, err)
	}

	st.cursor = cursor
	st.head = head
	st.lowest = r.account.LowestHeight
	if ok && !cursor.Empty() {
		st.checkpoint = &model.BlockHeader{Height: cursor.Height, Hash: cursor.Hash}
	}
	r.logger.Debug("remote head fetched",
		zap.Uint64("remote_height", head.Height),
		zap.String("remote_hash", head.Hash),
		zap.Uint64("local_height", cursor.Height),
		zap.Bool("up_to_date", cursor.Hash == head.Hash),
	)
	return st, nil
}

// reconcileLocal finds the newest local block the remote chain still has, then stages every
// operation that block does not anchor into the drop set.
func (r *run[T]) reconcileLocal(ctx context.Context, st runState[T]) (runState[T], error) {
	addresses := r.account.Keychain.Addresses()
	for {
		page, err := r.s.explorer.Transactions(ctx, addresses, st.fromHash(), st.startMarker())
		if err == nil {
			st.firstPage = page
			break
		}
		if !errors.Is(err, ErrBlockNotFound) || st.checkpoint == nil {
			return st, fmt.Errorf("%w: transactions from %q: %w", ErrRemoteUnavailable, st.fromHash(), err)
		}
		if st.rollbacks >= r.s.config.MaxReorgDepth {
			return st, fmt.Errorf("%w: %d rollbacks below height %d", ErrIrreconcilableReorg, st.rollbacks, st.cursor.Height)
		}

		previous, err := r.account.Blocks.LastBlockHeaderBelow(ctx, st.checkpoint.Height)
		if err != nil {
			return st, fmt.Errorf("block below %d: %w", st.checkpoint.Height, err)
		}
		r.logger.Warn("rolling back checkpoint",
			zap.Error(ErrReorgDetected),
			zap.Uint64("height", st.checkpoint.Height),
			zap.String("hash", st.checkpoint.Hash),
			zap.Int("rollbacks", st.rollbacks+1),
		)
		st.rollbacks++
		st.checkpoint = previous
	}
	if st.rollbacks > 0 {
		r.s.metrics.ObserveRollback(st.rollbacks)
	}

	refs, err := r.s.store.OperationsToReconcile(ctx, r.account.UID, st.fromHeight())
	if err != nil {
		return st, fmt.Errorf("operations to reconcile: %w", err)
	}
	st.drop = make(map[string]model.OperationRef, len(refs))
	for _, ref := range refs {
		st.drop[ref.UID] = ref
	}
	return st, nil
}

func (r *run[T]) interpretTransactions(ctx context.Context, st runState[T]) (runState[T], error) {
	drop := make(map[string]model.OperationRef, len(st.drop))
	for k, v := range st.drop {
		drop[k] = v
	}
	candidates := make(map[string]model.Operation)
	order := make([]string, 0)
	blocks := make(map[uint64]model.Block)

	addresses := r.account.Keychain.Addresses()
	page := st.firstPage
	for pages := 1; ; pages++ {
		for _, tx := range page.Transactions {
			ops, err := r.account.Keychain.Classify(tx)
			if err != nil {
				return st, fmt.Errorf("classify transaction: %w", err)
			}
			if len(ops) == 0 || belowLowest(ops, st.lowest) {
				continue
			}
			for _, op := range ops {
				op.AccountUID = r.account.UID
				uid.Assign(&op)
				op.Trust = trustOf(op.Block, st.head, r.s.config.ConfirmationsToTrust)
				delete(drop, op.UID)
				if _, seen := candidates[op.UID]; !seen {
					order = append(order, op.UID)
				}
				candidates[op.UID] = op
			}

			normalized := r.s.normalize(tx)
			if normalized.Block != nil {
				block := blocks[normalized.Block.Height]
				block.BlockHeader = *normalized.Block
				block.Transactions = append(block.Transactions, normalized)
				blocks[normalized.Block.Height] = block
			}
		}

		r.notifier.emit(Progress{
			State:    StateInterpretingTransactions,
			Fraction: fractions[StateInterpretingTransactions] + 0.65*(1-1/float64(pages+1)),
		})
		if !page.HasNext {
			break
		}

		next, err := r.s.explorer.Transactions(ctx, addresses, st.fromHash(), page.Marker)
		if err != nil {
			return st, fmt.Errorf("%w: transactions page %q: %w", ErrRemoteUnavailable, page.Marker, err)
		}
		page = next
	}

	st.drop = drop
	st.candidates = candidates
	st.order = order
	st.blocks = make([]model.Block, 0, len(blocks))
	for _, block := range blocks {
		st.blocks = append(st.blocks, block)
	}
	sort.Slice(st.blocks, func(i, j int) bool { return st.blocks[i].Height < st.blocks[j].Height })
	return st, nil
}

func (r *run[T]) persist(ctx context.Context, st runState[T]) (runState[T], error) {
	existing, err := r.s.store.OperationsByUID(ctx, r.account.UID, st.order)
	if err != nil {
		return st, fmt.Errorf("load known operations: %w", err)
	}

	upserts := make([]model.Operation, 0, len(st.order))
	for _, id := range st.order {
		op := st.candidates[id]
		if known, ok := existing[id]; ok {
			merged := known.Merge(op)
			if known.SameBlock(merged) && known.Trust == merged.Trust {
				continue
			}
			op = merged
		}
		upserts = append(upserts, op)
	}

	deletes := make([]string, 0, len(st.drop))
	for id := range st.drop {
		deletes = append(deletes, id)
	}
	sort.Strings(deletes)

	changes := model.OperationChanges{
		AccountUID:  r.account.UID,
		Upserts:     upserts,
		Deletes:     deletes,
		PromoteUpTo: promoteUpTo(st.head, r.s.config.ConfirmationsToTrust),
	}
	if !changes.Empty() {
		if err := r.s.store.Persist(ctx, changes); err != nil {
			return st, fmt.Errorf("persist operations: %w", err)
		}
	}
	r.s.metrics.ObserveOperations(len(upserts), len(deletes))

	st.upserted = len(upserts)
	st.deleted = len(deletes)
	return st, nil
}

// updateCursor drops orphaned blocks, records the new ones, then lets the cache catch up and
// moves the cursor.
func (r *run[T]) updateCursor(ctx context.Context, st runState[T]) (runState[T], error) {
	source := r.account.Blocks
	if st.rollbacks > 0 {
		var err error
		if st.checkpoint == nil {
			err = source.Clear(ctx)
		} else {
			err = source.RemoveBlocksFrom(ctx, st.checkpoint.Height+1)
		}
		if err != nil {
			return st, fmt.Errorf("remove orphaned blocks: %w", err)
		}
		// The cache must forget the orphaned blocks before any block of the new branch lands.
		if cache := r.account.Cache; cache != nil {
			if err := cache.Invalidate(ctx); err != nil {
				return st, fmt.Errorf("invalidate cache: %w", err)
			}
		}
	}

	tip := st.head
	blocks := append([]model.Block(nil), st.blocks...)
	headKnown := false
	for _, block := range blocks {
		if block.Height == st.head.Height {
			headKnown = true
		}
		if block.Height > tip.Height {
			tip = block.BlockHeader
		}
	}
	// A head equal to the cursor is already stored, possibly with transactions.
	if !headKnown && st.head.Hash != "" && st.head.Hash != st.cursor.Hash && st.head.Height >= st.lowest {
		blocks = append(blocks, model.Block{BlockHeader: st.head})
	}
	if err := source.AddBlocks(ctx, blocks); err != nil {
		return st, fmt.Errorf("add blocks: %w", err)
	}

	if cache := r.account.Cache; cache != nil {
		if _, err := cache.Refresh(ctx); err != nil {
			r.logger.Warn("utxo cache refresh failed", zap.Error(err))
		}
	}

	next := model.SyncCursor{
		AccountUID:   r.account.UID,
		Height:       tip.Height,
		Hash:         tip.Hash,
		RemoteHeight: st.head.Height,
		UpdatedAt:    time.Now().UTC(),
	}
	if st.rollbacks == 0 && !st.cursor.Empty() && st.cursor.Height > next.Height {
		next.Height, next.Hash = st.cursor.Height, st.cursor.Hash
	}
	if err := r.s.store.SaveCursor(ctx, next); err != nil {
		return st, fmt.Errorf("save cursor: %w", err)
	}

	st.next = next
	return st, nil
}
