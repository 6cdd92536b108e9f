// Package synchronizer keeps the operations and utxo cache of accounts consistent with a
// remote explorer. One engine serves every account of a currency.
package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"go.uber.org/zap"
)

// Synchronizer runs at most one synchronization per account at a time.
type Synchronizer[T any] struct {
	explorer  Explorer[T]
	normalize Normalize[T]
	store     Store
	config    Config
	logger    *zap.Logger
	metrics   Metrics

	mu        sync.Mutex
	inflight  map[string]*Notifier
	resetting map[string]struct{}
}

func New[T any](
	explorer Explorer[T],
	normalize Normalize[T],
	store Store,
	config Config,
	logger *zap.Logger,
	metrics Metrics,
) (*Synchronizer[T], error) {
	switch {
	case explorer == nil:
		return nil, errors.New("synchronizer explorer is required")
	case normalize == nil:
		return nil, errors.New("synchronizer normalize function is required")
	case store == nil:
		return nil, errors.New("synchronizer store is required")
	case metrics == nil:
		return nil, errors.New("synchronizer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synchronizer[T]{
		explorer:  explorer,
		normalize: normalize,
		store:     store,
		config:    config.withDefaults(),
		logger:    logger.Named("synchronizer"),
		metrics:   metrics,
		inflight:  make(map[string]*Notifier),
		resetting: make(map[string]struct{}),
	}, nil
}

// Synchronize starts a run for account, or returns the notifier of the run already in flight.
// Cancelling ctx does not abort the run.
func (s *Synchronizer[T]) Synchronize(ctx context.Context, account Account[T]) *Notifier {
	s.mu.Lock()
	if n, ok := s.inflight[account.UID]; ok {
		s.mu.Unlock()
		return n
	}
	n := newNotifier()
	if _, ok := s.resetting[account.UID]; ok {
		s.mu.Unlock()
		n.finish(Result{AccountUID: account.UID}, ErrSyncInProgress)
		return n
	}
	s.inflight[account.UID] = n
	s.mu.Unlock()

	go s.execute(context.WithoutCancel(ctx), account, n)
	return n
}

// IsSynchronizing reports whether a run is in flight for the account.
func (s *Synchronizer[T]) IsSynchronizing(accountUID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.inflight[accountUID]
	return ok
}

func (s *Synchronizer[T]) execute(ctx context.Context, account Account[T], n *Notifier) {
	started := time.Now()
	logger := s.logger.With(zap.String("account", account.UID))

	r := &run[T]{
		s:        s,
		account:  account,
		notifier: n,
		logger:   logger,
	}
	result, err := r.do(ctx)
	s.metrics.ObserveRun(err, started)
	if err != nil {
		logger.Warn("synchronization failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
	} else {
		logger.Info("synchronization done",
			zap.Uint64("height", result.Cursor.Height),
			zap.Int("upserted", result.Upserted),
			zap.Int("deleted", result.Deleted),
			zap.Int("rollbacks", result.Rollbacks),
			zap.Duration("elapsed", time.Since(started)),
		)
	}

	s.mu.Lock()
	delete(s.inflight, account.UID)
	s.mu.Unlock()
	n.finish(result, err)
}

// Reset rolls the account back to the last local block at or before toDate: newer
// operations and blocks are removed and the cache is invalidated.
func (s *Synchronizer[T]) Reset(ctx context.Context, account Account[T], toDate time.Time) (model.SyncCursor, error) {
	s.mu.Lock()
	_, running := s.inflight[account.UID]
	_, resetting := s.resetting[account.UID]
	if running || resetting {
		s.mu.Unlock()
		return model.SyncCursor{}, ErrSyncInProgress
	}
	s.resetting[account.UID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.resetting, account.UID)
		s.mu.Unlock()
	}()

	checkpoint, err := account.Blocks.LastBlockHeaderAtOrBefore(ctx, toDate)
	if err != nil {
		return model.SyncCursor{}, fmt.Errorf("find checkpoint: %w", err)
	}
	if err := s.store.ResetOperations(ctx, account.UID, checkpoint); err != nil {
		return model.SyncCursor{}, fmt.Errorf("reset operations: %w", err)
	}

	cursor := model.SyncCursor{AccountUID: account.UID, UpdatedAt: time.Now().UTC()}
	if checkpoint == nil {
		err = account.Blocks.Clear(ctx)
	} else {
		cursor.Height, cursor.Hash, cursor.RemoteHeight = checkpoint.Height, checkpoint.Hash, checkpoint.Height
		err = account.Blocks.RemoveBlocksFrom(ctx, checkpoint.Height+1)
	}
	if err != nil {
		return model.SyncCursor{}, fmt.Errorf("remove blocks: %w", err)
	}

	if account.Cache != nil {
		if err := account.Cache.Invalidate(ctx); err != nil {
			return model.SyncCursor{}, fmt.Errorf("invalidate cache: %w", err)
		}
	}
	if err := s.store.SaveCursor(ctx, cursor); err != nil {
		return model.SyncCursor{}, fmt.Errorf("save cursor: %w", err)
	}

	s.logger.Info("account reset",
		zap.String("account", account.UID),
		zap.Time("to_date", toDate),
		zap.Uint64("height", cursor.Height),
		zap.String("hash", cursor.Hash),
	)
	return cursor, nil
}
