// Package service runs the bitcoin accounts of a wallet: it keeps their operations and utxo
// caches synchronized and funds and broadcasts their transactions.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/synchronizer"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/utxocache"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/workerpool"
)

// DefaultSyncWorkers is the number of accounts SyncAll synchronizes at once.
const DefaultSyncWorkers = 4

// Config tunes a Service. Zero values take the defaults.
type Config struct {
	SyncWorkers  int
	Synchronizer synchronizer.Config
}

// AccountConfig describes a watch-only account.
type AccountConfig struct {
	UID       string
	Addresses []string
	// LowestHeight is the first block height that may hold an output of the account.
	LowestHeight uint64
}

// Status is the synchronization position of an account.
type Status struct {
	AccountUID    string
	Addresses     []string
	LowestHeight  uint64
	Cursor        model.SyncCursor
	Synced        bool
	Synchronizing bool
}

// SyncReport is the outcome of one account in SyncAll.
type SyncReport struct {
	AccountUID string
	Result     synchronizer.Result
	Err        error
}

type account struct {
	config   AccountConfig
	keychain *bitcoin.Keychain
	cache    *utxocache.Cache
	sync     synchronizer.Account[bitcoin.Transaction]
}

// Service owns the accounts of one bitcoin network.
type Service struct {
	network      bitcoin.NetworkConfig
	explorer     Explorer
	store        Store
	blocks       BlockSources
	sync         *synchronizer.Synchronizer[bitcoin.Transaction]
	config       Config
	logger       *zap.Logger
	metrics      Metrics
	cacheMetrics CacheMetrics

	// ctx bounds the lifetime of the account caches.
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	accounts map[string]*account
	closed   bool
}

func New(
	network bitcoin.NetworkConfig,
	explorer Explorer,
	store Store,
	blocks BlockSources,
	config Config,
	logger *zap.Logger,
	observers Observers,
) (*Service, error) {
	switch {
	case explorer == nil:
		return nil, errors.New("wallet service explorer is required")
	case store == nil:
		return nil, errors.New("wallet service store is required")
	case blocks == nil:
		return nil, errors.New("wallet service block sources are required")
	case observers.Service == nil || observers.Synchronizer == nil || observers.Cache == nil:
		return nil, errors.New("wallet service metrics are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SyncWorkers <= 0 {
		config.SyncWorkers = DefaultSyncWorkers
	}
	logger = logger.Named("wallet_service").With(
		zap.String("coin", string(network.Coin)),
		zap.String("network", string(network.Network)),
	)

	engine, err := synchronizer.New[bitcoin.Transaction](
		explorer,
		bitcoin.Normalize,
		store,
		config.Synchronizer,
		logger,
		observers.Synchronizer,
	)
	if err != nil {
		return nil, fmt.Errorf("init synchronizer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		network:      network,
		explorer:     explorer,
		store:        store,
		blocks:       blocks,
		sync:         engine,
		config:       config,
		logger:       logger,
		metrics:      observers.Service,
		cacheMetrics: observers.Cache,
		ctx:          ctx,
		cancel:       cancel,
		accounts:     make(map[string]*account),
	}, nil
}

// Open starts following an account. Blocks below its lowest height are pruned from the
// account block store.
func (s *Service) Open(ctx context.Context, cfg AccountConfig) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("open", err, started)
	}()

	if cfg.UID == "" {
		return fmt.Errorf("%w: uid is required", ErrInvalidAccount)
	}
	if err := s.reserve(cfg.UID); err != nil {
		return err
	}

	acct, err := s.build(ctx, cfg)
	if err != nil {
		s.release(cfg.UID)
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		acct.cache.Stop()
		return ErrClosed
	}
	s.accounts[cfg.UID] = acct
	s.mu.Unlock()

	s.logger.Info("account opened",
		zap.String("account", cfg.UID),
		zap.Int("addresses", len(acct.keychain.Addresses())),
		zap.Uint64("lowest_height", cfg.LowestHeight),
	)
	return nil
}

// OpenAll opens accounts concurrently and stops at the first failure.
func (s *Service) OpenAll(ctx context.Context, configs []AccountConfig) error {
	return workerpool.Process(ctx, s.config.SyncWorkers, configs, s.Open)
}

// reserve claims uid with a nil entry so concurrent opens of the same account fail fast.
func (s *Service) reserve(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, ok := s.accounts[uid]; ok {
		return fmt.Errorf("%w: %s", ErrAccountExists, uid)
	}
	s.accounts[uid] = nil
	return nil
}

func (s *Service) release(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acct, ok := s.accounts[uid]; ok && acct == nil {
		delete(s.accounts, uid)
	}
}

func (s *Service) build(ctx context.Context, cfg AccountConfig) (*account, error) {
	keychain, err := bitcoin.NewKeychain(s.network, cfg.Addresses)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAccount, cfg.UID, err)
	}
	if len(keychain.Addresses()) == 0 {
		return nil, fmt.Errorf("%w: %s has no addresses", ErrInvalidAccount, cfg.UID)
	}

	blocks := s.blocks(cfg.UID)
	if cfg.LowestHeight > 0 {
		if err := blocks.RemoveBlocksUpTo(ctx, cfg.LowestHeight-1); err != nil {
			return nil, fmt.Errorf("prune blocks of %s: %w", cfg.UID, err)
		}
	}

	cache, err := utxocache.New(
		blocks,
		keychain.Addresses(),
		cfg.LowestHeight,
		s.logger.Named("utxo_cache").With(zap.String("account", cfg.UID)),
		s.cacheMetrics(cfg.UID),
	)
	if err != nil {
		return nil, fmt.Errorf("init utxo cache of %s: %w", cfg.UID, err)
	}
	cache.Start(s.ctx)

	return &account{
		config:   cfg,
		keychain: keychain,
		cache:    cache,
		sync: synchronizer.Account[bitcoin.Transaction]{
			UID:          cfg.UID,
			Keychain:     keychain,
			Blocks:       blocks,
			LowestHeight: cfg.LowestHeight,
			Cache:        cache,
		},
	}, nil
}

// Close stops every account cache. Runs in flight finish on their own.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	accounts := make([]*account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		if acct != nil {
			accounts = append(accounts, acct)
		}
	}
	s.mu.Unlock()

	for _, acct := range accounts {
		acct.cache.Stop()
	}
	s.cancel()
}

// Accounts lists the open account uids in order.
func (s *Service) Accounts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uids := make([]string, 0, len(s.accounts))
	for uid, acct := range s.accounts {
		if acct != nil {
			uids = append(uids, uid)
		}
	}
	sort.Strings(uids)
	return uids
}

func (s *Service) account(uid string) (*account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	acct, ok := s.accounts[uid]
	if !ok || acct == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, uid)
	}
	return acct, nil
}

// Synchronize starts a run for the account, or joins the run in flight.
func (s *Service) Synchronize(ctx context.Context, uid string) (*synchronizer.Notifier, error) {
	acct, err := s.account(uid)
	if err != nil {
		return nil, err
	}
	return s.sync.Synchronize(ctx, acct.sync), nil
}

// Sync synchronizes the account and waits for the run to end.
func (s *Service) Sync(ctx context.Context, uid string) (result synchronizer.Result, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("sync", err, started)
	}()

	n, err := s.Synchronize(ctx, uid)
	if err != nil {
		return synchronizer.Result{}, err
	}
	return n.Wait(ctx)
}

// SyncAll synchronizes every open account, SyncWorkers at a time. A failing account does
// not stop the others; the returned error joins every failure.
func (s *Service) SyncAll(ctx context.Context) (reports []SyncReport, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("sync_all", err, started)
	}()

	reports = workerpool.Map(ctx, s.config.SyncWorkers, s.Accounts(), func(ctx context.Context, uid string) SyncReport {
		result, err := s.Sync(ctx, uid)
		return SyncReport{AccountUID: uid, Result: result, Err: err}
	})

	var errs []error
	for _, report := range reports {
		if report.Err != nil {
			errs = append(errs, fmt.Errorf("account %s: %w", report.AccountUID, report.Err))
		}
	}
	if len(errs) > 0 {
		s.logger.Warn("accounts failed to synchronize",
			zap.Int("failed", len(errs)),
			zap.Int("accounts", len(reports)),
		)
	}
	return reports, errors.Join(errs...)
}

// Status reports the cursor of the account and whether a run is in flight.
func (s *Service) Status(ctx context.Context, uid string) (status Status, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("status", err, started)
	}()

	acct, err := s.account(uid)
	if err != nil {
		return Status{}, err
	}
	cursor, found, err := s.store.Cursor(ctx, uid)
	if err != nil {
		return Status{}, fmt.Errorf("load cursor: %w", err)
	}
	return Status{
		AccountUID:    uid,
		Addresses:     acct.keychain.Addresses(),
		LowestHeight:  acct.config.LowestHeight,
		Cursor:        cursor,
		Synced:        found && !cursor.Empty(),
		Synchronizing: s.sync.IsSynchronizing(uid),
	}, nil
}

// Utxos returns the spendable outputs of addresses, all account addresses when empty. When
// the cache fails to catch up, the previous snapshot comes back with the error.
func (s *Service) Utxos(ctx context.Context, uid string, addresses []string) (snapshot utxocache.Snapshot, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("utxos", err, started)
	}()

	acct, err := s.account(uid)
	if err != nil {
		return utxocache.Snapshot{}, err
	}
	for _, address := range addresses {
		if !acct.keychain.Contains(address) {
			return utxocache.Snapshot{}, fmt.Errorf("%w: %s", ErrForeignAddress, address)
		}
	}
	return acct.cache.Utxos(ctx, addresses)
}

// Operations lists the operations of the account by date.
func (s *Service) Operations(ctx context.Context, uid string) (ops []model.Operation, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("operations", err, started)
	}()

	if _, err := s.account(uid); err != nil {
		return nil, err
	}
	return s.store.Operations(ctx, uid)
}

// Broadcast pushes a serialized transaction and starts a run so the account picks it up.
func (s *Service) Broadcast(ctx context.Context, uid string, raw []byte) (hash string, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("broadcast", err, started)
	}()

	acct, err := s.account(uid)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty payload", bitcoin.ErrInvalidTransaction)
	}
	hash, err = s.explorer.PushTransaction(ctx, raw)
	switch {
	case errors.Is(err, bitcoin.ErrInvalidTransaction):
		return "", err
	case err != nil:
		return "", fmt.Errorf("%w: push transaction: %w", synchronizer.ErrRemoteUnavailable, err)
	}
	s.logger.Info("transaction broadcast", zap.String("account", uid), zap.String("hash", hash))

	s.sync.Synchronize(ctx, acct.sync)
	return hash, nil
}

// Reset rolls the account back to its last block at or before toDate.
func (s *Service) Reset(ctx context.Context, uid string, toDate time.Time) (cursor model.SyncCursor, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("reset", err, started)
	}()

	acct, err := s.account(uid)
	if err != nil {
		return model.SyncCursor{}, err
	}
	return s.sync.Reset(ctx, acct.sync, toDate)
}
