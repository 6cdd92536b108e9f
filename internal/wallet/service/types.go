package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/synchronizer"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/utxocache"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Explorer is the bitcoin view of the remote chain.
	Explorer interface {
		CurrentBlock(ctx context.Context) (model.BlockHeader, error)
		Transactions(ctx context.Context, addresses []string, fromBlockHash, marker string) (synchronizer.Page[bitcoin.Transaction], error)
		PushTransaction(ctx context.Context, raw []byte) (string, error)
	}
	// Store is the synchronizer store that can also list the operations of an account.
	Store interface {
		synchronizer.Store
		Operations(ctx context.Context, accountUID string) ([]model.Operation, error)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		ObservePick(strategy string, inputs int)
	}
)

// BlockSources opens the block store of one account.
type BlockSources func(accountUID string) synchronizer.BlockSource

// CacheMetrics builds the utxo cache observer of one account.
type CacheMetrics func(accountUID string) utxocache.Metrics

// Observers groups the metrics sinks of a Service.
type Observers struct {
	Service      Metrics
	Synchronizer synchronizer.Metrics
	Cache        CacheMetrics
}
