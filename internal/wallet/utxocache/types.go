package utxocache

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource is the read side of the locally known, height-indexed block store.
	BlockSource interface {
		// Blocks returns the known blocks with from <= height <= to in ascending height order.
		Blocks(ctx context.Context, from, to uint64) ([]model.Block, error)
		// LastBlockHeader returns the highest known block header, nil when the source is empty.
		LastBlockHeader(ctx context.Context) (*model.BlockHeader, error)
	}
	Metrics interface {
		ObserveReplay(err error, blocks int, started time.Time)
		ObserveInvalidate()
		SetEntries(count int)
	}
)
