package synchronizer

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

type (
	// Page is one slice of the transactions an explorer reports for a set of addresses.
	Page[T any] struct {
		Transactions []T
		HasNext      bool
		// Marker resumes pagination on the next call.
		Marker string
	}
	// Explorer is the remote, untrusted view of the chain.
	Explorer[T any] interface {
		// CurrentBlock returns the chain head.
		CurrentBlock(ctx context.Context) (model.BlockHeader, error)
		// Transactions returns the transactions touching addresses in blocks after fromBlockHash
		// (from genesis when empty). Pending transactions come with the last page. An unknown
		// fromBlockHash is reported with ErrBlockNotFound. A marker is the decimal height the
		// page starts at.
		Transactions(ctx context.Context, addresses []string, fromBlockHash, marker string) (Page[T], error)
		// PushTransaction broadcasts a serialized transaction and returns its hash.
		PushTransaction(ctx context.Context, raw []byte) (string, error)
	}
	// Keychain knows which addresses belong to an account.
	Keychain[T any] interface {
		Addresses() []string
		Contains(address string) bool
		// Classify maps a transaction to the operations it causes on the account.
		Classify(tx T) ([]model.Operation, error)
	}
	// Normalize maps a currency transaction to the ledger shape replayed by the utxo cache.
	Normalize[T any] func(tx T) model.Transaction
)

// Account bundles what the synchronizer needs to follow one account.
type Account[T any] struct {
	UID      string
	Keychain Keychain[T]
	Blocks   BlockSource
	// LowestHeight is the first block that may hold an operation of the account. A run
	// without a checkpoint starts scanning there.
	LowestHeight uint64
	// Cache is optional.
	Cache Cache
}
