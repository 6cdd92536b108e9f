package model

import "time"

// BlockHeader identifies a block on the chain the account follows.
type BlockHeader struct {
	Height uint64
	Hash   string
	Time   time.Time
}

// Block is a height-indexed block as kept by a block source. It only carries the
// transactions relevant to the account it belongs to.
type Block struct {
	BlockHeader
	Transactions []Transaction
}

// SyncCursor is the synchronizer's position in the remote chain for one account.
type SyncCursor struct {
	AccountUID   string
	Height       uint64
	Hash         string
	RemoteHeight uint64
	UpdatedAt    time.Time
}

// Empty reports whether the cursor has never been advanced.
func (c SyncCursor) Empty() bool {
	return c.Hash == ""
}
