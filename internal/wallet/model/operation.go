package model

import (
	"fmt"
	"math/big"
	"time"
)

// OperationType classifies the effect of a transaction on an account.
type OperationType string

var (
	OperationSend    OperationType = "SEND"
	OperationReceive OperationType = "RECEIVE"
)

// TrustLevel is the confidence an account has in an operation.
type TrustLevel uint8

const (
	TrustPending TrustLevel = iota
	TrustUntrusted
	TrustTrusted
)

func (t TrustLevel) String() string {
	switch t {
	case TrustPending:
		return "PENDING"
	case TrustUntrusted:
		return "UNTRUSTED"
	case TrustTrusted:
		return "TRUSTED"
	default:
		return fmt.Sprintf("TrustLevel(%d)", uint8(t))
	}
}

// ParseTrustLevel is the inverse of TrustLevel.String.
func ParseTrustLevel(s string) (TrustLevel, error) {
	switch s {
	case "PENDING":
		return TrustPending, nil
	case "UNTRUSTED":
		return TrustUntrusted, nil
	case "TRUSTED":
		return TrustTrusted, nil
	default:
		return 0, fmt.Errorf("unknown trust level %q", s)
	}
}

// Upgrade returns the higher of the two levels.
func (t TrustLevel) Upgrade(next TrustLevel) TrustLevel {
	if next > t {
		return next
	}
	return t
}

// Operation is a classified effect of one transaction (or one message of it) on one account.
type Operation struct {
	UID          string
	AccountUID   string
	TxHash       string
	MessageIndex *uint32
	Type         OperationType
	Senders      []string
	Recipients   []string
	Amount       *big.Int
	Fees         *big.Int
	Date         time.Time
	Block        *BlockHeader
	Trust        TrustLevel
}

// OperationRef is the minimal view of a persisted operation used during reconciliation.
type OperationRef struct {
	UID    string
	TxHash string
}

// SameBlock reports whether both operations are attached to the same block (or both to none).
func (o Operation) SameBlock(other Operation) bool {
	switch {
	case o.Block == nil && other.Block == nil:
		return true
	case o.Block == nil || other.Block == nil:
		return false
	default:
		return o.Block.Hash == other.Block.Hash
	}
}

// Merge applies an incoming observation of the same operation. Trust never goes down while
// the block is unchanged and a trusted operation is left as is.
func (o Operation) Merge(incoming Operation) Operation {
	if o.SameBlock(incoming) {
		if o.Trust == TrustTrusted {
			return o
		}
		o.Trust = o.Trust.Upgrade(incoming.Trust)
		return o
	}
	incoming.UID = o.UID
	return incoming
}

// OperationChanges is the unit of work persisted at the end of one synchronization run.
type OperationChanges struct {
	AccountUID string
	// Upserts insert new operations or replace the block and trust of known ones by uid.
	Upserts []Operation
	// Deletes are uids of operations no longer backed by the remote chain.
	Deletes []string
	// PromoteUpTo, when set, marks every confirmed operation at or below this height as trusted.
	PromoteUpTo *uint64
}

// Empty reports whether applying the changes would be a no-op.
func (c OperationChanges) Empty() bool {
	return len(c.Upserts) == 0 && len(c.Deletes) == 0 && c.PromoteUpTo == nil
}
