package synchronizer

import "errors"

var (
	// ErrRemoteUnavailable wraps explorer failures. The run is aborted and retried on the next call.
	ErrRemoteUnavailable = errors.New("remote explorer unavailable")
	// ErrBlockNotFound is returned by explorers for a block hash that is not on their chain.
	ErrBlockNotFound = errors.New("block not found on remote chain")
	// ErrReorgDetected marks a rollback of the local checkpoint. It is handled during the run.
	ErrReorgDetected = errors.New("remote chain reorganization detected")
	// ErrIrreconcilableReorg is returned once rollbacks exceed the configured depth; Reset recovers.
	ErrIrreconcilableReorg = errors.New("irreconcilable remote chain reorganization")
	// ErrSyncInProgress is returned by Reset while the account is synchronizing.
	ErrSyncInProgress = errors.New("account synchronization in progress")
)
