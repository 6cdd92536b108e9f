package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Store keeps cursors and operations of any number of accounts.
type Store struct {
	mu         sync.RWMutex
	cursors    map[string]model.SyncCursor
	operations map[string]map[string]model.Operation
}

func NewStore() *Store {
	return &Store{
		cursors:    make(map[string]model.SyncCursor),
		operations: make(map[string]map[string]model.Operation),
	}
}

func (s *Store) Cursor(_ context.Context, accountUID string) (model.SyncCursor, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cursor, ok := s.cursors[accountUID]
	return cursor, ok, nil
}

func (s *Store) SaveCursor(_ context.Context, cursor model.SyncCursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[cursor.AccountUID] = cursor
	return nil
}

// OperationsToReconcile returns the operations without a block and those confirmed at or
// above fromHeight.
func (s *Store) OperationsToReconcile(_ context.Context, accountUID string, fromHeight uint64) ([]model.OperationRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := make([]model.OperationRef, 0)
	for _, op := range s.operations[accountUID] {
		if op.Block == nil || op.Block.Height >= fromHeight {
			refs = append(refs, model.OperationRef{UID: op.UID, TxHash: op.TxHash})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].UID < refs[j].UID })
	return refs, nil
}

func (s *Store) OperationsByUID(_ context.Context, accountUID string, uids []string) (map[string]model.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Operation, len(uids))
	ops := s.operations[accountUID]
	for _, uid := range uids {
		if op, ok := ops[uid]; ok {
			out[uid] = op
		}
	}
	return out, nil
}

// Persist applies changes under a single lock so readers never observe half of them.
func (s *Store) Persist(_ context.Context, changes model.OperationChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, ok := s.operations[changes.AccountUID]
	if !ok {
		ops = make(map[string]model.Operation)
		s.operations[changes.AccountUID] = ops
	}
	for _, uid := range changes.Deletes {
		delete(ops, uid)
	}
	for _, op := range changes.Upserts {
		ops[op.UID] = op
	}
	if changes.PromoteUpTo != nil {
		for uid, op := range ops {
			if op.Block != nil && op.Block.Height <= *changes.PromoteUpTo && op.Trust != model.TrustTrusted {
				op.Trust = model.TrustTrusted
				ops[uid] = op
			}
		}
	}
	return nil
}

// Operations returns the account operations ordered by date then uid.
func (s *Store) Operations(_ context.Context, accountUID string) ([]model.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Operation, 0, len(s.operations[accountUID]))
	for _, op := range s.operations[accountUID] {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].UID < out[j].UID
	})
	return out, nil
}

// ResetOperations deletes every operation not confirmed at or below the checkpoint, all of
// them when checkpoint is nil.
func (s *Store) ResetOperations(_ context.Context, accountUID string, checkpoint *model.BlockHeader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for uid, op := range s.operations[accountUID] {
		if checkpoint == nil || op.Block == nil || op.Block.Height > checkpoint.Height {
			delete(s.operations[accountUID], uid)
		}
	}
	return nil
}
