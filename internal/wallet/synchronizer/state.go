package synchronizer

import (
	"context"

	"github.com/looplab/fsm"
)

// State is a step of a synchronization run.
type State string

const (
	StateIdle                     State = "idle"
	StateFetchingRemoteHead       State = "fetching_remote_head"
	StateReconcilingLocal         State = "reconciling_local"
	StateInterpretingTransactions State = "interpreting_transactions"
	StatePersisting               State = "persisting"
	StateUpdatingCursor           State = "updating_cursor"
	StateFailed                   State = "failed"
)

const (
	eventFetchHead    = "fetch_head"
	eventReconcile    = "reconcile"
	eventInterpret    = "interpret"
	eventPersist      = "persist"
	eventUpdateCursor = "update_cursor"
	eventFinish       = "finish"
	eventFail         = "fail"
	eventRecover      = "recover"
)

// fractions is the progress reported when a state is entered.
var fractions = map[State]float64{
	StateFetchingRemoteHead:       0,
	StateReconcilingLocal:         0.1,
	StateInterpretingTransactions: 0.2,
	StatePersisting:               0.85,
	StateUpdatingCursor:           0.95,
	StateIdle:                     1,
}

// newMachine builds the run state machine. onEnter is called on every transition.
func newMachine(onEnter func(from, to State)) *fsm.FSM {
	working := []string{
		string(StateFetchingRemoteHead),
		string(StateReconcilingLocal),
		string(StateInterpretingTransactions),
		string(StatePersisting),
		string(StateUpdatingCursor),
	}

	return fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventFetchHead, Src: []string{string(StateIdle)}, Dst: string(StateFetchingRemoteHead)},
			{Name: eventReconcile, Src: []string{string(StateFetchingRemoteHead)}, Dst: string(StateReconcilingLocal)},
			{Name: eventInterpret, Src: []string{string(StateReconcilingLocal)}, Dst: string(StateInterpretingTransactions)},
			{Name: eventPersist, Src: []string{string(StateInterpretingTransactions)}, Dst: string(StatePersisting)},
			{Name: eventUpdateCursor, Src: []string{string(StatePersisting)}, Dst: string(StateUpdatingCursor)},
			{Name: eventFinish, Src: []string{string(StateUpdatingCursor)}, Dst: string(StateIdle)},
			{Name: eventFail, Src: working, Dst: string(StateFailed)},
			{Name: eventRecover, Src: []string{string(StateFailed)}, Dst: string(StateIdle)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				onEnter(State(e.Src), State(e.Dst))
			},
		},
	)
}
