package synchronizer

import (
	"context"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Progress is emitted on every step of a run.
type Progress struct {
	State    State
	Fraction float64
}

// Result summarizes a successful run.
type Result struct {
	AccountUID string
	Cursor     model.SyncCursor
	Upserted   int
	Deleted    int
	// Rollbacks is the number of checkpoint rollbacks caused by remote reorganizations.
	Rollbacks int
}

// Notifier follows one run. Dropping it does not stop the run.
type Notifier struct {
	events chan Progress
	done   chan struct{}
	once   sync.Once

	result Result
	err    error
}

func newNotifier() *Notifier {
	return &Notifier{
		events: make(chan Progress, notifierBuffer),
		done:   make(chan struct{}),
	}
}

// Events streams progress. Events are dropped when the reader lags behind; the channel is
// closed when the run ends.
func (n *Notifier) Events() <-chan Progress {
	return n.events
}

// Done is closed when the run ends.
func (n *Notifier) Done() <-chan struct{} {
	return n.done
}

func (n *Notifier) Wait(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-n.done:
		return n.result, n.err
	}
}

// Err returns the run failure, nil while running or after success.
func (n *Notifier) Err() error {
	select {
	case <-n.done:
		return n.err
	default:
		return nil
	}
}

// emit and finish are only called by the run goroutine.
func (n *Notifier) emit(p Progress) {
	select {
	case n.events <- p:
	default:
	}
}

func (n *Notifier) finish(result Result, err error) {
	n.once.Do(func() {
		n.result = result
		n.err = err
		close(n.done)
		close(n.events)
	})
}
