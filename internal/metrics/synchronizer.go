package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	synchronizerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "synchronizer",
		Name:      "runs_total",
		Help:      "Count of account synchronization runs.",
	}, []string{"coin", "network", "status"})
	synchronizerRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "synchronizer",
		Name:      "run_duration_seconds",
		Help:      "Duration of account synchronization runs.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"coin", "network", "status"})
	synchronizerRollbacks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "synchronizer",
		Name:      "rollback_depth",
		Help:      "Checkpoint rollbacks caused by remote reorganizations.",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	}, []string{"coin", "network"})
	synchronizerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "synchronizer",
		Name:      "operations_total",
		Help:      "Count of persisted operation changes.",
	}, []string{"coin", "network", "change"})
)

type Synchronizer struct {
	coin    string
	network string
}

func NewSynchronizer(coin model.Coin, network model.Network) *Synchronizer {
	c, n := labels(coin, network)
	return &Synchronizer{coin: c, network: n}
}

func (m Synchronizer) ObserveRun(err error, started time.Time) {
	s := status(err)
	synchronizerRunsTotal.WithLabelValues(m.coin, m.network, s).Inc()
	synchronizerRunDuration.WithLabelValues(m.coin, m.network, s).Observe(time.Since(started).Seconds())
}

func (m Synchronizer) ObserveRollback(depth int) {
	synchronizerRollbacks.WithLabelValues(m.coin, m.network).Observe(float64(depth))
}

func (m Synchronizer) ObserveOperations(upserted, deleted int) {
	synchronizerOperationsTotal.WithLabelValues(m.coin, m.network, "upsert").Add(float64(upserted))
	synchronizerOperationsTotal.WithLabelValues(m.coin, m.network, "delete").Add(float64(deleted))
}
