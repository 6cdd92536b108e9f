package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	utxoCacheReplayTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_cache",
		Name:      "replay_total",
		Help:      "Count of block replays.",
	}, []string{"coin", "network", "status"})
	utxoCacheReplayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_cache",
		Name:      "replay_duration_seconds",
		Help:      "Duration of block replays.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})
	utxoCacheReplayBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_cache",
		Name:      "replay_blocks",
		Help:      "Number of blocks replayed at once.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})
	utxoCacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_cache",
		Name:      "invalidations_total",
		Help:      "Count of cache invalidations.",
	}, []string{"coin", "network", "account"})
	utxoCacheEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_cache",
		Name:      "entries",
		Help:      "Number of cached unspent outputs.",
	}, []string{"coin", "network", "account"})
)

// UtxoCache tracks the utxo cache of one account.
type UtxoCache struct {
	coin    string
	network string
	account string
}

func NewUtxoCache(coin model.Coin, network model.Network, account string) *UtxoCache {
	c, n := labels(coin, network)
	return &UtxoCache{coin: c, network: n, account: account}
}

func (m UtxoCache) ObserveReplay(err error, blocks int, started time.Time) {
	s := status(err)
	utxoCacheReplayTotal.WithLabelValues(m.coin, m.network, s).Inc()
	utxoCacheReplayDuration.WithLabelValues(m.coin, m.network, s).Observe(time.Since(started).Seconds())
	if blocks > 0 {
		utxoCacheReplayBlocks.WithLabelValues(m.coin, m.network).Observe(float64(blocks))
	}
}

func (m UtxoCache) ObserveInvalidate() {
	utxoCacheInvalidationsTotal.WithLabelValues(m.coin, m.network, m.account).Inc()
}

func (m UtxoCache) SetEntries(count int) {
	utxoCacheEntries.WithLabelValues(m.coin, m.network, m.account).Set(float64(count))
}
