package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	walletServiceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_service",
		Name:      "requests_total",
		Help:      "Count of wallet service requests.",
	}, []string{"operation", "coin", "network", "status"})
	walletServiceRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_service",
		Name:      "request_duration_seconds",
		Help:      "Duration of wallet service requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})
	walletServicePickInputs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_service",
		Name:      "pick_inputs",
		Help:      "Number of inputs selected per pick.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	}, []string{"coin", "network", "strategy"})
)

// WalletService tracks requests served by the account service.
type WalletService struct {
	coin    string
	network string
}

func NewWalletService(coin model.Coin, network model.Network) *WalletService {
	c, n := labels(coin, network)
	return &WalletService{coin: c, network: n}
}

func (m WalletService) Observe(operation string, err error, started time.Time) {
	s := status(err)
	walletServiceRequestsTotal.WithLabelValues(operation, m.coin, m.network, s).Inc()
	walletServiceRequestDuration.WithLabelValues(operation, m.coin, m.network, s).Observe(time.Since(started).Seconds())
}

func (m WalletService) ObservePick(strategy string, inputs int) {
	walletServicePickInputs.WithLabelValues(m.coin, m.network, strategy).Observe(float64(inputs))
}
