package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/service"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/store/memory"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/synchronizer"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/utxocache"
)

type config struct {
	Network              model.Network `long:"network" env:"WALLET_NETWORK" description:"network name" required:"true"`
	RPCURL               string        `long:"rpc-url" env:"WALLET_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser              string        `long:"rpc-user" env:"WALLET_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword          string        `long:"rpc-password" env:"WALLET_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRate              int           `long:"rpc-rps" env:"WALLET_RPC_RPS" description:"max RPC requests per second, 0 for unlimited" default:"50"`
	ClickhouseDSN        string        `long:"clickhouse-dsn" env:"WALLET_CLICKHOUSE_DSN" description:"ClickHouse DSN, in-memory storage when empty"`
	Accounts             []string      `long:"account" env:"WALLET_ACCOUNTS" env-delim:";" description:"account as uid:lowest_height:addr1,addr2"`
	SyncInterval         time.Duration `long:"sync-interval" env:"WALLET_SYNC_INTERVAL" description:"interval between synchronizations of all accounts" default:"1m"`
	SyncWorkers          int           `long:"sync-workers" env:"WALLET_SYNC_WORKERS" description:"accounts synchronized at once" default:"4"`
	PageSize             int           `long:"page-size" env:"WALLET_PAGE_SIZE" description:"blocks scanned per explorer page" default:"100"`
	IncludeMempool       bool          `long:"include-mempool" env:"WALLET_INCLUDE_MEMPOOL" description:"track pending transactions"`
	MaxReorgDepth        int           `long:"max-reorg-depth" env:"WALLET_MAX_REORG_DEPTH" description:"checkpoint rollbacks tolerated in one run" default:"10"`
	ConfirmationsToTrust uint64        `long:"confirmations" env:"WALLET_CONFIRMATIONS" description:"confirmations before an operation is trusted" default:"6"`
	GRPCAddr             string        `long:"grpc-addr" env:"WALLET_GRPC_ADDR" description:"gRPC listen address" default:":8000"`
	HTTPAddr             string        `long:"http-addr" env:"WALLET_HTTP_ADDR" description:"HTTP listen address" default:":8001"`
	MetricsAddr          string        `long:"metrics-addr" env:"WALLET_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("wallet daemon failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	accounts, err := parseAccounts(cfg.Accounts)
	if err != nil {
		return err
	}
	network, err := bitcoin.NewNetworkConfig(cfg.Network)
	if err != nil {
		return err
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	node := bitcoin.NewRPCClient(rpcClient, cfg.RPCRate, metrics.NewRPCClient(network.Coin, network.Network))

	explorer, err := bitcoin.NewExplorer(node, network, bitcoin.ExplorerConfig{
		PageSize:       cfg.PageSize,
		IncludeMempool: cfg.IncludeMempool,
	}, logger)
	if err != nil {
		return fmt.Errorf("init explorer: %w", err)
	}

	store, blocks, closeStore, err := newStorage(cfg.ClickhouseDSN, network, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := service.New(network, explorer, store, blocks, service.Config{
		SyncWorkers: cfg.SyncWorkers,
		Synchronizer: synchronizer.Config{
			MaxReorgDepth:        cfg.MaxReorgDepth,
			ConfirmationsToTrust: cfg.ConfirmationsToTrust,
		},
	}, logger, service.Observers{
		Service:      metrics.NewWalletService(network.Coin, network.Network),
		Synchronizer: metrics.NewSynchronizer(network.Coin, network.Network),
		Cache: func(accountUID string) utxocache.Metrics {
			return metrics.NewUtxoCache(network.Coin, network.Network, accountUID)
		},
	})
	if err != nil {
		return fmt.Errorf("init wallet service: %w", err)
	}
	defer svc.Close()

	if err := svc.OpenAll(ctx, accounts); err != nil {
		return fmt.Errorf("open accounts: %w", err)
	}
	logger.Info("accounts opened", zap.Strings("accounts", svc.Accounts()))

	healthServer := transport.NewHealthServer()
	handler, err := transport.NewHandler(svc, healthServer, logger).HTTPHandler()
	if err != nil {
		return fmt.Errorf("init http handler: %w", err)
	}
	grpcServer := transport.NewGRPCServer(logger, healthServer)

	startMetricsServer(ctx, cfg.MetricsAddr, logger)
	go syncLoop(ctx, svc, cfg.SyncInterval, logger)

	transport.SetServing(healthServer, true)
	defer transport.SetServing(healthServer, false)

	return serve(ctx, cfg, grpcServer, handler, logger)
}

// syncLoop synchronizes every account until ctx is done. A run never overlaps the previous one.
func syncLoop(ctx context.Context, svc *service.Service, interval time.Duration, logger *zap.Logger) {
	err := clock.Every(ctx, interval, func(ctx context.Context) {
		reports, err := svc.SyncAll(ctx)
		if err != nil {
			// failed accounts are logged by the service
			logger.Warn("sync round incomplete", zap.Int("accounts", len(reports)), zap.Error(err))
			return
		}
		logger.Debug("sync round done", zap.Int("accounts", len(reports)))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("sync loop stopped", zap.Error(err))
	}
}

// newStorage opens the ClickHouse repository, or in-memory stores when dsn is empty.
func newStorage(dsn string, network bitcoin.NetworkConfig, logger *zap.Logger) (service.Store, service.BlockSources, func(), error) {
	if dsn == "" {
		logger.Warn("no clickhouse dsn, wallet state is kept in memory")
		var (
			mu     sync.Mutex
			blocks = make(map[string]*memory.BlockStore)
		)
		return memory.NewStore(), func(accountUID string) synchronizer.BlockSource {
			mu.Lock()
			defer mu.Unlock()
			b, ok := blocks[accountUID]
			if !ok {
				b = memory.NewBlockStore()
				blocks[accountUID] = b
			}
			return b
		}, func() {}, nil
	}

	repo, err := clickhouse.NewRepository(dsn, metrics.NewClickhouseRepository(network.Coin, network.Network))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init repository: %w", err)
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close clickhouse repository", zap.Error(err))
		}
	}
	return repo, func(accountUID string) synchronizer.BlockSource {
		return repo.BlockSource(accountUID)
	}, closeRepo, nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
