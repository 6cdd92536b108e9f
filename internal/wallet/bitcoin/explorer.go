package bitcoin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/synchronizer"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/safe"
)

// DefaultPageSize is the number of blocks scanned per page.
const DefaultPageSize = 50

// ErrInvalidTransaction is returned for a broadcast the node cannot accept.
var ErrInvalidTransaction = errors.New("invalid transaction")

type ExplorerConfig struct {
	PageSize int
	// IncludeMempool appends pending transactions to the last page.
	IncludeMempool bool
}

// Explorer scans a node for the transactions touching a set of addresses. Every input
// is resolved against its prevout so spends are recognized and fees are known.
type Explorer struct {
	node    Node
	decoder scriptDecoder
	config  ExplorerConfig
	logger  *zap.Logger
	now     func() time.Time
}

func NewExplorer(node Node, network NetworkConfig, config ExplorerConfig, logger *zap.Logger) (*Explorer, error) {
	if node == nil {
		return nil, errors.New("node is required")
	}
	if network.Params == nil {
		return nil, errors.New("network params are required")
	}
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explorer{
		node:    node,
		decoder: scriptDecoder{params: network.Params},
		config:  config,
		logger:  logger.Named("bitcoin_explorer"),
		now:     time.Now,
	}, nil
}

func (e *Explorer) CurrentBlock(ctx context.Context) (model.BlockHeader, error) {
	if err := ctx.Err(); err != nil {
		return model.BlockHeader{}, err
	}
	count, err := e.node.GetBlockCount()
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("get block count: %w", err)
	}
	hash, err := e.node.GetBlockHash(count)
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("get block hash at height %d: %w", count, err)
	}
	header, err := e.node.GetBlockHeaderVerbose(hash)
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("get block header %s: %w", hash, err)
	}
	return headerFromVerbose(header)
}

// Transactions scans PageSize blocks after fromBlockHash, or after the marker height of a
// previous page.
func (e *Explorer) Transactions(ctx context.Context, addresses []string, fromBlockHash, marker string) (synchronizer.Page[Transaction], error) {
	start, err := e.startHeight(fromBlockHash)
	if err != nil {
		return synchronizer.Page[Transaction]{}, err
	}
	if marker != "" {
		next, err := strconv.ParseUint(marker, 10, 64)
		if err != nil || next < start {
			return synchronizer.Page[Transaction]{}, fmt.Errorf("invalid page marker %q", marker)
		}
		start = next
	}

	count, err := e.node.GetBlockCount()
	if err != nil {
		return synchronizer.Page[Transaction]{}, fmt.Errorf("get block count: %w", err)
	}
	tip, err := safe.Uint64(count)
	if err != nil {
		return synchronizer.Page[Transaction]{}, fmt.Errorf("block count overflow: %w", err)
	}

	watched := make(map[string]struct{}, len(addresses))
	for _, address := range addresses {
		watched[address] = struct{}{}
	}
	resolver := newPrevoutResolver(e.node, e.decoder)

	page := synchronizer.Page[Transaction]{Transactions: make([]Transaction, 0)}
	end := start + uint64(e.config.PageSize) - 1
	if end > tip {
		end = tip
	}
	for height := start; height <= end; height++ {
		if err := ctx.Err(); err != nil {
			return synchronizer.Page[Transaction]{}, err
		}
		txs, err := e.scanBlock(height, watched, resolver)
		if err != nil {
			return synchronizer.Page[Transaction]{}, err
		}
		page.Transactions = append(page.Transactions, txs...)
	}

	if end < tip {
		page.HasNext = true
		page.Marker = strconv.FormatUint(end+1, 10)
		return page, nil
	}

	if e.config.IncludeMempool {
		pending, err := e.scanMempool(ctx, watched, resolver)
		if err != nil {
			return synchronizer.Page[Transaction]{}, err
		}
		page.Transactions = append(page.Transactions, pending...)
	}

	e.logger.Debug("scanned to tip",
		zap.Uint64("tip", tip),
		zap.Int("transactions", len(page.Transactions)),
	)
	return page, nil
}

// startHeight returns the first height after fromBlockHash. A hash the node does not know
// or no longer has on its main chain is reported as synchronizer.ErrBlockNotFound.
func (e *Explorer) startHeight(fromBlockHash string) (uint64, error) {
	if fromBlockHash == "" {
		return 0, nil
	}
	hash, err := chainhash.NewHashFromStr(fromBlockHash)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", synchronizer.ErrBlockNotFound, fromBlockHash, err)
	}
	header, err := e.node.GetBlockHeaderVerbose(hash)
	if err != nil {
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCBlockNotFound {
			return 0, fmt.Errorf("%w: %s", synchronizer.ErrBlockNotFound, fromBlockHash)
		}
		return 0, fmt.Errorf("get block header %s: %w", fromBlockHash, err)
	}
	if header.Confirmations < 0 {
		return 0, fmt.Errorf("%w: %s is stale", synchronizer.ErrBlockNotFound, fromBlockHash)
	}
	from, err := headerFromVerbose(header)
	if err != nil {
		return 0, err
	}
	return from.Height + 1, nil
}

func (e *Explorer) scanBlock(height uint64, watched map[string]struct{}, resolver *prevoutResolver) ([]Transaction, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height exceeds rpc limit: %w", err)
	}
	hash, err := e.node.GetBlockHash(rpcHeight)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := e.node.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	header, err := headerFromBlock(src)
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0)
	for _, raw := range src.Tx {
		block := header
		tx, relevant, err := e.convert(raw, &block, header.Time, watched, resolver)
		if err != nil {
			return nil, err
		}
		if relevant {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (e *Explorer) scanMempool(ctx context.Context, watched map[string]struct{}, resolver *prevoutResolver) ([]Transaction, error) {
	hashes, err := e.node.GetRawMempool()
	if err != nil {
		return nil, fmt.Errorf("get raw mempool: %w", err)
	}

	txs := make([]Transaction, 0)
	for _, hash := range hashes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := e.node.GetRawTransactionVerbose(hash)
		if err != nil {
			var rpcErr *btcjson.RPCError
			if errors.As(err, &rpcErr) {
				// Left the mempool since it was listed.
				e.logger.Debug("skip mempool transaction", zap.Stringer("tx", hash), zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("get mempool transaction %s: %w", hash, err)
		}
		date := e.now().UTC()
		if raw.Time > 0 {
			date = time.Unix(raw.Time, 0).UTC()
		}
		tx, relevant, err := e.convert(*raw, nil, date, watched, resolver)
		if err != nil {
			return nil, err
		}
		if relevant {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (e *Explorer) convert(raw btcjson.TxRawResult, block *model.BlockHeader, date time.Time, watched map[string]struct{}, resolver *prevoutResolver) (Transaction, bool, error) {
	outputs, err := e.decoder.convertOutputs(raw)
	if err != nil {
		return Transaction{}, false, err
	}
	resolver.seed(raw.Txid, outputs)

	inputs := convertInputs(raw)
	if err := resolver.resolve(inputs); err != nil {
		return Transaction{}, false, fmt.Errorf("tx %s: %w", raw.Txid, err)
	}

	relevant := false
	for _, o := range outputs {
		if _, ok := watched[o.Address]; ok {
			relevant = true
			break
		}
	}
	for _, in := range inputs {
		if _, ok := watched[in.Address]; ok && !in.Coinbase {
			relevant = true
			break
		}
	}

	tx := withFee(Transaction{
		Hash:    raw.Txid,
		Date:    date,
		Block:   block,
		Inputs:  inputs,
		Outputs: outputs,
	})
	return tx, relevant, nil
}

// PushTransaction broadcasts a serialized transaction. Transactions that do not decode or
// that the node refuses are reported with ErrInvalidTransaction.
func (e *Explorer) PushTransaction(ctx context.Context, raw []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return "", fmt.Errorf("%w: decode: %w", ErrInvalidTransaction, err)
	}
	hash, err := e.node.SendRawTransaction(&tx, false)
	if err != nil {
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) && (rpcErr.Code == btcjson.ErrRPCVerify || rpcErr.Code == btcjson.ErrRPCDeserialization) {
			return "", fmt.Errorf("%w: %s", ErrInvalidTransaction, rpcErr.Message)
		}
		return "", fmt.Errorf("send raw transaction: %w", err)
	}
	return hash.String(), nil
}
