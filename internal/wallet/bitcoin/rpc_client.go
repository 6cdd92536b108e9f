package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/ratelimit"
)

// RPCClient throttles and instruments calls to a node.
type RPCClient struct {
	client     Node
	limiter    ratelimit.Limiter
	rpcMetrics RPCMetrics
}

// NewRPCClient wraps client. A non positive rps disables throttling.
func NewRPCClient(client Node, rps int, rpcMetrics RPCMetrics) *RPCClient {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &RPCClient{
		client:     client,
		limiter:    limiter,
		rpcMetrics: rpcMetrics,
	}
}

func (r *RPCClient) observe(operation string, started time.Time, err error) {
	r.rpcMetrics.Observe(operation, err, started)
}

func (r *RPCClient) GetBlockCount() (count int64, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() { r.observe("get_block_count", started, err) }()
	return r.client.GetBlockCount()
}

func (r *RPCClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() { r.observe("get_block_hash", started, err) }()
	return r.client.GetBlockHash(blockHeight)
}

func (r *RPCClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() { r.observe("get_block_header_verbose", started, err) }()
	return r.client.GetBlockHeaderVerbose(blockHash)
}

func (r *RPCClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() { r.observe("get_block_verbose_tx", started, err) }()
	return r.client.GetBlockVerboseTx(blockHash)
}

func (r *RPCClient) GetRawMempool() (hashes []*chainhash.Hash, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() { r.observe("get_raw_mempool", started, err) }()
	return r.client.GetRawMempool()
}

func (r *RPCClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() { r.observe("get_raw_transaction_verbose", started, err) }()
	return r.client.GetRawTransactionVerbose(txHash)
}

func (r *RPCClient) SendRawTransaction(tx *wire.MsgTx, allowHighFees bool) (hash *chainhash.Hash, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() { r.observe("send_raw_transaction", started, err) }()
	return r.client.SendRawTransaction(tx, allowHighFees)
}
