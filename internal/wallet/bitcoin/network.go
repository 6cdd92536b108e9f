// Package bitcoin adapts a bitcoind compatible node to the wallet synchronizer and picker.
package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcwallet/wallet/txrules"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/picker"
)

// p2wpkhScriptSize is the size of a version 0 witness key hash output script.
const p2wpkhScriptSize = 22

// NetworkConfig carries everything network dependent. It is built once and passed down
// instead of being looked up from package level tables.
type NetworkConfig struct {
	Coin    model.Coin
	Network model.Network
	Params  *chaincfg.Params
	Sizes   picker.SizeModel
	// Dust is the smallest change output worth creating.
	Dust btcutil.Amount
}

func NewNetworkConfig(network model.Network) (NetworkConfig, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return NetworkConfig{}, err
	}
	return NetworkConfig{
		Coin:    model.BTC,
		Network: network,
		Params:  params,
		Sizes:   picker.P2WPKH,
		Dust:    txrules.GetDustThreshold(p2wpkhScriptSize, txrules.DefaultRelayFeePerKb),
	}, nil
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
