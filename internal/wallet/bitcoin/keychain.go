package bitcoin

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Keychain is a watch-only set of addresses owned by one account.
type Keychain struct {
	addresses []string
	owned     map[string]struct{}
}

// NewKeychain validates addresses against the network.
func NewKeychain(network NetworkConfig, addresses []string) (*Keychain, error) {
	k := &Keychain{owned: make(map[string]struct{}, len(addresses))}
	for _, address := range addresses {
		decoded, err := btcutil.DecodeAddress(address, network.Params)
		if err != nil {
			return nil, fmt.Errorf("decode address %q: %w", address, err)
		}
		if !decoded.IsForNet(network.Params) {
			return nil, fmt.Errorf("address %q is not for %s", address, network.Network)
		}
		encoded := decoded.EncodeAddress()
		if _, dup := k.owned[encoded]; dup {
			continue
		}
		k.owned[encoded] = struct{}{}
		k.addresses = append(k.addresses, encoded)
	}
	sort.Strings(k.addresses)
	return k, nil
}

func (k *Keychain) Addresses() []string {
	return append([]string(nil), k.addresses...)
}

func (k *Keychain) Contains(address string) bool {
	_, ok := k.owned[address]
	return ok
}

// Classify returns a SEND when the account funded the transaction, a RECEIVE when it only
// got paid by it. A SEND amount excludes change, a self transfer sends zero.
func (k *Keychain) Classify(tx Transaction) ([]model.Operation, error) {
	var (
		senders, recipients []string
		spent               bool
		received, paidOut   btcutil.Amount
	)
	for _, in := range tx.Inputs {
		if in.Coinbase {
			continue
		}
		if !in.Resolved {
			return nil, fmt.Errorf("tx %s: input %s:%d not resolved", tx.Hash, in.PrevHash, in.PrevIndex)
		}
		senders = appendUnique(senders, in.Address)
		if k.Contains(in.Address) {
			spent = true
		}
	}
	for _, out := range tx.Outputs {
		if out.Address == "" {
			paidOut += out.Value
			continue
		}
		recipients = appendUnique(recipients, out.Address)
		if k.Contains(out.Address) {
			received += out.Value
		} else {
			paidOut += out.Value
		}
	}

	base := model.Operation{
		TxHash:     tx.Hash,
		Senders:    senders,
		Recipients: recipients,
		Date:       tx.Date,
		Block:      tx.Block,
	}
	if tx.Fee != nil {
		base.Fees = big.NewInt(int64(*tx.Fee))
	}

	switch {
	case spent:
		op := base
		op.Type = model.OperationSend
		op.Amount = big.NewInt(int64(paidOut))
		return []model.Operation{op}, nil
	case received > 0:
		op := base
		op.Type = model.OperationReceive
		op.Amount = big.NewInt(int64(received))
		return []model.Operation{op}, nil
	default:
		return nil, nil
	}
}

func appendUnique(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
