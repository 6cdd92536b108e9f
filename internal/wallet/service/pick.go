package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/picker"
)

// PickRequest describes the transaction an account wants to fund. Dust and transaction
// sizes come from the network.
type PickRequest struct {
	Amount             *big.Int
	FeePerByte         *big.Int
	LongTermFeePerByte *big.Int
	Outputs            int
	Strategy           picker.Strategy
	MaxUtxos           int
	// Addresses restricts the spendable outputs, every account address when empty.
	Addresses []string
}

// Pick selects the outputs funding req from the account utxo set. Nothing is picked from a
// snapshot the cache failed to bring up to date.
func (s *Service) Pick(ctx context.Context, uid string, req PickRequest) (selection picker.Selection, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("pick", err, started)
	}()

	snapshot, err := s.Utxos(ctx, uid, req.Addresses)
	if err != nil {
		return picker.Selection{}, fmt.Errorf("load utxos: %w", err)
	}

	selection, err = picker.Pick(snapshot.Utxos, picker.Request{
		Amount:             req.Amount,
		FeePerByte:         req.FeePerByte,
		LongTermFeePerByte: req.LongTermFeePerByte,
		Outputs:            req.Outputs,
		Dust:               big.NewInt(int64(s.network.Dust)),
		Strategy:           req.Strategy,
		MaxUtxos:           req.MaxUtxos,
		Sizes:              s.network.Sizes,
	})
	if err != nil {
		return picker.Selection{}, err
	}
	s.metrics.ObservePick(selection.Strategy.String(), len(selection.Utxos))
	return selection, nil
}
