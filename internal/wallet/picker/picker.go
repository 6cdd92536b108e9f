// Package picker selects the outputs funding a new transaction.
package picker

import (
	"math/big"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Selection is the funding of a transaction. Total always equals Amount + Fee + Change.
type Selection struct {
	Utxos    []model.Utxo
	Total    *big.Int
	Fee      *big.Int
	Change   *big.Int
	Strategy Strategy
}

// Keys lists the selected outputs.
func (s Selection) Keys() []model.UtxoKey {
	keys := make([]model.UtxoKey, 0, len(s.Utxos))
	for _, u := range s.Utxos {
		keys = append(keys, u.Key)
	}
	return keys
}

// Pick selects outputs from utxos covering req.Amount plus fees with req.Strategy.
func Pick(utxos []model.Utxo, req Request) (Selection, error) {
	req, err := req.normalize()
	if err != nil {
		return Selection{}, err
	}

	candidates := Candidates(utxos, req)
	if available, need := sumEffective(candidates), req.baseTarget(); available.Cmp(need) < 0 {
		return Selection{}, insufficient(need, available)
	}

	switch req.Strategy {
	case OptimizeSize:
		return optimizeSize(candidates, req)
	case MergeOutputs:
		return mergeOutputs(candidates, req)
	case HighestFirstLimit:
		sortHighestFirst(candidates)
		return accumulate(candidates, req, req.MaxUtxos)
	case LimitUtxo:
		sortDeepFirst(candidates)
		return accumulate(candidates, req, req.MaxUtxos)
	default:
		return deepFirst(candidates, req)
	}
}

func deepFirst(candidates []Candidate, req Request) (Selection, error) {
	sorted := append([]Candidate(nil), candidates...)
	sortDeepFirst(sorted)
	return accumulate(sorted, req, len(sorted))
}

// accumulate adds candidates in order, recomputing the fee after each one, until the
// selection is funded or limit inputs are used.
func accumulate(ordered []Candidate, req Request, limit int) (Selection, error) {
	if limit > len(ordered) {
		limit = len(ordered)
	}
	total := new(big.Int)
	for n := 1; n <= limit; n++ {
		total.Add(total, ordered[n-1].Utxo.Value.Amount)
		if selection, ok := price(ordered[:n], total, req); ok {
			return selection, nil
		}
	}
	return Selection{}, shortfall(ordered[:limit], req)
}

// finalize prices a fixed input set.
func finalize(selected []Candidate, req Request) (Selection, bool) {
	total := new(big.Int)
	for _, c := range selected {
		total.Add(total, c.Utxo.Value.Amount)
	}
	return price(selected, total, req)
}

// price funds amount and fees from total, adding change only when it is not dust.
func price(selected []Candidate, total *big.Int, req Request) (Selection, bool) {
	n := len(selected)
	feeNoChange := req.fee(req.Sizes.TxSize(n, req.Outputs))
	feeWithChange := req.fee(req.Sizes.TxSizeWithChange(n, req.Outputs))

	var fee, change *big.Int
	withChange := new(big.Int).Sub(total, req.Amount)
	withChange.Sub(withChange, feeWithChange)
	noChange := new(big.Int).Sub(total, req.Amount)
	switch {
	case withChange.Sign() > 0 && withChange.Cmp(req.Dust) >= 0:
		fee, change = feeWithChange, withChange
	case noChange.Cmp(feeNoChange) >= 0:
		fee, change = noChange, new(big.Int)
	default:
		return Selection{}, false
	}

	utxos := make([]model.Utxo, 0, n)
	for _, c := range selected {
		utxos = append(utxos, c.Utxo)
	}
	return Selection{
		Utxos:    utxos,
		Total:    new(big.Int).Set(total),
		Fee:      fee,
		Change:   change,
		Strategy: req.Strategy,
	}, true
}

func shortfall(selected []Candidate, req Request) error {
	total := new(big.Int)
	for _, c := range selected {
		total.Add(total, c.Utxo.Value.Amount)
	}
	need := new(big.Int).Add(req.Amount, req.fee(req.Sizes.TxSize(len(selected), req.Outputs)))
	return insufficient(need, total)
}
