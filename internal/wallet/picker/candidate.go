package picker

import (
	"math/big"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Candidate is an output priced for one selection call.
type Candidate struct {
	Utxo model.Utxo
	// EffectiveFee is the fee paid now for spending the output.
	EffectiveFee *big.Int
	// LongTermFee is what spending the output would cost at the long term rate.
	LongTermFee *big.Int
	// EffectiveValue is the amount left once EffectiveFee is paid.
	EffectiveValue *big.Int
}

// Candidates prices utxos and drops the ones that cost more to spend than they are worth.
func Candidates(utxos []model.Utxo, req Request) []Candidate {
	inputSize := big.NewInt(int64(req.Sizes.InputSize))
	longTerm := req.LongTermFeePerByte
	if longTerm == nil {
		longTerm = req.FeePerByte
	}

	out := make([]Candidate, 0, len(utxos))
	for _, u := range utxos {
		if u.Value.Amount == nil {
			continue
		}
		fee := new(big.Int).Mul(req.FeePerByte, inputSize)
		value := new(big.Int).Sub(u.Value.Amount, fee)
		if value.Sign() <= 0 {
			continue
		}
		out = append(out, Candidate{
			Utxo:           u,
			EffectiveFee:   fee,
			LongTermFee:    new(big.Int).Mul(longTerm, inputSize),
			EffectiveValue: value,
		})
	}
	return out
}

// group is a set of candidates selected all together.
type group struct {
	candidates []Candidate
	value      *big.Int
	height     *uint64
}

func singletons(candidates []Candidate) []group {
	groups := make([]group, 0, len(candidates))
	for _, c := range candidates {
		groups = append(groups, group{candidates: []Candidate{c}, value: c.EffectiveValue, height: c.Utxo.Value.BlockHeight})
	}
	return groups
}

// byAddress merges the candidates of each address into one group.
func byAddress(candidates []Candidate) []group {
	index := make(map[string]int)
	groups := make([]group, 0)
	for _, c := range candidates {
		i, ok := index[c.Utxo.Value.Address]
		if !ok {
			i = len(groups)
			index[c.Utxo.Value.Address] = i
			groups = append(groups, group{value: new(big.Int)})
		}
		g := &groups[i]
		g.candidates = append(g.candidates, c)
		g.value.Add(g.value, c.EffectiveValue)
		if older(c.Utxo.Value.BlockHeight, g.height) {
			g.height = c.Utxo.Value.BlockHeight
		}
	}
	return groups
}

// older orders confirmed heights ascending and unconfirmed outputs last.
func older(a, b *uint64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

func sortDeepFirst(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Utxo, candidates[j].Utxo
		if older(a.Value.BlockHeight, b.Value.BlockHeight) {
			return true
		}
		if older(b.Value.BlockHeight, a.Value.BlockHeight) {
			return false
		}
		return a.Key.Less(b.Key)
	})
}

func sortHighestFirst(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if c := candidates[i].Utxo.Value.Amount.Cmp(candidates[j].Utxo.Value.Amount); c != 0 {
			return c > 0
		}
		return candidates[i].Utxo.Key.Less(candidates[j].Utxo.Key)
	})
}

func sumEffective(candidates []Candidate) *big.Int {
	total := new(big.Int)
	for _, c := range candidates {
		total.Add(total, c.EffectiveValue)
	}
	return total
}
