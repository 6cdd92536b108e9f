package picker

import (
	"math/big"
	"sort"
)

// TotalTries bounds the number of nodes visited by the branch and bound search.
const TotalTries = 100000

// optimizeSize looks for the fewest inputs funding the transaction without change and keeps
// the deep-first selection when it is at least as small.
func optimizeSize(candidates []Candidate, req Request) (Selection, error) {
	fallback, fallbackErr := deepFirst(candidates, req)

	groups := singletons(candidates)
	found, ok := branchAndBound(groups, req.baseTarget(), req.costOfChange())
	if !ok {
		fallback.Strategy = DeepFirst
		return fallback, fallbackErr
	}
	selection, ok := finalize(expand(found), req)
	if !ok {
		fallback.Strategy = DeepFirst
		return fallback, fallbackErr
	}
	if fallbackErr == nil && len(fallback.Utxos) < len(selection.Utxos) {
		fallback.Strategy = DeepFirst
		return fallback, nil
	}
	return selection, nil
}

func expand(groups []group) []Candidate {
	out := make([]Candidate, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.candidates...)
	}
	return out
}

type search struct {
	groups    []group
	target    *big.Int
	upper     *big.Int
	remaining []*big.Int
	tries     int

	current       []int
	currentInputs int

	best       []int
	bestInputs int
	bestExcess *big.Int
}

// branchAndBound finds groups whose effective values sum into [target, target+window],
// preferring fewer inputs and then the smallest excess.
func branchAndBound(groups []group, target, window *big.Int) ([]group, bool) {
	sorted := append([]group(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].value.Cmp(sorted[j].value) > 0 })

	remaining := make([]*big.Int, len(sorted)+1)
	remaining[len(sorted)] = new(big.Int)
	for i := len(sorted) - 1; i >= 0; i-- {
		remaining[i] = new(big.Int).Add(remaining[i+1], sorted[i].value)
	}

	s := &search{
		groups:    sorted,
		target:    target,
		upper:     new(big.Int).Add(target, window),
		remaining: remaining,
	}
	s.visit(0, new(big.Int))
	if s.best == nil {
		return nil, false
	}

	out := make([]group, 0, len(s.best))
	for _, i := range s.best {
		out = append(out, sorted[i])
	}
	return out, true
}

func (s *search) visit(i int, sum *big.Int) {
	if s.tries >= TotalTries {
		return
	}
	s.tries++

	if sum.Cmp(s.upper) > 0 {
		return
	}
	if sum.Cmp(s.target) >= 0 {
		s.record(sum)
		return
	}
	if i == len(s.groups) {
		return
	}
	if s.best != nil && s.currentInputs+1 > s.bestInputs {
		return
	}
	if reach := new(big.Int).Add(sum, s.remaining[i]); reach.Cmp(s.target) < 0 {
		return
	}

	g := s.groups[i]
	s.current = append(s.current, i)
	s.currentInputs += len(g.candidates)
	s.visit(i+1, new(big.Int).Add(sum, g.value))
	s.current = s.current[:len(s.current)-1]
	s.currentInputs -= len(g.candidates)

	// Excluding g also excludes its equivalents, the include branch already covered them.
	next := i + 1
	for next < len(s.groups) && s.groups[next].value.Cmp(g.value) == 0 &&
		len(s.groups[next].candidates) == len(g.candidates) {
		next++
	}
	s.visit(next, sum)
}

func (s *search) record(sum *big.Int) {
	excess := new(big.Int).Sub(sum, s.target)
	switch {
	case s.best == nil,
		s.currentInputs < s.bestInputs,
		s.currentInputs == s.bestInputs && excess.Cmp(s.bestExcess) < 0:
		s.best = append(s.best[:0:0], s.current...)
		s.bestInputs = s.currentInputs
		s.bestExcess = excess
	}
}
