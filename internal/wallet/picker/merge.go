package picker

import "sort"

// mergeOutputs spends all outputs of an address together so they do not stay fragmented.
func mergeOutputs(candidates []Candidate, req Request) (Selection, error) {
	groups := byAddress(candidates)

	if found, ok := branchAndBound(groups, req.baseTarget(), req.costOfChange()); ok {
		if selection, ok := finalize(expand(found), req); ok {
			return selection, nil
		}
	}

	sort.SliceStable(groups, func(i, j int) bool { return older(groups[i].height, groups[j].height) })
	selected := make([]Candidate, 0, len(candidates))
	for _, g := range groups {
		selected = append(selected, g.candidates...)
		if selection, ok := finalize(selected, req); ok {
			return selection, nil
		}
	}
	return Selection{}, shortfall(selected, req)
}
