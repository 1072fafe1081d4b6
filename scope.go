package sparsipy

// validateScopes checks that scopes exactly partitions a contiguous feature
// index range {0..max}: one scope per step, no index repeated within or
// across scopes, no index missing, no empty scope. It returns the inferred
// total feature count and a per-step copy of the global column indices,
// preserving the caller's within-scope order.
func validateScopes(nSteps int, scopes [][]int) (nFeatures int, featureIndices [][]int, err error) {
	if len(scopes) != nSteps {
		return 0, nil, configErrorf("got %d scopes for %d steps", len(scopes), nSteps)
	}

	total := 0
	maxIndex := -1
	for _, scope := range scopes {
		total += len(scope)
		for _, idx := range scope {
			if idx < 0 {
				return 0, nil, configErrorf("negative feature index %d in scope", idx)
			}
			if idx > maxIndex {
				maxIndex = idx
			}
		}
	}

	seen := make([]bool, maxIndex+1)
	for i, scope := range scopes {
		if len(scope) == 0 {
			return 0, nil, configErrorf("scope %d is empty", i)
		}
		for _, idx := range scope {
			if seen[idx] {
				return 0, nil, configErrorf("feature index %d appears in more than one scope", idx)
			}
			seen[idx] = true
		}
	}
	if total != maxIndex+1 {
		// Some index in {0..max} was never covered.
		for idx, ok := range seen {
			if !ok {
				return 0, nil, configErrorf("feature index %d is not covered by any scope", idx)
			}
		}
	}

	featureIndices = make([][]int, len(scopes))
	for i, scope := range scopes {
		featureIndices[i] = make([]int, len(scope))
		copy(featureIndices[i], scope)
	}
	return total, featureIndices, nil
}
