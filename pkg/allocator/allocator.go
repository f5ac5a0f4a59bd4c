package allocator

import "fmt"

/**************************************************************************************************
** Allocate divides an elapsed-time budget into per-pair gaps proportional to the dissimilarity
** scores of consecutive photo pairs. The returned slice always has exactly one delta per score
** and the deltas always sum to the budget exactly: the final delta absorbs the floating-point
** remainder left by the proportional shares.
**
** Two degenerate inputs are part of the contract:
** - an empty score slice (group of one photo or fewer) returns nil, nothing to allocate
** - an all-zero score slice (identical neighbors throughout) falls back to equal division,
**   so the budget is still fully spent instead of collapsing every gap to zero
**
** @param scores - Dissimilarity score per consecutive pair, all non-negative
** @param budget - Total elapsed seconds to distribute, non-negative
** @return []float64 - One gap per pair, summing to the budget
**************************************************************************************************/
func Allocate(scores []float64, budget float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	deltas := make([]float64, len(scores))
	if budget == 0 {
		return deltas
	}

	total := 0.0
	for _, score := range scores {
		total += score
	}

	/**********************************************************************************************
	** Equal division fallback: every neighbor pair looked identical, so no pair deserves a
	** bigger share than any other.
	**********************************************************************************************/
	if total == 0 {
		share := budget / float64(len(scores))
		used := 0.0
		for i := 0; i < len(deltas)-1; i++ {
			deltas[i] = share
			used += share
		}
		deltas[len(deltas)-1] = budget - used
		return deltas
	}

	used := 0.0
	for i := 0; i < len(scores)-1; i++ {
		deltas[i] = scores[i] / total * budget
		used += deltas[i]
	}
	deltas[len(deltas)-1] = budget - used
	return deltas
}

/**************************************************************************************************
** AllocateChecked validates the inputs before allocating with the floor applied. Negative
** scores and negative budgets cannot come out of the estimator or a validated config, so
** hitting this error means a caller bug rather than bad user data.
**
** @param scores - Dissimilarity score per consecutive pair
** @param budget - Total elapsed seconds to distribute
** @param floor - Minimum seconds per gap, zero or less disables the floor
** @return []float64 - One gap per pair, summing to the budget
** @return error - Describes the invalid input, nil otherwise
**************************************************************************************************/
func AllocateChecked(scores []float64, budget, floor float64) ([]float64, error) {
	if budget < 0 {
		return nil, fmt.Errorf("budget must not be negative, got %v", budget)
	}
	for i, score := range scores {
		if score < 0 {
			return nil, fmt.Errorf("score %d must not be negative, got %v", i, score)
		}
	}
	return AllocateWithFloor(scores, budget, floor), nil
}

/**************************************************************************************************
** AllocateWithFloor is Allocate with a minimum gap per pair. Pairs whose proportional share
** falls below the floor are pinned to the floor and the rest of the budget is re-divided
** proportionally among the remaining pairs, repeating until no new pair drops below the floor.
**
** When the floor itself cannot be honored (floor times pair count exceeds the budget) the
** allocation degrades to plain equal division of the budget; the sum invariant always wins
** over the floor.
**
** @param scores - Dissimilarity score per consecutive pair, all non-negative
** @param budget - Total elapsed seconds to distribute, non-negative
** @param floor - Minimum seconds per gap, zero or less disables the floor
** @return []float64 - One gap per pair, summing to the budget
**************************************************************************************************/
func AllocateWithFloor(scores []float64, budget, floor float64) []float64 {
	n := len(scores)
	if n == 0 {
		return nil
	}
	if floor <= 0 {
		return Allocate(scores, budget)
	}
	if floor*float64(n) > budget {
		return Allocate(make([]float64, n), budget)
	}

	pinned := make([]bool, n)
	for {
		/******************************************************************************************
		** Allocate the budget that is not consumed by pinned pairs across the active ones,
		** then pin every active pair that still landed below the floor.
		******************************************************************************************/
		remaining := budget
		active := make([]float64, 0, n)
		for i, score := range scores {
			if pinned[i] {
				remaining -= floor
			} else {
				active = append(active, score)
			}
		}

		sub := Allocate(active, remaining)
		deltas := make([]float64, n)
		changed := false
		j := 0
		for i := range scores {
			if pinned[i] {
				deltas[i] = floor
				continue
			}
			if sub[j] < floor {
				pinned[i] = true
				changed = true
			}
			deltas[i] = sub[j]
			j++
		}

		if !changed {
			return deltas
		}
	}
}
