// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import "github.com/btcsuite/shieldwallet/pkg/lux"

// saturatingAdd returns a+b, or lux.MaxAmount if the sum overflows.
func saturatingAdd(a, b lux.Amount) lux.Amount {
	sum, overflow := a.Add(b)
	if overflow {
		return lux.MaxAmount
	}
	return sum
}

// sumLast returns the total of the last n values.
func sumLast(values []lux.Amount, n int) lux.Amount {
	var total lux.Amount
	for _, v := range values[len(values)-n:] {
		total = saturatingAdd(total, v)
	}
	return total
}

// pickCombination selects the indices of the values to spend for amount.
// The values must be sorted in ascending order.
//
// Nothing is spent for a zero amount. When there are at most k values, all
// of them are used. Otherwise the
// result is the first combination of k indices, in lexicographic order,
// whose values add up to at least amount. Because the values are sorted this
// prefers the smallest notes, consolidating dust over time.
//
// The combination is built one position at a time: the index chosen for a
// position is the smallest one that can still be completed into a covering
// combination, and since the values are sorted the best completion is
// always made of the largest remaining values.
func pickCombination(values []lux.Amount, amount lux.Amount,
	k int) ([]int, bool) {

	if amount == 0 {
		return []int{}, true
	}

	n := len(values)
	if n <= k {
		if sumLast(values, n) < amount {
			return nil, false
		}

		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, true
	}

	picked := make([]int, 0, k)
	var (
		partial lux.Amount
		next    int
	)
	for pos := 0; pos < k; pos++ {
		remaining := k - pos - 1

		found := false
		for idx := next; idx <= n-remaining-1; idx++ {
			best := saturatingAdd(partial, values[idx])
			if remaining > 0 {
				best = saturatingAdd(
					best, sumLast(values, remaining),
				)
			}
			if best < amount {
				continue
			}

			picked = append(picked, idx)
			partial = saturatingAdd(partial, values[idx])
			next = idx + 1
			found = true

			break
		}

		if !found {
			return nil, false
		}
	}

	return picked, true
}
