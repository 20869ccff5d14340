package generator

// walkProduct visits every index tuple of the Cartesian product of the given
// dimension sizes in lexicographic order, last position fastest. It stops
// when visit returns false. The tuple slice is reused between calls.
func walkProduct(sizes []int, visit func(idx []int) bool) {
	for _, n := range sizes {
		if n <= 0 {
			return
		}
	}
	idx := make([]int, len(sizes))
	for {
		if !visit(idx) {
			return
		}
		pos := len(idx) - 1
		for ; pos >= 0; pos-- {
			idx[pos]++
			if idx[pos] < sizes[pos] {
				break
			}
			idx[pos] = 0
		}
		if pos < 0 {
			return
		}
	}
}

// walkCombinations visits every k-element ascending subset of [0, n) in
// lexicographic order. It stops when visit returns false.
func walkCombinations(n, k int, visit func(combo []int) bool) {
	if k <= 0 || k > n {
		return
	}
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}
	for {
		if !visit(combo) {
			return
		}
		i := k - 1
		for i >= 0 && combo[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		combo[i]++
		for j := i + 1; j < k; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
}
