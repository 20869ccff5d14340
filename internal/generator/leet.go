package generator

import (
	"strings"
	"unicode"
)

// LeetVariants substitutes each rune of seed independently with itself or any
// of its table entries and returns the combinations that differ from seed.
// Seeds longer than maxSeedLen runes yield nothing; at most limit variants
// are produced.
func LeetVariants(seed string, table map[rune][]string, maxSeedLen, limit int) []string {
	runes := []rune(seed)
	if len(runes) == 0 || len(runes) > maxSeedLen || limit <= 0 {
		return nil
	}
	options := make([][]string, len(runes))
	sizes := make([]int, len(runes))
	for i, r := range runes {
		opts := []string{string(r)}
		opts = append(opts, table[unicode.ToLower(r)]...)
		options[i] = opts
		sizes[i] = len(opts)
	}

	out := make([]string, 0, limit)
	var b strings.Builder
	first := true
	walkProduct(sizes, func(idx []int) bool {
		if first {
			// all-zero tuple is the seed itself
			first = false
			return true
		}
		b.Reset()
		for pos, choice := range idx {
			b.WriteString(options[pos][choice])
		}
		out = append(out, b.String())
		return len(out) < limit
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
