package generator

import (
	"iter"
	"strconv"
	"strings"
)

// DefaultSubstitutions is the substitution table used by Mangler.
var DefaultSubstitutions = map[rune][]string{
	'a': {"4", "@"},
	'e': {"3"},
	'i': {"1", "!"},
	'o': {"0"},
	's': {"$", "5"},
	't': {"7"},
}

// DefaultMaxPositions is the number of simultaneously substituted positions.
const DefaultMaxPositions = 2

var insertSeparators = []string{"!", ".", "-", "_"}

// Mangler produces multi-position substitutions, separator insertions and
// year affixes for a seed.
type Mangler struct {
	YearFrom      int
	YearTo        int
	Substitutions map[rune][]string
	MaxPositions  int
}

// NewMangler returns a Mangler with the default table and position cap.
func NewMangler(yearFrom, yearTo int) *Mangler {
	return &Mangler{
		YearFrom:      yearFrom,
		YearTo:        yearTo,
		Substitutions: DefaultSubstitutions,
		MaxPositions:  DefaultMaxPositions,
	}
}

// Mangle yields the mangled forms of seed: substitutions first, then
// separator insertions, then year affixes.
func (m *Mangler) Mangle(seed string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if seed == "" {
			return
		}
		if !m.substitute(seed, yield) {
			return
		}
		if !separate(seed, yield) {
			return
		}
		for year := m.YearFrom; year <= m.YearTo; year++ {
			y := strconv.Itoa(year)
			for _, s := range []string{seed + y, seed + y + "!", y + seed, y + seed + "!"} {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// substitute replaces 1..MaxPositions substitutable positions of the
// lower-cased seed at once, trying every replacement at each chosen position.
func (m *Mangler) substitute(seed string, yield func(string) bool) bool {
	subs := m.Substitutions
	if subs == nil {
		subs = DefaultSubstitutions
	}
	lowered := []rune(strings.ToLower(seed))
	var positions []int
	for i, r := range lowered {
		if len(subs[r]) > 0 {
			positions = append(positions, i)
		}
	}
	maxPositions := min(m.MaxPositions, len(positions))

	ok := true
	chars := make([]string, len(lowered))
	for count := 1; count <= maxPositions && ok; count++ {
		walkCombinations(len(positions), count, func(combo []int) bool {
			sizes := make([]int, len(combo))
			for i, c := range combo {
				sizes[i] = len(subs[lowered[positions[c]]])
			}
			walkProduct(sizes, func(idx []int) bool {
				for i, r := range lowered {
					chars[i] = string(r)
				}
				for i, c := range combo {
					pos := positions[c]
					chars[pos] = subs[lowered[pos]][idx[i]]
				}
				ok = yield(strings.Join(chars, ""))
				return ok
			})
			return ok
		})
	}
	return ok
}

func separate(seed string, yield func(string) bool) bool {
	runes := []rune(seed)
	mid := len(runes) / 2
	var chunks []string
	if len(runes) > 3 {
		for i := 0; i < len(runes); i += 2 {
			chunks = append(chunks, string(runes[i:min(i+2, len(runes))]))
		}
	}
	for _, sep := range insertSeparators {
		if !yield(string(runes[:mid]) + sep + string(runes[mid:])) {
			return false
		}
		if chunks != nil && !yield(strings.Join(chunks, sep)) {
			return false
		}
	}
	return true
}
