package generator

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func trainedMarkov(words ...string) *Markov {
	m := NewMarkov()
	for _, w := range words {
		m.Ingest(w)
	}
	return m
}

func TestMarkovBreadthFirstOrder(t *testing.T) {
	m := trainedMarkov("apple", "ample", "apply")
	got := slices.Collect(m.Generate(MarkovParams{MinLength: 4, MaxLength: 12, Limit: 6, BranchingFactor: 5}))
	require.Equal(t, []string{"aple", "aply", "apple", "apply", "ample", "amply"}, got)
}

func TestMarkovDeterministic(t *testing.T) {
	params := DefaultMarkovParams()
	first := slices.Collect(trainedMarkov("apple", "ample", "apply").Generate(params))
	second := slices.Collect(trainedMarkov("apple", "ample", "apply").Generate(params))
	require.NotEmpty(t, first)
	require.Equal(t, first, second)
}

func TestMarkovTieBreakFirstSeen(t *testing.T) {
	params := MarkovParams{MinLength: 1, MaxLength: 5, Limit: 10, BranchingFactor: 1}
	require.Equal(t, []string{"ab"}, slices.Collect(trainedMarkov("ab", "ac").Generate(params)))
	require.Equal(t, []string{"ac"}, slices.Collect(trainedMarkov("ac", "ab").Generate(params)))
}

func TestMarkovBounds(t *testing.T) {
	m := trainedMarkov("password", "passport", "pass", "passage")
	params := MarkovParams{MinLength: 4, MaxLength: 6, Limit: 1000, BranchingFactor: 5}
	seen := map[string]bool{}
	for candidate := range m.Generate(params) {
		n := len([]rune(candidate))
		require.GreaterOrEqual(t, n, 4)
		require.LessOrEqual(t, n, 6)
		require.False(t, seen[candidate], "duplicate %q", candidate)
		seen[candidate] = true
	}
	require.True(t, seen["pass"])
}

func TestMarkovLiteralSymbols(t *testing.T) {
	m := trainedMarkov("a$b")
	got := slices.Collect(m.Generate(MarkovParams{MinLength: 1, MaxLength: 5, Limit: 10, BranchingFactor: 5}))
	require.Equal(t, []string{"a$b"}, got)
}

func TestMarkovUntrained(t *testing.T) {
	require.Empty(t, slices.Collect(NewMarkov().Generate(DefaultMarkovParams())))
}

func TestMarkovStartCounts(t *testing.T) {
	m := trainedMarkov("Apple", "ample", "bee")
	require.Equal(t, map[string]int{"a": 2, "b": 1}, m.startCounts())
}
