package generator

import (
	"iter"
	"sort"
	"strings"
)

// Synthetic symbols. Negative runes never occur in decoded text, so a
// literal '^' or '$' in a seed stays an ordinary character.
const (
	startSymbol rune = -1
	endSymbol   rune = -2
)

// Markov is a bigram model over lower-cased runes. Training only adds to
// counts. Generation is deterministic: successors with equal counts are
// ranked by the order in which they were first observed.
type Markov struct {
	tables map[rune]*successors
}

type successors struct {
	index   map[rune]int
	entries []successor
	ranked  []rune
}

type successor struct {
	symbol rune
	count  int
}

// MarkovParams bounds one generation run.
type MarkovParams struct {
	MinLength       int
	MaxLength       int
	Limit           int
	BranchingFactor int
}

// DefaultMarkovParams mirrors the defaults of the attack options.
func DefaultMarkovParams() MarkovParams {
	return MarkovParams{MinLength: 4, MaxLength: 12, Limit: 1000, BranchingFactor: 5}
}

// NewMarkov returns an empty model.
func NewMarkov() *Markov {
	return &Markov{tables: map[rune]*successors{}}
}

// Ingest records the transitions of one training word.
func (m *Markov) Ingest(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	prev := startSymbol
	for _, r := range word {
		m.table(prev).add(r)
		prev = r
	}
	m.table(prev).add(endSymbol)
}

// Trained reports whether any word has been ingested.
func (m *Markov) Trained() bool {
	return len(m.tables) > 0
}

// startCounts returns the start-symbol frequency of each first character.
func (m *Markov) startCounts() map[string]int {
	out := map[string]int{}
	if t, ok := m.tables[startSymbol]; ok {
		for _, e := range t.entries {
			out[string(e.symbol)] = e.count
		}
	}
	return out
}

// Generate expands the most frequent paths breadth-first. A path that
// reaches the end symbol is yielded once if its rune length lies within
// [MinLength, MaxLength], until Limit candidates have been yielded.
func (m *Markov) Generate(p MarkovParams) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !m.Trained() || p.Limit <= 0 || p.BranchingFactor <= 0 || p.MaxLength <= 0 {
			return
		}
		type node struct {
			prefix string
			length int
			last   rune
		}
		var queue []node
		for _, r := range m.top(startSymbol, p.BranchingFactor) {
			queue = append(queue, node{prefix: string(r), length: 1, last: r})
		}

		yielded := 0
		head := 0
		for head < len(queue) && yielded < p.Limit {
			n := queue[head]
			queue[head] = node{}
			head++
			if head > 4096 && head*2 > len(queue) {
				queue = append(queue[:0], queue[head:]...)
				head = 0
			}

			if n.last == endSymbol {
				if n.length >= p.MinLength && n.length <= p.MaxLength {
					yielded++
					if !yield(n.prefix) {
						return
					}
				}
				continue
			}
			for _, next := range m.top(n.last, p.BranchingFactor) {
				if next == endSymbol {
					queue = append(queue, node{prefix: n.prefix, length: n.length, last: endSymbol})
					continue
				}
				if n.length+1 > p.MaxLength {
					continue
				}
				queue = append(queue, node{prefix: n.prefix + string(next), length: n.length + 1, last: next})
			}
		}
	}
}

func (m *Markov) table(sym rune) *successors {
	t, ok := m.tables[sym]
	if !ok {
		t = &successors{index: map[rune]int{}}
		m.tables[sym] = t
	}
	return t
}

// top returns up to k successors of sym, most frequent first.
func (m *Markov) top(sym rune, k int) []rune {
	t, ok := m.tables[sym]
	if !ok {
		return nil
	}
	if t.ranked == nil {
		ranked := make([]successor, len(t.entries))
		copy(ranked, t.entries)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].count > ranked[j].count
		})
		t.ranked = make([]rune, len(ranked))
		for i, e := range ranked {
			t.ranked[i] = e.symbol
		}
	}
	if k > len(t.ranked) {
		k = len(t.ranked)
	}
	return t.ranked[:k]
}

func (s *successors) add(sym rune) {
	s.ranked = nil
	if i, ok := s.index[sym]; ok {
		s.entries[i].count++
		return
	}
	s.index[sym] = len(s.entries)
	s.entries = append(s.entries, successor{symbol: sym, count: 1})
}
