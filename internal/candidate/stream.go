// Package candidate composes seed sources and generators into one
// deduplicated, length-bounded candidate stream.
package candidate

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/crackle/internal/generator"
	"github.com/verte-zerg/crackle/internal/wordlist"
)

// Origin names the generator a candidate came from.
type Origin string

// Candidate origins, in emission block order.
const (
	OriginDictionary Origin = "dictionary"
	OriginVariation  Origin = "variation"
	OriginPattern    Origin = "pattern"
	OriginMangle     Origin = "mangle"
	OriginMarkov     Origin = "markov"
	OriginKeyboard   Origin = "keyboard"
)

// Origins lists every origin in emission block order.
var Origins = []Origin{
	OriginDictionary, OriginVariation, OriginPattern, OriginMangle, OriginMarkov, OriginKeyboard,
}

// Generated reports whether the origin belongs to the post-dictionary block.
func (o Origin) Generated() bool {
	return o == OriginMarkov || o == OriginKeyboard
}

// Candidate is one admitted password guess.
type Candidate struct {
	Value  string
	Origin Origin
}

// Seeds is the seed supply consumed by a Stream.
type Seeds interface {
	Seeds() iter.Seq[string]
	Err() error
}

var _ Seeds = (*wordlist.Source)(nil)

// Stream yields candidates for one session. The seen set and the Markov
// model belong to the Stream and grow for its whole lifetime.
type Stream struct {
	seeds   Seeds
	opts    Options
	mangler *generator.Mangler
	markov  *generator.Markov
	seen    map[string]struct{}
	err     error
}

// New builds a stream over seeds.
func New(seeds Seeds, opts Options) *Stream {
	mangler := generator.NewMangler(opts.YearFrom, opts.YearTo)
	if opts.MaxPositions > 0 {
		mangler.MaxPositions = opts.MaxPositions
	}
	return &Stream{
		seeds:   seeds,
		opts:    opts,
		mangler: mangler,
		markov:  generator.NewMarkov(),
		seen:    map[string]struct{}{},
	}
}

// All yields every admitted candidate: the seed-derived block in seed
// order, then Markov output, then keyboard walks. The Markov model is
// trained on the full seed pass before it is queried.
func (s *Stream) All() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		emit := func(value string, origin Origin) bool {
			clean, ok := s.admit(value)
			if !ok {
				return true
			}
			return yield(Candidate{Value: clean, Origin: origin})
		}
		emitAll := func(values []string, origin Origin) bool {
			for _, v := range values {
				if !emit(v, origin) {
					return false
				}
			}
			return true
		}

		for seed := range s.seeds.Seeds() {
			s.markov.Ingest(seed)
			if !emit(seed, OriginDictionary) {
				return
			}
			if s.opts.UseVariations && !emitAll(generator.Variations(seed), OriginVariation) {
				return
			}
			if s.opts.UsePatterns && !emitAll(generator.Patterns(seed), OriginPattern) {
				return
			}
			if s.opts.UseAdvancedMangling {
				for mangled := range s.mangler.Mangle(seed) {
					if !emit(mangled, OriginMangle) {
						return
					}
				}
			}
		}
		if err := s.seeds.Err(); err != nil {
			s.err = err
			return
		}

		if s.opts.UseMarkov {
			for c := range s.markov.Generate(s.opts.Markov) {
				if !emit(c, OriginMarkov) {
					return
				}
			}
		}
		if s.opts.UseKeyboardWalks {
			for c := range generator.KeyboardWalks(s.opts.WalkLengths) {
				if !emit(c, OriginKeyboard) {
					return
				}
			}
		}
	}
}

// Err returns the seed read error that ended the stream, if any.
func (s *Stream) Err() error {
	return s.err
}

// Seen returns how many distinct candidates have been admitted.
func (s *Stream) Seen() int {
	return len(s.seen)
}

// admit is the single dedup and length gate for every candidate.
func (s *Stream) admit(value string) (string, bool) {
	clean := strings.TrimSpace(value)
	if clean == "" || utf8.RuneCountInString(clean) > s.opts.MaxLength {
		return "", false
	}
	key := strings.ToLower(clean)
	if _, ok := s.seen[key]; ok {
		return "", false
	}
	s.seen[key] = struct{}{}
	return clean, true
}
