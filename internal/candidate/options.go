package candidate

import (
	"fmt"
	"slices"

	"github.com/verte-zerg/crackle/internal/generator"
)

// Markov limit bounds accepted from callers.
const (
	MinMarkovLimit = 100
	MaxMarkovLimit = 100000
)

// Options selects the generators composed by a Stream.
type Options struct {
	UseVariations       bool
	UsePatterns         bool
	UseAdvancedMangling bool
	UseMarkov           bool
	UseKeyboardWalks    bool

	MaxLength int

	YearFrom     int
	YearTo       int
	MaxPositions int

	Markov      generator.MarkovParams
	WalkLengths []int
}

// DefaultOptions enables variations and patterns only.
func DefaultOptions() Options {
	return Options{
		UseVariations: true,
		UsePatterns:   true,
		MaxLength:     50,
		YearFrom:      1990,
		YearTo:        2030,
		MaxPositions:  generator.DefaultMaxPositions,
		Markov:        generator.DefaultMarkovParams(),
		WalkLengths:   slices.Clone(generator.DefaultWalkLengths),
	}
}

// ClampMarkovLimit forces n into [MinMarkovLimit, MaxMarkovLimit].
func ClampMarkovLimit(n int) int {
	return min(max(n, MinMarkovLimit), MaxMarkovLimit)
}

// Validate reports the first invalid setting.
func (o Options) Validate() error {
	if o.MaxLength <= 0 {
		return fmt.Errorf("max length must be > 0")
	}
	if o.UseAdvancedMangling {
		if o.YearFrom > o.YearTo {
			return fmt.Errorf("year range %d-%d is empty", o.YearFrom, o.YearTo)
		}
		if o.MaxPositions < 1 {
			return fmt.Errorf("max substitution positions must be >= 1")
		}
	}
	if o.UseMarkov {
		m := o.Markov
		if m.BranchingFactor < 1 {
			return fmt.Errorf("markov branching factor must be >= 1")
		}
		if m.MinLength < 1 || m.MinLength > m.MaxLength {
			return fmt.Errorf("markov length range %d-%d is invalid", m.MinLength, m.MaxLength)
		}
	}
	if o.UseKeyboardWalks {
		if len(o.WalkLengths) == 0 {
			return fmt.Errorf("keyboard walk lengths must not be empty")
		}
		for _, n := range o.WalkLengths {
			if n < 1 {
				return fmt.Errorf("keyboard walk length must be >= 1, got %d", n)
			}
		}
	}
	return nil
}
