package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/crackle/internal/candidate"
	"github.com/verte-zerg/crackle/internal/config"
	"github.com/verte-zerg/crackle/internal/generator"
	"github.com/verte-zerg/crackle/internal/logging"
)

var (
	genVariations  bool
	genPatterns    bool
	genAdvanced    bool
	genMarkov      bool
	genWalks       bool
	genMaxLength   int
	genMarkovLimit int
	genYears       string
	genCharset     string

	logLevel  string
	logFormat string
)

func addGeneratorFlags(cmd *cobra.Command) {
	defaults := candidate.DefaultOptions()
	flags := cmd.Flags()
	flags.BoolVar(&genVariations, "variations", defaults.UseVariations, "case, leet and suffix variations")
	flags.BoolVar(&genPatterns, "patterns", defaults.UsePatterns, "common prefix/suffix patterns")
	flags.BoolVar(&genAdvanced, "advanced", defaults.UseAdvancedMangling, "advanced mangling (substitutions, separators, years)")
	flags.BoolVar(&genMarkov, "markov", defaults.UseMarkov, "Markov candidates after the dictionary pass")
	flags.BoolVar(&genWalks, "keyboard-walks", defaults.UseKeyboardWalks, "keyboard walk candidates after the dictionary pass")
	flags.IntVar(&genMaxLength, "max-length", defaults.MaxLength, "maximum candidate length")
	flags.IntVar(&genMarkovLimit, "markov-limit", defaults.Markov.Limit,
		fmt.Sprintf("maximum Markov candidates (clamped to %d-%d)", candidate.MinMarkovLimit, candidate.MaxMarkovLimit))
	flags.StringVar(&genYears, "years", fmt.Sprintf("%d-%d", defaults.YearFrom, defaults.YearTo), "year range for mangling (FROM-TO)")
	flags.StringVar(&genCharset, "charset", "", "seed charset filter (ascii)")
}

// buildOptions merges generator flags with the [attack] config section.
func buildOptions(cmd *cobra.Command, cfg config.AttackConfig) (candidate.Options, error) {
	applyBoolConfig(cmd, "variations", &genVariations, cfg.Variations)
	applyBoolConfig(cmd, "patterns", &genPatterns, cfg.Patterns)
	applyBoolConfig(cmd, "advanced", &genAdvanced, cfg.Advanced)
	applyBoolConfig(cmd, "markov", &genMarkov, cfg.Markov)
	applyBoolConfig(cmd, "keyboard-walks", &genWalks, cfg.KeyboardWalks)
	applyIntConfig(cmd, "max-length", &genMaxLength, cfg.MaxLength)
	applyIntConfig(cmd, "markov-limit", &genMarkovLimit, cfg.MarkovLimit)
	applyStringConfig(cmd, "charset", &genCharset, cfg.Charset)

	opts := candidate.DefaultOptions()
	opts.UseVariations = genVariations
	opts.UsePatterns = genPatterns
	opts.UseAdvancedMangling = genAdvanced
	opts.UseMarkov = genMarkov
	opts.UseKeyboardWalks = genWalks
	opts.MaxLength = genMaxLength
	opts.Markov.Limit = genMarkovLimit

	from, to, err := parseYears(genYears)
	if err != nil {
		return candidate.Options{}, err
	}
	if !cmd.Flags().Changed("years") {
		if cfg.YearFrom != nil {
			from = *cfg.YearFrom
		}
		if cfg.YearTo != nil {
			to = *cfg.YearTo
		}
	}
	opts.YearFrom, opts.YearTo = from, to

	if cfg.MaxPositions != nil {
		opts.MaxPositions = *cfg.MaxPositions
	}
	if cfg.MarkovMinLength != nil {
		opts.Markov.MinLength = *cfg.MarkovMinLength
	}
	if cfg.MarkovMaxLength != nil {
		opts.Markov.MaxLength = *cfg.MarkovMaxLength
	}
	if cfg.MarkovBranching != nil {
		opts.Markov.BranchingFactor = *cfg.MarkovBranching
	}
	if len(cfg.WalkLengths) > 0 {
		opts.WalkLengths = slices.Clone(cfg.WalkLengths)
	}

	if genCharset != "" && genCharset != "ascii" {
		return candidate.Options{}, fmt.Errorf("--charset must be ascii or empty")
	}
	if err := opts.Validate(); err != nil {
		return candidate.Options{}, fmt.Errorf("invalid generator options: %w", err)
	}
	return opts, nil
}

// parseYears parses a FROM-TO year range.
func parseYears(value string) (int, int, error) {
	fromStr, toStr, ok := strings.Cut(strings.TrimSpace(value), "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --years value %q: want FROM-TO", value)
	}
	from, err := strconv.Atoi(strings.TrimSpace(fromStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --years value %q: %w", value, err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(toStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --years value %q: %w", value, err)
	}
	if from > to {
		return 0, 0, fmt.Errorf("invalid --years value %q: FROM is after TO", value)
	}
	return from, to, nil
}

func buildLogger(cmd *cobra.Command, cfg config.LogConfig, out io.Writer, quiet bool) (*slog.Logger, error) {
	applyStringConfig(cmd, "log-level", &logLevel, cfg.Level)
	applyStringConfig(cmd, "log-format", &logFormat, cfg.Format)

	logCfg := logging.DefaultConfig()
	logCfg.Output = out
	logCfg.Redact = true
	if cfg.Redact != nil {
		logCfg.Redact = *cfg.Redact
	}
	if logLevel != "" {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		logCfg.Level = level
	}
	if quiet && logCfg.Level < logging.LevelWarn {
		logCfg.Level = logging.LevelWarn
	}
	if logFormat != "" {
		format, err := logging.ParseFormat(logFormat)
		if err != nil {
			return nil, err
		}
		logCfg.Format = format
	}
	return logging.New(logCfg), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	defaults := candidate.DefaultOptions()
	markov := generator.DefaultMarkovParams()
	return fmt.Sprintf(`# crackle configuration
# Uncomment a value to enable it. CLI flags override config values.

[attack]
# algorithm = "md5"          # Hash algorithm; detected from digest length when unset
# charset = "ascii"          # Drop dictionary lines outside printable ASCII
# variations = %t            # Case, leet and suffix variations
# patterns = %t              # Common prefix/suffix patterns
# advanced = %t              # Substitutions, separators and years
# markov = %t                # Markov candidates after the dictionary pass
# keyboard-walks = %t        # Keyboard walks after the dictionary pass
# max-length = %d            # Maximum candidate length
# year-from = %d             # First year appended by advanced mangling
# year-to = %d               # Last year appended by advanced mangling
# max-positions = %d         # Substituted positions per mangled candidate
# markov-limit = %d          # Markov candidates (clamped to %d-%d)
# markov-min-length = %d
# markov-max-length = %d
# markov-branching = %d      # Successors explored per state
# walk-lengths = %v

[log]
# level = "info"             # debug, info, warn, error
# format = "text"            # text or json
# redact = true              # Mask secrets such as recovered passwords in logs
`,
		defaults.UseVariations,
		defaults.UsePatterns,
		defaults.UseAdvancedMangling,
		defaults.UseMarkov,
		defaults.UseKeyboardWalks,
		defaults.MaxLength,
		defaults.YearFrom,
		defaults.YearTo,
		defaults.MaxPositions,
		markov.Limit, candidate.MinMarkovLimit, candidate.MaxMarkovLimit,
		markov.MinLength,
		markov.MaxLength,
		markov.BranchingFactor,
		strings.Join(strings.Fields(fmt.Sprint(defaults.WalkLengths)), ", "),
	)
}
