package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/crackle/internal/candidate"
	"github.com/verte-zerg/crackle/internal/config"
	"github.com/verte-zerg/crackle/internal/hashing"
	"github.com/verte-zerg/crackle/internal/model"
	"github.com/verte-zerg/crackle/internal/stats"
	"github.com/verte-zerg/crackle/internal/store"
	"github.com/verte-zerg/crackle/internal/wordlist"
)

const defaultHistoryWindow = 20

var (
	candidatesDict       string
	candidatesLimit      int
	candidatesWithOrigin bool

	hashPassword  string
	hashAlgorithm string

	lookupAlgorithm string

	historyAlgorithm     string
	historySince         string
	historyLast          int
	historyWindow        int
	historyShowPasswords bool
)

func newCandidatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Write the candidate stream to stdout",
		Args:  cobra.NoArgs,
		RunE:  runCandidatesCmd,
	}
	cmd.Flags().StringVar(&candidatesDict, "dict", "", "path to dictionary file")
	cmd.Flags().IntVar(&candidatesLimit, "limit", 0, "stop after N candidates (0 = all)")
	cmd.Flags().BoolVar(&candidatesWithOrigin, "with-origin", false, "prefix each candidate with its origin")
	addGeneratorFlags(cmd)
	if err := cmd.MarkFlagRequired("dict"); err != nil {
		panic(err)
	}
	return cmd
}

func runCandidatesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts, err := buildOptions(cmd, fileCfg.Attack)
	if err != nil {
		return err
	}
	if opts.UseMarkov {
		opts.Markov.Limit = candidate.ClampMarkovLimit(opts.Markov.Limit)
	}
	if candidatesLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}

	src, err := wordlist.Open(config.ExpandPath(candidatesDict), wordlist.FilterForCharset(genCharset))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logErrf("failed to close dictionary: %v\n", cerr)
		}
	}()

	out := bufio.NewWriter(cmd.OutOrStdout())
	stream := candidate.New(src, opts)
	written := 0
	for c := range stream.All() {
		if candidatesWithOrigin {
			_, err = fmt.Fprintf(out, "%s\t%s\n", c.Origin, c.Value)
		} else {
			_, err = fmt.Fprintln(out, c.Value)
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		written++
		if candidatesLimit > 0 && written >= candidatesLimit {
			break
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return stream.Err()
}

func newHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash a password",
		Args:  cobra.NoArgs,
		RunE:  runHashCmd,
	}
	cmd.Flags().StringVar(&hashPassword, "password", "", "password to hash")
	cmd.Flags().StringVar(&hashAlgorithm, "algorithm", hashing.MD5, "hash algorithm")
	if err := cmd.MarkFlagRequired("password"); err != nil {
		panic(err)
	}
	return cmd
}

func runHashCmd(cmd *cobra.Command, _ []string) error {
	digest, err := hashing.Hash(hashPassword, hashAlgorithm)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), digest); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect DIGEST",
		Short: "Guess the hash algorithm from digest length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), hashing.Detect(args[0])); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported hash algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range hashing.Algorithms() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup DIGEST",
		Short: "Look up a digest recovered by an earlier attack",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookupCmd,
	}
	cmd.Flags().StringVar(&lookupAlgorithm, "algorithm", "", "hash algorithm (detected from digest length if empty)")
	return cmd
}

var errNotCracked = errors.New("digest not found in history")

func runLookupCmd(cmd *cobra.Command, args []string) error {
	algorithm, _, err := hashing.Resolve(lookupAlgorithm, args[0])
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	password, ok, err := st.FindCracked(cmd.Context(), algorithm, args[0])
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}
	if !ok {
		return errNotCracked
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), password); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past attack sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyAlgorithm, "algorithm", "", "algorithm filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "sessions used for the origin table and rate average")
	cmd.Flags().BoolVar(&historyShowPasswords, "show-passwords", false, "show recovered passwords")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 || historyWindow < 0 {
		return fmt.Errorf("--last and --window must be >= 0")
	}

	cfg := model.HistoryConfig{
		Algorithm: strings.ToLower(historyAlgorithm),
		Since:     sinceTime,
		Last:      historyLast,
		Window:    historyWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	w := cmd.OutOrStdout()
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderSessionTable(w, report.Sessions, historyShowPasswords); err != nil {
		return err
	}
	if err := stats.RenderRateTrend(w, report.Sessions, historyWindow); err != nil {
		return err
	}
	return stats.RenderOriginTable(w, report.OriginsWindow)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logErrf("Wrote %s\n", path)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		logErrln("Edit the file manually:", path)
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}
