// Package main provides the CLI entrypoint for crackle.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/verte-zerg/crackle/internal/attack"
	"github.com/verte-zerg/crackle/internal/candidate"
	"github.com/verte-zerg/crackle/internal/config"
	"github.com/verte-zerg/crackle/internal/hashing"
	"github.com/verte-zerg/crackle/internal/model"
	"github.com/verte-zerg/crackle/internal/stats"
	"github.com/verte-zerg/crackle/internal/store"
	"github.com/verte-zerg/crackle/internal/tui"
)

const verboseLogEvery = 1000

var (
	attackHash      string
	attackDict      string
	attackAlgorithm string
	attackNoTUI     bool
	attackQuiet     bool
	attackNoHistory bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "crackle",
		Short:         "Dictionary attack simulator with candidate generation",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runAttackCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	rootCmd.Flags().StringVar(&attackHash, "hash", "", "target digest (hex)")
	rootCmd.Flags().StringVar(&attackDict, "dict", "", "path to dictionary file")
	rootCmd.Flags().StringVar(&attackAlgorithm, "algorithm", "", "hash algorithm (detected from digest length if empty)")
	rootCmd.Flags().BoolVar(&attackNoTUI, "no-tui", false, "log progress instead of showing the dashboard")
	rootCmd.Flags().BoolVar(&attackQuiet, "quiet", false, "only log warnings and errors")
	rootCmd.Flags().BoolVar(&attackNoHistory, "no-history", false, "do not record the session in history")
	addGeneratorFlags(rootCmd)

	rootCmd.AddCommand(newCandidatesCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newAlgorithmsCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runAttackCmd(cmd *cobra.Command, _ []string) error {
	if attackHash == "" && attackDict == "" {
		return cmd.Help()
	}
	if attackHash == "" {
		return fmt.Errorf("--hash is required")
	}
	if attackDict == "" {
		return fmt.Errorf("--dict is required")
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "algorithm", &attackAlgorithm, fileCfg.Attack.Algorithm)
	opts, err := buildOptions(cmd, fileCfg.Attack)
	if err != nil {
		return err
	}

	algorithm, _, err := hashing.Resolve(attackAlgorithm, attackHash)
	if err != nil {
		return err
	}
	req := attack.Request{
		TargetDigest:   attackHash,
		DictionaryPath: config.ExpandPath(attackDict),
		Algorithm:      algorithm,
		Charset:        genCharset,
		Options:        opts,
	}

	useTUI := !attackNoTUI && term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))

	var logOut io.Writer = os.Stderr
	if useTUI {
		f, err := openLogFile(config.DefaultLogPath())
		if err != nil {
			logErrf("failed to open log file, logging disabled: %v\n", err)
			logOut = io.Discard
		} else {
			defer func() {
				if cerr := f.Close(); cerr != nil {
					logErrf("failed to close log file: %v\n", cerr)
				}
			}()
			logOut = f
		}
	}
	logger, err := buildLogger(cmd, fileCfg.Log, logOut, attackQuiet)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var (
		result    attack.Result
		attackErr error
	)
	if useTUI {
		result, attackErr, err = runWithDashboard(ctx, req, logger)
		if err != nil {
			return err
		}
	} else {
		result, attackErr = runHeadless(ctx, req, logger)
	}

	if result.Outcome != 0 && !attackNoHistory {
		saveSession(ctx, req, result, logger)
	}
	if err := printResult(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if attackErr != nil && !errors.Is(attackErr, context.Canceled) {
		return attackErr
	}
	return nil
}

func runHeadless(ctx context.Context, req attack.Request, logger *slog.Logger) (attack.Result, error) {
	ctrl := attack.New(
		attack.WithLogger(logger),
		attack.WithSink(attack.LogSink{Logger: logger, Every: verboseLogEvery}),
	)
	stopSignals := watchSignals(ctx, ctrl, logger)
	defer stopSignals()
	return ctrl.Attack(ctx, req)
}

// runWithDashboard runs the attack worker and the dashboard side by side.
// The returned error is a dashboard failure; the attack error is separate.
func runWithDashboard(ctx context.Context, req attack.Request, logger *slog.Logger) (attack.Result, error, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := tui.NewProgramSink(tui.DefaultSinkInterval)
	ctrl := attack.New(
		attack.WithLogger(logger),
		attack.WithSink(attack.MultiSink{sink, attack.LogSink{Logger: logger, Every: verboseLogEvery}}),
	)
	view := tui.NewModel(ctrl, tui.Info{
		Target:     req.TargetDigest,
		Algorithm:  req.Algorithm,
		Dictionary: req.DictionaryPath,
	})
	program := tea.NewProgram(view, tea.WithAltScreen())
	sink.Attach(program)

	var (
		result    attack.Result
		attackErr error
		g         errgroup.Group
	)
	g.Go(func() error {
		result, attackErr = ctrl.Attack(ctx, req)
		program.Send(tui.DoneMsg{Result: result, Err: attackErr})
		return nil
	})
	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrInterrupted) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})
	err := g.Wait()
	return result, attackErr, err
}

func printResult(w io.Writer, res attack.Result) error {
	var line string
	switch res.Outcome {
	case attack.OutcomeFound:
		line = fmt.Sprintf("Password found: %s", res.Password)
	case attack.OutcomeNotFound:
		line = "Password not found"
	case attack.OutcomeCancelled:
		line = "Attack stopped"
	case attack.OutcomeAborted:
		line = "Attack aborted"
	default:
		return nil
	}
	st := res.Stats
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Algorithm: %s  Attempts: %s  Skipped: %s  Elapsed: %s  Rate: %s\n",
		res.Algorithm,
		humanize.Comma(st.Attempts),
		humanize.Comma(st.Skipped),
		st.Elapsed.Round(time.Millisecond),
		stats.FormatRate(st.AttemptsPerSecond),
	)
	return err
}

func saveSession(ctx context.Context, req attack.Request, res attack.Result, logger *slog.Logger) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("history unavailable", slog.String("error", err.Error()))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	rec, origins := sessionRecord(req, res)
	if err := st.InsertSession(context.WithoutCancel(ctx), rec, origins); err != nil {
		logger.Warn("failed to save session", slog.String("error", err.Error()))
	}
}

func sessionRecord(req attack.Request, res attack.Result) (model.SessionRecord, []model.OriginCount) {
	rec := model.SessionRecord{
		ID:             res.SessionID,
		StartedAt:      res.StartedAt,
		EndedAt:        res.EndedAt,
		Algorithm:      res.Algorithm,
		Target:         req.TargetDigest,
		DictionaryPath: req.DictionaryPath,
		Outcome:        res.Outcome.String(),
		Attempts:       res.Stats.Attempts,
		Skipped:        res.Stats.Skipped,
		DurationMs:     res.Stats.Elapsed.Milliseconds(),
	}
	if res.Found() {
		rec.Password = res.Password
	}
	origins := make([]model.OriginCount, 0, len(res.Stats.ByOrigin))
	for _, origin := range candidate.Origins {
		if n := res.Stats.ByOrigin[origin]; n > 0 {
			origins = append(origins, model.OriginCount{Origin: string(origin), Attempts: n})
		}
	}
	return rec, origins
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
