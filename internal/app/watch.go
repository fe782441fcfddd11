package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/config"
	"github.com/blackwell-systems/writewatch/internal/logging"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/store"
	"github.com/blackwell-systems/writewatch/internal/watcher"
)

var (
	watchDaemon      bool
	watchDebounce    time.Duration
	watchStop        bool
	watchQuiet       bool
	watchNotify      bool
	watchSave        string
	watchMetricsAddr string
	watchTone        string
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-analyze a document on save and alert on regressions",
	Long: `Watch a document and re-run the analysis every time it is saved. When
the score drops, new high-severity issues appear or readability falls a
band, desktop notifications and/or terminal alerts are emitted.

Examples:
  writewatch watch draft.md                  # run in foreground (ctrl-c to stop)
  writewatch watch draft.md --daemon         # run in background, write PID file
  writewatch watch draft.md --save <doc-id>  # record each analysis on a stored document
  writewatch watch draft.md --metrics-addr :9090
  writewatch watch --stop                    # stop the background daemon`,
	Args: func(cmd *cobra.Command, args []string) error {
		if watchStop {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Wait this long after the last write before re-analyzing (default from config)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", true, "Send desktop notifications")
	watchCmd.Flags().StringVar(&watchSave, "save", "", "Record every analysis on this stored document ID")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	watchCmd.Flags().StringVar(&watchTone, "tone", "", "Target tone passed to the analysis")
	rootCmd.AddCommand(watchCmd)
}

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon(cmd.OutOrStdout())
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	debounce := e.cfg.Watch.Debounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}
	if debounce < 50*time.Millisecond {
		return fmt.Errorf("debounce must be at least 50ms, got %s", debounce)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer cancel()

	if watchDaemon {
		return runDaemon(ctx, e, args[0], debounce)
	}
	return runForeground(ctx, e, args[0], debounce)
}

// newWatcher wires the watcher to the pipeline, the optional document
// store and the alert sink.
func newWatcher(e *env, path string, debounce time.Duration, logger *slog.Logger, alertFn func(watcher.Alert)) (*watcher.Watcher, func(), error) {
	opts := watcher.Options{
		Debounce:  debounce,
		ScoreDrop: e.cfg.Watch.ScoreDrop,
		Request:   pipeline.Request{Tone: watchTone},
		Logger:    logger,
	}

	cleanup := func() {}
	if watchSave != "" {
		db, err := e.openStore()
		if err != nil {
			return nil, nil, err
		}
		if _, err := db.GetDocument(watchSave); err != nil {
			db.Close()
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil, fmt.Errorf("document %s not found", watchSave)
			}
			return nil, nil, err
		}
		cleanup = func() { _ = db.Close() }
		opts.OnSnapshot = func(_ *watcher.WatchState, resp pipeline.Response) {
			if err := syncDocument(db, watchSave, resp); err != nil {
				logger.Warn("recording analysis failed", "error", err, "document", watchSave)
			}
		}
	}

	w, err := watcher.New(path, e.engine(), opts, alertFn)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return w, cleanup, nil
}

// syncDocument records resp on a stored document and refreshes its score.
func syncDocument(db *store.DB, docID string, resp pipeline.Response) error {
	if _, err := recordAnalysis(db, docID, resp); err != nil {
		return err
	}
	words, score := resp.Metrics.Lexical.WordCount, resp.Score
	_, err := db.UpdateDocument(docID, store.DocumentUpdate{WordCount: &words, Score: &score})
	return err
}

// serveMetrics exposes the Prometheus registry until ctx is done.
func serveMetrics(ctx context.Context, addr string, logger *slog.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err, "addr", addr)
		}
	}()
}

// runForeground runs the watcher in the foreground with live terminal output.
func runForeground(ctx context.Context, e *env, path string, debounce time.Duration) error {
	out := e.out
	alertFn := func(a watcher.Alert) {
		if watchNotify {
			_ = watcher.Notify(a)
		}
		if !watchQuiet {
			printAlert(out, a)
		}
	}

	w, cleanup, err := newWatcher(e, path, debounce, e.logger, alertFn)
	if err != nil {
		return err
	}
	defer cleanup()

	serveMetrics(ctx, watchMetricsAddr, e.logger)

	initial, err := w.Prime(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot failed: %w", err)
	}
	if !watchQuiet {
		fmt.Fprintf(out, "writewatch watching %s... (debounce %s)\n", path, debounce)
		fmt.Fprintf(out, "[%s] %s score %d, %d words, %s, %d suggestions\n",
			time.Now().Format("15:04:05"),
			checkMark(),
			initial.Score,
			initial.WordCount,
			initial.Band,
			initial.SuggestionCount)
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Fprintln(out, "\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon sets up PID and log files, then runs the watcher. The actual
// backgrounding should be done by the caller (nohup, &, etc.) since Go
// cannot reliably fork.
func runDaemon(ctx context.Context, e *env, path string, debounce time.Duration) error {
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file.
		_ = os.Remove(pidFilePath())
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := logging.New(logFile, e.cfg.Log.Level, e.cfg.Log.Format)
	logger.Info("daemon started", "pid", pid, "path", path, "debounce", debounce)

	alertFn := func(a watcher.Alert) {
		if watchNotify {
			_ = watcher.Notify(a)
		}
		logger.Info("alert", "level", a.Level, "title", a.Title, "message", a.Message)
	}

	w, cleanup, err := newWatcher(e, path, debounce, logger, alertFn)
	if err != nil {
		return err
	}
	defer cleanup()

	serveMetrics(ctx, watchMetricsAddr, logger)

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("daemon stopped")
		return nil
	}
	return err
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// printAlert formats and prints an alert to the terminal.
func printAlert(w io.Writer, a watcher.Alert) {
	timestamp := a.Time.Format("15:04:05")
	fmt.Fprintf(w, "[%s] %s %s\n", timestamp, alertIcon(a.Level), a.Title)
	if a.Message != "" {
		fmt.Fprintf(w, "         %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case "critical":
		return "\xf0\x9f\x94\xb4" // red circle
	case "warning":
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning sign
	case "info":
		return "\xe2\x9c\x93" // check mark
	default:
		return " "
	}
}

func checkMark() string {
	return "\xe2\x9c\x93"
}
