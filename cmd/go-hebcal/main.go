package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"syscall"
	"time"

	"github.com/tartampluch/go-hebcal/internal/config"
	"github.com/tartampluch/go-hebcal/internal/engine"
	"github.com/tartampluch/go-hebcal/internal/server"
)

// options carries the parsed CLI configuration for the service.
type options struct {
	port     string
	lang     string
	interval int
	sync     engine.SyncConfig
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)

	opts := options{}
	flag.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	flag.StringVar(&opts.lang, config.FlagLanguage, config.DefaultLanguage, config.FlagDescLanguage)
	flag.IntVar(&opts.interval, config.FlagInterval, config.DefaultSyncMin, config.FlagDescInterval)
	flag.StringVar(&opts.sync.Mode, config.FlagSource, config.SourceModeLocal, config.FlagDescSource)
	flag.StringVar(&opts.sync.LocalPath, config.FlagLocalPath, "", config.FlagDescLocal)
	flag.StringVar(&opts.sync.WebURL, config.FlagWebURL, "", config.FlagDescURL)
	flag.StringVar(&opts.sync.WebUser, config.FlagWebUser, "", config.FlagDescUser)
	flag.StringVar(&opts.sync.WebPass, config.FlagWebPass, "", config.FlagDescPass)
	flag.StringVar(&opts.sync.ReminderTrigger, config.FlagReminder, "", config.FlagDescReminder)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// We configure structured logging (slog) early to capture startup issues.
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires dependencies, starts the background sync worker, and serves HTTP
// until the context is cancelled.
func run(ctx context.Context, opts options) error {
	switch opts.sync.Mode {
	case config.SourceModeLocal:
		if opts.sync.LocalPath == "" {
			return fmt.Errorf(config.ErrLocalPathEmpty)
		}
	case config.SourceModeWeb:
		if opts.sync.WebURL == "" {
			return fmt.Errorf(config.ErrWebURLEmpty)
		}
	default:
		return fmt.Errorf("%s: %q", config.ErrModeUnsupport, opts.sync.Mode)
	}

	if !slices.Contains(config.SupportedLanguages, opts.lang) {
		slog.Warn(config.MsgLangFallback,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyLang, opts.lang,
		)
		opts.lang = config.DefaultLanguage
	}

	// Dependency Injection.
	translator := engine.NewTranslator(opts.lang)
	gen := &engine.Generator{
		Clock:         engine.RealClock{},
		Fetcher:       engine.NewHTTPFetcher(),
		FormatSummary: translator.Summary,
	}
	srv := server.NewCalendarServer(opts.port)

	// First sync before serving, so clients never see the stub for long.
	// A failure here is logged but not fatal: the worker retries on schedule.
	runSync(ctx, gen, srv, opts.sync)

	go syncWorker(ctx, gen, srv, opts)

	// Blocks until ctx is cancelled.
	return srv.Start(ctx)
}

// runSync performs one synchronization cycle and publishes the result.
func runSync(ctx context.Context, gen *engine.Generator, srv *server.CalendarServer, cfg engine.SyncConfig) {
	slog.Info(config.MsgSyncStarted, config.LogKeyComponent, config.CompMain)

	data, _, _, err := gen.RunSync(ctx, cfg)
	if err != nil {
		slog.Error(config.MsgSyncFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return
	}

	srv.Update(data)
	slog.Info(config.MsgSyncSuccess, config.LogKeyComponent, config.CompMain)
}

// syncWorker re-runs the synchronization on a fixed interval.
func syncWorker(ctx context.Context, gen *engine.Generator, srv *server.CalendarServer, opts options) {
	if opts.interval <= config.DisabledInterval {
		return
	}

	slog.Info(config.MsgWorkerStart,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyInterval, opts.interval,
	)

	ticker := time.NewTicker(time.Duration(opts.interval) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info(config.MsgWorkerStop, config.LogKeyComponent, config.CompMain)
			return
		case <-ticker.C:
			runSync(ctx, gen, srv, opts.sync)
		}
	}
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stdout.
	writers = append(writers, os.Stdout)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		// Use centralized permission constants for security.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
