package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/cpick/internal/capture"
	"github.com/timvw/cpick/internal/config"
	telem "github.com/timvw/cpick/internal/otel"
)

var flagDebug bool

var rootCmd = &cobra.Command{
	Use:   "cpick",
	Short: "Pick colours from anywhere on screen",
	Long: `cpick samples the screen pixel under the mouse pointer about twenty
times a second and shows it as HEX, RGB, HSL, HSV, HSI, CMYK, CIE LAB,
CIELCh, YCbCr and CIE XYZ.

Press space to freeze the colour, c to copy it and keep it in the history,
s and o to save or load the history as a JSON palette.

Configuration is loaded from .cpick.yaml, ~/.config/cpick/config.yaml or
CPICK_* environment variables.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", envOrDefault("CPICK_DEBUG", "") != "",
		"log capture and sampling diagnostics")
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// newLogger discards everything unless --debug is set. With a path, output
// goes to that file (the TUI owns the terminal); otherwise to stderr.
func newLogger(path string) (*slog.Logger, func(), error) {
	if !flagDebug {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("debug log: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), closeFn, nil
}

// env is what every command needs after configuration is loaded.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	tel     *telem.Telemetry
	runner  capture.Runner
	goos    string
	cleanup func()
}

func (e *env) metrics() *telem.Metrics {
	if e.tel == nil {
		return nil
	}
	return e.tel.Metrics
}

func (e *env) chain() *capture.Chain {
	return capture.ForPlatform(e.cfg.Platform, capture.Options{
		Runner:  e.runner,
		Logger:  e.logger,
		Metrics: e.metrics(),
	})
}

// setup loads configuration and builds logging and telemetry. debugLog
// selects whether --debug output goes to the configured file.
func setup(ctx context.Context, debugLog bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logPath := ""
	if debugLog {
		logPath = cfg.DebugLog
	}
	logger, closeLog, err := newLogger(logPath)
	if err != nil {
		return nil, err
	}
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", "file", cfg.ConfigFile)
	}

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.Config{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		tel:    tel,
		runner: capture.ExecRunner{Timeout: cfg.CommandTimeoutDuration},
		goos:   capture.Resolve(cfg.Platform),
		cleanup: func() {
			_ = tel.Shutdown(context.Background())
			closeLog()
		},
	}, nil
}
