package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"tradejournal/internal/api"
	"tradejournal/internal/config"
	"tradejournal/internal/logging"
	"tradejournal/pkg/ledger"
	"tradejournal/pkg/review"
	"tradejournal/pkg/tradejournal"
)

var getppid = os.Getppid
var sleep = time.Sleep
var exit = os.Exit

// serverFlags are command-line overrides applied on top of config.Load.
type serverFlags struct {
	dataDir string
	dbPath  string
	host    string
	webDir  string
	port    int
}

func registerFlags(fs *flag.FlagSet) *serverFlags {
	f := &serverFlags{}
	fs.StringVar(&f.dataDir, "data-dir", "", "Directory for storing database and application data")
	fs.StringVar(&f.dbPath, "db", "", "Path to the journal database (overrides data-dir)")
	fs.IntVar(&f.port, "port", config.DefaultPort, "Port to run the server on")
	fs.StringVar(&f.host, "host", config.DefaultHost, "Host to bind the server to")
	fs.StringVar(&f.webDir, "web-dir", "", "Directory for SPA static files (optional)")
	return f
}

// apply copies only the flags that were set on the command line.
func (f *serverFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "data-dir":
			cfg.DataDir = f.dataDir
		case "db":
			cfg.DBPath = f.dbPath
		case "port":
			cfg.Port = f.port
		case "host":
			cfg.Host = f.host
		case "web-dir":
			cfg.WebDir = f.webDir
		}
	})
}

// newReviewer returns the configured review provider, or nil when journal
// review is disabled.
func newReviewer(cfg config.ReviewConfig, logger *slog.Logger) review.Provider {
	provider, err := review.New(review.Config{
		Provider: cfg.Provider,
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	}, logger)
	switch {
	case errors.Is(err, review.ErrNotConfigured):
		return nil
	case err != nil:
		logger.Warn("journal review disabled", "err", err)
		return nil
	}
	logger.Info("journal review enabled", "provider", provider.Name())
	return provider
}

func main() {
	flags := registerFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	flags.apply(flag.CommandLine, &cfg)

	resolvedDataDir, err := cfg.ResolveDataDir()
	if err != nil {
		slog.Error("failed to resolve data directory", "err", err)
		os.Exit(1)
	}
	logDir := filepath.Join(resolvedDataDir, "logs")
	logger, writer, err := logging.NewLogger(logDir, slog.LevelInfo)
	if err != nil {
		slog.Error("failed to initialize logger", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("failed to close log writer", "err", err)
		}
	}()

	resolvedDBPath, err := cfg.ResolveDBPath()
	if err != nil {
		logger.Error("failed to resolve db path", "err", err)
		os.Exit(1)
	}
	averaging, err := ledger.ParseAveragingStrategy(cfg.Averaging)
	if err != nil {
		logger.Error("invalid averaging strategy", "err", err)
		os.Exit(1)
	}
	reviewer := newReviewer(cfg.Review, logger)

	core, err := tradejournal.OpenWithOptions(tradejournal.Options{
		DBPath:         resolvedDBPath,
		Logger:         logger,
		CommissionRate: &cfg.CommissionRate,
		Averaging:      averaging,
		Reviewer:       reviewer,
	})
	if err != nil {
		logger.Error("failed to initialize core", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := core.Close(); err != nil {
			logger.Error("failed to close core", "err", err)
		}
	}()

	if os.Getenv("TRADE_JOURNAL_PARENT_WATCH") == "1" {
		go watchParent(logger)
	}

	addr := cfg.Addr()
	handler := api.NewRouter(core)
	if resolvedWebDir := resolveWebDir(cfg.WebDir); resolvedWebDir != "" {
		logger.Info("serving SPA", "web_dir", resolvedWebDir)
		handler = api.WithSPA(handler, resolvedWebDir)
	}
	handler = middleware.Compress(5)(handler)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "addr", addr, "db_path", resolvedDBPath, "averaging", core.Averaging())
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}
}

func watchParent(logger *slog.Logger) {
	for {
		sleep(1 * time.Second)
		if getppid() == 1 {
			logger.Info("parent process exited; shutting down")
			exit(0)
		}
	}
}

func resolveWebDir(input string) string {
	if input != "" {
		if dirExists(input) {
			return input
		}
		return ""
	}

	candidates := []string{"static", "../static"}
	for _, candidate := range candidates {
		if dirExists(candidate) {
			return candidate
		}
	}
	if exe, err := os.Executable(); err == nil {
		base := filepath.Dir(exe)
		for _, candidate := range candidates {
			path := filepath.Join(base, candidate)
			if dirExists(path) {
				return path
			}
		}
	}
	return ""
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
