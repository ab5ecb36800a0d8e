package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultPrefix    = "tradejournal"
	defaultRetention = 7
	fileDateLayout   = "20060102"
)

const (
	envLogLevel  = "TRADE_JOURNAL_LOG_LEVEL"
	envLogFormat = "TRADE_JOURNAL_LOG_FORMAT"
)

// Options configures a DailyWriter.
type Options struct {
	Dir           string
	Prefix        string
	RetentionDays int
	// Location decides where a day begins. Nil means Asia/Manila so that
	// one file holds one PSE trading day.
	Location *time.Location
	Now      func() time.Time
}

// DailyWriter appends to one file per day and prunes files past retention.
type DailyWriter struct {
	opts Options

	mu   sync.Mutex
	day  string
	path string
	file *os.File
}

// NewDailyWriter creates a daily rotating writer in dir.
func NewDailyWriter(dir string, retentionDays int) (*DailyWriter, error) {
	return OpenDailyWriter(Options{Dir: dir, RetentionDays: retentionDays})
}

// OpenDailyWriter creates the log directory and opens today's file.
func OpenDailyWriter(opts Options) (*DailyWriter, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("log dir is required")
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = defaultRetention
	}
	if opts.Location == nil {
		opts.Location = manila()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}
	w := &DailyWriter{opts: opts}
	if err := w.rotate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer.
func (w *DailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.rotate(); err != nil {
		return 0, err
	}
	return w.file.Write(p)
}

// Path returns the file currently written to.
func (w *DailyWriter) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Close closes the current file.
func (w *DailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.day = ""
	return err
}

// rotate opens the file for the current day. Callers hold mu.
func (w *DailyWriter) rotate() error {
	now := w.opts.Now().In(w.opts.Location)
	day := now.Format(fileDateLayout)
	if day == w.day && w.file != nil {
		return nil
	}
	if w.file != nil {
		_ = w.file.Close()
	}
	path := filepath.Join(w.opts.Dir, fileName(w.opts.Prefix, day))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		w.file = nil
		return err
	}
	w.day, w.path, w.file = day, path, file
	w.prune(now)
	return nil
}

func (w *DailyWriter) prune(now time.Time) {
	entries, err := os.ReadDir(w.opts.Dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -w.opts.RetentionDays).Format(fileDateLayout)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		day, ok := fileDay(w.opts.Prefix, entry.Name())
		if ok && day < cutoff {
			_ = os.Remove(filepath.Join(w.opts.Dir, entry.Name()))
		}
	}
}

func fileName(prefix, day string) string {
	return prefix + "-" + day + ".log"
}

// fileDay extracts YYYYMMDD from a log file name owned by prefix.
func fileDay(prefix, name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, prefix+"-")
	if !ok {
		return "", false
	}
	day, ok := strings.CutSuffix(rest, ".log")
	if !ok || len(day) != len(fileDateLayout) {
		return "", false
	}
	if _, err := time.Parse(fileDateLayout, day); err != nil {
		return "", false
	}
	return day, true
}

func manila() *time.Location {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		return time.FixedZone("Asia/Manila", 8*60*60)
	}
	return loc
}

// NewLogger creates the process logger writing to stdout and a daily file in
// logDir, and installs it as the slog default.
func NewLogger(logDir string, level slog.Level) (*slog.Logger, *DailyWriter, error) {
	writer, err := NewDailyWriter(logDir, defaultRetention)
	if err != nil {
		return nil, nil, err
	}
	logger := New(io.MultiWriter(os.Stdout, writer), level)
	slog.SetDefault(logger)
	return logger, writer, nil
}

// New creates a logger over w. TRADE_JOURNAL_LOG_LEVEL and
// TRADE_JOURNAL_LOG_FORMAT override level and format.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(newHandler(w, resolveLevel(level))).With("service", defaultPrefix)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func resolveLevel(fallback slog.Level) slog.Level {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(envLogLevel)))
	switch value {
	case "":
		return fallback
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if i, err := strconv.Atoi(value); err == nil {
		return slog.Level(i)
	}
	return fallback
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(envLogFormat)), "json") {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}
