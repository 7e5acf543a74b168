package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"companyscout/internal/config"
	"companyscout/internal/logging"
	"companyscout/internal/services"
)

func TestConsoleLoggerFormatsSubjectAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithStage(ctx, "scrape")
	ctx = services.WithCategory(ctx, "energy-efficiency")
	logger = logging.NewComponentLogger(logging.WithContext(ctx, logger), "scraper")
	logger.Info("page fetched", logging.Int("cards", 12), logging.String("url", "https://example.com/a b"))

	line := buf.String()
	for _, fragment := range []string{"INFO [scraper] energy-efficiency (scrape) – page fetched", "cards=12", `url="https://example.com/a b"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "run-42") {
		t.Fatalf("run id should be hidden at info level: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no colour for non-terminal writer: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerDebugShowsRunIDAndSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.WithContext(services.WithRunID(context.Background(), "run-7"), logger)
	logger.Debug("cache miss")

	line := buf.String()
	if !strings.Contains(line, "DEBUG") || !strings.Contains(line, "run_id=run-7") {
		t.Fatalf("unexpected debug line: %q", line)
	}
	if !strings.Contains(line, "logger_test.go:") {
		t.Fatalf("expected caller information at debug level: %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logging.WarnWithContext(logger, "registry slow", "registry_slow")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	for _, fragment := range []string{"registry slow", "event_type=registry_slow", "error_hint=", "impact="} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
}

func TestJSONConsoleAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "run.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Console: &buf, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("lookup failed", logging.Error(errors.New("503")), logging.String(logging.FieldCategory, "mobility"))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("console output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "error" || entry["msg"] != "lookup failed" || entry["category"] != "mobility" {
		t.Fatalf("unexpected JSON entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key: %v", entry)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"error":"503"`) {
		t.Fatalf("expected error in file log, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesRunLogAndPrunesOldOnes(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.RetentionDays = 7

	stale := filepath.Join(cfg.Paths.LogDir, "companyscout-20000101T000000Z.log")
	if err := os.WriteFile(stale, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write stale log: %v", err)
	}
	old := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	unrelated := filepath.Join(cfg.Paths.LogDir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}
	if err := os.Chtimes(unrelated, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale log to be pruned, stat err=%v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Fatalf("expected unrelated file to remain: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(cfg.Paths.LogDir, "companyscout-*.log"))
	if len(matches) != 1 {
		t.Fatalf("expected exactly one run log, got %v", matches)
	}
}

func TestRunLogPath(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	got := logging.RunLogPath("/var/log/cs", ts)
	if got != filepath.Join("/var/log/cs", "companyscout-20260304T050607Z.log") {
		t.Fatalf("unexpected run log path: %q", got)
	}
}

func TestPruneRunLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	touch := func(name string, mtime time.Time) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
		return path
	}

	// Name stamps win over modification times.
	staleByName := touch("companyscout-20260201T000000Z.log", now)
	freshByName := touch("companyscout-20260309T000000Z.log", now.AddDate(-1, 0, 0))
	staleByMtime := touch("companyscout-manual.log", now.AddDate(0, 0, -20))
	current := logging.RunLogPath(dir, now.AddDate(0, 0, -40))
	touch(filepath.Base(current), now)
	other := touch("notes-20000101.log", now.AddDate(-1, 0, 0))

	if n := logging.PruneRunLogs(nil, dir, 0, "", now); n != 0 {
		t.Fatalf("expected no pruning when disabled, removed %d", n)
	}

	if n := logging.PruneRunLogs(nil, dir, 7, current, now); n != 2 {
		t.Fatalf("removed %d files, want 2", n)
	}
	for _, path := range []string{staleByName, staleByMtime} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected %s to be pruned, stat err=%v", filepath.Base(path), err)
		}
	}
	for _, path := range []string{freshByName, current, other} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to remain: %v", filepath.Base(path), err)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should never be enabled")
	}
	logger.Error("ignored")
}
