package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	runLogPrefix = "companyscout-"
	runLogSuffix = ".log"
	runLogStamp  = "20060102T150405Z"
)

// RunLogPath returns the log file path for a run started at ts.
func RunLogPath(dir string, ts time.Time) string {
	return filepath.Join(dir, runLogPrefix+ts.UTC().Format(runLogStamp)+runLogSuffix)
}

// PruneRunLogs removes run logs in dir that started more than retentionDays
// before now and returns how many were removed. The start time is read from
// the file name; names that do not parse fall back to the modification time.
// keep is never removed and retentionDays <= 0 disables pruning.
func PruneRunLogs(logger *slog.Logger, dir string, retentionDays int, keep string, now time.Time) int {
	dir = strings.TrimSpace(dir)
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	keepAbs, _ := filepath.Abs(keep)

	matches, err := filepath.Glob(filepath.Join(dir, runLogPrefix+"*"+runLogSuffix))
	if err != nil {
		return 0
	}
	removed := 0
	for _, path := range matches {
		if abs, err := filepath.Abs(path); err == nil && abs == keepAbs {
			continue
		}
		started, ok := runLogTime(path)
		if !ok {
			continue
		}
		if !started.Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "run log could not be pruned", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check permissions on [paths] log_dir"),
				String(FieldImpact, "old run log stays on disk"),
			)
			continue
		}
		removed++
	}
	if removed > 0 && logger != nil {
		logger.Debug("old run logs pruned",
			Int("removed", removed),
			Int("retention_days", retentionDays),
			String(FieldEventType, "log_pruned"),
		)
	}
	return removed
}

func runLogTime(path string) (time.Time, bool) {
	name := filepath.Base(path)
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, runLogPrefix), runLogSuffix)
	if ts, err := time.Parse(runLogStamp, stamp); err == nil {
		return ts, true
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
