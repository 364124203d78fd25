package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CleanupOldLogs removes files in dir matching pattern whose modification time
// is older than retentionDays. A retentionDays value of 0 disables pruning.
// The file named by keep is never removed.
func CleanupOldLogs(logger *slog.Logger, dir, pattern, keep string, retentionDays int) int {
	if retentionDays <= 0 || strings.TrimSpace(dir) == "" {
		return 0
	}
	if logger == nil {
		logger = NewNop()
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == keep {
			continue
		}
		if matched, err := filepath.Match(pattern, entry.Name()); err != nil || !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("log retention remove failed; file remains",
				String("path", path),
				Error(err),
				String(FieldEventType, "log_retention_failed"),
			)
			continue
		}
		removed++
		logger.Debug("log pruned", String("path", path), String(FieldEventType, "log_pruned"))
	}
	return removed
}
