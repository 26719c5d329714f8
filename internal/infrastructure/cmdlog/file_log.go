// Package cmdlog persists the append-only record of executed commands as
// daily JSONL files, one JSON object per line.
package cmdlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

const (
	logFilePrefix = "history_"
	logFileSuffix = ".jsonl"
)

// FileLog appends entries to logs/history_YYYY-MM-DD.jsonl under dir.
// Files are only ever appended to; rewrites happen nowhere but Clear.
type FileLog struct {
	dir           string
	retentionDays int
	mu            sync.Mutex
	now           func() time.Time
}

// NewFileLog creates a FileLog rooted at dir. Files older than
// retentionDays are pruned opportunistically on append; zero or negative
// retention disables pruning.
func NewFileLog(dir string, retentionDays int) *FileLog {
	return &FileLog{dir: dir, retentionDays: retentionDays, now: time.Now}
}

// Append writes one entry to today's log file and flushes it to disk
// before returning.
func (l *FileLog) Append(entry domain.LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}

	path := filepath.Join(l.dir, l.fileName(l.now()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.LogFilePermissions)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync log file: %w", err)
	}

	l.prune()
	return nil
}

// Records returns entries newest first, filtered by a case-insensitive
// substring match on prompt or command when search is nonempty. A limit
// of zero or less means no cap. Unparseable lines are skipped, so a torn
// final line after a crash never poisons the rest of the log.
func (l *FileLog) Records(limit int, search string) ([]domain.LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.collect(limit, search)
}

// ExportJSON renders every entry, newest first, as an indented JSON array.
func (l *FileLog) ExportJSON() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.collect(0, "")
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Clear removes every log file but keeps the directory.
func (l *FileLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	files, err := l.logFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove log file: %w", err)
		}
	}
	return nil
}

// Dir returns the directory the log files live in.
func (l *FileLog) Dir() string {
	return l.dir
}

func (l *FileLog) fileName(t time.Time) string {
	return logFilePrefix + t.UTC().Format(domain.LogFileDateFormat) + logFileSuffix
}

func (l *FileLog) collect(limit int, search string) ([]domain.LogEntry, error) {
	files, err := l.logFiles()
	if err != nil {
		return nil, err
	}
	// Newest file first; the date in the name sorts lexicographically.
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	needle := strings.ToLower(strings.TrimSpace(search))
	var entries []domain.LogEntry
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed := parseLines(data)
		for i := len(parsed) - 1; i >= 0; i-- {
			entry := parsed[i]
			if needle != "" && !matches(entry, needle) {
				continue
			}
			entries = append(entries, entry)
			if limit > 0 && len(entries) >= limit {
				return entries, nil
			}
		}
	}
	return entries, nil
}

func (l *FileLog) logFiles() ([]string, error) {
	items, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	var files []string
	for _, item := range items {
		name := item.Name()
		if item.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileSuffix) {
			continue
		}
		files = append(files, filepath.Join(l.dir, name))
	}
	return files, nil
}

// prune drops files whose date component is past retention. Best effort:
// a failed removal never fails the append that triggered it.
func (l *FileLog) prune() {
	if l.retentionDays <= 0 {
		return
	}
	cutoff := l.now().UTC().AddDate(0, 0, -l.retentionDays)

	files, err := l.logFiles()
	if err != nil {
		return
	}
	for _, path := range files {
		name := filepath.Base(path)
		raw := strings.TrimSuffix(strings.TrimPrefix(name, logFilePrefix), logFileSuffix)
		day, err := time.Parse(domain.LogFileDateFormat, raw)
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(path)
		}
	}
}

func parseLines(data []byte) []domain.LogEntry {
	var entries []domain.LogEntry
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var entry domain.LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func matches(entry domain.LogEntry, needle string) bool {
	return strings.Contains(strings.ToLower(entry.Prompt), needle) ||
		strings.Contains(strings.ToLower(entry.Command), needle)
}

var _ ports.CommandLog = (*FileLog)(nil)
