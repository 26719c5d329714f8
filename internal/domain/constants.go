package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// LogFilePermissions is the permission for command log files (rw-r--r--)
	LogFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultCommandTimeout bounds a confirmed command's wall-clock run time
	DefaultCommandTimeout = 600 * time.Second
	// DefaultGracePeriod is how long a signalled process group may linger
	// between the polite signal and the hard kill
	DefaultGracePeriod = 700 * time.Millisecond
	// DefaultHTTPClientTimeout is the timeout for translation HTTP requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Execution output constants
const (
	// DefaultOutputTailLines is how many trailing output lines a record keeps
	DefaultOutputTailLines = 40
)

// Cache constants
const (
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
	// DefaultCacheTTL is how long a cached translation stays fresh
	DefaultCacheTTL = 24 * time.Hour
)

// Command log constants
const (
	// DefaultHistoryLimit is the default number of log entries to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// DefaultLogRetentionDays is the default number of days to retain log files
	DefaultLogRetentionDays = 30
	// MaxHistoryAnalysisRecords is the maximum number of entries to analyze
	MaxHistoryAnalysisRecords = 1000
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default completion budget for translations
	DefaultMaxTokens = 256
	// DefaultTemperature keeps translations close to deterministic
	DefaultTemperature = 0.2
	// DefaultContextSize is the default model context window
	DefaultContextSize = 2048
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// LogFileDateFormat names daily command log files
	LogFileDateFormat = "2006-01-02"
)
