package domain

// Config mirrors the smartshell config.yaml tree.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Preferences         Preferences        `yaml:"preferences"`
	Models              []ModelDefinition  `yaml:"models"`
	Execution           ExecutionSettings  `yaml:"execution"`
	Log                 LogSettings        `yaml:"log"`
	Cache               CacheSettings      `yaml:"cache"`
	Phrasebook          PhrasebookSettings `yaml:"phrasebook"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel         string `yaml:"default_model"`
	FallbackToPhrasebook bool   `yaml:"fallback_to_phrasebook"`
	CopyToClipboard      bool   `yaml:"copy_to_clipboard"`
	OSHint               string `yaml:"os_hint"`
}

// ExecutionSettings controls how confirmed commands run.
type ExecutionSettings struct {
	Shell           string `yaml:"shell"`
	TimeoutSeconds  int    `yaml:"timeout"`
	GraceMillis     int    `yaml:"grace_period_ms"`
	OutputTailLines int    `yaml:"output_tail_lines"`
}

// LogSettings configures the append-only command log and its optional index.
type LogSettings struct {
	Dir           string `yaml:"dir"`
	SQLiteIndex   bool   `yaml:"sqlite_index"`
	RetentionDays int    `yaml:"retention_days"`
}

// CacheSettings bounds the translation cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

// PhrasebookSettings points at the offline rule file.
type PhrasebookSettings struct {
	RulesFile string `yaml:"rules_file"`
}
