// Package commands defines the cobra subcommands.
package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrCommandLogUnavailable    = "command log unavailable"
	ErrCacheStoreUnavailable    = "cache store unavailable"
	ErrKeyRequired              = "--key is required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No commands recorded yet."
	MsgNoCachedTranslations     = "No cached translations."
)
