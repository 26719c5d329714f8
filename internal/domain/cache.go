package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CacheEntry stores one cached translation keyed by prompt, model and shell.
type CacheEntry struct {
	Key       string    `json:"key"`
	Prompt    string    `json:"prompt"`
	Command   string    `json:"command"`
	Model     string    `json:"model"`
	Shell     string    `json:"shell"`
	CreatedAt time.Time `json:"created_at"`
}

// CacheKey derives the cache address for a translation. The same prompt
// against a different shell or model is a different entry.
func CacheKey(prompt string, shell TargetShell, model string) string {
	sum := sha256.Sum256([]byte(prompt + "|" + string(shell) + "|" + model))
	return hex.EncodeToString(sum[:])
}
