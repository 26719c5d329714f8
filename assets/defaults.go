package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultPhrasesYAML contains the embedded default phrasebook rules.
//
//go:embed defaults/phrases.yaml
var DefaultPhrasesYAML []byte
