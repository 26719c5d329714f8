package translate

import "strings"

// codeFenceLanguages are fence tags models put after the opening backticks.
// Only known tags are stripped, so a one-word command on the first line of
// a block is never mistaken for one.
var codeFenceLanguages = map[string]struct{}{
	"bash": {}, "sh": {}, "shell": {}, "zsh": {},
	"powershell": {}, "pwsh": {}, "console": {}, "cmd": {},
}

// extractCommand normalises raw model output into a runnable command line:
// prefer a fenced code block, strip a "command:" label, take the first
// nonempty line.
func extractCommand(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	if block := extractCodeBlock(text); block != "" {
		text = block
	}
	return extractCommandLine(text)
}

// extractCodeBlock returns the contents of the first ``` fenced block,
// empty when the text has no complete fence.
func extractCodeBlock(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return ""
	}
	rest := text[start+3:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return ""
	}
	block := rest[:end]

	if idx := strings.IndexByte(block, '\n'); idx >= 0 {
		first := strings.ToLower(strings.TrimSpace(block[:idx]))
		if _, known := codeFenceLanguages[first]; known {
			block = block[idx+1:]
		}
	}
	return strings.TrimSpace(block)
}

// extractCommandLine returns the first nonempty line, with an optional
// leading "command:" label removed.
func extractCommandLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); strings.HasPrefix(lower, "command:") {
			return strings.TrimSpace(line[len("command:"):])
		}
		return line
	}
	return ""
}
