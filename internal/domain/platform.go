package domain

// PlatformInfo snapshots the environment a translation is asked for, so the
// model can tailor commands to the host.
type PlatformInfo struct {
	OS         string
	OSHint     string
	Shell      TargetShell
	WorkingDir string
	User       string
}

// Describe renders the platform as a single line for prompt templates.
func (p PlatformInfo) Describe() string {
	hint := p.OSHint
	if hint == "" {
		hint = p.OS
	}
	return hint + " (" + string(p.Shell) + ")"
}
