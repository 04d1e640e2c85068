package helpers

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/pkg/config"
)

// Mode is the output mode a command renders in.
type Mode string

const (
	// ModeJSON emits machine-readable JSON on stdout.
	ModeJSON Mode = "json"
	// ModeTUI renders interactive terminal output.
	ModeTUI Mode = "tui"
)

// ContextKey is a custom type for context keys to avoid string collisions.
type ContextKey string

// ConfigKey is the context key the root command stores the loaded
// configuration under.
const ConfigKey ContextKey = "config"

// ContextWithConfig attaches the loaded configuration to the context.
func ContextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

// ConfigFromContext retrieves the loaded configuration, or nil.
func ConfigFromContext(ctx context.Context) *config.Config {
	cfg, ok := ctx.Value(ConfigKey).(*config.Config)
	if !ok {
		return nil
	}
	return cfg
}

// isRunningInCI checks for the environment variables the common CI systems
// set.
func isRunningInCI() bool {
	if os.Getenv("CI") != "" {
		return true
	}
	ciVars := []string{
		"JENKINS_HOME",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"BUILDKITE",
		"DRONE",
		"TEAMCITY_VERSION",
		"CONTINUOUS_INTEGRATION",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// explicitMode returns the mode forced by configuration, if any. "auto"
// falls through to environment detection.
func explicitMode(cfg *config.Config) (Mode, bool) {
	switch cfg.CLI.Format {
	case string(ModeJSON):
		return ModeJSON, true
	case string(ModeTUI):
		return ModeTUI, true
	default:
		return ModeJSON, false
	}
}

// isInteractiveEnvironment reports whether stdin and stdout are attached to
// a usable terminal.
func isInteractiveEnvironment() bool {
	if isRunningInCI() {
		return false
	}
	stdinIsTerminal := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	stdoutIsTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !stdinIsTerminal || !stdoutIsTerminal {
		return false
	}
	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}
	return true
}

// DetectMode picks the output mode for a command: explicit configuration
// first, then terminal detection, defaulting to JSON when non-interactive.
func DetectMode(cmd *cobra.Command) Mode {
	cfg := ConfigFromContext(cmd.Context())
	if cfg == nil {
		return ModeJSON
	}
	if mode, forced := explicitMode(cfg); forced {
		return mode
	}
	if isInteractiveEnvironment() {
		return ModeTUI
	}
	return ModeJSON
}

// ShouldUseColor determines if styled output should be used.
func ShouldUseColor(cmd *cobra.Command) bool {
	cfg := ConfigFromContext(cmd.Context())
	if cfg != nil && cfg.CLI.NoColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	if isRunningInCI() {
		return false
	}
	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}
