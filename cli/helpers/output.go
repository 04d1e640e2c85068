package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/taskdeck/taskdeck/cli/tui/styles"
)

// WriteJSON writes the value as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// PrintSuccess writes a styled success line to stdout.
func PrintSuccess(format string, args ...any) {
	fmt.Fprintln(os.Stdout, styles.SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintError writes a styled error line to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintInfo writes a styled informational line to stdout.
func PrintInfo(format string, args ...any) {
	fmt.Fprintln(os.Stdout, styles.InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// ReadInputSource reads raw bytes from a file path, or from stdin when the
// source is "-".
func ReadInputSource(source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", source, err)
	}
	return data, nil
}
