package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"wizard-cli/internal/interfaces"
	"wizard-cli/internal/wizard"
)

// OutputHandler implements the interfaces.OutputHandler interface
type OutputHandler struct{}

// NewOutputHandler creates a new output handler
func NewOutputHandler() interfaces.OutputHandler {
	return &OutputHandler{}
}

// WriteToClipboard copies content to the system clipboard
func (h *OutputHandler) WriteToClipboard(content string) error {
	return clipboard.WriteAll(content)
}

// WriteToStdout writes content to standard output
func (h *OutputHandler) WriteToStdout(content string) error {
	_, err := fmt.Println(content)
	return err
}

// WriteToFile writes content to the specified file path
func (h *OutputHandler) WriteToFile(content string, path string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// writeSummary reports a persisted session to the configured target.
func writeSummary(handler interfaces.OutputHandler, result *wizard.Result, target string) error {
	summary := formatSummary(result)

	switch {
	case target == "clipboard":
		if err := handler.WriteToClipboard(summary); err != nil {
			// Clipboard is best-effort; fall back to stdout
			fmt.Fprintf(os.Stderr, "Warning: clipboard write failed: %v\nFalling back to stdout:\n\n", err)
			return handler.WriteToStdout(summary)
		}
		fmt.Println("Session summary copied to clipboard")
	case target == "stdout", target == "":
		return handler.WriteToStdout(summary)
	case strings.HasPrefix(target, "file:"):
		path := strings.TrimPrefix(target, "file:")
		if err := handler.WriteToFile(summary, path); err != nil {
			return fmt.Errorf("failed to write summary to %s: %w", path, err)
		}
		fmt.Printf("Session summary written to %s\n", path)
	default:
		return fmt.Errorf("unsupported output target: %s", target)
	}
	return nil
}

func formatSummary(result *wizard.Result) string {
	status := "configured, readiness check did not pass"
	if result.Outcome == wizard.OutcomeReady {
		status = "ready"
	}
	return fmt.Sprintf("strategy: %s\nfile: %s\nstatus: %s", result.StrategyName, result.FileName, status)
}
