package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// PreviewReport holds a document combined in memory for display.
type PreviewReport struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// PreviewRunner defines the interface for running the preview operation.
type PreviewRunner interface {
	Preview(ctx context.Context, folder, name string) (*PreviewReport, error)
}

// terminalWidth returns the stdout width, falling back to 80 columns when
// stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// renderMarkdown renders markdown for the terminal using glamour.
func renderMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	return renderer.Render(content)
}

// NewPreviewCmd creates the preview command with the given runner.
func NewPreviewCmd(runner PreviewRunner) *cobra.Command {
	var jsonOutput bool
	var raw bool

	cmd := &cobra.Command{
		Use:          "preview <input-folder> <document>",
		Short:        "Render a combined document to the terminal",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runner.Preview(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput || GetJSON() {
				writeJSON(out, result)
				return nil
			}
			if raw || GetNoColor() {
				fmt.Fprint(out, result.Content)
				return nil
			}

			rendered, err := renderMarkdown(result.Content)
			if err != nil {
				fmt.Fprint(out, result.Content)
				return nil
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the combined markdown without rendering")

	return cmd
}
