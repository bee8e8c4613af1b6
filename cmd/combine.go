package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// CombineReport holds the outcome of a combine run.
type CombineReport struct {
	Issues  []ValidationIssue `json:"issues"`
	Written []string          `json:"written"`
	DryRun  bool              `json:"dry_run"`
}

// CombineRunner defines the interface for running the combine operation.
type CombineRunner interface {
	Combine(ctx context.Context, inputFolder, outputFolder string, force bool) (*CombineReport, error)
}

// formatCombineJSON writes the combine outcome as JSON to w.
func formatCombineJSON(w io.Writer, result *CombineReport) {
	if result.Issues == nil {
		result.Issues = []ValidationIssue{}
	}
	if result.Written == nil {
		result.Written = []string{}
	}
	writeJSON(w, result)
}

// formatCombineHuman writes the combine outcome as human-readable text to w.
// An aborted run reports its issue counts; a completed run lists what was
// written, or what would be written under --dry-run.
func formatCombineHuman(w io.Writer, result *CombineReport, errCount, warnCount int) {
	formatIssueLines(w, result.Issues)
	if errCount > 0 && len(result.Written) == 0 {
		fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", errCount, warnCount)
		return
	}

	verb := "wrote"
	if result.DryRun {
		verb = "would write"
	}
	for _, name := range result.Written {
		fmt.Fprintf(w, "%s %s\n", verb, name)
	}
	if result.DryRun {
		fmt.Fprintf(w, "%s\n", styleSuccess(fmt.Sprintf("%d document(s) planned", len(result.Written))))
	} else {
		fmt.Fprintf(w, "%s\n", styleSuccess(fmt.Sprintf("%d document(s) written", len(result.Written))))
	}
}

// runCombineAndReport runs the combiner and formats the outcome as JSON or
// human-readable text. Validation errors return an IssuesDetectedError
// unless the run was forced.
func runCombineAndReport(cmd *cobra.Command, runner CombineRunner, inputFolder, outputFolder string, force, jsonOutput bool) error {
	result, err := runner.Combine(cmd.Context(), inputFolder, outputFolder, force)
	if err != nil {
		return err
	}

	errCount, warnCount := countIssues(result.Issues)

	if jsonOutput {
		formatCombineJSON(cmd.OutOrStdout(), result)
	} else {
		formatCombineHuman(cmd.OutOrStdout(), result, errCount, warnCount)
	}

	if errCount > 0 && !force {
		return &IssuesDetectedError{Errors: errCount, Warnings: warnCount}
	}
	return nil
}

// NewCombineCmd creates the combine command with the given runner.
func NewCombineCmd(runner CombineRunner) *cobra.Command {
	var force bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "combine <input-folder> <output-folder>",
		Short:        "Combine templates into publishable markdown documents",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombineAndReport(cmd, runner, args[0], args[1], force, jsonOutput || GetJSON())
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Combine even when validation finds errors")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
