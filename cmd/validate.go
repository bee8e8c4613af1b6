package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// IssueType represents the kind of validation issue.
type IssueType string

const (
	// IssueMissingOperation indicates a directive without an operation attribute.
	IssueMissingOperation IssueType = "missing_operation"
	// IssueInvalidOperation indicates a directive with an unsupported operation.
	IssueInvalidOperation IssueType = "invalid_operation"
	// IssueMissingFile indicates a directive without a file attribute.
	IssueMissingFile IssueType = "missing_file_attribute"
	// IssueMissingFilename indicates a directive with a blank file value.
	IssueMissingFilename IssueType = "missing_filename"
	// IssueInvalidFilename indicates a target containing reserved filename characters.
	IssueInvalidFilename IssueType = "invalid_filename_characters"
	// IssueSourceNotFound indicates a directive whose target does not exist.
	IssueSourceNotFound IssueType = "source_not_found"
	// IssueDuplicate indicates a directive repeated within the same document.
	IssueDuplicate IssueType = "duplicate_directive"
	// IssueCircularReference indicates an insert chain that loops back on itself.
	IssueCircularReference IssueType = "circular_reference"
)

// Severity represents the severity level of a validation issue.
type Severity string

const (
	// SeverityError represents an error-level issue.
	SeverityError Severity = "error"
	// SeverityWarning represents a warning-level issue.
	SeverityWarning Severity = "warning"
)

// ValidationIssue represents a single issue found while validating documents.
type ValidationIssue struct {
	Type     IssueType `json:"type"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	File     string    `json:"file"`
	Line     int       `json:"line"`
}

// ValidationSummary holds per-document counts from a validation run.
type ValidationSummary struct {
	Documents    int `json:"documents"`
	Valid        int `json:"valid"`
	WithErrors   int `json:"with_errors"`
	WarningsOnly int `json:"warnings_only"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
}

// ValidationReport holds all issues and the summary from a validation run.
type ValidationReport struct {
	Issues  []ValidationIssue `json:"issues"`
	Summary ValidationSummary `json:"summary"`
}

// ValidateRunner defines the interface for validating a documentation folder.
type ValidateRunner interface {
	Validate(ctx context.Context, folder string) (*ValidationReport, error)
}

// formatValidateJSON writes the validation report as JSON to w.
func formatValidateJSON(w io.Writer, report *ValidationReport) {
	if report.Issues == nil {
		report.Issues = []ValidationIssue{}
	}
	writeJSON(w, report)
}

// formatValidateHuman writes the validation report as human-readable text to w.
// A clean run prints nothing.
func formatValidateHuman(w io.Writer, report *ValidationReport) {
	formatIssueLines(w, report.Issues)
	if report.Summary.Errors > 0 || report.Summary.Warnings > 0 {
		fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", report.Summary.Errors, report.Summary.Warnings)
	}
}

// runValidateAndReport runs the validator and formats issues as JSON or
// human-readable text. It returns an IssuesDetectedError when errors are
// present; warnings alone leave the exit code at zero.
func runValidateAndReport(cmd *cobra.Command, runner ValidateRunner, folder string, jsonOutput bool) error {
	report, err := runner.Validate(cmd.Context(), folder)
	if err != nil {
		return err
	}

	if jsonOutput {
		formatValidateJSON(cmd.OutOrStdout(), report)
	} else {
		formatValidateHuman(cmd.OutOrStdout(), report)
	}

	if report.Summary.Errors > 0 {
		return &IssuesDetectedError{Errors: report.Summary.Errors, Warnings: report.Summary.Warnings}
	}
	return nil
}

// NewValidateCmd creates the validate command with the given runner.
func NewValidateCmd(runner ValidateRunner) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "validate <input-folder>",
		Short:        "Validate the directives in a documentation folder",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateAndReport(cmd, runner, args[0], jsonOutput || GetJSON())
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
