package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeJSON encodes v as JSON to w, handling I/O errors at the boundary.
func writeJSON(w io.Writer, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, "{\"error\":%q}\n", err.Error())
	}
}

// countIssues counts errors and warnings in a slice of issues.
func countIssues(issues []ValidationIssue) (errCount, warnCount int) {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			errCount++
		} else {
			warnCount++
		}
	}
	return
}

// formatIssueLines writes one line per issue to w. Messages already carry
// their [filename] prefix from batch validation, so only the severity and
// line number are added.
func formatIssueLines(w io.Writer, issues []ValidationIssue) {
	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(w, "%s: %s (line %d)\n", styleSeverity(issue.Severity), issue.Message, issue.Line)
		} else {
			fmt.Fprintf(w, "%s: %s\n", styleSeverity(issue.Severity), issue.Message)
		}
	}
}
