package validate

// Severity indicates how severe an issue is.
type Severity string

const (
	// SeverityError indicates an issue that blocks a clean build.
	SeverityError Severity = "error"
	// SeverityWarning indicates an advisory issue.
	SeverityWarning Severity = "warning"
)

// Issue type constants identify the kind of problem found.
const (
	IssueMissingOperation  = "missing_operation"
	IssueInvalidOperation  = "invalid_operation"
	IssueMissingFile       = "missing_file_attribute"
	IssueMissingFilename   = "missing_filename"
	IssueInvalidFilename   = "invalid_filename_characters"
	IssueSourceNotFound    = "source_not_found"
	IssueDuplicate         = "duplicate_directive"
	IssueCircularReference = "circular_reference"
)

// Issue is one problem found while validating a document's directives.
//
// DirectivePath holds the attempted target filename, or the raw directive
// text when the problem is the directive's own syntax. Context carries the
// raw directive text whenever one is available. File names the document
// the issue was found in.
type Issue struct {
	Type          string
	Severity      Severity
	Message       string
	DirectivePath string
	Line          int
	Context       string
	File          string
}

// Result aggregates the issues from a validation pass. Files lists every
// document that was scanned, in input order, so per-file counts can be
// derived even for clean documents.
type Result struct {
	Errors   []Issue
	Warnings []Issue
	Files    []string
}

// IsValid reports whether the pass found no errors. Warnings never
// invalidate a result.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Summary holds per-file counts for a validation pass.
type Summary struct {
	Total        int
	Valid        int
	WithErrors   int
	WarningsOnly int
}

// Summarize counts the scanned files by outcome: files with zero errors
// are valid, files with at least one error are not, and files with
// warnings but no errors are counted separately inside the valid set.
func (r Result) Summarize() Summary {
	withErrors := make(map[string]bool)
	for _, issue := range r.Errors {
		withErrors[issue.File] = true
	}
	withWarnings := make(map[string]bool)
	for _, issue := range r.Warnings {
		withWarnings[issue.File] = true
	}

	s := Summary{Total: len(r.Files)}
	for _, f := range r.Files {
		if withErrors[f] {
			s.WithErrors++
			continue
		}
		s.Valid++
		if withWarnings[f] {
			s.WarningsOnly++
		}
	}
	return s
}
