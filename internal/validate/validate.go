package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/eykd/mdcombine-go/internal/directive"
	"github.com/eykd/mdcombine-go/internal/document"
)

// Characters that cannot appear in a directive's file value. The set is
// the reserved-character union across platforms; forward slashes stay
// legal because targets are folder-relative paths.
const reservedFilenameChars = `<>:"\|?*`

// Validate checks every document in docs against every other, treating
// each as a potential template and each as a potential resolution target.
// It returns document.ErrNilDocuments for nil input; an empty input
// produces an empty, valid result. Issues keep input document order and,
// within a document, directive order; each message is prefixed with the
// owning document's filename in bracket notation.
func Validate(docs []document.Document) (Result, error) {
	if docs == nil {
		return Result{}, document.ErrNilDocuments
	}

	set := document.NewSet(docs)
	var merged Result
	for _, doc := range docs {
		r := ValidateDocument(doc, set)
		merged.Files = append(merged.Files, doc.Name)
		merged.Errors = append(merged.Errors, prefixed(doc.Name, r.Errors)...)
		merged.Warnings = append(merged.Warnings, prefixed(doc.Name, r.Warnings)...)
	}
	return merged, nil
}

// ValidateDocument checks one document's directives against a resolution
// set, returning unprefixed messages. Each malformed directive produces
// exactly one error (the first applicable rule wins); duplicate and
// circular-reference checks are orthogonal and only run for directives
// that are syntactically valid and resolve.
func ValidateDocument(doc document.Document, set *document.Set) Result {
	result := Result{Files: []string{doc.Name}}
	seen := make(map[string]bool)

	for _, occ := range directive.Scan(doc.Content) {
		if issue, bad := occurrenceError(occ, set); bad {
			issue.File = doc.Name
			result.Errors = append(result.Errors, issue)
			continue
		}

		key := document.Key(occ.RawText)
		if seen[key] {
			result.Warnings = append(result.Warnings, Issue{
				Type:          IssueDuplicate,
				Severity:      SeverityWarning,
				Message:       fmt.Sprintf("Duplicate MarkDownExtension directive found: '%s'", occ.RawText),
				DirectivePath: occ.Target,
				Line:          occ.Line,
				Context:       occ.RawText,
				File:          doc.Name,
			})
			// Duplicates are not re-checked for circularity.
			continue
		}
		seen[key] = true

		if chain, found := findCycle(doc.Name, occ.Target, set); found {
			result.Warnings = append(result.Warnings, Issue{
				Type:          IssueCircularReference,
				Severity:      SeverityWarning,
				Message:       "Potential circular reference detected: " + strings.Join(chain, " -> "),
				DirectivePath: occ.Target,
				Line:          occ.Line,
				Context:       occ.RawText,
				File:          doc.Name,
			})
		}
	}
	return result
}

// occurrenceError applies the per-directive error rules in order and
// reports the first that matches. A false second return means the
// occurrence is syntactically valid and its target resolves.
func occurrenceError(occ directive.Occurrence, set *document.Set) (Issue, bool) {
	switch {
	case !occ.HasOperation:
		return syntaxIssue(IssueMissingOperation,
			"MarkDownExtension directive is missing 'operation' attribute", occ), true
	case occ.Operation != directive.OperationInsert:
		return syntaxIssue(IssueInvalidOperation,
			"MarkDownExtension directive has invalid operation. Only 'insert' is supported", occ), true
	case !occ.HasFile:
		return syntaxIssue(IssueMissingFile,
			"MarkDownExtension directive is missing 'file' attribute", occ), true
	case occ.Target == "":
		return syntaxIssue(IssueMissingFilename,
			"MarkDownExtension directive is missing filename", occ), true
	}

	if chars := invalidFilenameChars(occ.Target); chars != "" {
		return Issue{
			Type:          IssueInvalidFilename,
			Severity:      SeverityError,
			Message:       "MarkDownExtension directive contains invalid filename characters: " + chars,
			DirectivePath: occ.Target,
			Line:          occ.Line,
			Context:       occ.RawText,
		}, true
	}
	if !set.Contains(occ.Target) {
		return Issue{
			Type:          IssueSourceNotFound,
			Severity:      SeverityError,
			Message:       fmt.Sprintf("Source document not found: '%s'", occ.Target),
			DirectivePath: occ.Target,
			Line:          occ.Line,
			Context:       occ.RawText,
		}, true
	}
	return Issue{}, false
}

func syntaxIssue(issueType, message string, occ directive.Occurrence) Issue {
	return Issue{
		Type:          issueType,
		Severity:      SeverityError,
		Message:       message,
		DirectivePath: occ.RawText,
		Line:          occ.Line,
		Context:       occ.RawText,
	}
}

func invalidFilenameChars(name string) string {
	var bad []rune
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(reservedFilenameChars, r) {
			if !slices.Contains(bad, r) {
				bad = append(bad, r)
			}
		}
	}
	return string(bad)
}

// findCycle follows the chain of inserts from target, depth-first with
// the current path as the visited set, and reports the first chain that
// reaches a document already on it. The chain starts at origin and ends
// with the revisited document, using the set's canonical names.
func findCycle(origin, target string, set *document.Set) ([]string, bool) {
	path := []string{origin}
	onPath := map[string]bool{document.Key(origin): true}
	return descend(path, onPath, target, set)
}

func descend(path []string, onPath map[string]bool, name string, set *document.Set) ([]string, bool) {
	doc, ok := set.Lookup(name)
	if !ok {
		return nil, false
	}
	key := document.Key(doc.Name)
	if onPath[key] {
		return append(slices.Clone(path), doc.Name), true
	}

	path = append(path, doc.Name)
	onPath[key] = true
	defer delete(onPath, key)

	for _, occ := range directive.Scan(doc.Content) {
		if !occ.Usable() {
			continue
		}
		if chain, found := descend(path, onPath, occ.Target, set); found {
			return chain, true
		}
	}
	return nil, false
}

func prefixed(owner string, issues []Issue) []Issue {
	out := make([]Issue, len(issues))
	for i, issue := range issues {
		issue.Message = fmt.Sprintf("[%s] %s", owner, issue.Message)
		out[i] = issue
	}
	return out
}
