package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eykd/mdcombine-go/internal/build"
	"github.com/eykd/mdcombine-go/internal/directive"
	"github.com/eykd/mdcombine-go/internal/document"
	"github.com/eykd/mdcombine-go/internal/frontmatter"
	"github.com/eykd/mdcombine-go/internal/fs"
	"github.com/eykd/mdcombine-go/internal/lock"
	"github.com/eykd/mdcombine-go/internal/search"
	"github.com/eykd/mdcombine-go/internal/validate"
	"github.com/eykd/mdcombine-go/internal/watch"
)

// buildServicer abstracts the build.BuildService methods used by adapters.
type buildServicer interface {
	Validate(ctx context.Context, folder string) (*build.ValidateResult, error)
	Combine(ctx context.Context, inputFolder, outputFolder string, force bool) (*build.CombineResult, error)
	Documents(ctx context.Context, folder string) (*build.DocumentsResult, error)
	Preview(ctx context.Context, folder, name string) (*build.PreviewResult, error)
}

// discardWriter satisfies build.Writer without touching the filesystem.
type discardWriter struct{}

func (discardWriter) WriteAll(ctx context.Context, folder string, docs []document.Document) error {
	return nil
}

// noopLocker satisfies build.Locker for runs that never write.
type noopLocker struct{}

func (noopLocker) TryLock(ctx context.Context) error { return nil }

func (noopLocker) Unlock() error { return nil }

// wireService constructs the production build service. Mutating commands
// pass the output folder so the advisory lock lands next to what they
// write; read-only commands and dry runs pass "" and get a no-op lock
// with a writer that discards everything.
func wireService(outputFolder string) buildServicer {
	collector := &fs.OSCollector{Exclude: GetSettings().Exclude}
	if outputFolder == "" || GetDryRun() {
		return build.NewBuildService(collector, discardWriter{}, noopLocker{})
	}
	return build.NewBuildService(collector, &fs.OSWriter{}, lock.NewInFolder(outputFolder))
}

// --- validateAdapter ---

type validateAdapter struct{}

func (validateAdapter) Validate(ctx context.Context, folder string) (*ValidationReport, error) {
	svcResult, err := wireService("").Validate(ctx, folder)
	if err != nil {
		return nil, err
	}
	return convertValidation(svcResult.Validation, svcResult.Summary), nil
}

// --- combineAdapter ---

type combineAdapter struct{}

func (combineAdapter) Combine(ctx context.Context, inputFolder, outputFolder string, force bool) (*CombineReport, error) {
	// The output folder must exist before the advisory lock file can be
	// created inside it.
	if !GetDryRun() {
		if err := os.MkdirAll(outputFolder, 0o755); err != nil {
			return nil, &ContextError{Op: "combine", Path: outputFolder, Err: err}
		}
	}

	svcResult, err := wireService(outputFolder).Combine(ctx, inputFolder, outputFolder, force)
	if err != nil {
		return nil, err
	}

	return &CombineReport{
		Issues:  convertIssues(svcResult.Validation),
		Written: svcResult.Written,
		DryRun:  GetDryRun(),
	}, nil
}

// --- listAdapter ---

type listAdapter struct{}

func (listAdapter) List(ctx context.Context, folder string) (*ListResult, error) {
	svcResult, err := wireService("").Documents(ctx, folder)
	if err != nil {
		return nil, err
	}

	set := document.NewSet(svcResult.Documents)
	infos := make([]DocumentInfo, len(svcResult.Documents))
	for i, doc := range svcResult.Documents {
		infos[i] = describeDocument(doc, set)
	}
	return &ListResult{Documents: infos}, nil
}

// describeDocument builds the display record for one document. Targets are
// resolved to collected document names where possible so the tree view can
// link them; unresolvable targets keep their text as written.
func describeDocument(doc document.Document, set *document.Set) DocumentInfo {
	info := DocumentInfo{
		Name: doc.Name,
		Role: doc.Role(),
	}
	if title, err := frontmatter.GetTitle(doc.Content); err == nil {
		info.Title = title
	}
	for _, occ := range directive.Scan(doc.Content) {
		info.Directives++
		if !occ.Usable() {
			continue
		}
		target := occ.Target
		if resolved, ok := set.Lookup(target); ok {
			target = resolved.Name
		}
		info.Targets = append(info.Targets, target)
	}
	return info
}

// --- searchAdapter ---

type searchAdapter struct{}

func (searchAdapter) Search(ctx context.Context, folder, query string, limit int) (*SearchReport, error) {
	svcResult, err := wireService("").Documents(ctx, folder)
	if err != nil {
		return nil, err
	}

	idx, err := search.New(svcResult.Documents)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	results, err := idx.Query(query, limit)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, len(results.Hits))
	for i, hit := range results.Hits {
		hits[i] = SearchHit{
			Name:      hit.Name,
			Role:      hit.Role,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		}
	}
	return &SearchReport{Query: query, Total: results.Total, Hits: hits}, nil
}

// --- previewAdapter ---

type previewAdapter struct{}

func (previewAdapter) Preview(ctx context.Context, folder, name string) (*PreviewReport, error) {
	svcResult, err := wireService("").Preview(ctx, folder, name)
	if err != nil {
		return nil, err
	}
	return &PreviewReport{Name: svcResult.Name, Content: svcResult.Content}, nil
}

// newFolderWatcher builds the production change watcher for the watch command.
func newFolderWatcher(folder string, debounce time.Duration) (ChangeWatcher, error) {
	w, err := watch.New(folder, debounce, slog.Default())
	if err != nil {
		return nil, err
	}
	return w, nil
}

// convertIssues flattens a validation result into display issues, errors
// before warnings.
func convertIssues(result validate.Result) []ValidationIssue {
	issues := make([]ValidationIssue, 0, len(result.Errors)+len(result.Warnings))
	for _, issue := range result.Errors {
		issues = append(issues, convertIssue(issue))
	}
	for _, issue := range result.Warnings {
		issues = append(issues, convertIssue(issue))
	}
	return issues
}

// convertIssue converts a validate.Issue to a cmd.ValidationIssue.
func convertIssue(issue validate.Issue) ValidationIssue {
	return ValidationIssue{
		Type:     IssueType(issue.Type),
		Severity: Severity(issue.Severity),
		Message:  issue.Message,
		File:     issue.File,
		Line:     issue.Line,
	}
}

// convertValidation converts a validation result and its summary to a report.
func convertValidation(result validate.Result, summary validate.Summary) *ValidationReport {
	return &ValidationReport{
		Issues: convertIssues(result),
		Summary: ValidationSummary{
			Documents:    summary.Total,
			Valid:        summary.Valid,
			WithErrors:   summary.WithErrors,
			WarningsOnly: summary.WarningsOnly,
			Errors:       len(result.Errors),
			Warnings:     len(result.Warnings),
		},
	}
}

// BuildCommandTree wires the full mdc command tree with production adapters.
func BuildCommandTree() *cobra.Command {
	root := NewRootCmd()

	root.AddCommand(NewCombineCmd(combineAdapter{}))
	root.AddCommand(NewValidateCmd(validateAdapter{}))
	root.AddCommand(NewListCmd(listAdapter{}))
	root.AddCommand(NewSearchCmd(searchAdapter{}))
	root.AddCommand(NewPreviewCmd(previewAdapter{}))
	root.AddCommand(NewWatchCmd(combineAdapter{}, newFolderWatcher))
	root.AddCommand(NewInitCmd(os.Getwd))
	root.AddCommand(NewVersionCmd())

	return root
}
