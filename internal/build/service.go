// Package build provides the application service for validating and combining documents.
package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/eykd/mdcombine-go/internal/combine"
	"github.com/eykd/mdcombine-go/internal/document"
	"github.com/eykd/mdcombine-go/internal/validate"
)

// ErrDocumentNotFound is returned when a named document is not in the input folder.
var ErrDocumentNotFound = errors.New("document not found")

// Collector abstracts reading documents from an input folder.
type Collector interface {
	Collect(ctx context.Context, folder string) ([]document.Document, error)
}

// Writer abstracts writing combined documents to an output folder.
type Writer interface {
	WriteAll(ctx context.Context, folder string, docs []document.Document) error
}

// Locker abstracts advisory lock acquisition for mutating commands.
type Locker interface {
	TryLock(ctx context.Context) error
	Unlock() error
}

// ValidateResult holds the outcome of validating an input folder.
type ValidateResult struct {
	Validation validate.Result
	Summary    validate.Summary
}

// CombineResult holds the outcome of a combine run. When validation finds
// errors the run aborts before writing, unless forced, and Documents and
// Written stay empty.
type CombineResult struct {
	Validation validate.Result
	Documents  []document.Document
	Written    []string
}

// DocumentsResult holds the documents collected from an input folder.
type DocumentsResult struct {
	Documents []document.Document
}

// PreviewResult holds a single document combined in memory.
type PreviewResult struct {
	Name    string
	Content string
}

// BuildService coordinates document collection, validation, and combination.
type BuildService struct {
	collector Collector
	writer    Writer
	locker    Locker
}

// NewBuildService creates a BuildService with the given dependencies.
func NewBuildService(collector Collector, writer Writer, locker Locker) *BuildService {
	return &BuildService{
		collector: collector,
		writer:    writer,
		locker:    locker,
	}
}

// Validate collects the input folder and validates every document without
// acquiring a lock.
func (s *BuildService) Validate(ctx context.Context, folder string) (*ValidateResult, error) {
	docs, err := s.collector.Collect(ctx, folder)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []document.Document{}
	}

	result, err := validate.Validate(docs)
	if err != nil {
		return nil, err
	}

	return &ValidateResult{
		Validation: result,
		Summary:    result.Summarize(),
	}, nil
}

// Combine validates the input folder and, when no errors are found, writes
// the combined documents to the output folder. It acquires an advisory lock
// on the output folder first. Validation errors abort the run before any
// file is written unless force is set; warnings never abort. A forced run
// leaves unusable directives verbatim and substitutes placeholders for
// unresolvable references.
func (s *BuildService) Combine(ctx context.Context, inputFolder, outputFolder string, force bool) (*CombineResult, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return nil, err
	}
	defer s.locker.Unlock()

	docs, err := s.collector.Collect(ctx, inputFolder)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []document.Document{}
	}

	validation, err := validate.Validate(docs)
	if err != nil {
		return nil, err
	}

	result := &CombineResult{Validation: validation}
	if !validation.IsValid() && !force {
		return result, nil
	}

	combined, err := combine.BuildDocumentation(docs)
	if err != nil {
		return nil, err
	}

	if err := s.writer.WriteAll(ctx, outputFolder, combined); err != nil {
		return nil, err
	}

	result.Documents = combined
	for _, doc := range combined {
		result.Written = append(result.Written, doc.Name)
	}
	return result, nil
}

// Documents collects the input folder without validating or locking.
func (s *BuildService) Documents(ctx context.Context, folder string) (*DocumentsResult, error) {
	docs, err := s.collector.Collect(ctx, folder)
	if err != nil {
		return nil, err
	}
	return &DocumentsResult{Documents: docs}, nil
}

// Preview combines a single document in memory without writing anything.
// Template documents are fully expanded; other documents are returned
// as-is. The name is matched case-insensitively.
func (s *BuildService) Preview(ctx context.Context, folder, name string) (*PreviewResult, error) {
	docs, err := s.collector.Collect(ctx, folder)
	if err != nil {
		return nil, err
	}

	set := document.NewSet(docs)
	doc, ok := set.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}

	if !doc.IsTemplate() {
		return &PreviewResult{Name: doc.Name, Content: doc.Content}, nil
	}

	built, err := combine.BuildDocumentation(docs)
	if err != nil {
		return nil, err
	}

	outKey := document.Key(doc.OutputName())
	for _, b := range built {
		if document.Key(b.Name) == outKey {
			return &PreviewResult{Name: b.Name, Content: b.Content}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
}
