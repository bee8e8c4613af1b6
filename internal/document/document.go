package document

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// ErrNilDocuments is returned by operations that require a document
// collection when the caller passes nil. An empty collection is a valid
// input; nil is a caller-contract violation.
var ErrNilDocuments = errors.New("documents must not be nil")

// Suffixes that partition documents into roles. Role is derived from the
// filename on every check, never stored.
const (
	TemplateSuffix = ".mdext"
	SourceSuffix   = ".mdsrc"
	MarkdownSuffix = ".md"
)

var folder = cases.Fold()

// Key returns the case-folded form of a document name. All name
// comparisons and map keys go through Key so that resolution behaves the
// same regardless of filesystem case sensitivity.
func Key(name string) string {
	return folder.String(name)
}

// Document is one text file loaded into memory. Name is relative to the
// working folder and uses forward slashes.
type Document struct {
	Name    string
	Content string
}

// New creates a Document.
func New(name, content string) Document {
	return Document{Name: name, Content: content}
}

// Rename returns a copy of the document under a new name.
func (d Document) Rename(name string) Document {
	return Document{Name: name, Content: d.Content}
}

// IsTemplate reports whether the document is a build root.
func (d Document) IsTemplate() bool {
	return hasFoldSuffix(d.Name, TemplateSuffix)
}

// IsSource reports whether the document is an insert-only fragment.
func (d Document) IsSource() bool {
	return hasFoldSuffix(d.Name, SourceSuffix)
}

// IsMarkdown reports whether the document is plain markdown.
func (d Document) IsMarkdown() bool {
	return hasFoldSuffix(d.Name, MarkdownSuffix)
}

// Role returns a display label for the document's suffix class.
func (d Document) Role() string {
	switch {
	case d.IsTemplate():
		return "template"
	case d.IsSource():
		return "source"
	case d.IsMarkdown():
		return "markdown"
	default:
		return "other"
	}
}

// OutputName returns the name the document is published under after a
// build: templates trade their suffix for .md, keeping any directory
// prefix; every other name passes through unchanged.
func (d Document) OutputName() string {
	if !d.IsTemplate() {
		return d.Name
	}
	return d.Name[:len(d.Name)-len(TemplateSuffix)] + MarkdownSuffix
}

func hasFoldSuffix(name, suffix string) bool {
	return len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix)
}
