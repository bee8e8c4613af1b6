// Package fs provides filesystem adapters that implement build service interfaces.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/eykd/mdcombine-go/internal/document"
)

// ErrEmptyPath is returned when a folder argument is blank.
var ErrEmptyPath = errors.New("folder path must not be empty")

// ErrFolderNotFound is returned when the input folder does not exist.
var ErrFolderNotFound = errors.New("folder not found")

// ErrNotDirectory is returned when the input folder path names a file.
var ErrNotDirectory = errors.New("not a directory")

// OSCollector implements build.Collector by walking a folder on disk.
// Exclude holds doublestar glob patterns matched against the
// folder-relative slash path of each candidate file.
type OSCollector struct {
	Exclude []string
}

// CollectImpl recursively gathers every template, source, and markdown
// file under folder into documents named by their folder-relative slash
// path, sorted case-insensitively for deterministic processing order.
func (c *OSCollector) CollectImpl(ctx context.Context, folder string) ([]document.Document, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, ErrEmptyPath
	}

	info, err := os.Stat(folder)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, folder)
	}

	docs := []document.Document{}
	walkErr := filepath.WalkDir(folder, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(folder, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !collectible(rel) || c.excluded(rel) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, document.New(rel, string(data)))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	slices.SortFunc(docs, func(a, b document.Document) int {
		return strings.Compare(document.Key(a.Name), document.Key(b.Name))
	})
	return docs, nil
}

// Collect delegates to CollectImpl.
func (c *OSCollector) Collect(ctx context.Context, folder string) ([]document.Document, error) {
	return c.CollectImpl(ctx, folder)
}

func (c *OSCollector) excluded(rel string) bool {
	for _, glob := range c.Exclude {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func collectible(name string) bool {
	d := document.Document{Name: name}
	return d.IsTemplate() || d.IsSource() || d.IsMarkdown()
}

// OSWriter implements build.Writer using os.WriteFile.
type OSWriter struct{}

// WriteAllImpl writes each document's content under folder, creating the
// folder and any intermediate directories, overwriting existing files.
// Documents with blank names are skipped.
func (w *OSWriter) WriteAllImpl(ctx context.Context, folder string, docs []document.Document) error {
	if strings.TrimSpace(folder) == "" {
		return ErrEmptyPath
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", folder, err)
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.TrimSpace(doc.Name) == "" {
			continue
		}

		path := filepath.Join(folder, filepath.FromSlash(doc.Name))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// WriteAll delegates to WriteAllImpl.
func (w *OSWriter) WriteAll(ctx context.Context, folder string, docs []document.Document) error {
	return w.WriteAllImpl(ctx, folder, docs)
}
