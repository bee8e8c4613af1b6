// Package search provides in-memory full-text search over collected documents.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/eykd/mdcombine-go/internal/document"
)

// DefaultLimit caps the number of hits returned when the caller does
// not ask for a specific limit.
const DefaultLimit = 10

// Bleve field name constants for consistent field references in queries and mappings.
const (
	FieldName    = "name"
	FieldRole    = "role"
	FieldContent = "content"
)

// ErrEmptyQuery is returned when the query string is blank.
var ErrEmptyQuery = errors.New("search query must not be empty")

// entry is the shape stored in the Bleve index.
type entry struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Hit is one search result.
type Hit struct {
	Name      string
	Role      string
	Score     float64
	Fragments []string
}

// Results holds the hits for a query and the total match count, which
// can exceed len(Hits) when the limit truncates the result set.
type Results struct {
	Total uint64
	Hits  []Hit
}

// Index is an in-memory full-text index over a document set.
type Index struct {
	idx bleve.Index
}

// indexMapping builds the Bleve mapping for document entries. Content
// is analyzed for full-text search; name and role are keywords.
func indexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = standard.Name
	contentField.Store = true
	contentField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(FieldContent, contentField)

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = keyword.Name
	nameField.Store = true
	docMapping.AddFieldMappingsAt(FieldName, nameField)

	roleField := bleve.NewTextFieldMapping()
	roleField.Analyzer = keyword.Name
	roleField.Store = true
	docMapping.AddFieldMappingsAt(FieldRole, roleField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = docMapping
	m.DefaultAnalyzer = standard.Name
	return m
}

// New builds an in-memory index over the given documents.
func New(docs []document.Document) (*Index, error) {
	idx, err := bleve.NewMemOnly(indexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	batch := idx.NewBatch()
	for _, doc := range docs {
		e := entry{
			Name:    doc.Name,
			Role:    doc.Role(),
			Content: doc.Content,
		}
		if err := batch.Index(doc.Name, e); err != nil {
			idx.Close()
			return nil, fmt.Errorf("indexing %s: %w", doc.Name, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("indexing batch: %w", err)
	}

	return &Index{idx: idx}, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}

// Count returns the number of indexed documents.
func (i *Index) Count() (uint64, error) {
	return i.idx.DocCount()
}

// Query runs a full-text query and returns up to limit hits with
// highlighted content fragments, best first. An exact document name
// outranks content matches. A non-positive limit falls back to
// DefaultLimit.
func (i *Index) Query(q string, limit int) (*Results, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	contentQuery := bleve.NewMatchQuery(q)
	contentQuery.SetField(FieldContent)

	nameQuery := bleve.NewMatchQuery(q)
	nameQuery.SetField(FieldName)
	nameQuery.SetBoost(5.0)

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(contentQuery, nameQuery))
	req.Size = limit
	req.Fields = []string{FieldName, FieldRole}
	req.Highlight = bleve.NewHighlight()
	req.Highlight.AddField(FieldContent)

	results, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(results.Hits))
	for _, h := range results.Hits {
		hit := Hit{Score: h.Score}
		if v, ok := h.Fields[FieldName].(string); ok {
			hit.Name = v
		}
		if v, ok := h.Fields[FieldRole].(string); ok {
			hit.Role = v
		}
		hit.Fragments = h.Fragments[FieldContent]
		hits = append(hits, hit)
	}

	return &Results{Total: results.Total, Hits: hits}, nil
}
