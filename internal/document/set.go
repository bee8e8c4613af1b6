package document

import "slices"

// Set resolves documents by name, ignoring case. Input order is
// preserved; when two documents fold to the same name, the earlier one
// wins every lookup.
type Set struct {
	docs  []Document
	index map[string]int
}

// NewSet builds a Set over the given documents.
func NewSet(docs []Document) *Set {
	s := &Set{docs: docs, index: make(map[string]int, len(docs))}
	for i, d := range docs {
		k := Key(d.Name)
		if _, ok := s.index[k]; !ok {
			s.index[k] = i
		}
	}
	return s
}

// Lookup finds a document by name, ignoring case.
func (s *Set) Lookup(name string) (Document, bool) {
	i, ok := s.index[Key(name)]
	if !ok {
		return Document{}, false
	}
	return s.docs[i], true
}

// Contains reports whether the set holds a document with the given name.
func (s *Set) Contains(name string) bool {
	_, ok := s.index[Key(name)]
	return ok
}

// Documents returns the documents in input order.
func (s *Set) Documents() []Document {
	return slices.Clone(s.docs)
}

// Len returns the number of documents in the set.
func (s *Set) Len() int {
	return len(s.docs)
}
