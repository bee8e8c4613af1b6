package combine

import (
	"strings"

	"github.com/eykd/mdcombine-go/internal/directive"
	"github.com/eykd/mdcombine-go/internal/document"
)

// BuildDocumentation combines every template document in docs, resolving
// insert directives depth-first against the full set, and returns the
// transformed documents renamed for publication. Only templates are
// emitted; sources and plain markdown serve as fragments. Input order is
// preserved. Nil input returns document.ErrNilDocuments; empty input
// yields empty output.
//
// A directive that cannot be used (missing or invalid attributes) is left
// verbatim. A target that cannot be resolved degrades to a placeholder
// comment rather than failing the build; so does a target already being
// expanded on the current path, which would otherwise recurse forever.
func BuildDocumentation(docs []document.Document) ([]document.Document, error) {
	if docs == nil {
		return nil, document.ErrNilDocuments
	}

	set := document.NewSet(docs)
	var out []document.Document
	for _, doc := range docs {
		if !doc.IsTemplate() {
			continue
		}
		expanding := map[string]bool{document.Key(doc.Name): true}
		content := expand(doc.Content, set, expanding)
		out = append(out, document.New(doc.OutputName(), content))
	}
	return out, nil
}

// expand rebuilds content by walking the scanned occurrence spans in
// ascending offset order, appending the untouched gaps and each
// occurrence's replacement into a fresh builder. Offsets always refer to
// the original content, so earlier replacements never corrupt later ones.
func expand(content string, set *document.Set, expanding map[string]bool) string {
	occs := directive.Scan(content)
	if len(occs) == 0 {
		return content
	}

	var b strings.Builder
	pos := 0
	for _, occ := range occs {
		b.WriteString(content[pos:occ.Offset])
		b.WriteString(replacement(occ, set, expanding))
		pos = occ.End()
	}
	b.WriteString(content[pos:])
	return b.String()
}

// replacement resolves one occurrence to the text spliced over its span.
// The target's own directives are fully expanded before its text is
// returned, so nesting resolves bottom-up. The expanding set tracks the
// documents on the current path only; it is unwound after descent so that
// sibling references to the same fragment each expand.
func replacement(occ directive.Occurrence, set *document.Set, expanding map[string]bool) string {
	if !occ.Usable() {
		return occ.RawText
	}

	target, ok := set.Lookup(occ.Target)
	if !ok {
		return "<!-- Missing source: " + occ.Target + " -->"
	}

	key := document.Key(target.Name)
	if expanding[key] {
		return "<!-- Circular reference: " + occ.Target + " -->"
	}

	expanding[key] = true
	expanded := expand(target.Content, set, expanding)
	delete(expanding, key)
	return expanded
}
