package acceptance_test

import (
	"strings"
	"testing"
)

func TestListShowsRolesAndTitles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/main.mdext", "---\ntitle: User Guide\n---\n\n<MarkDownExtension operation=\"insert\" file=\"chapter.md\" />\n")
	writeFile(t, dir, "docs/chapter.md", "## Chapter One\n")

	stdout := runMdcSuccess(t, dir, "list", "docs")

	want := "chapter.md (markdown)\n" +
		"main.mdext (template) \"User Guide\" [1 directives]\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestListTreeShowsInsertTargets(t *testing.T) {
	dir := t.TempDir()
	writeGuideDocs(t, dir)

	stdout := runMdcSuccess(t, dir, "list", "--tree", "docs")

	want := "docs\n" +
		"└── main.mdext (template)\n" +
		"    └── chapter.md (markdown)\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestListJSONReportsDocuments(t *testing.T) {
	dir := t.TempDir()
	writeGuideDocs(t, dir)

	stdout := runMdcSuccess(t, dir, "list", "--json", "docs")

	result := parseJSON(t, stdout)
	docs, ok := result["documents"].([]interface{})
	if !ok || len(docs) != 2 {
		t.Fatalf("documents = %v, want two entries", result["documents"])
	}
	first := docs[0].(map[string]interface{})
	if first["name"] != "chapter.md" || first["role"] != "markdown" {
		t.Errorf("first document = %v", first)
	}
	second := docs[1].(map[string]interface{})
	if second["name"] != "main.mdext" || second["role"] != "template" {
		t.Errorf("second document = %v", second)
	}
	if second["directives"] != float64(1) {
		t.Errorf("directives = %v, want 1", second["directives"])
	}
}

func TestSearchFindsDocumentContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/wildlife.md", "# Wildlife\n\nA velociraptor roamed the plains.\n")
	writeFile(t, dir, "docs/setup.md", "# Setup\n\nInstall the tools.\n")

	stdout := runMdcSuccess(t, dir, "search", "docs", "velociraptor")

	if !strings.Contains(stdout, "Found 1 results for 'velociraptor':") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout, "1. wildlife.md (markdown)") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestSearchReportsNoResults(t *testing.T) {
	dir := t.TempDir()
	writeGuideDocs(t, dir)

	stdout := runMdcSuccess(t, dir, "search", "docs", "zeppelin")

	if stdout != "No results found for 'zeppelin'\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestSearchHonorsConfiguredMaxResults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".mdcombine.yaml", "search:\n  max_results: 1\n")
	writeFile(t, dir, "docs/a.md", "A gondola drifted by.\n")
	writeFile(t, dir, "docs/b.md", "Another gondola followed.\n")
	writeFile(t, dir, "docs/c.md", "The third gondola sank.\n")

	stdout := runMdcSuccess(t, dir, "search", "docs", "gondola")

	if !strings.Contains(stdout, "Found 3 results for 'gondola':") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout, "... and 2 more results") {
		t.Errorf("stdout = %q, want a truncation notice from the configured limit", stdout)
	}
}

func TestSearchJSONStripsHighlightTags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/wildlife.md", "A velociraptor roamed the plains.\n")

	stdout := runMdcSuccess(t, dir, "search", "--json", "docs", "velociraptor")

	result := parseJSON(t, stdout)
	hits, ok := result["hits"].([]interface{})
	if !ok || len(hits) != 1 {
		t.Fatalf("hits = %v, want one hit", result["hits"])
	}
	hit := hits[0].(map[string]interface{})
	if hit["name"] != "wildlife.md" {
		t.Errorf("name = %v, want wildlife.md", hit["name"])
	}
	fragments, _ := hit["fragments"].([]interface{})
	for _, f := range fragments {
		if strings.Contains(f.(string), "<mark>") {
			t.Errorf("fragment %q still carries highlight tags", f)
		}
	}
}

func TestPreviewRawPrintsCombinedDocument(t *testing.T) {
	dir := t.TempDir()
	writeGuideDocs(t, dir)

	stdout := runMdcSuccess(t, dir, "preview", "--raw", "docs", "main.mdext")

	if stdout != guideContent {
		t.Errorf("stdout = %q, want %q", stdout, guideContent)
	}
	if fileExists(dir, "docs/main.md") {
		t.Error("preview must not write files")
	}
}

func TestPreviewRendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeGuideDocs(t, dir)

	stdout := runMdcSuccess(t, dir, "preview", "docs", "main.mdext")

	if !strings.Contains(stdout, "Guide") {
		t.Errorf("stdout = %q, want the heading text", stdout)
	}
	if !strings.Contains(stdout, "Body text.") {
		t.Errorf("stdout = %q, want the inserted body", stdout)
	}
}

func TestPreviewUnknownDocumentFails(t *testing.T) {
	dir := t.TempDir()
	writeGuideDocs(t, dir)

	_, stderr, exitCode := runMdc(t, dir, "preview", "docs", "nope.mdext")

	if exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", exitCode)
	}
	if !strings.Contains(stderr, "document not found") {
		t.Errorf("stderr = %q, want document not found", stderr)
	}
}
