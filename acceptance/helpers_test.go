package acceptance_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runMdc executes the mdc binary and returns stdout, stderr, and exit code.
func runMdc(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(mdcBinary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run mdc: %v", err)
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// runMdcSuccess runs mdc expecting exit code 0 and returns stdout.
func runMdcSuccess(t *testing.T, dir string, args ...string) string {
	t.Helper()
	stdout, stderr, exitCode := runMdc(t, dir, args...)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\nargs: %v\nstdout: %s\nstderr: %s", exitCode, args, stdout, stderr)
	}
	return stdout
}

// parseJSON unmarshals command output into a generic map.
func parseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\noutput: %s", err, output)
	}
	return result
}

// writeFile creates a file with the given content, making parent directories.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// readFile reads a file's content.
func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return string(content)
}

// fileExists checks if a file exists.
func fileExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// guideContent is the combined form of the guide fixture.
const guideContent = "# Guide\n\n## Chapter One\n\nBody text.\n\nDone.\n"

// writeGuideDocs populates dir/docs with a template and its source and
// returns the docs folder path.
func writeGuideDocs(t *testing.T, dir string) string {
	t.Helper()
	docs := filepath.Join(dir, "docs")
	writeFile(t, docs, "main.mdext", "# Guide\n\n<MarkDownExtension operation=\"insert\" file=\"chapter.md\" />\nDone.\n")
	writeFile(t, docs, "chapter.md", "## Chapter One\n\nBody text.\n")
	return docs
}

// writeBrokenDocs populates dir/docs with a template pointing at a source
// that does not exist and returns the docs folder path.
func writeBrokenDocs(t *testing.T, dir string) string {
	t.Helper()
	docs := filepath.Join(dir, "docs")
	writeFile(t, docs, "main.mdext", "Start\n<MarkDownExtension operation=\"insert\" file=\"gone.mdsrc\" />\nEnd\n")
	return docs
}

// listMarkdownFiles returns all .md files directly in the directory.
func listMarkdownFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			files = append(files, e.Name())
		}
	}
	return files
}
