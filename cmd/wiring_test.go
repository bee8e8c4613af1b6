package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCommandTree_RegistersAllCommands(t *testing.T) {
	root := BuildCommandTree()

	if root == nil {
		t.Fatal("expected root command, got nil")
	}

	wantCommands := []string{"combine", "validate", "list", "search", "preview", "watch", "init", "version"}
	for _, name := range wantCommands {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestBuildCommandTree_SubcommandCount(t *testing.T) {
	root := BuildCommandTree()

	want := 8
	got := len(root.Commands())
	if got != want {
		t.Errorf("subcommands = %d, want %d", got, want)
	}
}

func TestCommandTree_CombineEndToEnd(t *testing.T) {
	folder := writeDocs(t, map[string]string{
		"main.mdext": "# Guide\n\n<MarkDownExtension operation=\"insert\" file=\"chapter.md\" />\nDone.\n",
		"chapter.md": "## Chapter One\n\nBody text.\n",
	})
	out := filepath.Join(t.TempDir(), "out")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	code := RunCLI(BuildCommandTree(), []string{"combine", folder, out}, stdout, stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "wrote main.md") {
		t.Errorf("stdout = %q, want wrote main.md", stdout.String())
	}
	data, err := os.ReadFile(filepath.Join(out, "main.md"))
	if err != nil {
		t.Fatalf("reading combined document: %v", err)
	}
	want := "# Guide\n\n## Chapter One\n\nBody text.\n\nDone.\n"
	if string(data) != want {
		t.Errorf("combined content = %q, want %q", string(data), want)
	}
}

func TestCommandTree_DryRunWritesNothing(t *testing.T) {
	folder := writeDocs(t, map[string]string{
		"main.mdext": "# Guide\n\n<MarkDownExtension operation=\"insert\" file=\"chapter.md\" />\n",
		"chapter.md": "## Chapter One\n",
	})
	out := filepath.Join(t.TempDir(), "out")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	code := RunCLI(BuildCommandTree(), []string{"--dry-run", "combine", folder, out}, stdout, stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "would write main.md") {
		t.Errorf("stdout = %q, want would write main.md", stdout.String())
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output folder should not exist, stat err = %v", err)
	}
}

func TestCommandTree_ValidateEndToEnd(t *testing.T) {
	folder := writeDocs(t, map[string]string{
		"main.mdext": "# Guide\n\n<MarkDownExtension operation=\"insert\" file=\"gone.mdsrc\" />\n",
	})
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	code := RunCLI(BuildCommandTree(), []string{"validate", folder}, stdout, stderr)

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stdout.String(), "error: [main.mdext] Source document not found: 'gone.mdsrc' (line 3)") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "mdc: validation found 1 errors, 0 warnings") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestCommandTree_ListEndToEnd(t *testing.T) {
	folder := writeDocs(t, map[string]string{
		"main.mdext": "---\ntitle: User Guide\n---\n<MarkDownExtension operation=\"insert\" file=\"chapter.md\" />\n",
		"chapter.md": "## Chapter One\n",
	})
	stdout := new(bytes.Buffer)

	code := RunCLI(BuildCommandTree(), []string{"list", folder}, stdout, new(bytes.Buffer))

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), `main.mdext (template) "User Guide" [1 directives]`) {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "chapter.md (markdown)") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestCommandTree_ExcludeFlagSkipsDocuments(t *testing.T) {
	folder := writeDocs(t, map[string]string{
		"keep.md":  "kept\n",
		"draft.md": "drafted\n",
	})
	stdout := new(bytes.Buffer)

	code := RunCLI(BuildCommandTree(), []string{"list", folder, "--exclude", "draft.md"}, stdout, new(bytes.Buffer))

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if strings.Contains(stdout.String(), "draft.md") {
		t.Errorf("draft.md should be excluded, stdout = %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "keep.md") {
		t.Errorf("stdout = %q, want keep.md", stdout.String())
	}
}

func TestCommandTree_PreviewEndToEnd(t *testing.T) {
	folder := writeDocs(t, map[string]string{
		"main.mdext": "# Guide\n\n<MarkDownExtension operation=\"insert\" file=\"chapter.md\" />\n",
		"chapter.md": "## Chapter One\n\nBody text.\n",
	})
	stdout := new(bytes.Buffer)

	code := RunCLI(BuildCommandTree(), []string{"preview", folder, "main.mdext", "--raw"}, stdout, new(bytes.Buffer))

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	want := "# Guide\n\n## Chapter One\n\nBody text.\n\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestCommandTree_SearchEndToEnd(t *testing.T) {
	folder := writeDocs(t, map[string]string{
		"wildlife.md": "# Wildlife\n\nA velociraptor roamed the plains.\n",
		"setup.md":    "# Setup\n\nInstall the tools.\n",
	})
	stdout := new(bytes.Buffer)

	code := RunCLI(BuildCommandTree(), []string{"search", folder, "velociraptor"}, stdout, new(bytes.Buffer))

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Found 1 results for 'velociraptor':") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "1. wildlife.md (markdown)") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestCommandTree_InitThenCombine(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "docs")
	out := filepath.Join(t.TempDir(), "out")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	if code := RunCLI(BuildCommandTree(), []string{"init", folder}, stdout, stderr); code != 0 {
		t.Fatalf("init exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Initialized documentation folder in "+folder) {
		t.Errorf("stdout = %q", stdout.String())
	}

	stdout.Reset()
	if code := RunCLI(BuildCommandTree(), []string{"combine", folder, out}, stdout, stderr); code != 0 {
		t.Fatalf("combine exit code = %d, stderr: %s", code, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(out, "main.md"))
	if err != nil {
		t.Fatalf("reading combined document: %v", err)
	}
	if !strings.Contains(string(data), "## First Chapter") {
		t.Errorf("combined content = %q, want the inserted chapter", string(data))
	}
	if strings.Contains(string(data), "MarkDownExtension") {
		t.Errorf("combined content still contains a directive: %q", string(data))
	}
}
