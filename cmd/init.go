package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// initialSettings is the starter configuration written by init.
const initialSettings = `# mdcombine configuration
log_level: info
watch:
  debounce: 500ms
search:
  max_results: 10
`

// initialTemplate is the starter template written by init.
const initialTemplate = `# My Documentation

<MarkDownExtension operation="insert" file="chapter.md" />
`

// initialChapter is the starter chapter written by init.
const initialChapter = `## First Chapter

Write your content here. Split long documents into sources and insert
them from a template.
`

// starterFiles lists the scaffold files in write order.
var starterFiles = []struct {
	name    string
	content string
}{
	{".mdcombine.yaml", initialSettings},
	{"main.mdext", initialTemplate},
	{"chapter.md", initialChapter},
}

// NewInitCmd creates the init command. The getwd function returns the
// folder used when no argument is given.
func NewInitCmd(getwd func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "init [folder]",
		Short:        "Scaffold a starter documentation folder",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var folder string
			if len(args) > 0 {
				folder = args[0]
			} else {
				cwd, err := getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				folder = cwd
			}

			marker := filepath.Join(folder, ".mdcombine.yaml")
			if _, err := os.Stat(marker); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Documentation folder already initialized")
				return nil
			}

			if err := os.MkdirAll(folder, 0o755); err != nil {
				return fmt.Errorf("creating folder: %w", err)
			}

			for _, f := range starterFiles {
				path := filepath.Join(folder, f.name)
				if _, err := os.Stat(path); err == nil {
					continue
				}
				if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", f.name, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized documentation folder in %s\n", folder)
			return nil
		},
	}
}
