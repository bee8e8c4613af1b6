package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"
)

// DocumentInfo describes one collected document for display.
type DocumentInfo struct {
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Title      string   `json:"title"`
	Directives int      `json:"directives"`
	Targets    []string `json:"targets"`
}

// ListResult holds the outcome of a list operation.
type ListResult struct {
	Documents []DocumentInfo `json:"documents"`
}

// ListRunner defines the interface for running the list operation.
type ListRunner interface {
	List(ctx context.Context, folder string) (*ListResult, error)
}

// NewListCmd creates the list command with the given runner.
func NewListCmd(runner ListRunner) *cobra.Command {
	var jsonOutput bool
	var tree bool

	cmd := &cobra.Command{
		Use:          "list <input-folder>",
		Short:        "List the documents in a documentation folder",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runner.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput || GetJSON() {
				if result.Documents == nil {
					result.Documents = []DocumentInfo{}
				}
				writeJSON(cmd.OutOrStdout(), result)
				return nil
			}

			if tree {
				renderListTree(cmd.OutOrStdout(), args[0], result.Documents)
			} else {
				renderListText(cmd.OutOrStdout(), result.Documents)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&tree, "tree", false, "Display templates with their insert dependencies as a tree")

	return cmd
}

// documentLabel formats the display label for one document.
func documentLabel(d DocumentInfo) string {
	label := d.Name + " " + styleMuted("("+d.Role+")")
	if d.Title != "" {
		label += fmt.Sprintf(" %q", d.Title)
	}
	return label
}

// renderListText writes the flat document listing.
func renderListText(w io.Writer, docs []DocumentInfo) {
	for _, d := range docs {
		line := documentLabel(d)
		if d.Directives > 0 {
			line += fmt.Sprintf(" [%d directives]", d.Directives)
		}
		fmt.Fprintln(w, line)
	}
}

// renderListTree writes each template with its insert dependencies nested
// below it. Targets that do not resolve to a collected document are marked
// missing; references back into the active chain are marked as cycles.
func renderListTree(w io.Writer, folder string, docs []DocumentInfo) {
	byName := make(map[string]DocumentInfo, len(docs))
	for _, d := range docs {
		byName[d.Name] = d
	}

	root := gotree.New(folder)
	for _, d := range docs {
		if d.Role != "template" {
			continue
		}
		branch := root.Add(documentLabel(d))
		addTargets(branch, d, byName, map[string]bool{d.Name: true})
	}
	fmt.Fprint(w, root.Print())
}

// addTargets recursively adds a document's insert targets to the tree.
// The path map holds the documents on the active chain so cycles are cut
// instead of recursed into.
func addTargets(branch gotree.Tree, d DocumentInfo, byName map[string]DocumentInfo, path map[string]bool) {
	for _, target := range d.Targets {
		child, ok := byName[target]
		if !ok {
			branch.Add(target + " " + styleMuted("(missing)"))
			continue
		}
		if path[child.Name] {
			branch.Add(child.Name + " " + styleMuted("(cycle)"))
			continue
		}
		sub := branch.Add(documentLabel(child))
		path[child.Name] = true
		addTargets(sub, child, byName, path)
		delete(path, child.Name)
	}
}
