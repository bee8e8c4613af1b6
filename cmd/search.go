package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// SearchHit describes one search result.
type SearchHit struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Score     float64  `json:"score"`
	Fragments []string `json:"fragments"`
}

// SearchReport holds the outcome of a search run.
type SearchReport struct {
	Query string      `json:"query"`
	Total uint64      `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// SearchRunner defines the interface for running the search operation.
type SearchRunner interface {
	Search(ctx context.Context, folder, query string, limit int) (*SearchReport, error)
}

// formatSearchJSON writes search results as JSON to w, with bleve's
// highlight tags stripped from the fragments.
func formatSearchJSON(w io.Writer, result *SearchReport) {
	if result.Hits == nil {
		result.Hits = []SearchHit{}
	}
	for i := range result.Hits {
		for j, fragment := range result.Hits[i].Fragments {
			result.Hits[i].Fragments[j] = stripMarkTags(fragment)
		}
	}
	writeJSON(w, result)
}

// formatSearchHuman writes search results as human-readable text to w.
func formatSearchHuman(w io.Writer, result *SearchReport) {
	if result.Total == 0 {
		fmt.Fprintf(w, "No results found for '%s'\n", result.Query)
		return
	}

	fmt.Fprintf(w, "Found %d results for '%s':\n\n", result.Total, result.Query)
	for i, hit := range result.Hits {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, hit.Name, styleMuted("("+hit.Role+")"))
		for _, fragment := range hit.Fragments {
			fmt.Fprintf(w, "   %s\n", highlightFragment(fragment))
		}
		fmt.Fprintln(w)
	}
	if rest := result.Total - uint64(len(result.Hits)); rest > 0 {
		fmt.Fprintf(w, "... and %d more results\n", rest)
	}
}

// NewSearchCmd creates the search command with the given runner.
func NewSearchCmd(runner SearchRunner) *cobra.Command {
	var jsonOutput bool
	var limit int

	cmd := &cobra.Command{
		Use:          "search <input-folder> <query>",
		Short:        "Search document contents",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			max := GetSettings().Search.MaxResults
			if cmd.Flags().Changed("limit") {
				max = limit
			}

			result, err := runner.Search(cmd.Context(), args[0], args[1], max)
			if err != nil {
				return err
			}

			if jsonOutput || GetJSON() {
				formatSearchJSON(cmd.OutOrStdout(), result)
			} else {
				formatSearchHuman(cmd.OutOrStdout(), result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of results")

	return cmd
}
