package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var (
	searchLimit   int
	searchFilters domain.DocumentFilters
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents",
	Long: `Search documents by title and summary.

Results are ranked with title matches weighted above summary matches.
Matched terms are shown in [brackets].`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial]",
	Short: "Show title completions for a partial query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggest,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVar(&searchFilters.Type, "type", "", "document type")
	searchCmd.Flags().StringVar(&searchFilters.Department, "department", "", "department")
	searchCmd.Flags().StringVar(&searchFilters.Status, "status", "", "status")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
}

// limitSetter is implemented by search services that cap result counts.
type limitSetter interface {
	SetLimit(limit int)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}

	if ls, ok := searchService.(limitSetter); ok {
		ls.SetLimit(searchLimit)
	}
	searchService.SetFilters(searchFilters)

	query := strings.Join(args, " ")
	if err := searchService.Submit(ctx, query); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := searchService.Snapshot().Results
	if jsonOutput {
		return printJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] ID Title (Score)
		doc := &results[i].Document
		cmd.Printf("  [%d] %s %s (%.2f)\n", i+1, doc.ID, doc.Title, results[i].Score)
		cmd.Printf("      %s | %s | %s\n", doc.Type, orDash(doc.Department), doc.Status)
		if results[i].Snippet != "" {
			cmd.Printf("      %s\n", highlight(results[i].Snippet, results[i].Highlights))
		}
		cmd.Println()
	}
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}

	tk, ok := searchService.SetQuery(strings.Join(args, " "))
	if !ok {
		return fmt.Errorf("type at least %d characters", domain.MinSuggestLength)
	}
	if _, err := searchService.AwaitSuggestions(ctx, tk); err != nil {
		return fmt.Errorf("failed to get suggestions: %w", err)
	}

	suggestions := searchService.Snapshot().Suggestions
	if jsonOutput {
		return printJSON(cmd, suggestions)
	}
	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Printf("  %-6s %s\n", s.DocumentID, s.Text)
	}
	return nil
}
