package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/stamp/internal/registry"
)

var (
	searchTagFilter string
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search template sets by name, description or tag",
	Long: `Search template sets across all sources.

The query matches against set names, paths and descriptions (case-insensitive substring).
Use --tag to filter by tags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTagFilter, "tag", "", "Filter by tags (comma-separated, matches any)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	discovered, err := registry.DiscoverAll(buildSources())
	if err != nil {
		return fmt.Errorf("discovering template sets: %w", err)
	}

	var filterTags []string
	if searchTagFilter != "" {
		for _, t := range strings.Split(searchTagFilter, ",") {
			tag := strings.TrimSpace(t)
			if tag != "" {
				filterTags = append(filterTags, strings.ToLower(tag))
			}
		}
	}

	var matches []registry.DiscoveredSet
	for _, ds := range discovered {
		if matchesSearch(ds, query, filterTags) {
			matches = append(matches, ds)
		}
	}

	if searchJSON {
		return printSetsJSON(cmd, matches)
	}
	if len(matches) == 0 {
		msg := "No template sets found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if searchTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", searchTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}
	return printSetsTable(cmd, matches)
}

// matchesSearch returns true if the set matches all provided filters.
func matchesSearch(ds registry.DiscoveredSet, query string, filterTags []string) bool {
	if len(filterTags) > 0 && !matchesAnyTag(ds.Tags, filterTags) {
		return false
	}

	// Substring match on name, description, or set path.
	if query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(ds.Name), q) &&
			!strings.Contains(strings.ToLower(ds.Description), q) &&
			!strings.Contains(strings.ToLower(ds.Path), q) {
			return false
		}
	}
	return true
}

// matchesAnyTag returns true if any of the set's tags match any of the filter tags.
// Comparison is case-insensitive.
func matchesAnyTag(setTags []string, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, st := range setTags {
			if strings.EqualFold(st, ft) {
				return true
			}
		}
	}
	return false
}
