package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/stamp/internal/registry"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available template sets",
	Long:  `List template sets from --templates-dir, the configured templates directory and the built-in sets.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sets, err := registry.DiscoverAll(buildSources())
	if err != nil {
		return fmt.Errorf("discovering template sets: %w", err)
	}

	if listJSON {
		return printSetsJSON(cmd, sets)
	}
	if len(sets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No template sets found.")
		return nil
	}
	return printSetsTable(cmd, sets)
}

func printSetsTable(cmd *cobra.Command, sets []registry.DiscoveredSet) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSOURCE\tDESCRIPTION")
	for _, s := range sets {
		version := s.Version
		if version == "" {
			version = "-"
		}
		desc := s.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, version, s.Source, desc)
	}
	return w.Flush()
}

func printSetsJSON(cmd *cobra.Command, sets []registry.DiscoveredSet) error {
	if sets == nil {
		sets = []registry.DiscoveredSet{}
	}
	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
