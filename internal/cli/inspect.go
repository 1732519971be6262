package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/stamp/internal/engine"
)

var (
	inspectDerives []string
	inspectJSON    bool
)

func init() {
	inspectCmd.Flags().StringArrayVar(&inspectDerives, "derive", nil, "Derivation rule, marks the placeholder as derived (repeatable)")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|->",
	Short: "List the placeholders of a template",
	Long: `List every distinct placeholder in order of first appearance, with its
occurrence count and whether a --derive rule produces it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// inspectEntry represents a placeholder for display.
type inspectEntry struct {
	Name        string `json:"name"`
	Occurrences int    `json:"occurrences"`
	Derived     bool   `json:"derived"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	rules, err := parseDerivations(inspectDerives)
	if err != nil {
		return err
	}
	eng, err := engine.New(rules)
	if err != nil {
		return err
	}
	placeholders, err := eng.Inspect(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	entries := make([]inspectEntry, 0, len(placeholders))
	for _, p := range placeholders {
		entries = append(entries, inspectEntry{Name: p.Name, Occurrences: p.Occurrences, Derived: p.Derived})
	}

	if inspectJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling placeholders: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No placeholders.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tOCCURRENCES\tSOURCE")
	for _, e := range entries {
		source := "value"
		if e.Derived {
			source = "derived"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Occurrences, source)
	}
	return w.Flush()
}
