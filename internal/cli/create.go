package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/stamp/internal/config"
	"github.com/agentx-labs/stamp/internal/manifest"
	"github.com/agentx-labs/stamp/internal/registry"
	"github.com/agentx-labs/stamp/internal/scaffold"
)

var (
	createOutputDir  string
	createSets       []string
	createValuesFile string
	createForce      bool
	createDryRun     bool
)

func init() {
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", ".", "Output directory")
	createCmd.Flags().StringArrayVar(&createSets, "set", nil, "Variable value as name=value (repeatable)")
	createCmd.Flags().StringVarP(&createValuesFile, "values", "f", "", "YAML file of variable values")
	createCmd.Flags().BoolVar(&createForce, "force", false, "Write into a non-empty output directory")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Render and print the files without writing them")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <set|dir>",
	Short: "Scaffold files from a template set",
	Long: `Render every file of a template set into the output directory. The set is
looked up by name in --templates-dir, the configured templates directory and
the built-in sets, or given as a directory containing template.yaml.

Examples:
  stamp create react-component --set component=UserCard --output-dir src/components
  stamp create go-package --set package=store --dry-run
  stamp create ./my-set --values values.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	set, err := loadSet(args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded template set", "name", set.Manifest.Name, "source", set.SourceName)

	values, err := collectValues(createValuesFile, createSets)
	if err != nil {
		return err
	}

	result, err := scaffold.Generate(cmd.Context(), set, values, createOutputDir, scaffold.Options{
		Force:         createForce,
		DryRun:        createDryRun,
		Concurrency:   config.Concurrency(),
		EngineVersion: buildVersion,
		Config:        map[string]string{"author": config.Author()},
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	printResult(cmd, set.Manifest.Name, result, createDryRun)
	return nil
}

// loadSet loads a set from a directory path if one exists, otherwise
// resolves it by name.
func loadSet(arg string) (*registry.Set, error) {
	if _, err := os.Stat(filepath.Join(arg, manifest.FileName)); err == nil {
		return registry.LoadDir(arg)
	}
	return registry.Load(arg, buildSources())
}

func printResult(cmd *cobra.Command, name string, result *scaffold.Result, dryRun bool) {
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "Would create %s in %s/\n", name, result.OutputDir)
		for _, f := range result.Rendered {
			fmt.Fprintf(out, "\n--- %s ---\n%s", f.Path, f.Content)
		}
	} else {
		fmt.Fprintf(out, "Created %s in %s/\n", name, result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
}
