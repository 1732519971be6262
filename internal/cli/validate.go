package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/stamp/internal/manifest"
	"github.com/agentx-labs/stamp/internal/template"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <dir|template.yaml>",
	Short: "Check a template set",
	Long: `Validate a template set: the manifest against its JSON schema, semantic
rules (semver fields, unique variables, acyclic derivations), engine
compatibility, and that every template file and target path parses.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), args[0])
	},
}

func runValidate(out io.Writer, arg string) error {
	path := arg
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		path = filepath.Join(arg, manifest.FileName)
	}
	fmt.Fprintf(out, "Template set validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("template set validation failed: %w", err)
	}
	issues := result.Issues

	m, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}
	if result.Valid {
		issues = append(issues, m.Lint()...)
		if err := m.CheckCompatible(buildVersion); err != nil {
			issues = append(issues, manifest.ValidationIssue{Path: "/requires", Keyword: "requires", Message: err.Error()})
		}
		issues = append(issues, checkTemplateFiles(os.DirFS(filepath.Dir(path)), m)...)
	}

	if len(issues) == 0 {
		fmt.Fprintf(out, "  [ OK ] Valid template set: %s (v%s), %d file(s)\n", m.Name, m.Version, len(m.Files))
		return nil
	}

	fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(issues))
	for _, issue := range issues {
		if issue.Path != "" {
			fmt.Fprintf(out, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(out, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("template set %s has %d validation issue(s)", path, len(issues))
}

// checkTemplateFiles reports files that are missing or do not parse.
func checkTemplateFiles(fsys fs.FS, m *manifest.Manifest) []manifest.ValidationIssue {
	var issues []manifest.ValidationIssue
	for i, f := range m.Files {
		p := fmt.Sprintf("/files/%d/source", i)
		data, err := fs.ReadFile(fsys, f.Source)
		if err != nil {
			issues = append(issues, manifest.ValidationIssue{Path: p, Keyword: "file", Message: fmt.Sprintf("cannot read %s: %v", f.Source, err)})
			continue
		}
		if _, err := template.Parse(string(data)); err != nil {
			issues = append(issues, manifest.ValidationIssue{Path: p, Keyword: "template", Message: fmt.Sprintf("%s: %v", f.Source, err)})
		}
	}
	return issues
}
