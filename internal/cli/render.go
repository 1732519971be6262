package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/stamp/internal/config"
	"github.com/agentx-labs/stamp/internal/engine"
	"github.com/agentx-labs/stamp/internal/render"
	"github.com/agentx-labs/stamp/internal/template"
)

var (
	renderSets       []string
	renderValuesFile string
	renderDerives    []string
	renderIndent     bool
	renderEscape     string
	renderOutput     string
)

func init() {
	renderCmd.Flags().StringArrayVar(&renderSets, "set", nil, "Placeholder value as name=value (repeatable)")
	renderCmd.Flags().StringVarP(&renderValuesFile, "values", "f", "", "YAML file of placeholder values")
	renderCmd.Flags().StringArrayVar(&renderDerives, "derive", nil, "Derivation rule as name=from[:transforms] or name=<template> (repeatable)")
	renderCmd.Flags().BoolVar(&renderIndent, "indent", false, "Indent continuation lines of multi-line values (default from config)")
	renderCmd.Flags().StringVar(&renderEscape, "escape", "none", "Escape values: none or html")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Render a single template file",
	Long: `Render a template, replacing every {{name}} placeholder with its value.

Examples:
  stamp render greeting.txt --set name=World
  stamp render component.jsx --set component=UserCard --derive component_class=component:kebab
  cat page.html | stamp render - --values page.yaml --escape html`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	tmpl, err := template.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	values, err := collectValues(renderValuesFile, renderSets)
	if err != nil {
		return err
	}
	if _, ok := values["author"]; !ok && tmpl.Has("author") && config.Author() != "" {
		values["author"] = config.Author()
	}

	rules, err := parseDerivations(renderDerives)
	if err != nil {
		return err
	}

	indent := config.Indent()
	if cmd.Flags().Changed("indent") {
		indent = renderIndent
	}
	esc, err := render.EscaperByName(renderEscape)
	if err != nil {
		return fmt.Errorf("--escape: %w", err)
	}

	eng, err := engine.New(rules, render.WithIndent(indent), render.WithEscaper(esc))
	if err != nil {
		return err
	}
	out, err := eng.Execute(tmpl, values)
	if err != nil {
		return err
	}
	for _, name := range out.Unused {
		logger.Warn("value not used by template", "name", name)
	}

	if renderOutput == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), out.Text)
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(out.Text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", renderOutput, err)
	}
	logger.Debug("wrote file", "path", renderOutput, "bytes", len(out.Text))
	return nil
}

// readSource reads a template from path, or from stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}
