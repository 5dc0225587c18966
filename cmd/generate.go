/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tavoas/tavoas/internal/generator"
	"github.com/tavoas/tavoas/internal/models"
	"github.com/tavoas/tavoas/internal/output"
	"github.com/tavoas/tavoas/internal/parser"
	"github.com/tavoas/tavoas/internal/scenario"
)

type generateOptions struct {
	SpecFile       string
	Output         string
	ScenarioFile   string
	TemplateFile   string
	TestName       string
	ResponseStatus string
	OnDuplicate    string
}

type generateReport struct {
	Output     string
	Resolution models.Resolution
}

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [openapi-file] [output]",
	Short: "Generate a Tavern test from a scenario",
	Long: `Generate a Tavern test file from the operations named in a scenario.

The scenario file lists operationIds (with optional display names). Each one is
looked up in the OpenAPI document and its application/json request and response
examples are rendered into the template. Unknown operationIds are skipped with a
warning.

The output may be a file or a directory; a directory receives
test_<scenario>.tavern.yaml.

Examples:
  # Built-in Tavern template, written to output/test_scenario.tavern.yaml
  tavoas generate openapi.yaml --scenario scenario.yaml

  # Custom template and destination
  tavoas generate openapi.yaml tests/ -s scenario.yaml -t template_scenario.j2

  # Use the 201 response examples and refuse duplicate operationIds
  tavoas generate openapi.yaml out.tavern.yaml -s scenario.yaml --response-status 201 --on-duplicate error`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generateOptions{
			SpecFile:       args[0],
			ScenarioFile:   viper.GetString("generate.scenario"),
			TemplateFile:   viper.GetString("generate.template"),
			TestName:       viper.GetString("generate.test_name"),
			ResponseStatus: viper.GetString("generate.response_status"),
			OnDuplicate:    viper.GetString("generate.on_duplicate"),
		}
		if len(args) > 1 {
			opts.Output = args[1]
		}

		report, err := runGenerate(opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if n := len(report.Resolution.Warnings); n > 0 {
			fmt.Fprintf(out, "%s %d scenario item(s) skipped or ambiguous, see warnings above\n", yellow("⚠"), n)
		}
		fmt.Fprintf(out, "%s Tavern scenario test generated → %s (%d stages)\n",
			green("✓"), report.Output, len(report.Resolution.Steps))
		return nil
	},
}

// runGenerate checks every input before touching the output location, so a
// missing file never leaves a partial artifact behind
func runGenerate(opts generateOptions) (generateReport, error) {
	var report generateReport

	if opts.ScenarioFile == "" {
		return report, errors.New("no scenario file given: use --scenario")
	}
	required := []string{opts.SpecFile, opts.ScenarioFile}
	if opts.TemplateFile != "" {
		required = append(required, opts.TemplateFile)
	}
	if err := parser.RequireFiles(required...); err != nil {
		return report, err
	}

	policy, err := scenario.ParseCollisionPolicy(opts.OnDuplicate)
	if err != nil {
		return report, err
	}

	p, err := parser.ParseFile(opts.SpecFile)
	if err != nil {
		return report, fmt.Errorf("error parsing OpenAPI file: %w", err)
	}
	logDocumentWarnings(opts.SpecFile, p.Warnings())

	sc, err := scenario.LoadFile(opts.ScenarioFile)
	if err != nil {
		return report, fmt.Errorf("error loading scenario: %w", err)
	}
	if sc.TestName == "" {
		sc.TestName = opts.TestName
	}

	operations := p.GetOperations(parser.ExtractOptions{ResponseStatus: opts.ResponseStatus})
	index, err := scenario.NewIndex(operations, policy)
	if err != nil {
		return report, err
	}

	res := scenario.Resolve(index, sc)
	for _, w := range res.Warnings {
		slog.Warn(w.String(), "item", w.Index)
	}

	gen, err := generator.NewGenerator(generator.Options{
		TemplatePath:   opts.TemplateFile,
		ResponseStatus: opts.ResponseStatus,
	})
	if err != nil {
		return report, err
	}
	text, err := gen.Render(res)
	if err != nil {
		return report, err
	}

	dest := output.ResolveDestination(opts.Output, opts.ScenarioFile)
	if err := output.WriteText(dest, text); err != nil {
		return report, err
	}
	slog.Debug("wrote Tavern test", "output", dest, "stages", len(res.Steps), "operations", index.Len())

	report.Output = dest
	report.Resolution = res
	return report, nil
}

func logDocumentWarnings(file string, warnings []string) {
	for _, w := range warnings {
		slog.Warn(w, "file", file)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("scenario", "s", "", "Scenario file listing the operationIds to include")
	generateCmd.Flags().StringP("template", "t", "", "Template file (default: built-in Tavern template)")
	generateCmd.Flags().String("test-name", "", "Test name used when the scenario does not set test_name")
	generateCmd.Flags().String("response-status", parser.DefaultResponseStatus, "Response code whose example is rendered")
	generateCmd.Flags().String("on-duplicate", string(scenario.FirstWins), "Duplicate operationId policy: first, error")

	bindFlag("generate.scenario", generateCmd, "scenario")
	bindFlag("generate.template", generateCmd, "template")
	bindFlag("generate.test_name", generateCmd, "test-name")
	bindFlag("generate.response_status", generateCmd, "response-status")
	bindFlag("generate.on_duplicate", generateCmd, "on-duplicate")
}
