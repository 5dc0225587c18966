/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tavoas/tavoas/internal/models"
	"github.com/tavoas/tavoas/internal/output"
	"github.com/tavoas/tavoas/internal/parser"
)

const defaultExcelPath = "output/openapi_operations.xlsx"

type endpointsOptions struct {
	SpecFile   string
	Format     string
	Excel      string
	OutputFile string
	Sheet      string
	Filter     string
	Tags       []string
}

type endpointsReport struct {
	Destination string // empty when written to stdout
	Count       int
}

// endpointsCmd represents the endpoints command
var endpointsCmd = &cobra.Command{
	Use:   "endpoints [openapi-file]",
	Short: "List the operations of an OpenAPI document",
	Long: `List every operationId, summary, method and url of an OpenAPI document.

By default the listing is written to a spreadsheet with a bold header row.

Examples:
  # Spreadsheet at output/openapi_operations.xlsx
  tavoas endpoints openapi.yaml

  # Spreadsheet somewhere else
  tavoas endpoints openapi.yaml --excel reports/operations.xlsx

  # CSV of the pet operations on stdout
  tavoas endpoints openapi.yaml --format csv --tags pets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runEndpoints(endpointsOptionsFromConfig(args[0]))
		if err != nil {
			return err
		}

		// stdout already carries the listing itself
		if report.Destination != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d operations written to %s\n",
				green("✓"), report.Count, report.Destination)
		}
		return nil
	},
}

// endpointsOptionsFromConfig merges flags, tavoas.toml and TAVOAS_ENDPOINTS_* values
func endpointsOptionsFromConfig(specFile string) endpointsOptions {
	return endpointsOptions{
		SpecFile:   specFile,
		Format:     viper.GetString("endpoints.format"),
		Excel:      viper.GetString("endpoints.excel"),
		OutputFile: viper.GetString("endpoints.output_file"),
		Sheet:      viper.GetString("endpoints.sheet"),
		Filter:     viper.GetString("endpoints.filter"),
		Tags:       viper.GetStringSlice("endpoints.tags"),
	}
}

func runEndpoints(opts endpointsOptions) (endpointsReport, error) {
	var report endpointsReport

	format, err := output.ParseFormat(opts.Format)
	if err != nil {
		return report, err
	}

	p, err := parser.ParseFile(opts.SpecFile)
	if err != nil {
		return report, fmt.Errorf("error parsing OpenAPI file: %w", err)
	}
	logDocumentWarnings(opts.SpecFile, p.Warnings())

	operations := filterOperations(p.GetOperations(parser.ExtractOptions{}), opts.Filter, opts.Tags)

	dest := opts.OutputFile
	if format == output.FormatXLSX {
		dest = opts.Excel
		if dest == "" {
			dest = defaultExcelPath
		}
	}

	info := p.Info()
	list := models.EndpointList{
		Title:      info.Title,
		Version:    info.Version,
		Operations: operations,
	}
	if err := output.ExportEndpoints(list, format, output.ExportOptions{FilePath: dest, SheetName: opts.Sheet}); err != nil {
		return report, fmt.Errorf("error exporting endpoints: %w", err)
	}
	slog.Debug("exported endpoints", "format", format, "count", len(operations), "destination", dest)

	report.Destination = dest
	report.Count = len(operations)
	return report, nil
}

func filterOperations(operations []models.Operation, filterStr string, tagFilters []string) []models.Operation {
	var filtered []models.Operation

	for _, op := range operations {
		// Filter by path pattern or operation ID
		if filterStr != "" {
			if !strings.Contains(op.Path, filterStr) && !strings.Contains(op.OperationID, filterStr) {
				continue
			}
		}

		// Filter by tags
		if len(tagFilters) > 0 {
			found := false
			for _, filterTag := range tagFilters {
				for _, opTag := range op.Tags {
					if opTag == filterTag {
						found = true
						break
					}
				}
				if found {
					break
				}
			}
			if !found {
				continue
			}
		}

		filtered = append(filtered, op)
	}

	return filtered
}

func init() {
	rootCmd.AddCommand(endpointsCmd)

	endpointsCmd.Flags().String("format", string(output.FormatXLSX), "Output format: xlsx, csv, json")
	endpointsCmd.Flags().String("excel", defaultExcelPath, "Spreadsheet destination for the xlsx format")
	endpointsCmd.Flags().String("output-file", "", "Destination for csv/json output (default: stdout)")
	endpointsCmd.Flags().String("sheet", output.DefaultSheetName, "Worksheet name for the xlsx format")
	endpointsCmd.Flags().String("filter", "", "Filter endpoints by path pattern or operation ID")
	endpointsCmd.Flags().StringSlice("tags", []string{}, "Filter by OpenAPI tags (can be specified multiple times)")

	bindFlag("endpoints.format", endpointsCmd, "format")
	bindFlag("endpoints.excel", endpointsCmd, "excel")
	bindFlag("endpoints.output_file", endpointsCmd, "output-file")
	bindFlag("endpoints.sheet", endpointsCmd, "sheet")
	bindFlag("endpoints.filter", endpointsCmd, "filter")
	bindFlag("endpoints.tags", endpointsCmd, "tags")
}
