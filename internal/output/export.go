package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tavoas/tavoas/internal/models"
	"github.com/xuri/excelize/v2"
)

// Format represents the output format type
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// DefaultSheetName is the worksheet title used for endpoint listings
const DefaultSheetName = "OpenAPI Operations"

// Header is the fixed column layout of endpoint listings
var Header = []string{"operationId", "summary", "method", "url"}

// ExportOptions controls where and how an endpoint listing is written
type ExportOptions struct {
	// FilePath is the destination; empty means stdout for csv and json
	FilePath string
	// SheetName names the xlsx worksheet; defaults to DefaultSheetName
	SheetName string
}

// ExportEndpoints exports an endpoint listing to the specified format
func ExportEndpoints(list models.EndpointList, format Format, opts ExportOptions) error {
	if format == FormatXLSX {
		return WriteExcel(list.Operations, opts.FilePath, opts.SheetName)
	}

	w, closer, err := getWriter(opts.FilePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	switch format {
	case FormatJSON:
		return exportEndpointsJSON(w, list)
	case FormatCSV:
		return exportEndpointsCSV(w, list.Operations)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	if err := ensureDir(filePath); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

// exportEndpointsJSON exports the listing as JSON
func exportEndpointsJSON(w io.Writer, list models.EndpointList) error {
	if list.Operations == nil {
		list.Operations = []models.Operation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

// exportEndpointsCSV exports the listing as CSV
func exportEndpointsCSV(w io.Writer, operations []models.Operation) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, op := range operations {
		if err := cw.Write(row(op)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteExcel writes one bold header row and one row per operation to a new
// workbook at filePath, creating parent directories as needed. The file name
// need not carry an .xlsx extension
func WriteExcel(operations []models.Operation, filePath, sheetName string) error {
	if filePath == "" {
		return fmt.Errorf("xlsx output requires a file path")
	}
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, op := range operations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(op)
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// SaveAs rejects names without a workbook extension
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return WriteFile(filePath, buf.Bytes())
}

func row(op models.Operation) []string {
	return []string{op.OperationID, op.Summary, op.Method, op.Path}
}

func ensureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'xlsx', 'json' or 'csv'", s)
	}
}
