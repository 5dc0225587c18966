package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavoas/tavoas/internal/models"
	"github.com/xuri/excelize/v2"
)

var sampleOperations = []models.Operation{
	{OperationID: "listPets", Summary: "List all pets", Method: "GET", Path: "/pets"},
	{OperationID: "", Summary: "Remove a pet", Method: "DELETE", Path: "/pets/{petId}"},
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "operations.xlsx")

	require.NoError(t, WriteExcel(sampleOperations, path, ""))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"listPets", "List all pets", "GET", "/pets"}, rows[1])
	// excelize drops trailing empty cells but keeps leading ones
	assert.Equal(t, []string{"", "Remove a pet", "DELETE", "/pets/{petId}"}, rows[2])

	for _, cell := range []string{"A1", "B1", "C1", "D1"} {
		styleID, err := f.GetCellStyle(DefaultSheetName, cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Font, "header cell %s has no font", cell)
		assert.True(t, style.Font.Bold, "header cell %s is not bold", cell)
	}

	styleID, err := f.GetCellStyle(DefaultSheetName, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, mustHeaderStyle(t, f), styleID, "data rows must not be bold")
}

func mustHeaderStyle(t *testing.T, f *excelize.File) int {
	t.Helper()
	id, err := f.GetCellStyle(DefaultSheetName, "A1")
	require.NoError(t, err)
	return id
}

func TestWriteExcelEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteExcel(nil, path, "Custom"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Custom")
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, rows)
}

func TestWriteExcelRequiresPath(t *testing.T) {
	assert.Error(t, WriteExcel(sampleOperations, "", ""))
}

func TestExportEndpointsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.csv")

	err := ExportEndpoints(models.EndpointList{Operations: sampleOperations}, FormatCSV, ExportOptions{FilePath: path})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		Header,
		{"listPets", "List all pets", "GET", "/pets"},
		{"", "Remove a pet", "DELETE", "/pets/{petId}"},
	}, records)
}

func TestExportEndpointsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.json")
	list := models.EndpointList{Title: "Petstore", Version: "3.0.3", Operations: sampleOperations}

	require.NoError(t, ExportEndpoints(list, FormatJSON, ExportOptions{FilePath: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Title      string              `json:"title"`
		Version    string              `json:"version"`
		Operations []map[string]string `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Petstore", got.Title)
	assert.Equal(t, "3.0.3", got.Version)
	require.Len(t, got.Operations, 2)
	assert.Equal(t, map[string]string{
		"operationId": "listPets", "summary": "List all pets", "method": "GET", "url": "/pets",
	}, got.Operations[0])
}

func TestExportEndpointsJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.json")

	require.NoError(t, ExportEndpoints(models.EndpointList{}, FormatJSON, ExportOptions{FilePath: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"operations": []}`, string(data))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"xlsx": FormatXLSX, "excel": FormatXLSX, "json": FormatJSON, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestWriteExcelWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ops")

	require.NoError(t, WriteExcel(sampleOperations, path, ""))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	f, err := excelize.OpenReader(file)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}
