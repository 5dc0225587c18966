package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TestFileName derives the generated file name from the scenario file,
// e.g. scenario.yaml → test_scenario.tavern.yaml
func TestFileName(scenarioPath string) string {
	base := filepath.Base(scenarioPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		stem = "scenario"
	}
	return "test_" + stem + ".tavern.yaml"
}

// ResolveDestination turns the user supplied output argument into a file path.
// An existing directory, or a path ending in a separator, receives a file named
// after the scenario; anything else is used as is.
func ResolveDestination(output, scenarioPath string) string {
	if output == "" {
		return filepath.Join("output", TestFileName(scenarioPath))
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, TestFileName(scenarioPath))
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, TestFileName(scenarioPath))
	}
	return output
}

// WriteText writes content to filePath, creating parent directories.
func WriteText(filePath, content string) error {
	return WriteFile(filePath, []byte(content))
}

// WriteFile writes data to filePath, creating parent directories. The data is
// written to a temporary sibling first and renamed into place so a failed
// write never leaves a truncated file behind.
func WriteFile(filePath string, data []byte) error {
	if err := ensureDir(filePath); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), "."+filepath.Base(filePath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}
