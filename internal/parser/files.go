package parser

import (
	"fmt"
	"os"
)

// RequireFiles checks that every path names a readable regular file.
// It is called before any output is produced so a missing input never leaves
// partial artifacts behind. Missing files wrap fs.ErrNotExist.
func RequireFiles(paths ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("required file not found: %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("required file is a directory: %s", path)
		}
	}
	return nil
}
