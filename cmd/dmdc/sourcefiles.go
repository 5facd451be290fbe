package main

import (
	"fmt"
	"path/filepath"
	"sort"
)

// collectSourceFiles expands each source directory into its .dmd and
// .dmdx files, sorted for deterministic parse order across runs.
func collectSourceFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		for _, pattern := range []string{"*.dmd", "*.dmdx"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("dmdc: globbing %s in %s: %w", pattern, dir, err)
			}
			files = append(files, matches...)
		}
	}
	sort.Strings(files)
	return files, nil
}
