// Package discover locates rule source files under project directories.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// RuleFiles returns every .js file under the given roots as absolute paths
// in sorted order. Roots naming a file directly are always included, so an
// explicitly passed path is linted regardless of extension. During directory
// walks, hidden files, hidden directories and node_modules are skipped.
func RuleFiles(roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			name := info.Name()
			if info.IsDir() {
				// The root itself is walked even when hidden, so an
				// explicitly passed dotdir still works
				if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasPrefix(name, ".") {
				return nil
			}
			if strings.HasSuffix(name, ".js") {
				add(path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", root, walkErr)
		}
	}

	sort.Strings(files)
	return files, nil
}
