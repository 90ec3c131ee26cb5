package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks dir and discovers every .jsonl batch file, in lexical order.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".jsonl") {
			return nil
		}
		files = append(files, DiscoveredFile{Path: path, Name: d.Name()})
		return nil
	})
	return files, err
}

// ScanPaths resolves command-line arguments: files are taken as given,
// directories are scanned. A path that does not exist is an error.
func ScanPaths(paths []string) ([]DiscoveredFile, error) {
	var files []DiscoveredFile
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("batch path %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, DiscoveredFile{Path: p, Name: filepath.Base(p)})
			continue
		}
		found, err := ScanDir(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		files = append(files, found...)
	}
	return files, nil
}
