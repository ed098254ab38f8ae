package main

import (
	"fmt"
	"os"
	"path/filepath"

	"blc/internal/project"
	"blc/internal/token"
)

// vocabularyFor returns the vocabulary of the project containing path,
// or the default one outside any project.
func vocabularyFor(path string) (*token.Vocabulary, error) {
	m, err := manifestFor(path)
	if err != nil {
		return nil, err
	}
	return m.Vocabulary()
}

// manifestFor finds bl.toml above path. A nil manifest means no project.
func manifestFor(path string) (*project.Manifest, error) {
	dir := path
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		dir = filepath.Dir(path)
	}
	m, ok, err := project.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", project.ManifestName, err)
	}
	if !ok {
		return nil, nil
	}
	return m, nil
}
