// Package testutil provides test fixtures for multi-file document trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// WriteFiles writes the given relative-path → content entries under a fresh
// t.TempDir() and returns the directory. Parent directories are created as
// needed, so fixtures can span nested folders.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create fixture directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

// ExtractTxtar parses a txtar archive literal and writes its files under a
// fresh t.TempDir(), returning the directory. This keeps a whole fixture
// tree readable in a single string:
//
//	dir := testutil.ExtractTxtar(t, `
//	-- openapi.yaml --
//	info:
//	  $ref: ./shared/info.yaml
//	-- shared/info.yaml --
//	title: Test API
//	`)
func ExtractTxtar(t *testing.T, archive string) string {
	t.Helper()

	ar := txtar.Parse([]byte(archive))
	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}
	if len(files) == 0 {
		t.Fatal("txtar archive contains no files")
	}
	return WriteFiles(t, files)
}
