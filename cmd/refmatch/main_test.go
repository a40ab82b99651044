package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"calpipe/refmatch/internal/mappingtest"
)

// writeMappingSet materializes a small HST mapping hierarchy in a temp
// directory and returns the directory path.
func writeMappingSet(t *testing.T) string {
	t.Helper()
	return mappingtest.Write(t, mappingtest.Basic())
}

// useMappingConfig points the global --config flag at a config file
// whose mapping directory is the given fixture dir, restoring the flag
// on cleanup.
func useMappingConfig(t *testing.T, mappingDir string) {
	t.Helper()

	content := "mapping:\n  dir: " + mappingDir + "\n  cache: true\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	orig := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = orig })
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return string(out), runErr
}
