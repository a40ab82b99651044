//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// TestMatchesPipeline exercises the matches, exptime, and uses commands
// against a small mapping set through the built binary.
func TestMatchesPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	mappingDir := createTestMappingSet(t, tmpDir)
	configFile := filepath.Join(tmpDir, "config.yaml")
	createTestConfig(t, configFile, fmt.Sprintf(`
mapping:
  dir: %q
  cache: true

telemetry:
  logging:
    level: "warn"
    format: "json"
  metrics:
    enabled: false
`, mappingDir))

	binaryPath := buildRefmatchBinary(t)

	t.Log("Step 1: Resolving match paths...")
	matchesCmd := exec.Command(binaryPath, "matches",
		"--config", configFile,
		"--contexts", "hst.pmap",
		"--files", "q9e1206kj_bia.fits")
	output, err := matchesCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("matches failed: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("DETECTOR='HRC'")) {
		t.Errorf("expected DETECTOR='HRC' in matches output, got: %s", output)
	}

	t.Log("Step 2: Deriving minimum exptime...")
	exptimeCmd := exec.Command(binaryPath, "exptime",
		"--config", configFile,
		"--contexts", "hst.pmap",
		"--files", "q9e1206kj_bia.fits")
	output, err = exptimeCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("exptime failed: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("2006-07-04 11:32:35")) {
		t.Errorf("expected timestamp in exptime output, got: %s", output)
	}

	t.Log("Step 3: Listing transitive users...")
	usesCmd := exec.Command(binaryPath, "uses",
		"--config", configFile,
		"--files", "q9e1206kj_bia.fits")
	output, err = usesCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("uses failed: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"hst.pmap", "hst_acs.imap", "hst_acs_biasfile.rmap"} {
		if !bytes.Contains(output, []byte(want)) {
			t.Errorf("expected %s in uses output, got: %s", want, output)
		}
	}
}

// TestLintPipeline exercises linting in text and JSON form.
func TestLintPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	mappingDir := createTestMappingSet(t, tmpDir)
	binaryPath := buildRefmatchBinary(t)

	t.Log("Step 1: Linting the mapping directory...")
	lintCmd := exec.Command(binaryPath, "lint", "--dir", mappingDir)
	output, err := lintCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("lint failed: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("0 error(s)")) {
		t.Errorf("expected clean lint summary, got: %s", output)
	}

	t.Log("Step 2: Linting a broken file with JSON output...")
	brokenFile := filepath.Join(tmpDir, "broken.rmap")
	if err := os.WriteFile(brokenFile, []byte("{invalid"), 0644); err != nil {
		t.Fatalf("failed to create broken file: %v", err)
	}

	lintJSONCmd := exec.Command(binaryPath, "lint", "--file", brokenFile, "--format", "json")
	jsonOutput, err := lintJSONCmd.CombinedOutput()
	if err == nil {
		t.Errorf("lint should fail for broken file\nOutput: %s", jsonOutput)
	}

	var results []map[string]interface{}
	if err := json.Unmarshal(jsonOutput, &results); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, jsonOutput)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 lint result, got %d", len(results))
	}
	if valid, _ := results[0]["valid"].(bool); valid {
		t.Errorf("expected valid=false for broken file: %+v", results[0])
	}
}

// TestServeStartStop tests serve mode startup, health endpoints, and
// graceful shutdown.
func TestServeStartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	mappingDir := createTestMappingSet(t, tmpDir)
	configFile := filepath.Join(tmpDir, "config.yaml")
	createTestConfig(t, configFile, fmt.Sprintf(`
mapping:
  dir: %q
  cache: true
  watch: true

usage:
  backend: "sqlite"
  sqlite_path: %q

telemetry:
  logging:
    level: "info"
    format: "json"
  metrics:
    enabled: true
    listen_address: "127.0.0.1:19090"
`, mappingDir, filepath.Join(tmpDir, "usage.db")))

	binaryPath := buildRefmatchBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "serve", "--config", configFile)
	cmd.Dir = tmpDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start serve: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	if !waitForHealthy("http://127.0.0.1:19090/healthz", 10*time.Second) {
		t.Fatalf("serve failed to start\nStdout: %s\nStderr: %s", stdout.String(), stderr.String())
	}

	resp, err := http.Get("http://127.0.0.1:19090/readyz")
	if err != nil {
		t.Fatalf("readiness check failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 from /readyz, got %d", resp.StatusCode)
	}

	resp, err = http.Get("http://127.0.0.1:19090/metrics")
	if err != nil {
		t.Fatalf("metrics fetch failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 from /metrics, got %d", resp.StatusCode)
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Errorf("failed to send SIGINT: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			exitErr, ok := err.(*exec.ExitError)
			if !ok || exitErr.ExitCode() != 130 {
				t.Logf("shutdown output - Stdout: %s\nStderr: %s", stdout.String(), stderr.String())
				t.Errorf("unexpected shutdown error: %v", err)
			}
		}
	case <-time.After(5 * time.Second):
		t.Error("serve did not shut down within 5 seconds")
	}
}

// Helper functions

// buildRefmatchBinary builds the refmatch binary for testing
func buildRefmatchBinary(t *testing.T) string {
	t.Helper()

	binaryPath := "../bin/refmatch"
	if _, err := os.Stat(binaryPath); err == nil {
		return binaryPath
	}

	t.Log("Building refmatch binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/refmatch")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build refmatch: %v\nOutput: %s", err, output)
	}

	return binaryPath
}

// waitForHealthy waits for a health endpoint to return 200
func waitForHealthy(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

// createTestConfig creates a test configuration file
func createTestConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}
}

// createTestMappingSet writes a minimal three-level mapping hierarchy
// and returns its directory.
func createTestMappingSet(t *testing.T, tmpDir string) string {
	t.Helper()

	mappingDir := filepath.Join(tmpDir, "mappings")
	if err := os.MkdirAll(mappingDir, 0755); err != nil {
		t.Fatalf("failed to create mapping dir: %v", err)
	}

	files := map[string]string{
		"hst.pmap": `header:
  name: hst.pmap
  kind: pipeline
  observatory: hst
selector:
  - instrument: acs
    mapping: hst_acs.imap
`,
		"hst_acs.imap": `header:
  name: hst_acs.imap
  kind: instrument
  observatory: hst
  instrument: acs
selector:
  - filekind: biasfile
    mapping: hst_acs_biasfile.rmap
`,
		"hst_acs_biasfile.rmap": `header:
  name: hst_acs_biasfile.rmap
  kind: reference
  observatory: hst
  instrument: acs
  filekind: biasfile
  parkeys: [DETECTOR, CCDAMP]
selector:
  - match: ["HRC", "A"]
    useafter:
      - date: "2006-07-04 11:32:35"
        file: q9e1206kj_bia.fits
`,
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(mappingDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to create mapping %s: %v", name, err)
		}
	}
	return mappingDir
}
