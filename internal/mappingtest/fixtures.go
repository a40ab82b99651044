// Package mappingtest provides shared mapping-set fixtures for tests.
package mappingtest

import (
	"os"
	"path/filepath"
	"testing"
)

// Set is a named collection of mapping files, file name to content.
type Set map[string]string

// Basic returns a minimal three-level hierarchy: one pipeline, one
// instrument, and one reference mapping selecting a single bias file.
func Basic() Set {
	return Set{
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
}

// Write materializes the set in a fresh temp directory and returns the
// directory path.
func Write(t *testing.T, set Set) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range set {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	return dir
}
