package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeMappingSet materializes the HST test mapping hierarchy in a temp
// directory and returns the directory path.
func writeMappingSet(t *testing.T) string {
	t.Helper()

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
  - filekind: pfltfile
    mapping: hst_acs_pfltfile.rmap
`,
		"hst_acs_biasfile.rmap": `header:
  name: hst_acs_biasfile.rmap
  kind: reference
  observatory: hst
  instrument: acs
  filekind: biasfile
  parkeys: [DETECTOR, CCDAMP, CCDGAIN, APERTURE, NAXIS1, NAXIS2, LTV1, LTV2, XCORNER, YCORNER, CCDCHIP]
selector:
  - match: ["HRC", "A", "4.0", "*", "<=2048", "1044.0", "19.0", "20.0", "N/A", "N/A", "N/A"]
    useafter:
      - date: "2006-07-04 11:32:35"
        file: q9e1206kj_bia.fits
  - match: ["WFC", "B", "2.0", "*", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A"]
    useafter:
      - date: "2002-03-01 00:00:00"
        file: m4r1753rj_bia.fits
      - date: "2004-10-16 00:00:00"
        file: o8u2214mj_bia.fits
`,
		"hst_acs_pfltfile.rmap": `header:
  name: hst_acs_pfltfile.rmap
  kind: reference
  observatory: hst
  instrument: acs
  filekind: pfltfile
  parkeys: [DETECTOR, CCDAMP]
  nested_parkeys: [FILTER1, FILTER2]
selector:
  - match: ["WFC", "A|ABCD|AC|AD|B|BC|BD|C|D"]
    nested:
      - match: ["F625W", "POL0V"]
        useafter:
          - date: "1997-01-01 00:00:00"
            file: lc41311jj_pfl.fits
`,
	}

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestStore_Load(t *testing.T) {
	store := NewStore(writeMappingSet(t), nil)

	m, err := store.LoadMapping("hst.pmap", true)

	if err != nil {
		t.Fatalf("LoadMapping() error = %v, want nil", err)
	}
	if m.Header.Kind != KindPipeline {
		t.Errorf("loaded kind = %q, want %q", m.Header.Kind, KindPipeline)
	}
	if m.Name() != "hst.pmap" {
		t.Errorf("loaded name = %q, want %q", m.Name(), "hst.pmap")
	}
}

func TestStore_Load_ReadThroughCache(t *testing.T) {
	store := NewStore(writeMappingSet(t), nil)

	first, err := store.LoadMapping("hst.pmap", true)
	if err != nil {
		t.Fatalf("LoadMapping() error = %v, want nil", err)
	}
	second, err := store.LoadMapping("hst.pmap", true)
	if err != nil {
		t.Fatalf("LoadMapping() error = %v, want nil", err)
	}

	if first != second {
		t.Error("cached load returned a different mapping instance")
	}
	if store.Registry().Count() != 1 {
		t.Errorf("registry count = %d, want 1", store.Registry().Count())
	}
}

func TestStore_Load_Uncached(t *testing.T) {
	store := NewStore(writeMappingSet(t), nil)

	first, err := store.LoadMapping("hst.pmap", true)
	if err != nil {
		t.Fatalf("LoadMapping() error = %v, want nil", err)
	}
	second, err := store.LoadMapping("hst.pmap", false)
	if err != nil {
		t.Fatalf("LoadMapping(cached=false) error = %v, want nil", err)
	}

	if first == second {
		t.Error("uncached load reused the cached mapping instance")
	}
}

func TestStore_Load_NotFound(t *testing.T) {
	store := NewStore(writeMappingSet(t), nil)

	_, err := store.Load("jwst.pmap", true)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Load() error type = %T, want *NotFoundError", err)
	}
	if notFound.Name != "jwst.pmap" {
		t.Errorf("NotFoundError.Name = %q, want %q", notFound.Name, "jwst.pmap")
	}
}

func TestStore_Load_RejectsPathComponents(t *testing.T) {
	store := NewStore(writeMappingSet(t), nil)

	_, err := store.Load("../hst.pmap", true)

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error type = %T, want *LoadError", err)
	}
}

func TestStore_GetCached(t *testing.T) {
	store := NewStore(writeMappingSet(t), nil)

	if _, err := store.GetCached("hst.pmap"); err == nil {
		t.Fatal("GetCached() before load error = nil, want NotFoundError")
	}

	if _, err := store.Load("hst.pmap", true); err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	m, err := store.GetCached("hst.pmap")
	if err != nil {
		t.Fatalf("GetCached() after load error = %v, want nil", err)
	}
	if m == nil {
		t.Fatal("GetCached() returned nil mapping")
	}
}
