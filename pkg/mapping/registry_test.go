package mapping

import (
	"reflect"
	"testing"
)

func testMapping(name string) *Mapping {
	return &Mapping{
		Header: Header{
			Name:        name,
			Kind:        KindPipeline,
			Observatory: "hst",
		},
	}
}

func TestRegistry_RegisterGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(testMapping("hst.pmap")); err != nil {
		t.Fatalf("Register() error = %v, want nil", err)
	}

	m, ok := registry.Get("hst.pmap")
	if !ok {
		t.Fatal("Get() returned false, want true")
	}
	if m.Name() != "hst.pmap" {
		t.Errorf("Get() name = %q, want %q", m.Name(), "hst.pmap")
	}
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}
}

func TestRegistry_Register_Nil(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(nil); err == nil {
		t.Error("Register(nil) error = nil, want error")
	}
}

func TestRegistry_Register_EmptyName(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&Mapping{}); err == nil {
		t.Error("Register(empty name) error = nil, want error")
	}
}

func TestRegistry_Invalidate(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(testMapping("hst.pmap")); err != nil {
		t.Fatalf("Register() error = %v, want nil", err)
	}

	registry.Invalidate("hst.pmap")

	if _, ok := registry.Get("hst.pmap"); ok {
		t.Error("Get() after Invalidate() returned true, want false")
	}

	// Unknown names are ignored.
	registry.Invalidate("unknown.pmap")
}

func TestRegistry_VersionChanges(t *testing.T) {
	registry := NewRegistry()
	empty := registry.Version()

	if err := registry.Register(testMapping("hst.pmap")); err != nil {
		t.Fatalf("Register() error = %v, want nil", err)
	}
	one := registry.Version()
	if one == empty {
		t.Error("Version() unchanged after Register()")
	}

	registry.Invalidate("hst.pmap")
	if registry.Version() == one {
		t.Error("Version() unchanged after Invalidate()")
	}
}

func TestRegistry_Names(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"hst_acs.imap", "hst.pmap", "hst_acs_biasfile.rmap"} {
		if err := registry.Register(testMapping(name)); err != nil {
			t.Fatalf("Register(%s) error = %v, want nil", name, err)
		}
	}

	want := []string{"hst.pmap", "hst_acs.imap", "hst_acs_biasfile.rmap"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegistry_Clear(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(testMapping("hst.pmap")); err != nil {
		t.Fatalf("Register() error = %v, want nil", err)
	}

	registry.Clear()

	if registry.Count() != 0 {
		t.Errorf("Count() after Clear() = %d, want 0", registry.Count())
	}
}
