package match

import (
	"reflect"
	"testing"
)

// biasPath is the canonical ACS bias calibration match path used across
// the package tests.
func biasPath() Path {
	return Path{
		Group(
			Leaf("observatory", "hst"),
			Leaf("instrument", "acs"),
			Leaf("filekind", "biasfile"),
		),
		Group(
			Leaf("DETECTOR", "HRC"),
			Leaf("CCDAMP", "A"),
			Leaf("CCDGAIN", "4.0"),
			Leaf("APERTURE", "*"),
			Leaf("NAXIS1", "<=2048"),
			Leaf("NAXIS2", "1044.0"),
			Leaf("LTV1", "19.0"),
			Leaf("LTV2", "20.0"),
			Leaf("XCORNER", "N/A"),
			Leaf("YCORNER", "N/A"),
			Leaf("CCDCHIP", "N/A"),
		),
		Group(
			Leaf("DATE-OBS", "2006-07-04"),
			Leaf("TIME-OBS", "11:32:35"),
		),
	}
}

func TestFlatten_BiasPath(t *testing.T) {
	want := Flat{
		"observatory": "hst",
		"instrument":  "acs",
		"filekind":    "biasfile",
		"DETECTOR":    "HRC",
		"CCDAMP":      "A",
		"CCDGAIN":     "4.0",
		"APERTURE":    "*",
		"NAXIS1":      "<=2048",
		"NAXIS2":      "1044.0",
		"LTV1":        "19.0",
		"LTV2":        "20.0",
		"XCORNER":     "N/A",
		"YCORNER":     "N/A",
		"CCDCHIP":     "N/A",
		"DATE-OBS":    "2006-07-04",
		"TIME-OBS":    "11:32:35",
	}

	got := Flatten(biasPath())

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestFlatten_KeySetMatchesLeaves(t *testing.T) {
	path := biasPath()
	got := Flatten(path)

	leaves := 0
	var count func(Node)
	count = func(n Node) {
		if n.Kind == NodeLeaf {
			leaves++
			return
		}
		for _, c := range n.Children {
			count(c)
		}
	}
	for _, segment := range path {
		count(segment)
	}

	if len(got) != leaves {
		t.Errorf("Flatten() produced %d keys, path has %d leaves", len(got), leaves)
	}
}

func TestFlatten_NestedGroups(t *testing.T) {
	path := Path{
		Group(
			Leaf("observatory", "hst"),
			Leaf("instrument", "acs"),
			Leaf("filekind", "pfltfile"),
		),
		Group(
			Leaf("DETECTOR", "WFC"),
			Group(
				Leaf("FILTER1", "F625W"),
				Leaf("FILTER2", "POL0V"),
			),
		),
		Group(
			Leaf("DATE-OBS", "1997-01-01"),
			Leaf("TIME-OBS", "00:00:00"),
		),
	}

	got := Flatten(path)

	if got["FILTER1"] != "F625W" {
		t.Errorf(`Flatten()["FILTER1"] = %q, want "F625W"`, got["FILTER1"])
	}
	if got["FILTER2"] != "POL0V" {
		t.Errorf(`Flatten()["FILTER2"] = %q, want "POL0V"`, got["FILTER2"])
	}
	if len(got) != 8 {
		t.Errorf("Flatten() produced %d keys, want 8", len(got))
	}
}

func TestFlatten_LaterWriteWins(t *testing.T) {
	path := Path{
		Group(
			Leaf("DETECTOR", "HRC"),
			Group(Leaf("DETECTOR", "WFC")),
		),
	}

	got := Flatten(path)

	if got["DETECTOR"] != "WFC" {
		t.Errorf(`Flatten()["DETECTOR"] = %q, want "WFC" (later write wins)`, got["DETECTOR"])
	}
}

func TestFlatten_EmptyPath(t *testing.T) {
	got := Flatten(Path{})

	if len(got) != 0 {
		t.Errorf("Flatten(empty) produced %d keys, want 0", len(got))
	}
}

func TestFlattenAll_Independent(t *testing.T) {
	paths := []Path{
		{Group(Leaf("DETECTOR", "HRC"))},
		{Group(Leaf("DETECTOR", "WFC"))},
	}

	flats := FlattenAll(paths)

	if len(flats) != 2 {
		t.Fatalf("FlattenAll() returned %d flats, want 2", len(flats))
	}
	if flats[0]["DETECTOR"] != "HRC" || flats[1]["DETECTOR"] != "WFC" {
		t.Errorf("FlattenAll() merged across paths: %v", flats)
	}
}
