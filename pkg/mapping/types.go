package mapping

// Kind identifies the level of a mapping within the hierarchy.
type Kind string

const (
	// KindPipeline maps instruments to instrument mappings.
	KindPipeline Kind = "pipeline"

	// KindInstrument maps file kinds to reference mappings.
	KindInstrument Kind = "instrument"

	// KindReference holds match rules selecting reference files.
	KindReference Kind = "reference"
)

// Valid reports whether k is one of the known mapping kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPipeline, KindInstrument, KindReference:
		return true
	default:
		return false
	}
}

// Header carries the identity and parameterization of a mapping file.
type Header struct {
	// Name is the mapping identifier, the file basename.
	Name string `yaml:"name"`

	// Kind is the hierarchy level: pipeline, instrument, or reference.
	Kind Kind `yaml:"kind"`

	// Observatory is the owning observatory, lower-case.
	Observatory string `yaml:"observatory"`

	// Instrument is set for instrument and reference mappings, lower-case.
	Instrument string `yaml:"instrument,omitempty"`

	// Filekind is set for reference mappings, lower-case.
	Filekind string `yaml:"filekind,omitempty"`

	// Parkeys names the match parameters of a reference mapping, in the
	// order of the values in each selector entry's match list.
	Parkeys []string `yaml:"parkeys,omitempty"`

	// NestedParkeys names the parameters of nested selector entries,
	// used by compound rules.
	NestedParkeys []string `yaml:"nested_parkeys,omitempty"`

	// UseafterKeys names the useafter parameters. Two keys mean a split
	// date/time pair filled from the timestamp halves; one key means a
	// single composite timestamp parameter. Defaults to
	// [DATE-OBS, TIME-OBS].
	UseafterKeys []string `yaml:"useafter_keys,omitempty"`
}

// SelectorEntry is one ordered rule of a mapping's selector.
//
// Pipeline entries set Instrument and Mapping; instrument entries set
// Filekind and Mapping. Reference entries set Match plus either Useafter
// or, for compound rules, Nested sub-entries carrying their own Match
// and Useafter.
type SelectorEntry struct {
	Instrument string          `yaml:"instrument,omitempty"`
	Filekind   string          `yaml:"filekind,omitempty"`
	Mapping    string          `yaml:"mapping,omitempty"`
	Match      []string        `yaml:"match,omitempty"`
	Nested     []SelectorEntry `yaml:"nested,omitempty"`
	Useafter   []UseafterEntry `yaml:"useafter,omitempty"`
}

// UseafterEntry pairs an effective timestamp with the reference file
// selected from that moment on.
type UseafterEntry struct {
	// Date is the effective timestamp, "YYYY-MM-DD HH:MM:SS".
	Date string `yaml:"date"`

	// File is the selected reference file basename.
	File string `yaml:"file"`
}

// Mapping is one loaded mapping file. Match-path queries on pipeline and
// instrument mappings descend through the Store that loaded them.
type Mapping struct {
	Header   Header          `yaml:"header"`
	Selector []SelectorEntry `yaml:"selector"`

	// store is the Store this mapping was loaded through; nil for
	// standalone parses, in which case hierarchy descent is unavailable.
	store *Store

	// sourceFile is the path the mapping was loaded from.
	sourceFile string
}

// Name returns the mapping identifier.
func (m *Mapping) Name() string {
	return m.Header.Name
}

// SourceFile returns the path the mapping was loaded from, or the empty
// string for mappings parsed from memory.
func (m *Mapping) SourceFile() string {
	return m.sourceFile
}

// Mentions returns the child mapping identifiers (pipeline, instrument)
// or reference file names (reference) this mapping refers to, in selector
// order with duplicates removed.
func (m *Mapping) Mentions() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, entry := range m.Selector {
		add(entry.Mapping)
		for _, ua := range entry.Useafter {
			add(ua.File)
		}
		for _, nested := range entry.Nested {
			for _, ua := range nested.Useafter {
				add(ua.File)
			}
		}
	}
	return names
}
