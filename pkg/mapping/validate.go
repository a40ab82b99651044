package mapping

import (
	"fmt"
	"regexp"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// Validate performs structural validation of a parsed mapping. It checks
// header identity fields, kind-specific selector shape, parkey/match
// arity, and useafter timestamp format. All problems are collected and
// returned as a single ValidationErrors value; a nil return means the
// mapping is structurally sound.
func Validate(m *Mapping) error {
	var errs ValidationErrors
	add := func(field, message string) {
		errs = append(errs, &ValidationError{Name: m.Header.Name, Field: field, Message: message})
	}

	if m.Header.Name == "" {
		add("header.name", "required")
	}
	if !m.Header.Kind.Valid() {
		add("header.kind", fmt.Sprintf("unknown kind %q", m.Header.Kind))
	}
	if m.Header.Observatory == "" {
		add("header.observatory", "required")
	}

	switch m.Header.Kind {
	case KindPipeline:
		validatePipeline(m, add)
	case KindInstrument:
		validateInstrument(m, add)
	case KindReference:
		validateReference(m, add)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePipeline(m *Mapping, add func(field, message string)) {
	for i, entry := range m.Selector {
		if entry.Instrument == "" {
			add(fmt.Sprintf("selector[%d].instrument", i), "required for pipeline mappings")
		}
		if entry.Mapping == "" {
			add(fmt.Sprintf("selector[%d].mapping", i), "required for pipeline mappings")
		}
	}
}

func validateInstrument(m *Mapping, add func(field, message string)) {
	if m.Header.Instrument == "" {
		add("header.instrument", "required for instrument mappings")
	}
	for i, entry := range m.Selector {
		if entry.Filekind == "" {
			add(fmt.Sprintf("selector[%d].filekind", i), "required for instrument mappings")
		}
		if entry.Mapping == "" {
			add(fmt.Sprintf("selector[%d].mapping", i), "required for instrument mappings")
		}
	}
}

func validateReference(m *Mapping, add func(field, message string)) {
	if m.Header.Instrument == "" {
		add("header.instrument", "required for reference mappings")
	}
	if m.Header.Filekind == "" {
		add("header.filekind", "required for reference mappings")
	}
	if len(m.Header.Parkeys) == 0 {
		add("header.parkeys", "required for reference mappings")
	}
	if n := len(m.Header.UseafterKeys); n > 2 {
		add("header.useafter_keys", fmt.Sprintf("at most 2 keys allowed, got %d", n))
	}

	for i, entry := range m.Selector {
		field := fmt.Sprintf("selector[%d]", i)
		if len(entry.Match) != len(m.Header.Parkeys) {
			add(field+".match", fmt.Sprintf("got %d values for %d parkeys",
				len(entry.Match), len(m.Header.Parkeys)))
		}
		if len(entry.Useafter) == 0 && len(entry.Nested) == 0 {
			add(field, "needs useafter entries or nested rules")
		}
		if len(entry.Useafter) > 0 && len(entry.Nested) > 0 {
			add(field, "useafter and nested rules are mutually exclusive")
		}
		validateUseafter(field, entry.Useafter, add)

		for j, nested := range entry.Nested {
			nestedField := fmt.Sprintf("%s.nested[%d]", field, j)
			if len(m.Header.NestedParkeys) == 0 {
				add("header.nested_parkeys", "required when selector entries nest")
			} else if len(nested.Match) != len(m.Header.NestedParkeys) {
				add(nestedField+".match", fmt.Sprintf("got %d values for %d nested parkeys",
					len(nested.Match), len(m.Header.NestedParkeys)))
			}
			if len(nested.Useafter) == 0 {
				add(nestedField, "needs useafter entries")
			}
			validateUseafter(nestedField, nested.Useafter, add)
		}
	}
}

func validateUseafter(field string, entries []UseafterEntry, add func(field, message string)) {
	for i, ua := range entries {
		uaField := fmt.Sprintf("%s.useafter[%d]", field, i)
		if !timestampPattern.MatchString(ua.Date) {
			add(uaField+".date", fmt.Sprintf("%q is not YYYY-MM-DD HH:MM:SS", ua.Date))
		}
		if ua.File == "" {
			add(uaField+".file", "required")
		}
	}
}
