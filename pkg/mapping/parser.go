package mapping

import (
	"gopkg.in/yaml.v3"
)

// Parse parses mapping YAML and validates its structure. The sourceFile
// is recorded for error reporting and may be empty for in-memory data.
func Parse(data []byte, sourceFile string) (*Mapping, error) {
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{
			FilePath: sourceFile,
			Message:  "YAML parsing failed",
			Cause:    err,
		}
	}
	m.sourceFile = sourceFile

	if err := Validate(&m); err != nil {
		return nil, &ParseError{
			FilePath: sourceFile,
			Message:  "structural validation failed",
			Cause:    err,
		}
	}

	return &m, nil
}
