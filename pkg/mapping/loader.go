package mapping

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// LoaderConfig contains configuration for the mapping file loader.
type LoaderConfig struct {
	// MaxFileSize is the maximum mapping file size in bytes.
	// Default: 10MB.
	MaxFileSize int64

	// Extensions is the list of recognized mapping file extensions.
	// Default: [".pmap", ".imap", ".rmap"].
	Extensions []string

	// SkipHidden controls whether hidden files and directories are
	// skipped when collecting mapping files. Default: true.
	SkipHidden bool
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		MaxFileSize: 10 * 1024 * 1024,
		Extensions:  []string{".pmap", ".imap", ".rmap"},
		SkipHidden:  true,
	}
}

// Loader reads mapping files from a mapping directory. Identifiers are
// file basenames; LoadName resolves them against the directory.
type Loader struct {
	dir    string
	config *LoaderConfig
}

// NewLoader creates a loader rooted at the given mapping directory.
func NewLoader(dir string, config *LoaderConfig) *Loader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	return &Loader{dir: dir, config: config}
}

// Dir returns the mapping directory.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadName loads the mapping with the given identifier from the mapping
// directory.
func (l *Loader) LoadName(name string) (*Mapping, error) {
	if name != filepath.Base(name) {
		return nil, &LoadError{
			FilePath: name,
			Message:  "mapping identifiers must be bare basenames",
		}
	}
	path := filepath.Join(l.dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{Name: name}
	}
	return l.LoadFile(path)
}

// LoadFile loads a single mapping file. It performs file size and UTF-8
// validation before parsing.
func (l *Loader) LoadFile(path string) (*Mapping, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: path, Message: "file not found", Cause: err}
		}
		if os.IsPermission(err) {
			return nil, &LoadError{FilePath: path, Message: "permission denied", Cause: err}
		}
		return nil, &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}

	if fileInfo.Size() > l.config.MaxFileSize {
		return nil, &LoadError{
			FilePath: path,
			Message: fmt.Sprintf("file size %d bytes exceeds maximum %d bytes",
				fileInfo.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}

	if !utf8.Valid(data) {
		return nil, &LoadError{FilePath: path, Message: "file contains invalid UTF-8 encoding"}
	}

	return Parse(data, path)
}

// CollectFiles returns the paths of every mapping file under the mapping
// directory, sorted for deterministic iteration.
func (l *Loader) CollectFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if l.config.SkipHidden && strings.HasPrefix(d.Name(), ".") && path != l.dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if l.hasValidExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{FilePath: l.dir, Message: "failed to walk directory", Cause: err}
	}

	sort.Strings(files)
	return files, nil
}

// hasValidExtension checks if the file has a recognized mapping extension.
func (l *Loader) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, validExt := range l.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}
