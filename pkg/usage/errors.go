package usage

import "fmt"

// StorageError represents an error from a usage index backend.
type StorageError struct {
	Backend   string // backend type ("sqlite", "memory")
	Operation string // operation that failed ("store", "query", "clear")
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("usage storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// ScanError represents a failure while scanning a mapping directory.
type ScanError struct {
	File  string // file being parsed when the scan failed
	Cause error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error [file=%s]: %v", e.File, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}
