// Package storage provides usage index backends.
//
// Two implementations of the usage.Storage interface are available: an
// in-memory map for tests and single-shot commands, and a SQLite
// database for long-running deployments where the index survives
// restarts.
package storage
