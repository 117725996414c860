// Package storage defines the persistence interfaces for imported Geodin
// data.
//
// It provides a high-level abstraction for storing API starting points,
// projects, suppliers, hierarchy types, measurements and points. The SQLite
// implementation lives in the sqlite subpackage.
//
// The package defines ErrNotFound, returned by all implementations when a
// requested record is missing.
package storage
