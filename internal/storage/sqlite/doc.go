// Package sqlite provides the Geodin persistence adapter backed by SQLite.
//
// All rows are derived from the external Geodin API and can be rebuilt by
// re-running the sync, except the project active flags which are
// administrative state.
package sqlite
