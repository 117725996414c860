// Package syncer fetches the Geodin JSON hierarchy and mirrors it into the
// local store.
//
// A reload walks starting point -> projects -> location types ->
// investigation types -> data types -> points. Every level is upserted, so
// reloads are idempotent; local administrative state such as project
// activation and supplier colors is never overwritten.
package syncer
