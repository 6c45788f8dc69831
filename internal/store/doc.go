// Package store persists screening runs in SQLite so batch verdicts
// can be re-exported and compared across policy revisions without
// re-analyzing every structure.
//
// A run is a batch invocation: a UUID, a timestamp, and a JSON
// snapshot of the policy in force. Each structure of the batch stores
// one result row in input order, holding either the verdict fields or
// the failure text.
package store
