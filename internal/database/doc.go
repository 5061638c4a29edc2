// Package database owns the local offline store: opening the SQLite
// database, migrating the five cache collections, stamping the schema
// version, and exposing the transaction primitive used to keep the
// text/words pair atomic. Per-collection operations live in the
// subpackages (texts, languages, syncmeta, pending).
package database
