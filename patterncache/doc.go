// Package patterncache persists number patterns between runs.
//
// A Store maps integers to full signatures. Three backends share the
// interface:
//
//   - TextStore keeps the two-column text format ("number,pattern", '#'
//     comments, sorted by number descending) in a single file.
//   - SQLiteStore keeps one row per number in a SQLite database.
//   - BadgerStore keeps one key per number in a Badger directory.
//
// Stored patterns are never trusted. Source wraps a Store and a Generator
// (usually *search.Engine): every hit is replayed on the grid and its value
// recomputed, and entries that fail either check are deleted and generated
// again. Store failures degrade to generation; they are logged, not returned.
package patterncache
