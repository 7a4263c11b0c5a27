// Package workspace keeps an editable, undoable list of profiles.
//
// A [Workspace] is a value. Every change returns a new Workspace and leaves
// the old one intact, so undo is just keeping the previous value. Entries
// live in an append-only arena; visible slots point into it, and each
// entry remembers the entry it replaced.
package workspace
