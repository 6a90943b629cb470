// Package mediaindex keeps a small on-disk mapping from file content hashes
// to remote media identifiers. Renaming uploaded files to their remote id is
// still the primary cross-run marker; the index makes re-runs safe when a
// rename failed, without introducing any other state file.
package mediaindex
