// Package mediatree discovers local media assets using the project tree
// conventions: one subdirectory per project key, an optional featured/ (or
// thumbnail/) cover directory, gallery images in gallery/ or flat in the
// project directory, and same-basename .txt caption sidecars.
//
// Scanning is read-only. Post-upload, files are renamed elsewhere so their
// basenames carry remote identifiers; the scanner treats those like any
// other image.
package mediatree
