// Package migrate assembles record creation payloads from CSV rows and the
// per-run media map, then submits them sequentially. Tag names resolve to
// remote identifiers once per run; numeric tag references pass through.
package migrate
