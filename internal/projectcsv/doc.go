// Package projectcsv parses the migration input CSVs into typed rows.
//
// Two layouts are understood: the projects CSV driving record creation, and
// the simpler tag-import CSV. Tag cells may carry pre-resolved numeric IDs
// or plain names; both become TagRef values so downstream code handles one
// representation.
package projectcsv
