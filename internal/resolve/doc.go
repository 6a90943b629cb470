// Package resolve decides whether a local asset already exists in the remote
// content store. Two strategies exist: identifier (numeric basenames are
// remote ids) and slug (basenames match remote slugs). Numeric basenames are
// always verified by identifier, because they are the rename markers this
// tool writes itself. Lookup failures never abort a run; they resolve as
// absent and the subsequent upload path takes over.
package resolve
