// Package logging builds slog loggers for the migration commands.
//
// Two formats are supported: a compact console handler (colorized on TTYs)
// for interactive runs, and JSON for machine consumption. Commands that keep
// their own log file (the screenshot pipeline) fan output into the log
// directory alongside stdout.
package logging
