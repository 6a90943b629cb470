// Package pipeline holds failure classification shared by the migration
// commands: sentinel errors for each failure class and helpers deciding
// which failures abort a run versus being counted and skipped.
package pipeline
