// Package runlock serializes pipeline runs with an advisory file lock.
package runlock
