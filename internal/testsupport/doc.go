// Package testsupport provides shared helpers for package tests: temp-backed
// configuration builders, file fixtures, and an in-process fake of the
// Content API.
package testsupport
