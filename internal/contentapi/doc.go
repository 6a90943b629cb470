// Package contentapi is the HTTP client for the remote content store.
//
// It covers the five surfaces the migration needs: media existence lookups
// (by identifier and by slug), multipart media upload, project record
// creation, and tag/taxonomy queries. A shared token-bucket limiter paces
// every request; credentials ride an Authorization header using the
// configured basic or bearer scheme.
package contentapi
