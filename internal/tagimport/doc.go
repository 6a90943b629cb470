// Package tagimport bulk-creates tags from a CSV against the Content API.
package tagimport
