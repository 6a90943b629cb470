// Command portfolioctl migrates portfolio projects into a remote content
// store: it syncs local media, creates records from a CSV, imports tags,
// lists taxonomies, and captures site screenshots for project galleries.
package main
