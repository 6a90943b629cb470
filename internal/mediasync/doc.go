// Package mediasync reconciles the local project tree with the remote media
// store. For every discovered asset it resolves remote existence, uploads
// what is missing, renames uploaded files to embed their remote identifier,
// and accumulates the per-project media map consumed by record creation.
//
// Processing is strictly sequential in scan order; that order fixes the
// gallery order in the media map, and captions attach by identifier so a
// reordered listing changes display order without corrupting captions.
package mediasync
