package resolve

import (
	"context"
	"log/slog"
	"strconv"

	"portfolioctl/internal/config"
	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/mediatree"
)

// Outcome is the tri-state result of resolving a local asset.
type Outcome int

const (
	// Absent means no remote counterpart was confirmed; the caller should
	// upload. Lookup failures collapse into Absent (fail open) because an
	// unnecessary upload is recoverable while an aborted run is not.
	Absent Outcome = iota
	// Present means a matching remote asset was confirmed.
	Present
)

// Ref describes the remote identity found for a local asset.
type Ref struct {
	Outcome Outcome
	ID      int
	Slug    string
}

// API is the subset of the Content API used for existence checks.
type API interface {
	GetMedia(ctx context.Context, id int) (contentapi.Media, bool, error)
	FindMediaBySlug(ctx context.Context, slug string) ([]contentapi.Media, error)
}

// Strategy decides whether a local asset already exists remotely. A
// deployment picks one strategy and sticks with it; the two are not
// equivalent cache formats.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, asset mediatree.Asset) Ref
}

// ForConfig returns the configured strategy.
func ForConfig(cfg *config.Config, api API, logger *slog.Logger) Strategy {
	if cfg.Resolver.Strategy == "slug" {
		return &BySlug{api: api, logger: logger}
	}
	return &ByIdentifier{api: api, logger: logger}
}

// ByIdentifier treats a numeric basename as a remote identifier and verifies
// it remotely. Non-numeric basenames have never been uploaded by this tool,
// so they resolve as absent without a network call.
type ByIdentifier struct {
	api    API
	logger *slog.Logger
}

// NewByIdentifier constructs the identifier strategy.
func NewByIdentifier(api API, logger *slog.Logger) *ByIdentifier {
	return &ByIdentifier{api: api, logger: logger}
}

func (s *ByIdentifier) Name() string { return "id" }

func (s *ByIdentifier) Resolve(ctx context.Context, asset mediatree.Asset) Ref {
	id, ok := numericBase(asset)
	if !ok {
		return Ref{Outcome: Absent}
	}
	return checkIdentifier(ctx, s.api, s.logger, asset, id)
}

// BySlug matches non-numeric basenames against remote slugs. Numeric
// basenames are this tool's own rename markers and stay authoritative, so
// they short-circuit to an identifier lookup regardless of configuration.
type BySlug struct {
	api    API
	logger *slog.Logger
}

// NewBySlug constructs the slug strategy.
func NewBySlug(api API, logger *slog.Logger) *BySlug {
	return &BySlug{api: api, logger: logger}
}

func (s *BySlug) Name() string { return "slug" }

func (s *BySlug) Resolve(ctx context.Context, asset mediatree.Asset) Ref {
	if id, ok := numericBase(asset); ok {
		return checkIdentifier(ctx, s.api, s.logger, asset, id)
	}

	matches, err := s.api.FindMediaBySlug(ctx, asset.Base)
	if err != nil {
		s.logger.Warn("slug lookup failed, treating as absent",
			"project", asset.Key, "file", asset.Base+asset.Ext, "error", err)
		return Ref{Outcome: Absent}
	}
	if len(matches) == 0 {
		return Ref{Outcome: Absent}
	}
	first := matches[0]
	return Ref{Outcome: Present, ID: first.ID, Slug: first.Slug}
}

func checkIdentifier(ctx context.Context, api API, logger *slog.Logger, asset mediatree.Asset, id int) Ref {
	media, found, err := api.GetMedia(ctx, id)
	if err != nil {
		logger.Warn("identifier lookup failed, treating as absent",
			"project", asset.Key, "file", asset.Base+asset.Ext, "error", err)
		return Ref{Outcome: Absent}
	}
	if !found {
		return Ref{Outcome: Absent}
	}
	return Ref{Outcome: Present, ID: media.ID, Slug: media.Slug}
}

func numericBase(asset mediatree.Asset) (int, bool) {
	id, err := strconv.Atoi(asset.Base)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
