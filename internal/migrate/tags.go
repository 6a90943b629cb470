package migrate

import (
	"context"
	"log/slog"
	"strings"

	"portfolioctl/internal/projectcsv"
)

// tagResolver turns tag references into remote identifiers, creating named
// tags that do not exist yet. Names resolve at most once per run.
type tagResolver struct {
	api    API
	logger *slog.Logger
	byName map[string]int
}

func newTagResolver(api API, logger *slog.Logger) *tagResolver {
	return &tagResolver{api: api, logger: logger, byName: make(map[string]int)}
}

// resolve maps every reference to a remote tag identifier. References that
// cannot be resolved are dropped with a warning; a missing tag never blocks
// the record it belongs to.
func (r *tagResolver) resolve(ctx context.Context, refs []projectcsv.TagRef) []int {
	var ids []int
	for _, ref := range refs {
		if id, ok := ref.ID(); ok {
			ids = append(ids, id)
			continue
		}
		id := r.byID(ctx, ref.Name())
		if id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *tagResolver) byID(ctx context.Context, name string) int {
	key := projectcsv.FoldKey(name)
	if id, ok := r.byName[key]; ok {
		return id
	}

	id := r.lookupOrCreate(ctx, name)
	r.byName[key] = id
	return id
}

func (r *tagResolver) lookupOrCreate(ctx context.Context, name string) int {
	terms, err := r.api.SearchTags(ctx, name)
	if err != nil {
		r.logger.Warn("tag search failed, dropping tag", "tag", name, "error", err)
		return 0
	}
	for _, term := range terms {
		if strings.EqualFold(term.Name, name) {
			return term.ID
		}
	}

	term, err := r.api.CreateTag(ctx, name, "")
	if err != nil {
		r.logger.Warn("tag creation failed, dropping tag", "tag", name, "error", err)
		return 0
	}
	r.logger.Info("created tag", "tag", name, "tag_id", term.ID)
	return term.ID
}
