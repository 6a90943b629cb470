package resolve_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/mediatree"
	"portfolioctl/internal/resolve"
)

type stubAPI struct {
	media     map[int]contentapi.Media
	slugs     map[string][]contentapi.Media
	fail      bool
	idCalls   int
	slugCalls int
}

func (s *stubAPI) GetMedia(_ context.Context, id int) (contentapi.Media, bool, error) {
	s.idCalls++
	if s.fail {
		return contentapi.Media{}, false, errors.New("boom")
	}
	media, ok := s.media[id]
	return media, ok, nil
}

func (s *stubAPI) FindMediaBySlug(_ context.Context, slug string) ([]contentapi.Media, error) {
	s.slugCalls++
	if s.fail {
		return nil, errors.New("boom")
	}
	return s.slugs[slug], nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func asset(base string) mediatree.Asset {
	return mediatree.Asset{Key: "acme", Base: base, Ext: ".jpg"}
}

func TestByIdentifierConfirmsPresence(t *testing.T) {
	api := &stubAPI{media: map[int]contentapi.Media{123: {ID: 123, Slug: "old"}}}
	strategy := resolve.NewByIdentifier(api, discard())

	ref := strategy.Resolve(context.Background(), asset("123"))
	if ref.Outcome != resolve.Present || ref.ID != 123 {
		t.Fatalf("unexpected ref: %+v", ref)
	}
}

func TestByIdentifierAbsentForUnknownID(t *testing.T) {
	api := &stubAPI{media: map[int]contentapi.Media{}}
	strategy := resolve.NewByIdentifier(api, discard())

	ref := strategy.Resolve(context.Background(), asset("999"))
	if ref.Outcome != resolve.Absent {
		t.Fatalf("expected absent, got %+v", ref)
	}
}

func TestByIdentifierSkipsLookupForNonNumeric(t *testing.T) {
	api := &stubAPI{}
	strategy := resolve.NewByIdentifier(api, discard())

	ref := strategy.Resolve(context.Background(), asset("photo"))
	if ref.Outcome != resolve.Absent {
		t.Fatalf("expected absent, got %+v", ref)
	}
	if api.idCalls != 0 || api.slugCalls != 0 {
		t.Fatalf("expected no network calls, got %d/%d", api.idCalls, api.slugCalls)
	}
}

func TestByIdentifierFailsOpen(t *testing.T) {
	api := &stubAPI{fail: true}
	strategy := resolve.NewByIdentifier(api, discard())

	ref := strategy.Resolve(context.Background(), asset("123"))
	if ref.Outcome != resolve.Absent {
		t.Fatalf("expected fail-open absence, got %+v", ref)
	}
}

func TestBySlugMatchesFirst(t *testing.T) {
	api := &stubAPI{slugs: map[string][]contentapi.Media{
		"cover": {{ID: 7, Slug: "cover"}, {ID: 8, Slug: "cover"}},
	}}
	strategy := resolve.NewBySlug(api, discard())

	ref := strategy.Resolve(context.Background(), asset("cover"))
	if ref.Outcome != resolve.Present || ref.ID != 7 {
		t.Fatalf("expected first match, got %+v", ref)
	}
}

func TestBySlugAbsentWhenNoMatches(t *testing.T) {
	api := &stubAPI{slugs: map[string][]contentapi.Media{}}
	strategy := resolve.NewBySlug(api, discard())

	ref := strategy.Resolve(context.Background(), asset("cover"))
	if ref.Outcome != resolve.Absent {
		t.Fatalf("expected absent, got %+v", ref)
	}
}

func TestBySlugPrefersIdentifierForNumericBase(t *testing.T) {
	api := &stubAPI{media: map[int]contentapi.Media{456: {ID: 456}}}
	strategy := resolve.NewBySlug(api, discard())

	ref := strategy.Resolve(context.Background(), asset("456"))
	if ref.Outcome != resolve.Present || ref.ID != 456 {
		t.Fatalf("unexpected ref: %+v", ref)
	}
	if api.slugCalls != 0 {
		t.Fatalf("expected no slug lookup for numeric base, got %d", api.slugCalls)
	}
}

func TestForConfigSelectsStrategy(t *testing.T) {
	api := &stubAPI{}
	for strategyName, wantName := range map[string]string{"id": "id", "slug": "slug"} {
		cfg := configWithStrategy(t, strategyName)
		strategy := resolve.ForConfig(cfg, api, discard())
		if strategy.Name() != wantName {
			t.Fatalf("strategy %q: got %q", strategyName, strategy.Name())
		}
	}
}
