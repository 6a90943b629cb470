package mediasync

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"portfolioctl/internal/config"
	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/mediaindex"
	"portfolioctl/internal/mediatree"
	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/resolve"
)

// API is the Content API surface the syncer needs.
type API interface {
	resolve.API
	UploadMedia(ctx context.Context, path, filename string) (contentapi.Media, error)
}

// Entry aggregates the resolved remote identifiers for one project key.
// Featured and Thumbnail default to the same cover identifier.
type Entry struct {
	Gallery   []int
	Captions  map[int]string
	Featured  int
	Thumbnail int
}

// Map is the per-run media lookup. Lookups are total: a missing key yields
// an empty entry, never an error.
type Map map[string]Entry

// Entry returns the entry for a project key, empty when unknown.
func (m Map) Entry(key string) Entry {
	if entry, ok := m[key]; ok {
		return entry
	}
	return Entry{}
}

// Summary counts per-asset outcomes for one sync pass.
type Summary struct {
	Confirmed     int
	Uploaded      int
	Failed        int
	RenameFailed  int
	ProjectsEmpty int
}

// Syncer builds the media map, uploading whatever is missing remotely and
// renaming uploaded files so the next run resolves them without uploading.
type Syncer struct {
	cfg      *config.Config
	api      API
	strategy resolve.Strategy
	index    *mediaindex.Store
	logger   *slog.Logger
}

// New constructs a Syncer. The index store may be nil; the filename marker
// alone then carries idempotence, as the earliest runs did.
func New(cfg *config.Config, api API, strategy resolve.Strategy, index *mediaindex.Store, logger *slog.Logger) *Syncer {
	return &Syncer{cfg: cfg, api: api, strategy: strategy, index: index, logger: logger}
}

// Build resolves every discovered asset sequentially, in scan order, and
// returns the media map plus outcome counts. Per-asset failures are counted
// and skipped; the pass never aborts.
func (s *Syncer) Build(ctx context.Context, projects []mediatree.Project) (Map, Summary) {
	result := make(Map, len(projects))
	var summary Summary

	for _, project := range projects {
		entry := Entry{Captions: make(map[int]string)}

		if project.Featured != nil {
			if id := s.ensure(ctx, *project.Featured, &summary); id > 0 {
				entry.Featured = id
				entry.Thumbnail = id
			}
		}

		seen := make(map[int]struct{}, len(project.Gallery))
		for _, asset := range project.Gallery {
			id := s.ensure(ctx, asset, &summary)
			if id <= 0 {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			entry.Gallery = append(entry.Gallery, id)
			if asset.Caption != "" {
				entry.Captions[id] = asset.Caption
			}
		}

		if entry.Featured == 0 && len(entry.Gallery) == 0 {
			summary.ProjectsEmpty++
		}
		result[project.Key] = entry
	}
	return result, summary
}

// ensure resolves one asset, uploading when absent. It returns the remote
// identifier, or 0 when the asset could not be placed remotely this run.
func (s *Syncer) ensure(ctx context.Context, asset mediatree.Asset, summary *Summary) int {
	file := asset.Base + asset.Ext

	ref := s.strategy.Resolve(ctx, asset)
	if ref.Outcome == resolve.Present {
		s.logger.Info("asset already present, skipping upload",
			"project", asset.Key, "file", file, "media_id", ref.ID)
		summary.Confirmed++
		s.pause(ctx, s.cfg.Pacing.LookupDelayMS)
		return ref.ID
	}

	hash := s.hashFor(asset)
	if id := s.indexLookup(ctx, asset, hash); id > 0 {
		summary.Confirmed++
		s.pause(ctx, s.cfg.Pacing.LookupDelayMS)
		return id
	}

	s.logger.Info("uploading asset", "project", asset.Key, "file", file)
	media, err := s.api.UploadMedia(ctx, asset.Path, filepath.Base(asset.Path))
	if err != nil {
		s.logger.Error("upload failed, skipping asset",
			"project", asset.Key, "file", file,
			"error", pipeline.Wrap(pipeline.ErrUpload, asset.Key+"/"+file, "upload media", err))
		summary.Failed++
		return 0
	}
	summary.Uploaded++

	s.recordIndex(ctx, asset, hash, media)

	if err := reconcile(asset, media.ID); err != nil {
		// The asset still counts for this run; without the rename marker the
		// next run falls back to the content index.
		s.logger.Warn("post-upload rename failed",
			"project", asset.Key, "file", file, "media_id", media.ID, "error", err)
		summary.RenameFailed++
	} else {
		s.logger.Info("uploaded and renamed",
			"project", asset.Key, "file", file, "media_id", media.ID)
	}

	s.pause(ctx, s.cfg.Pacing.UploadDelayMS)
	return media.ID
}

func (s *Syncer) hashFor(asset mediatree.Asset) string {
	if s.index == nil {
		return ""
	}
	hash, err := mediaindex.HashFile(asset.Path)
	if err != nil {
		s.logger.Warn("hash failed, content index unavailable for asset",
			"project", asset.Key, "file", asset.Base+asset.Ext, "error", err)
		return ""
	}
	return hash
}

// indexLookup consults the content index for assets whose rename marker was
// lost, verifying the remembered identifier remotely before trusting it.
func (s *Syncer) indexLookup(ctx context.Context, asset mediatree.Asset, hash string) int {
	if s.index == nil || hash == "" {
		return 0
	}
	entry, err := s.index.Lookup(ctx, hash)
	if err != nil {
		s.logger.Warn("index lookup failed",
			"project", asset.Key, "file", asset.Base+asset.Ext, "error", err)
		return 0
	}
	if entry == nil {
		return 0
	}
	_, found, err := s.api.GetMedia(ctx, entry.RemoteID)
	if err != nil || !found {
		return 0
	}
	s.logger.Info("asset found via content index, skipping upload",
		"project", asset.Key, "file", asset.Base+asset.Ext, "media_id", entry.RemoteID)
	return entry.RemoteID
}

func (s *Syncer) recordIndex(ctx context.Context, asset mediatree.Asset, hash string, media contentapi.Media) {
	if s.index == nil || hash == "" {
		return
	}
	err := s.index.Record(ctx, mediaindex.Entry{
		Hash:       hash,
		LocalPath:  asset.Path,
		RemoteID:   media.ID,
		RemoteSlug: media.Slug,
	})
	if err != nil {
		s.logger.Warn("index record failed",
			"project", asset.Key, "media_id", media.ID, "error", err)
	}
}

// reconcile renames the uploaded file (and its caption sidecar, if any) so
// the basename carries the remote identifier. The filename is the cache;
// this must complete before the next asset is processed.
func reconcile(asset mediatree.Asset, id int) error {
	marker := strconv.Itoa(id)
	if asset.Base == marker {
		return nil
	}
	dir := filepath.Dir(asset.Path)
	target := filepath.Join(dir, marker+asset.Ext)
	if err := os.Rename(asset.Path, target); err != nil {
		return pipeline.Wrap(pipeline.ErrRename, asset.Key+"/"+asset.Base+asset.Ext, "rename to "+marker+asset.Ext, err)
	}

	sidecar := filepath.Join(dir, asset.Base+".txt")
	if _, err := os.Stat(sidecar); err == nil {
		_ = os.Rename(sidecar, filepath.Join(dir, marker+".txt"))
	}
	return nil
}

func (s *Syncer) pause(ctx context.Context, ms int) {
	if ms <= 0 {
		return
	}
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
