package mediatree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/projectcsv"
)

// Role classifies an asset within a project.
type Role string

const (
	RoleFeatured Role = "featured"
	RoleGallery  Role = "gallery"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Cover directory names, in precedence order. Both conventions exist in the
// wild; the first non-empty one wins.
var coverDirNames = []string{"featured", "thumbnail"}

const galleryDirName = "gallery"

// Asset is a qualifying image file inside the local project tree.
type Asset struct {
	Path    string
	Key     string
	Role    Role
	Base    string
	Ext     string
	Caption string
}

// Project groups the discovered assets for one project key.
type Project struct {
	Key      string
	Dir      string
	Featured *Asset
	Gallery  []Asset
}

// Scan walks the media root and classifies assets per project. The walk is
// read-only and deterministic (directory entries sorted by name). A missing
// root yields an empty result, not an error; unreadable project directories
// are skipped and reported in the returned error slice.
func Scan(root string) ([]Project, []error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, []error{pipeline.Wrap(pipeline.ErrDiscovery, root, "read media root", err)}
	}

	var projects []Project
	var skipped []error
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		key := projectcsv.FoldKey(entry.Name())
		dir := filepath.Join(root, entry.Name())

		project, err := scanProject(key, dir)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		projects = append(projects, project)
	}
	return projects, skipped
}

func scanProject(key, dir string) (Project, error) {
	project := Project{Key: key, Dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Project{}, pipeline.Wrap(pipeline.ErrDiscovery, key, "read project directory", err)
	}

	for _, name := range coverDirNames {
		coverDir := filepath.Join(dir, name)
		asset, err := firstImage(key, coverDir)
		if err != nil {
			return Project{}, err
		}
		if asset != nil {
			asset.Role = RoleFeatured
			project.Featured = asset
			break
		}
	}

	galleryDir := filepath.Join(dir, galleryDirName)
	if info, err := os.Stat(galleryDir); err == nil && info.IsDir() {
		gallery, err := galleryAssets(key, galleryDir)
		if err != nil {
			return Project{}, err
		}
		project.Gallery = gallery
		return project, nil
	}

	// Flat fallback: images directly in the project directory. Cover
	// subdirectories are excluded because ReadDir only yields their entry,
	// never their contents.
	for _, entry := range entries {
		asset := classify(key, dir, entry)
		if asset == nil {
			continue
		}
		asset.Role = RoleGallery
		asset.Caption = readCaption(dir, asset.Base)
		project.Gallery = append(project.Gallery, *asset)
	}
	return project, nil
}

func galleryAssets(key, dir string) ([]Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrDiscovery, key, fmt.Sprintf("read %s directory", galleryDirName), err)
	}
	var assets []Asset
	for _, entry := range entries {
		asset := classify(key, dir, entry)
		if asset == nil {
			continue
		}
		asset.Role = RoleGallery
		asset.Caption = readCaption(dir, asset.Base)
		assets = append(assets, *asset)
	}
	return assets, nil
}

func firstImage(key, dir string) (*Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, pipeline.Wrap(pipeline.ErrDiscovery, key, "read cover directory", err)
	}
	for _, entry := range entries {
		if asset := classify(key, dir, entry); asset != nil {
			return asset, nil
		}
	}
	return nil, nil
}

func classify(key, dir string, entry fs.DirEntry) *Asset {
	if !entry.Type().IsRegular() {
		return nil
	}
	name := entry.Name()
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := imageExtensions[ext]; !ok {
		return nil
	}
	return &Asset{
		Path: filepath.Join(dir, name),
		Key:  key,
		Base: strings.TrimSuffix(name, filepath.Ext(name)),
		Ext:  ext,
	}
}

func readCaption(dir, base string) string {
	data, err := os.ReadFile(filepath.Join(dir, base+".txt"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
