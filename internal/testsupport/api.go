package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeMedia is one remote media resource held by the fake API.
type FakeMedia struct {
	ID   int
	Slug string
}

// FakeTerm is one taxonomy entry held by the fake API.
type FakeTerm struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// FakeAPI is an in-process Content API double backed by httptest.
type FakeAPI struct {
	tb     testing.TB
	server *httptest.Server

	mu          sync.Mutex
	media       map[int]FakeMedia
	nextMediaID int
	nextTermID  int
	uploads     []string
	failUploads map[string]string
	records     []map[string]any
	failRecords map[string]string
	tags        []FakeTerm
	categories  []FakeTerm
}

// NewFakeAPI starts a fake Content API; the server stops with the test.
func NewFakeAPI(tb testing.TB) *FakeAPI {
	api := &FakeAPI{
		tb:          tb,
		media:       make(map[int]FakeMedia),
		nextMediaID: 1000,
		nextTermID:  500,
		failUploads: make(map[string]string),
		failRecords: make(map[string]string),
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	tb.Cleanup(api.server.Close)
	return api
}

// BaseURL returns the server's base URL for config wiring.
func (f *FakeAPI) BaseURL() string {
	return f.server.URL
}

// AddMedia seeds an existing remote media resource.
func (f *FakeAPI) AddMedia(id int, slug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.media[id] = FakeMedia{ID: id, Slug: slug}
}

// AddTag seeds an existing remote tag.
func (f *FakeAPI) AddTag(name, slug string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTermID++
	f.tags = append(f.tags, FakeTerm{ID: f.nextTermID, Name: name, Slug: slug})
	return f.nextTermID
}

// AddCategory seeds an existing remote category.
func (f *FakeAPI) AddCategory(name, slug string, count int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTermID++
	f.categories = append(f.categories, FakeTerm{ID: f.nextTermID, Name: name, Slug: slug, Count: count})
	return f.nextTermID
}

// FailUpload makes uploads of the given filename fail with the message.
func (f *FakeAPI) FailUpload(filename, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUploads[filename] = message
}

// FailRecord makes record creation fail when the title contains the needle.
func (f *FakeAPI) FailRecord(titleNeedle, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRecords[titleNeedle] = message
}

// Uploads returns the filenames uploaded so far, in order.
func (f *FakeAPI) Uploads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uploads...)
}

// Records returns the decoded record creation payloads, in order.
func (f *FakeAPI) Records() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.records...)
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(path, "media/"):
		f.handleMediaByID(w, strings.TrimPrefix(path, "media/"))
	case r.Method == http.MethodGet && path == "media":
		f.handleMediaBySlug(w, r.URL.Query().Get("slug"))
	case r.Method == http.MethodPost && path == "media":
		f.handleUpload(w, r)
	case r.Method == http.MethodGet && path == "tags":
		f.handleTerms(w, r.URL.Query().Get("search"), true)
	case r.Method == http.MethodPost && path == "tags":
		f.handleCreateTag(w, r)
	case r.Method == http.MethodGet && path == "categories":
		f.handleTerms(w, "", false)
	case r.Method == http.MethodPost:
		f.handleCreateRecord(w, r)
	default:
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}
}

func (f *FakeAPI) handleMediaByID(w http.ResponseWriter, raw string) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, `{"message":"bad id"}`, http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	media, ok := f.media[id]
	f.mu.Unlock()
	if !ok {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"id": media.ID, "slug": media.Slug})
}

func (f *FakeAPI) handleMediaBySlug(w http.ResponseWriter, slug string) {
	matches := []map[string]any{}
	f.mu.Lock()
	for _, media := range f.media {
		if media.Slug == slug {
			matches = append(matches, map[string]any{"id": media.ID, "slug": media.Slug})
		}
	}
	f.mu.Unlock()
	writeJSON(w, matches)
}

func (f *FakeAPI) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, `{"message":"bad multipart"}`, http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, `{"message":"missing file field"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	f.mu.Lock()
	defer f.mu.Unlock()
	if message, ok := f.failUploads[header.Filename]; ok {
		http.Error(w, fmt.Sprintf(`{"message":%q}`, message), http.StatusInternalServerError)
		return
	}
	f.nextMediaID++
	slug := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	media := FakeMedia{ID: f.nextMediaID, Slug: slug}
	f.media[media.ID] = media
	f.uploads = append(f.uploads, header.Filename)
	writeJSON(w, map[string]any{"id": media.ID, "slug": media.Slug})
}

func (f *FakeAPI) handleTerms(w http.ResponseWriter, search string, tags bool) {
	f.mu.Lock()
	source := f.categories
	if tags {
		source = f.tags
	}
	matches := []FakeTerm{}
	for _, term := range source {
		if search == "" || strings.Contains(strings.ToLower(term.Name), strings.ToLower(search)) {
			matches = append(matches, term)
		}
	}
	f.mu.Unlock()
	writeJSON(w, matches)
}

func (f *FakeAPI) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		http.Error(w, `{"message":"bad tag payload"}`, http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.nextTermID++
	term := FakeTerm{ID: f.nextTermID, Name: payload.Name, Slug: strings.ToLower(strings.ReplaceAll(payload.Name, " ", "-"))}
	f.tags = append(f.tags, term)
	f.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, term)
}

func (f *FakeAPI) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"message":"bad record payload"}`, http.StatusBadRequest)
		return
	}
	title, _ := payload["title"].(string)

	f.mu.Lock()
	for needle, message := range f.failRecords {
		if strings.Contains(title, needle) {
			f.mu.Unlock()
			http.Error(w, fmt.Sprintf(`{"message":%q}`, message), http.StatusInternalServerError)
			return
		}
	}
	f.records = append(f.records, payload)
	id := 9000 + len(f.records)
	f.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]any{"id": id, "title": map[string]any{"rendered": title}})
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
