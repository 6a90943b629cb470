package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
)

// Media is the subset of a remote media resource this pipeline consumes.
type Media struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
}

// GetMedia checks existence by identifier. A 404 reports absence without an
// error; other failures are returned for the caller's fail-open policy.
func (c *Client) GetMedia(ctx context.Context, id int) (Media, bool, error) {
	var media Media
	err := c.getJSON(ctx, fmt.Sprintf("%s/media/%d", c.baseURL, id), &media)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return Media{}, false, nil
		}
		return Media{}, false, err
	}
	return media, true, nil
}

// FindMediaBySlug queries media whose slug matches. The remote returns an
// array; an empty array means absent.
func (c *Client) FindMediaBySlug(ctx context.Context, slug string) ([]Media, error) {
	endpoint := fmt.Sprintf("%s/media?slug=%s", c.baseURL, url.QueryEscape(slug))
	var matches []Media
	if err := c.getJSON(ctx, endpoint, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// UploadMedia submits one file as a multipart body with a single file field
// and returns the newly minted media resource.
func (c *Client) UploadMedia(ctx context.Context, path, filename string) (Media, error) {
	file, err := os.Open(path)
	if err != nil {
		return Media{}, fmt.Errorf("content api: open media file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	field, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Media{}, fmt.Errorf("content api: create file field: %w", err)
	}
	if _, err := io.Copy(field, file); err != nil {
		return Media{}, fmt.Errorf("content api: copy media file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Media{}, fmt.Errorf("content api: close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/media", body)
	if err != nil {
		return Media{}, fmt.Errorf("content api: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	raw, err := c.do(ctx, req)
	if err != nil {
		return Media{}, err
	}
	var media Media
	if err := json.Unmarshal(raw, &media); err != nil {
		return Media{}, fmt.Errorf("content api: decode upload response: %w", err)
	}
	if media.ID <= 0 {
		return Media{}, errors.New("content api: upload response missing id")
	}
	return media, nil
}
