package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// Meta keys carried on every created project record.
const (
	MetaSubtext         = "_project_subtext"
	MetaRole            = "_project_role"
	MetaCompany         = "_project_company"
	MetaCompanyURL      = "_project_company_url"
	MetaGallery         = "_project_gallery"
	MetaGalleryCaptions = "_project_gallery_captions"
	MetaThumbnail       = "_project_thumbnail"
	MetaDateType        = "_project_date_type"
	MetaDateFormat      = "_project_date_format"
	MetaDateStart       = "_project_date_start"
	MetaDateEnd         = "_project_date_end"
)

// RecordPayload is the creation request for one project record. Optional
// fields are omitted entirely when absent so server-side defaults survive.
type RecordPayload struct {
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Status        string            `json:"status"`
	Categories    []int             `json:"categories,omitempty"`
	Tags          []int             `json:"tags,omitempty"`
	FeaturedMedia int               `json:"featured_media,omitempty"`
	Meta          map[string]string `json:"meta,omitempty"`
}

// Record is the subset of a created record this pipeline reports on.
type Record struct {
	ID    int          `json:"id"`
	Title RenderedText `json:"title"`
}

// RenderedText accepts both a plain string and the {"rendered": "..."}
// object shape the remote store uses for display fields.
type RenderedText string

func (t *RenderedText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = RenderedText(plain)
		return nil
	}
	var object struct {
		Rendered string `json:"rendered"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("decode rendered text: %w", err)
	}
	*t = RenderedText(object.Rendered)
	return nil
}

// CreateRecord submits a project creation request to the configured content
// type endpoint.
func (c *Client) CreateRecord(ctx context.Context, payload RecordPayload) (Record, error) {
	var record Record
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, c.contentType)
	if err := c.postJSON(ctx, endpoint, payload, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}
