package contentapi

import (
	"context"
	"fmt"
	"net/url"
)

// Term is a taxonomy entry (category or tag).
type Term struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

const termPageSize = 100

// ListCategories returns the remote category taxonomy.
func (c *Client) ListCategories(ctx context.Context) ([]Term, error) {
	return c.listTerms(ctx, "categories")
}

// ListTags returns the remote tag taxonomy.
func (c *Client) ListTags(ctx context.Context) ([]Term, error) {
	return c.listTerms(ctx, "tags")
}

func (c *Client) listTerms(ctx context.Context, taxonomy string) ([]Term, error) {
	endpoint := fmt.Sprintf("%s/%s?per_page=%d", c.baseURL, taxonomy, termPageSize)
	var terms []Term
	if err := c.getJSON(ctx, endpoint, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// SearchTags finds tags whose name matches the search text.
func (c *Client) SearchTags(ctx context.Context, name string) ([]Term, error) {
	endpoint := fmt.Sprintf("%s/tags?search=%s", c.baseURL, url.QueryEscape(name))
	var terms []Term
	if err := c.getJSON(ctx, endpoint, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// CreateTag creates a tag by name with an optional description.
func (c *Client) CreateTag(ctx context.Context, name, description string) (Term, error) {
	payload := map[string]string{"name": name}
	if description != "" {
		payload["description"] = description
	}
	var term Term
	if err := c.postJSON(ctx, c.baseURL+"/tags", payload, &term); err != nil {
		return Term{}, err
	}
	return term, nil
}
