package migrate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/mediasync"
	"portfolioctl/internal/projectcsv"
)

// BuildPayload merges a CSV row with its media entry into a creation
// request. Absent values are omitted entirely, never sent as empty strings,
// so server-side defaults are preserved.
func BuildPayload(row projectcsv.Row, entry mediasync.Entry, tagIDs []int) contentapi.RecordPayload {
	payload := contentapi.RecordPayload{
		Title:   fmt.Sprintf("%s at %s", row.Title, row.Company),
		Content: row.Content,
		Status:  "publish",
	}
	if len(row.Categories) > 0 {
		payload.Categories = row.Categories
	}
	if len(tagIDs) > 0 {
		payload.Tags = tagIDs
	}
	if entry.Featured > 0 {
		payload.FeaturedMedia = entry.Featured
	}

	meta := make(map[string]string)
	setMeta := func(key, value string) {
		if value != "" {
			meta[key] = value
		}
	}
	setMeta(contentapi.MetaSubtext, row.Subtext)
	setMeta(contentapi.MetaRole, row.Role)
	setMeta(contentapi.MetaCompany, row.Company)
	setMeta(contentapi.MetaCompanyURL, row.CompanyURL)
	setMeta(contentapi.MetaGallery, joinIDs(entry.Gallery))
	setMeta(contentapi.MetaGalleryCaptions, encodeCaptions(entry.Captions))
	if entry.Thumbnail > 0 {
		meta[contentapi.MetaThumbnail] = strconv.Itoa(entry.Thumbnail)
	}
	setMeta(contentapi.MetaDateType, row.DateType)
	setMeta(contentapi.MetaDateFormat, row.DateFormat)
	setMeta(contentapi.MetaDateStart, row.DateStart)
	setMeta(contentapi.MetaDateEnd, row.DateEnd)

	if len(meta) > 0 {
		payload.Meta = meta
	}
	return payload
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func encodeCaptions(captions map[int]string) string {
	if len(captions) == 0 {
		return ""
	}
	byKey := make(map[string]string, len(captions))
	for id, text := range captions {
		byKey[strconv.Itoa(id)] = text
	}
	encoded, err := json.Marshal(byKey)
	if err != nil {
		return ""
	}
	return string(encoded)
}
