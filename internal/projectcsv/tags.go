package projectcsv

import "strings"

// TagRef identifies a tag either by a pre-resolved numeric identifier or by
// name. The two modes are mutually exclusive per ref; name refs must be
// resolved against the Content API before payload assembly.
type TagRef struct {
	id   int
	name string
}

// TagByID builds a reference to an already-known remote tag.
func TagByID(id int) TagRef {
	return TagRef{id: id}
}

// TagByName builds a reference that needs resolve-or-create by name.
func TagByName(name string) TagRef {
	return TagRef{name: strings.TrimSpace(name)}
}

// ID returns the numeric identifier and whether this ref carries one.
func (t TagRef) ID() (int, bool) {
	return t.id, t.id > 0
}

// Name returns the tag name for name-mode refs, empty otherwise.
func (t TagRef) Name() string {
	return t.name
}

// TagRecord is one row of a tag-import CSV.
type TagRecord struct {
	Name        string
	Description string
}

// LoadTags reads a tag-import CSV (columns: name, optional description).
func LoadTags(path string) ([]TagRecord, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := headerIndex(records[0])
	tags := make([]TagRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		tag := TagRecord{Name: field("name"), Description: field("description")}
		if tag.Name == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
