package projectcsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Supported date field values.
const (
	DateTypeSingle = "single"
	DateTypeRange  = "range"

	DateFormatYear     = "yyyy"
	DateFormatMonth    = "mm/yyyy"
	DateFormatFullDate = "dd/mm/yyyy"
)

// Row is one migration unit from the projects CSV. Rows are immutable once
// loaded; the company doubles as the project key linking the row to its
// media directory.
type Row struct {
	Title      string
	Company    string
	Role       string
	Subtext    string
	Content    string
	DateStart  string
	DateEnd    string
	DateType   string
	DateFormat string
	CompanyURL string
	Categories []int
	Tags       []TagRef
}

// Key returns the case-folded project key for this row.
func (r Row) Key() string {
	return FoldKey(r.Company)
}

var keyFolder = cases.Fold()

// FoldKey lower-cases a company or directory name into a project key.
func FoldKey(name string) string {
	return keyFolder.String(strings.TrimSpace(name))
}

// LoadProjects reads the projects CSV into typed rows. The first line is the
// header; column order is free. Quoted fields may contain embedded commas and
// doubled quotes per RFC 4180.
func LoadProjects(path string) ([]Row, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := headerIndex(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		row := Row{
			Title:      field("title"),
			Company:    field("company"),
			Role:       field("role"),
			Subtext:    field("subtext"),
			Content:    field("content"),
			DateStart:  field("dateStart"),
			DateEnd:    field("dateEnd"),
			DateType:   field("dateType"),
			DateFormat: field("dateFormat"),
			CompanyURL: field("company_url"),
			Categories: parseIDList(field("categories")),
			Tags:       parseTagList(field("tags")),
		}
		if row.DateType == "" {
			row.DateType = DateTypeSingle
		}
		if row.DateFormat == "" {
			row.DateFormat = DateFormatMonth
		}
		if row.Title == "" && row.Company == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	return records, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

func parseIDList(value string) []int {
	if value == "" {
		return nil
	}
	var ids []int
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func parseTagList(value string) []TagRef {
	if value == "" {
		return nil
	}
	var refs []TagRef
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if id, err := strconv.Atoi(token); err == nil {
			refs = append(refs, TagByID(id))
			continue
		}
		refs = append(refs, TagByName(token))
	}
	return refs
}
