package ingestion

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jonathan/portfolio-builder/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseLinkedInExport parses the text content of a LinkedIn data export.
// JSON content starts with '{' or '['; anything else is treated as CSV.
func ParseLinkedInExport(content []byte) (*types.ProfileData, error) {
	content = bytes.TrimSpace(bytes.TrimPrefix(content, utf8BOM))
	if len(content) == 0 {
		return nil, &types.ParseError{Format: "linkedin-export", Message: "export is empty"}
	}

	switch content[0] {
	case '{', '[':
		return parseLinkedInJSON(content)
	default:
		return parseLinkedInCSV(content)
	}
}

func parseLinkedInJSON(content []byte) (*types.ProfileData, error) {
	var raw any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &types.ParseError{Format: "json", Message: "invalid JSON export", Cause: err}
	}

	root, ok := raw.(map[string]any)
	if !ok {
		list, isList := raw.([]any)
		if !isList || len(list) == 0 {
			return nil, &types.ParseError{Format: "json", Message: "export must be an object or a non-empty array"}
		}
		if root, ok = list[0].(map[string]any); !ok {
			return nil, &types.ParseError{Format: "json", Message: "export array must contain objects"}
		}
	}

	profile := root
	for _, key := range []string{"Profile", "profile"} {
		if nested, ok := root[key].(map[string]any); ok {
			profile = nested
			break
		}
	}

	name := joinName(
		stringField(profile, "firstName", "first_name", "First Name"),
		stringField(profile, "lastName", "last_name", "Last Name"),
	)
	if name == "" {
		name = strings.TrimSpace(stringField(profile, "name", "fullName", "full_name", "Name"))
	}
	if name == "" {
		return nil, &types.ParseError{Format: "json", Message: "could not locate name fields in export"}
	}

	data := &types.ProfileData{
		Source: types.SourceLinkedInExport,
		Name:   name,
		Title:  stringField(profile, "headline", "Headline", "title", "Title"),
		About:  stringField(profile, "summary", "Summary", "about", "About"),
	}

	for _, item := range listField(profile, root, "positions", "Positions", "experience", "experiences", "Experience") {
		pos, ok := item.(map[string]any)
		if !ok {
			continue
		}
		duration := stringField(pos, "duration", "Duration")
		if duration == "" {
			duration = dateRange(
				stringField(pos, "startDate", "Started On", "start_date"),
				stringField(pos, "endDate", "Finished On", "end_date"),
			)
		}
		data.Experience = append(data.Experience, types.Experience{
			Title:       stringField(pos, "title", "Title"),
			Company:     stringField(pos, "companyName", "company", "Company Name", "Company"),
			Duration:    duration,
			Description: stringField(pos, "description", "Description"),
		})
	}

	for _, item := range listField(profile, root, "educations", "Educations", "education", "Education") {
		edu, ok := item.(map[string]any)
		if !ok {
			continue
		}
		years := stringField(edu, "years", "Years")
		if years == "" {
			years = dateRange(
				stringField(edu, "startDate", "Start Date", "start_date"),
				stringField(edu, "endDate", "End Date", "end_date"),
			)
		}
		data.Education = append(data.Education, types.Education{
			Institution: stringField(edu, "schoolName", "school", "School Name", "institution"),
			Degree:      stringField(edu, "degreeName", "degree", "Degree Name"),
			Years:       years,
		})
	}

	for _, item := range listField(profile, root, "skills", "Skills") {
		switch v := item.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				data.Skills = append(data.Skills, s)
			}
		case map[string]any:
			if s := stringField(v, "name", "Name"); s != "" {
				data.Skills = append(data.Skills, s)
			}
		}
	}

	return data, nil
}

// parseLinkedInCSV reads the first data row of a Profile.csv style export.
// Multi-value fields are not present in this file and stay empty.
func parseLinkedInCSV(content []byte) (*types.ProfileData, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &types.ParseError{Format: "csv", Message: "failed to read header row", Cause: err}
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[normalizeHeader(h)] = i
	}

	firstIdx, hasFirst := findColumn(columns, "firstname")
	lastIdx, hasLast := findColumn(columns, "lastname")
	if !hasFirst || !hasLast {
		return nil, &types.ParseError{Format: "csv", Message: "could not locate First Name and Last Name columns"}
	}

	row, err := reader.Read()
	if err == io.EOF {
		return nil, &types.ParseError{Format: "csv", Message: "export has no data rows"}
	}
	if err != nil {
		return nil, &types.ParseError{Format: "csv", Message: "failed to read data row", Cause: err}
	}

	cell := func(idx int, ok bool) string {
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := joinName(cell(firstIdx, true), cell(lastIdx, true))
	if name == "" {
		return nil, &types.ParseError{Format: "csv", Message: "name columns are empty"}
	}

	return &types.ProfileData{
		Source: types.SourceLinkedInExport,
		Name:   name,
		Title:  cell(findColumn(columns, "headline", "title")),
		About:  cell(findColumn(columns, "summary", "about")),
	}, nil
}

// normalizeHeader lower-cases a header and drops everything but letters and digits
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func findColumn(columns map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if idx, ok := columns[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// stringField returns the first present key rendered as a trimmed string
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%g", v)
		}
	}
	return ""
}

// listField looks up the first array under keys, first in primary then in fallback
func listField(primary, fallback map[string]any, keys ...string) []any {
	for _, m := range []map[string]any{primary, fallback} {
		for _, key := range keys {
			if list, ok := m[key].([]any); ok {
				return list
			}
		}
	}
	return nil
}

func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " - Present"
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}
