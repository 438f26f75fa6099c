package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrMissingColumn = errors.New("catalog: required column missing")
	skillPattern     = regexp.MustCompile(`"([^"]+)"`)
)

// Row is one raw catalog line as read from the source file.
type Row struct {
	Course   string
	Partner  string
	Skills   string
	Rating   string
	Level    string
	Duration string
}

// LoadFile reads the catalog CSV at path.
func LoadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	rows, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return rows, nil
}

// LoadCSV reads a header-led CSV stream. The course and skills columns are required,
// partner, rating, level and duration are read when present. Column order is free.
func LoadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{"course", "skills"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			Course:   field(record, "course"),
			Partner:  field(record, "partner"),
			Skills:   field(record, "skills"),
			Rating:   field(record, "rating"),
			Level:    field(record, "level"),
			Duration: field(record, "duration"),
		})
	}
	return rows, nil
}

// ParseSkills extracts every double-quoted item of a set-encoded skills field,
// e.g. `{"Python Programming","SQL"}`. Blank items are dropped.
func ParseSkills(raw string) []string {
	matches := skillPattern.FindAllStringSubmatch(raw, -1)
	skills := make([]string, 0, len(matches))
	for _, m := range matches {
		skill := strings.TrimSpace(m[1])
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}
	return skills
}

func parseRating(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
