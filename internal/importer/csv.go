package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// ParseCSV reads person,text[,date] records into validated rows. A malformed
// file fails as a whole with a single parse-level error before any row
// reaches the batch. An optional header row naming the person column is
// skipped. Dates parse as RFC 3339 or as plain 2006-01-02; an unparseable
// date does not fail the file, the row simply carries no date.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	var rows []Row
	for i, record := range records {
		if i == 0 && isHeader(record) {
			continue
		}
		row := Row{}
		if len(record) > 0 {
			row.Person = strings.TrimSpace(record[0])
		}
		if len(record) > 1 {
			row.Text = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			if date, ok := parseDate(record[2]); ok {
				row.Date = &date
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "person")
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
