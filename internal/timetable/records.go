package timetable

import (
	"regexp"
	"strings"
)

// Record maps header field names to the values of one data line
type Record map[string]string

// Get returns the field value, or an empty string when the field is absent
func (r Record) Get(field string) string {
	return r[field]
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseRecords splits comma separated text into records keyed by the header line.
// Quoting is not supported: a comma always separates fields.
func ParseRecords(text string) []Record {
	var lines []string
	for _, line := range lineBreak.Split(strings.TrimSpace(text), -1) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return []Record{}
	}

	header := strings.Split(strings.ReplaceAll(lines[0], "\r", ""), ",")
	records := make([]Record, 0, len(lines)-1)

	for _, line := range lines[1:] {
		cells := strings.Split(strings.ReplaceAll(line, "\r", ""), ",")
		record := make(Record, len(header))
		for i, key := range header {
			if i < len(cells) {
				record[key] = cells[i]
			} else {
				record[key] = ""
			}
		}
		records = append(records, record)
	}

	return records
}
