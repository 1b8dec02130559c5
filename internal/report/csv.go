// Package report turns ingested audit results into report data and
// renders PDF, XLSX and DOCX artifacts. All builders are pure transforms
// from (audit metadata, summary, items) to a byte buffer.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	apperrors "auditdesk/internal/errors"
)

// Item statuses after normalization.
const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusNA      = "NA"
	StatusUnknown = "UNKNOWN"
)

// Item is one normalized audit result row.
type Item struct {
	Idx     int    `json:"idx"`
	ID      string `json:"id"`
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// Summary holds per-status counts over a report's items.
type Summary struct {
	Total   int `json:"total"`
	Pass    int `json:"pass"`
	Fail    int `json:"fail"`
	NA      int `json:"na"`
	Unknown int `json:"unknown"`
}

// Data is the summary+items blob persisted on the audit record.
type Data struct {
	Summary Summary `json:"summary"`
	Items   []Item  `json:"items"`
}

// NormalizeStatus maps free-text status values onto the fixed vocabulary.
// Unrecognized non-empty values pass through uppercased.
func NormalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pass", "ok", "yes":
		return StatusPass
	case "fail", "no":
		return StatusFail
	case "na", "n-a", "n/a":
		return StatusNA
	case "":
		return StatusUnknown
	default:
		return strings.ToUpper(strings.TrimSpace(raw))
	}
}

// Summarize counts item statuses. The per-status counts always sum to Total.
func Summarize(items []Item) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case StatusPass:
			s.Pass++
		case StatusFail:
			s.Fail++
		case StatusNA:
			s.NA++
		default:
			s.Unknown++
		}
	}
	return s
}

// ParseCSV reads an uploaded results CSV (comma-separated, double-quote
// escaping) and returns normalized report data. The first row is the
// header; item IDs fall back through Item/ID column variants and default
// to Row<idx> when no such column exists.
func ParseCSV(r io.Reader) (*Data, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "malformed CSV: "+err.Error())
	}
	if len(records) < 2 {
		return nil, apperrors.ErrEmptyReportCSV
	}

	// Map lowercased header names to column positions; this covers the
	// Item/item/ITEM and Id/id/ID variants seen in the wild.
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	items := make([]Item, 0, len(records)-1)
	for n, row := range records[1:] {
		idx := n + 1

		id, ok := field(row, "item")
		if !ok || id == "" {
			id, ok = field(row, "id")
		}
		if !ok || id == "" {
			id = fmt.Sprintf("Row%d", idx)
		}

		status, _ := field(row, "status")
		comment, _ := field(row, "comment")

		items = append(items, Item{
			Idx:     idx,
			ID:      id,
			Status:  NormalizeStatus(status),
			Comment: comment,
		})
	}

	return &Data{Summary: Summarize(items), Items: items}, nil
}
