package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// maxPDFItems bounds the number of item lines rendered into a PDF so a
// pathological upload cannot produce an unbounded document.
const maxPDFItems = 500

// Meta carries the audit metadata bound into report artifacts.
type Meta struct {
	Title    string
	Site     string
	Standard string
	Auditor  string
}

// BuildPDF renders a paginated PDF with the audit title, summary counts
// and up to maxPDFItems item lines. The buffer is returned only after the
// document is fully closed.
func BuildPDF(meta Meta, data *Data) ([]byte, error) {
	title := meta.Title
	if title == "" {
		title = "Audit Report"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 9, title, "", "L", false)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		"Site: " + meta.Site,
		"Standard: " + meta.Standard,
		"Auditor: " + meta.Auditor,
		"Generated: " + time.Now().Format("2006-01-02 15:04"),
	} {
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Summary: total %d, pass %d, fail %d, na %d, unknown %d",
		data.Summary.Total, data.Summary.Pass, data.Summary.Fail,
		data.Summary.NA, data.Summary.Unknown), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	items := data.Items
	truncated := false
	if len(items) > maxPDFItems {
		items = items[:maxPDFItems]
		truncated = true
	}
	for _, it := range items {
		line := fmt.Sprintf("%d. %s  [%s]", it.Idx, it.ID, it.Status)
		if it.Comment != "" {
			line += "  " + it.Comment
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	if truncated {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("... %d further items omitted", data.Summary.Total-maxPDFItems),
			"", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
