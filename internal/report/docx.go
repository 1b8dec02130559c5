package report

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	docx "github.com/lukasjarosch/go-docx"

	apperrors "auditdesk/internal/errors"
)

// BuildDOCX loads the fixed report template at templatePath and binds the
// audit metadata, summary counts and item lines into its named placeholder
// fields. A missing template is a client-visible error, never silently
// substituted.
func BuildDOCX(templatePath string, meta Meta, data *Data) ([]byte, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTemplateMissing, err)
	}

	doc, err := docx.Open(templatePath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTemplateMissing, err)
	}

	var items strings.Builder
	for _, it := range data.Items {
		fmt.Fprintf(&items, "%d. %s [%s] %s\n", it.Idx, it.ID, it.Status, it.Comment)
	}

	err = doc.ReplaceAll(docx.PlaceholderMap{
		"title":    meta.Title,
		"site":     meta.Site,
		"standard": meta.Standard,
		"auditor":  meta.Auditor,
		"date":     time.Now().Format("2006-01-02"),
		"total":    strconv.Itoa(data.Summary.Total),
		"pass":     strconv.Itoa(data.Summary.Pass),
		"fail":     strconv.Itoa(data.Summary.Fail),
		"na":       strconv.Itoa(data.Summary.NA),
		"unknown":  strconv.Itoa(data.Summary.Unknown),
		"items":    items.String(),
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
