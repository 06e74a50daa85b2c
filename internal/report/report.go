// Package report renders a scan result as a PDF document for download.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

// Generate renders the merged scan result into a paginated A4 PDF and returns
// the document bytes. Violation descriptions are single-line text, so each
// one renders as its own wrapped bullet.
func Generate(result model.ScanResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "SafeBuy Compliance Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	when := result.Timestamp
	if when.IsZero() {
		when = time.Now().UTC()
	}
	pdf.CellFormat(0, 7, "Generated on: "+when.UTC().Format("02 Jan 2006 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Product Details")
	p := result.Product
	detail(pdf, "Title", p.Title)
	detail(pdf, "Seller", orUnknown(p.Seller))
	detail(pdf, "Brand", orUnknown(p.Brand))
	detail(pdf, "Category", orUnknown(p.Category))
	detail(pdf, "URL", p.URL)
	pdf.Ln(4)

	heading(pdf, fmt.Sprintf("Risk Score: %d / 100", result.RiskScore))
	if result.TrustIndex != nil {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Trust Index: %d / 100", result.TrustIndex.Score), "", 1, "L", false, 0, "")
		for _, reason := range result.TrustIndex.Reasons {
			pdf.CellFormat(0, 5, "  - "+reason, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	heading(pdf, "Violations")
	pdf.SetFont("Helvetica", "", 10)
	if len(result.Violations) == 0 {
		pdf.CellFormat(0, 6, "No violations detected.", "", 1, "L", false, 0, "")
	} else {
		for _, v := range result.Violations {
			line := fmt.Sprintf("- %s (%s)", sanitize(v.Description), v.Severity)
			pdf.MultiCell(0, 5, line, "", "L", false)
			if v.Suggestion != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.MultiCell(0, 4, "  "+sanitize(v.Suggestion), "", "L", false)
				pdf.SetFont("Helvetica", "", 10)
			}
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
}

func detail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", label, value), "", 1, "L", false, 0, "")
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// sanitize keeps report lines single-line regardless of what upstream text
// slipped through.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
