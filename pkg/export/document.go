package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Section is one titled block of a document: an optional table plus free-form
// paragraphs.
type Section struct {
	Heading    string
	Table      *Dataset
	Paragraphs []string
}

// Document is a multi-section printable layout, used for report cards where a
// single flat table is not enough.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

// RenderDocument creates a sectioned PDF: title block, then per section a
// heading, an optional table and trailing paragraphs.
func (e *PDFExporter) RenderDocument(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	}
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, doc.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, section := range doc.Sections {
		if section.Heading != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, section.Heading, "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
		if section.Table != nil && len(section.Table.Headers) > 0 {
			pdf.SetFont("Arial", "B", 9)
			colWidth := 190.0 / float64(len(section.Table.Headers))
			for _, header := range section.Table.Headers {
				pdf.CellFormat(colWidth, 7, header, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont("Arial", "", 9)
			for _, row := range section.Table.Rows {
				for _, header := range section.Table.Headers {
					pdf.CellFormat(colWidth, 6, row[header], "1", 0, "", false, 0, "")
				}
				pdf.Ln(-1)
			}
			pdf.Ln(2)
		}
		pdf.SetFont("Arial", "", 10)
		for _, paragraph := range section.Paragraphs {
			if paragraph == "" {
				continue
			}
			pdf.MultiCell(0, 5, paragraph, "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf document: %w", err)
	}
	return buf.Bytes(), nil
}
