package transfer

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight = 20.0
	pdfMargin    = 30.0
)

// ReportColumnWidths are the column widths in points, left to right.
var ReportColumnWidths = []float64{50, 100, 100, 50, 50, 50, 150}

// Report is a titled table rendered to PDF.
type Report struct {
	Title  string
	Header []string
	Rows   [][]string
}

// WritePDF renders the report to w, starting a new page (with the header
// repeated) whenever the next row would overflow the current one.
func WritePDF(w io.Writer, r Report) error {
	pdf, err := buildPDF(r)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func buildPDF(r Report) (*fpdf.Fpdf, error) {
	if len(r.Header) > len(ReportColumnWidths) {
		return nil, fmt.Errorf("report has %d columns, at most %d supported", len(r.Header), len(ReportColumnWidths))
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range r.Header {
			pdf.CellFormat(ReportColumnWidths[i], pdfRowHeight, tr(h), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, pdfRowHeight, tr(r.Title), "", 1, "C", false, 0, "")
	pdf.Ln(pdfRowHeight / 2)
	writeHeader()

	for _, row := range r.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			writeHeader()
		}
		for i := range r.Header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(ReportColumnWidths[i], pdfRowHeight, tr(cell), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}
