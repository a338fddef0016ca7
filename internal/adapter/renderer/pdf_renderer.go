// Package renderer produces the downloadable blueprint document
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/aviniti/blueprint/internal/application/port/output"
)

// PDFRenderer renders the detailed report as an A4 PDF
type PDFRenderer struct{}

// NewPDFRenderer creates the PDF renderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render builds the blueprint document from the report
func (r *PDFRenderer) Render(_ context.Context, req output.RenderRequest) ([]byte, error) {
	if req.Report == nil {
		return nil, fmt.Errorf("render: report is nil")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "App Development Blueprint", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+req.GeneratedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.clientSection(pdf, req)
	r.overviewSection(pdf, req.Report.AppOverview)
	r.featureSection(pdf, req)
	r.costSection(pdf, req)
	r.timelineSection(pdf, req)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) clientSection(pdf *fpdf.Fpdf, req output.RenderRequest) {
	r.heading(pdf, "Prepared For")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, req.Details.FullName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, req.Details.EmailAddress, "", 1, "L", false, 0, "")
	if req.Details.CompanyName != "" {
		pdf.CellFormat(0, 5, req.Details.CompanyName, "", 1, "L", false, 0, "")
	}
	if len(req.Description.Platforms) > 0 {
		pdf.CellFormat(0, 5, "Platforms: "+strings.Join(req.Description.Platforms, ", "), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func (r *PDFRenderer) overviewSection(pdf *fpdf.Fpdf, overview string) {
	if overview == "" {
		return
	}
	r.heading(pdf, "App Overview")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, overview, "", "L", false)
	pdf.Ln(3)
}

func (r *PDFRenderer) featureSection(pdf *fpdf.Fpdf, req output.RenderRequest) {
	r.heading(pdf, "Selected Features")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 7, "Feature", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Cost", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Time", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, f := range req.Report.SelectedFeatures {
		pdf.CellFormat(90, 6, f.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, f.CostEstimate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, f.TimeEstimate, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	est := req.Report.Estimate
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Estimated Total: %s over %s", est.CostLabel, est.TimeLabel), "", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func (r *PDFRenderer) costSection(pdf *fpdf.Fpdf, req output.RenderRequest) {
	breakdown := req.Report.Estimate.CostBreakdown
	if len(breakdown) == 0 {
		return
	}
	r.heading(pdf, "Cost Breakdown")

	categories := make([]string, 0, len(breakdown))
	for category := range breakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	pdf.SetFont("Helvetica", "", 9)
	for _, category := range categories {
		pdf.CellFormat(90, 6, category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("$%d", breakdown[category]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func (r *PDFRenderer) timelineSection(pdf *fpdf.Fpdf, req output.RenderRequest) {
	phases := req.Report.Estimate.TimelinePhases
	if len(phases) == 0 {
		return
	}
	r.heading(pdf, "Projected Timeline")

	for _, phase := range phases {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", phase.Phase, phase.Duration), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, phase.Description, "", "L", false)
		pdf.Ln(1)
	}
}

func (r *PDFRenderer) heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(180, 180, 180)
	x, y := pdf.GetXY()
	pdf.Line(x, y, x+190, y)
	pdf.Ln(2)
}
