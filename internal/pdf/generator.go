package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/insurely/brochure-backend/internal/types"
)

const (
	pageHeight   = 792.0
	bottomMargin = 100.0
	leftMargin   = 50.0
	contentWidth = 495.0
)

// Generator renders a stored brochure summary as a paginated PDF document.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate renders the summary. Every section checks remaining page space
// before writing so long content flows onto additional pages; each page gets
// a page-number and generation-date footer.
func (g *Generator) Generate(summary *types.BrochureSummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("nil summary")
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetTitle("Insurance Product Summary", false)
	doc.SetAuthor("Insurance System", false)
	doc.SetSubject("Product Summary", false)
	doc.SetMargins(leftMargin, leftMargin, leftMargin)
	doc.SetAutoPageBreak(false, bottomMargin)
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(pageHeight - 50)
		doc.SetTextColor(149, 165, 166)
		doc.SetFont("Helvetica", "", 8)
		doc.CellFormat(contentWidth/2, 10, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "L", false, 0, "")
		doc.CellFormat(contentWidth/2, 10, "Generated on: "+time.Now().Format("02 Jan 2006"), "", 0, "R", false, 0, "")
	})
	doc.AddPage()

	g.header(doc)
	g.productOverview(doc, summary)
	g.variants(doc, summary)
	g.eligibility(doc, summary.EligibilitySnapshot)
	g.notes(doc, summary.Notes)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) header(doc *gofpdf.Fpdf) {
	doc.SetTextColor(44, 62, 80)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(contentWidth, 24, "INSURANCE PRODUCT SUMMARY", "", 1, "C", false, 0, "")
	doc.Ln(8)
	doc.SetDrawColor(52, 152, 219)
	doc.SetLineWidth(2)
	doc.Line(leftMargin, doc.GetY(), leftMargin+contentWidth, doc.GetY())
	doc.Ln(16)
}

func (g *Generator) productOverview(doc *gofpdf.Fpdf, summary *types.BrochureSummary) {
	g.sectionTitle(doc, "PRODUCT OVERVIEW")

	fields := []struct {
		label string
		value string
	}{
		{"Product Name", orNA(summary.ProductName)},
		{"Product Code", orNA(summary.ProductCode)},
		{"Insurer", orNA(summary.Insurer)},
		{"Description", orNA(summary.Description)},
		{"Effective From", formatDate(&summary.EffectiveFrom)},
		{"Effective To", formatDate(summary.EffectiveTo)},
	}
	for _, field := range fields {
		g.breakIfNeeded(doc, 20)
		g.labelledLine(doc, field.label, field.value, 12)
		doc.Ln(4)
	}
}

func (g *Generator) variants(doc *gofpdf.Fpdf, summary *types.BrochureSummary) {
	var variants []types.SummaryVariant
	if len(summary.Variants) > 0 {
		// malformed stored JSON degrades to an absent section
		_ = json.Unmarshal(summary.Variants, &variants)
	}
	if len(variants) == 0 {
		return
	}

	g.sectionTitle(doc, "PLAN VARIANTS")
	for i, variant := range variants {
		g.breakIfNeeded(doc, 100)

		title := variant.VariantLabel
		if title == "" {
			title = variant.VariantCode
		}
		if title == "" {
			title = "Unnamed Variant"
		}
		doc.SetTextColor(31, 130, 196)
		doc.SetFont("Helvetica", "B", 14)
		doc.MultiCell(contentWidth, 18, fmt.Sprintf("Variant %d: %s", i+1, title), "", "L", false)

		doc.SetTextColor(44, 62, 80)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(contentWidth, 14, "Code: "+orNA(variant.VariantCode), "", "L", false)
		doc.Ln(4)

		if variant.Summary != "" {
			g.breakIfNeeded(doc, 50)
			g.labelledLine(doc, "Summary", variant.Summary, 11)
		}
		doc.Ln(10)

		if i < len(variants)-1 {
			if g.needsNewPage(doc, 30) {
				doc.AddPage()
			} else {
				doc.SetDrawColor(189, 195, 199)
				doc.SetLineWidth(0.5)
				doc.Line(leftMargin, doc.GetY(), leftMargin+contentWidth, doc.GetY())
				doc.Ln(10)
			}
		}
	}
}

// snapshotFields are the structured keys accepted when the stored snapshot
// is a JSON object rather than free text.
var snapshotFields = []struct {
	key    string
	label  string
	suffix string
}{
	{"min_age", "Minimum Age", " years"},
	{"max_age", "Maximum Age", " years"},
	{"income_requirements", "Income Requirements", ""},
	{"medical_conditions", "Medical Conditions", ""},
	{"occupation_restrictions", "Occupation Restrictions", ""},
	{"geographical_restrictions", "Geographical Restrictions", ""},
	{"family_conditions", "Family Conditions", ""},
	{"other_requirements", "Other Requirements", ""},
}

func (g *Generator) eligibility(doc *gofpdf.Fpdf, snapshot string) {
	if snapshot == "" {
		return
	}
	g.sectionTitle(doc, "ELIGIBILITY CRITERIA")

	var structured map[string]any
	if err := json.Unmarshal([]byte(snapshot), &structured); err == nil {
		for _, field := range snapshotFields {
			val, ok := structured[field.key]
			if !ok || val == nil {
				continue
			}
			g.breakIfNeeded(doc, 20)
			g.labelledLine(doc, field.label, fmt.Sprintf("%v%s", val, field.suffix), 11)
			doc.Ln(4)
		}
		return
	}

	g.breakIfNeeded(doc, 100)
	doc.SetTextColor(52, 73, 94)
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(contentWidth, 14, snapshot, "", "L", false)
}

func (g *Generator) notes(doc *gofpdf.Fpdf, notes string) {
	if notes == "" {
		return
	}
	g.sectionTitle(doc, "ADDITIONAL NOTES")
	g.breakIfNeeded(doc, 100)
	doc.SetTextColor(52, 73, 94)
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(contentWidth, 14, notes, "", "J", false)
}

func (g *Generator) sectionTitle(doc *gofpdf.Fpdf, title string) {
	if g.needsNewPage(doc, 150) {
		doc.AddPage()
	} else {
		doc.Ln(24)
	}
	doc.SetTextColor(44, 62, 80)
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(contentWidth, 20, title, "", 1, "L", false, 0, "")
	doc.Ln(6)
}

// labelledLine writes "Label: value" inline, bold label then regular value,
// wrapping within the content width.
func (g *Generator) labelledLine(doc *gofpdf.Fpdf, label, value string, size float64) {
	lineHeight := size + 3
	doc.SetTextColor(44, 62, 80)
	doc.SetFont("Helvetica", "B", size)
	doc.Write(lineHeight, label+": ")
	doc.SetTextColor(52, 73, 94)
	doc.SetFont("Helvetica", "", size)
	doc.Write(lineHeight, value)
	doc.Ln(lineHeight)
}

func (g *Generator) needsNewPage(doc *gofpdf.Fpdf, requiredHeight float64) bool {
	return doc.GetY()+requiredHeight > pageHeight-bottomMargin
}

func (g *Generator) breakIfNeeded(doc *gofpdf.Fpdf, requiredHeight float64) {
	if g.needsNewPage(doc, requiredHeight) {
		doc.AddPage()
	}
}

func orNA(val string) string {
	if val == "" {
		return "N/A"
	}
	return val
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format("02 Jan 2006")
}
