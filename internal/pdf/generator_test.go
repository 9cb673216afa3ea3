package pdf

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/insurely/brochure-backend/internal/types"
)

func sampleSummary(t *testing.T, variantCount int) *types.BrochureSummary {
	t.Helper()
	variants := make([]types.SummaryVariant, 0, variantCount)
	for i := 0; i < variantCount; i++ {
		variants = append(variants, types.SummaryVariant{
			VariantCode:  "V" + string(rune('A'+i)),
			VariantLabel: "Plan Option",
			Summary:      strings.Repeat("Covers the insured with a guaranteed benefit. ", 6),
		})
	}
	raw, err := json.Marshal(variants)
	if err != nil {
		t.Fatalf("marshal variants: %v", err)
	}
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	return &types.BrochureSummary{
		SummaryID:           uuid.New(),
		ProductID:           uuid.New(),
		ProductName:         "Secure Life",
		ProductCode:         "123N456V01",
		Insurer:             "Acme Life",
		Description:         "Protection that grows with you",
		EffectiveFrom:       time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTo:         &to,
		Variants:            datatypes.JSON(raw),
		EligibilitySnapshot: "Entry: 18-60 yrs; Maturity: 28-75 yrs; Pay: Regular Pay; SA: INR 1,00,000-50,00,000",
		Notes:               "Subject to terms and conditions.",
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	out, err := NewGenerator().Generate(sampleSummary(t, 2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF, starts with %q", out[:8])
	}
}

func TestGenerate_LongContentPaginates(t *testing.T) {
	short, err := NewGenerator().Generate(sampleSummary(t, 1))
	if err != nil {
		t.Fatalf("Generate short: %v", err)
	}

	long := sampleSummary(t, 25)
	long.Notes = strings.Repeat("Additional disclosure text for the policyholder. ", 40)
	out, err := NewGenerator().Generate(long)
	if err != nil {
		t.Fatalf("Generate long: %v", err)
	}
	if len(out) <= len(short) {
		t.Fatalf("expected long summary to render more content: short=%d long=%d", len(short), len(out))
	}
	// 25 variant blocks cannot fit one page
	pages := bytes.Count(out, []byte("/Type /Page")) - bytes.Count(out, []byte("/Type /Pages"))
	if pages < 2 {
		t.Fatalf("expected multiple pages, found %d", pages)
	}
}

func TestGenerate_StructuredSnapshotAndMissingFields(t *testing.T) {
	summary := sampleSummary(t, 1)
	summary.EligibilitySnapshot = `{"min_age":18,"max_age":60,"income_requirements":"Salaried or self-employed"}`
	summary.EffectiveTo = nil
	summary.Variants = datatypes.JSON(`not json`)

	out, err := NewGenerator().Generate(summary)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestGenerate_NilSummary(t *testing.T) {
	if _, err := NewGenerator().Generate(nil); err == nil {
		t.Fatalf("expected error for nil summary")
	}
}
