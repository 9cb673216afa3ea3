package brochure

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/insurely/brochure-backend/internal/types"
)

func TestFlattenForPrompt_PreservesOrderAndEmptyVariants(t *testing.T) {
	master := testMaster()
	first := types.PlanVariant{VariantID: uuid.New(), VariantCode: "GOLD"}
	second := types.PlanVariant{VariantID: uuid.New(), VariantCode: "SILVER"}
	product := &types.Product{
		ProductID:   uuid.New(),
		ProductName: "Secure Life",
		Variants: []types.PlanVariant{
			func() types.PlanVariant {
				v := first
				v.EligibilityLinks = []types.VariantEligibilityLink{linkFor(master, 1, "")}
				return v
			}(),
			second,
		},
	}

	input := FlattenForPrompt(Compose(product))
	if len(input.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(input.Variants))
	}
	if input.Variants[0].VariantCode != "GOLD" || input.Variants[1].VariantCode != "SILVER" {
		t.Fatalf("variant order changed: %s, %s", input.Variants[0].VariantCode, input.Variants[1].VariantCode)
	}
	if len(input.Variants[0].Eligibility) != 1 {
		t.Fatalf("expected 1 eligibility record on first variant")
	}
	if input.Variants[1].Eligibility == nil || len(input.Variants[1].Eligibility) != 0 {
		t.Fatalf("a variant without links must carry an empty eligibility array, got %v", input.Variants[1].Eligibility)
	}

	// the serialized form must show "eligibility": [] rather than null
	raw, err := json.Marshal(input.Variants[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(decoded["eligibility"]) != "[]" {
		t.Fatalf("expected eligibility to encode as [], got %s", decoded["eligibility"])
	}
}

func TestSummaryFromGenerated_NormalizesDates(t *testing.T) {
	productID := uuid.New()
	generated := &types.GeneratedSummary{
		ProductGlance: types.ProductGlance{
			ProductID:      productID.String(),
			ProductName:    "Secure Life",
			ProductCode:    "SL-01",
			Insurer:        "Acme Life",
			ProductTagline: "Protection that grows with you",
			EffectiveFrom:  "01 Apr 2025",
			EffectiveTo:    "2026-03-31",
		},
		Variants: []types.SummaryVariant{
			{VariantCode: "GOLD", VariantLabel: "Gold Plan", Summary: "Entry 18-60."},
		},
		EligibilitySnapshot: "Adults 18-60, INR.",
		Notes:               "Generated for review.",
	}

	summary, err := SummaryFromGenerated(generated)
	if err != nil {
		t.Fatalf("SummaryFromGenerated: %v", err)
	}
	if summary.ProductID != productID {
		t.Fatalf("product id mismatch: %s", summary.ProductID)
	}
	wantFrom := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !summary.EffectiveFrom.Equal(wantFrom) {
		t.Fatalf("effective_from: got %v, want %v", summary.EffectiveFrom, wantFrom)
	}
	if summary.EffectiveTo == nil || summary.EffectiveTo.Format("2006-01-02") != "2026-03-31" {
		t.Fatalf("effective_to: got %v", summary.EffectiveTo)
	}
	if summary.Description != "Protection that grows with you" {
		t.Fatalf("description: %q", summary.Description)
	}

	var variants []types.SummaryVariant
	if err := json.Unmarshal(summary.Variants, &variants); err != nil {
		t.Fatalf("decode variants: %v", err)
	}
	if len(variants) != 1 || variants[0].VariantCode != "GOLD" {
		t.Fatalf("variants round-trip: %+v", variants)
	}
}

func TestSummaryFromGenerated_OpenEndedEffectiveTo(t *testing.T) {
	generated := &types.GeneratedSummary{
		ProductGlance: types.ProductGlance{
			ProductID:     uuid.New().String(),
			ProductName:   "Secure Life",
			EffectiveFrom: "2025-04-01",
			EffectiveTo:   "",
		},
	}
	summary, err := SummaryFromGenerated(generated)
	if err != nil {
		t.Fatalf("SummaryFromGenerated: %v", err)
	}
	if summary.EffectiveTo != nil {
		t.Fatalf("expected nil effective_to, got %v", *summary.EffectiveTo)
	}
	if string(summary.Variants) != "[]" {
		t.Fatalf("expected empty variants array, got %s", summary.Variants)
	}
}

func TestSummaryFromGenerated_Rejections(t *testing.T) {
	bad := &types.GeneratedSummary{ProductGlance: types.ProductGlance{ProductID: "not-a-uuid", EffectiveFrom: "01 Apr 2025"}}
	if _, err := SummaryFromGenerated(bad); err == nil {
		t.Fatalf("expected error for malformed product_id")
	}

	badDate := &types.GeneratedSummary{ProductGlance: types.ProductGlance{ProductID: uuid.New().String(), EffectiveFrom: "April Fools"}}
	if _, err := SummaryFromGenerated(badDate); err == nil {
		t.Fatalf("expected error for unparseable effective_from")
	}
}
