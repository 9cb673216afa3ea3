package brochure

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insurely/brochure-backend/internal/types"
)

// FlattenForPrompt reshapes the composed document into the structure the
// text-generation prompt expects: each variant embeds its own resolved
// eligibility array (priority order) so the generator can treat the first
// entry as authoritative per variant. Variant order follows the input
// exactly, and a variant with no eligibility still appears with an empty
// array rather than being dropped.
func FlattenForPrompt(complete *types.CompleteProduct) types.PromptInput {
	input := types.PromptInput{
		Product:  complete.Product,
		Variants: make([]types.PromptVariant, 0, len(complete.Variants)),
	}
	for _, variant := range complete.Variants {
		pv := types.PromptVariant{
			PlanVariant: variant.PlanVariant,
			Eligibility: variant.EligibilityRules,
		}
		if pv.Eligibility == nil {
			pv.Eligibility = []types.EffectiveEligibility{}
		}
		pv.PlanVariant.EligibilityLinks = nil
		pv.PlanVariant.PremiumRules = nil
		pv.PlanVariant.Product = nil
		input.Variants = append(input.Variants, pv)
	}
	return input
}

// Date layouts accepted from the generator. The prompt asks for
// "DD Mon YYYY"; the other two cover generators that echo stored values.
var generatedDateLayouts = []string{
	"02 Jan 2006",
	"2006-01-02",
	time.RFC3339,
}

func parseGeneratedDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range generatedDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// SummaryFromGenerated maps the text generator's structured output onto the
// persisted summary schema 1:1, normalizing the glance date strings to real
// timestamps. effective_to stays absent when the generator did not supply
// one.
func SummaryFromGenerated(generated *types.GeneratedSummary) (*types.BrochureSummary, error) {
	productID, err := uuid.Parse(generated.ProductGlance.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id %q: %w", generated.ProductGlance.ProductID, err)
	}

	effectiveFrom, err := parseGeneratedDate(generated.ProductGlance.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid effective_from: %w", err)
	}

	var effectiveTo *time.Time
	if strings.TrimSpace(generated.ProductGlance.EffectiveTo) != "" {
		parsed, err := parseGeneratedDate(generated.ProductGlance.EffectiveTo)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_to: %w", err)
		}
		effectiveTo = &parsed
	}

	variants := generated.Variants
	if variants == nil {
		variants = []types.SummaryVariant{}
	}
	variantsJSON, err := json.Marshal(variants)
	if err != nil {
		return nil, fmt.Errorf("encode variants: %w", err)
	}

	return &types.BrochureSummary{
		ProductID:           productID,
		ProductName:         generated.ProductGlance.ProductName,
		ProductCode:         generated.ProductGlance.ProductCode,
		Insurer:             generated.ProductGlance.Insurer,
		Description:         generated.ProductGlance.ProductTagline,
		EffectiveFrom:       effectiveFrom,
		EffectiveTo:         effectiveTo,
		Variants:            variantsJSON,
		EligibilitySnapshot: generated.EligibilitySnapshot,
		Notes:               generated.Notes,
	}, nil
}
