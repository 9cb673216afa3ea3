package prompts

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/insurely/brochure-backend/internal/types"
)

func TestBuildBrochurePrompt(t *testing.T) {
	withEligibility := types.PromptVariant{
		PlanVariant: types.PlanVariant{VariantID: uuid.New(), VariantCode: "GOLD"},
		Eligibility: []types.EffectiveEligibility{{EligibilityName: "Standard Entry", Currency: "INR"}},
	}
	without := types.PromptVariant{
		PlanVariant: types.PlanVariant{VariantID: uuid.New(), VariantCode: "SILVER"},
		Eligibility: []types.EffectiveEligibility{},
	}
	input := types.PromptInput{
		Product: types.Product{
			ProductID:   uuid.New(),
			ProductName: "Secure Life",
			UIN:         "123N456V01",
		},
		Variants: []types.PromptVariant{withEligibility, without},
	}

	prompt, err := BuildBrochurePrompt(input)
	if err != nil {
		t.Fatalf("BuildBrochurePrompt: %v", err)
	}

	if !strings.Contains(prompt, "Input has 2 variant(s)") {
		t.Fatalf("prompt missing variant count")
	}
	if !strings.Contains(prompt, withEligibility.VariantID.String()+", "+without.VariantID.String()) {
		t.Fatalf("prompt missing ordered variant id list")
	}
	if !strings.Contains(prompt, "("+withEligibility.VariantCode+") -> Eligibility: AVAILABLE") {
		t.Fatalf("prompt missing AVAILABLE mapping line")
	}
	if !strings.Contains(prompt, "("+without.VariantCode+") -> Eligibility: NONE") {
		t.Fatalf("prompt missing NONE mapping line")
	}
	if !strings.Contains(prompt, `"Secure Life"`) || !strings.Contains(prompt, `"123N456V01"`) {
		t.Fatalf("prompt missing embedded product data")
	}
	if !strings.Contains(prompt, "Standard Entry") {
		t.Fatalf("prompt missing embedded eligibility data")
	}
}
