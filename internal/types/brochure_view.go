package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EffectiveEligibility is an eligibility master merged with one link's
// override: the read-only record a variant binding actually grants. Link
// metadata rides along so callers can audit where a value came from.
type EffectiveEligibility struct {
	EligibilityID      uuid.UUID  `json:"eligibility_id"`
	EligibilityName    string     `json:"eligibility_name"`
	Insurer            string     `json:"insurer"`
	Jurisdiction       string     `json:"jurisdiction"`
	Channel            string     `json:"channel"`
	PayType            string     `json:"pay_type"`
	PPTRuleType        string     `json:"ppt_rule_type"`
	PPTFixedYears      *int16     `json:"ppt_fixed_years,omitempty"`
	PPTMinYears        *int16     `json:"ppt_min_years,omitempty"`
	PPTMaxYears        *int16     `json:"ppt_max_years,omitempty"`
	PremiumModes       string     `json:"premium_modes"`
	MinPolicyTermType  string     `json:"min_policy_term_type"`
	MaxPolicyTermType  string     `json:"max_policy_term_type"`
	MinEntryAge        int        `json:"min_entry_age"`
	MaxEntryAge        int        `json:"max_entry_age"`
	MinMaturityAge     int        `json:"min_maturity_age"`
	MaxMaturityAge     int        `json:"max_maturity_age"`
	MinPolicyTermValue int        `json:"min_policy_term_value"`
	MaxPolicyTermValue int        `json:"max_policy_term_value"`
	MinBaseSumAssured  float64    `json:"min_base_sum_assured"`
	MaxBaseSumAssured  float64    `json:"max_base_sum_assured"`
	Currency           string     `json:"currency"`
	Notes              string     `json:"notes,omitempty"`

	LinkID          uuid.UUID      `json:"link_id"`
	Priority        int            `json:"priority"`
	EffectiveFrom   time.Time      `json:"effective_from"`
	EffectiveTo     *time.Time     `json:"effective_to,omitempty"`
	OverrideApplied bool           `json:"override_applied,omitempty"`
	OverrideJSON    datatypes.JSON `json:"override_json,omitempty"`
}

// CompleteVariant is a variant inside the composed brochure document: the
// variant row plus its resolved eligibility records and premium rules.
type CompleteVariant struct {
	PlanVariant
	EligibilityRules []EffectiveEligibility `json:"eligibilityRules"`
	PremiumRules     []MinPremiumRule       `json:"premiumRules"`
}

// CompleteProduct is the fully nested "complete brochure" view. PremiumRules
// holds the product-level rules (variant_id null); per-variant rules live on
// each CompleteVariant.
type CompleteProduct struct {
	Product
	Variants     []CompleteVariant `json:"variants"`
	PremiumRules []MinPremiumRule  `json:"premiumRules"`
}

// PromptVariant embeds a variant's own resolved eligibility so the text
// generator can treat the first entry as authoritative without
// cross-referencing ids.
type PromptVariant struct {
	PlanVariant
	Eligibility []EffectiveEligibility `json:"eligibility"`
}

// PromptInput is the flat shape handed to the prompt builder.
type PromptInput struct {
	Product  Product         `json:"product"`
	Variants []PromptVariant `json:"variants"`
}

// GeneratedSummary is the text generator's structured output, keyed exactly
// per the prompt's declared schema.
type GeneratedSummary struct {
	ProductGlance       ProductGlance    `json:"product_glance"`
	Variants            []SummaryVariant `json:"variants"`
	EligibilitySnapshot string           `json:"eligibility_snapshot"`
	Notes               string           `json:"notes"`
}

type ProductGlance struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductCode    string `json:"product_code"`
	Insurer        string `json:"insurer"`
	ProductTagline string `json:"product_tagline"`
	EffectiveFrom  string `json:"effective_from"`
	EffectiveTo    string `json:"effective_to"`
}
