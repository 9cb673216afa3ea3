package brochure

import (
	"encoding/json"
	"sort"

	"github.com/insurely/brochure-backend/internal/types"
)

// ResolveLinks turns a variant's eligibility links into effective
// eligibility records: each record is the linked master's fields with the
// link's override patch applied key by key, carrying the link metadata for
// audit. The result is ordered ascending by priority; ties keep the input
// (creation) order. Zero links resolve to an empty sequence, never an error.
func ResolveLinks(links []types.VariantEligibilityLink) []types.EffectiveEligibility {
	resolved := make([]types.EffectiveEligibility, 0, len(links))
	for _, link := range links {
		record := baseRecord(link.Eligibility)
		record.LinkID = link.LinkID
		record.Priority = link.Priority
		record.EffectiveFrom = link.EffectiveFrom
		record.EffectiveTo = link.EffectiveTo

		patch := decodeOverride(link.OverrideJSON)
		if len(patch) > 0 {
			applyOverride(&record, patch)
			record.OverrideApplied = true
			record.OverrideJSON = link.OverrideJSON
		}
		resolved = append(resolved, record)
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Priority < resolved[j].Priority
	})
	return resolved
}

// baseRecord shallow-copies the master's fields. A nil master (which the
// store's referential guard should prevent) yields null fields rather than
// a panic.
func baseRecord(master *types.EligibilityMaster) types.EffectiveEligibility {
	if master == nil {
		return types.EffectiveEligibility{}
	}
	return types.EffectiveEligibility{
		EligibilityID:      master.EligibilityID,
		EligibilityName:    master.EligibilityName,
		Insurer:            master.Insurer,
		Jurisdiction:       master.Jurisdiction,
		Channel:            master.Channel,
		PayType:            master.PayType,
		PPTRuleType:        master.PPTRuleType,
		PPTFixedYears:      master.PPTFixedYears,
		PPTMinYears:        master.PPTMinYears,
		PPTMaxYears:        master.PPTMaxYears,
		PremiumModes:       master.PremiumModes,
		MinPolicyTermType:  master.MinPolicyTermType,
		MaxPolicyTermType:  master.MaxPolicyTermType,
		MinEntryAge:        master.MinEntryAge,
		MaxEntryAge:        master.MaxEntryAge,
		MinMaturityAge:     master.MinMaturityAge,
		MaxMaturityAge:     master.MaxMaturityAge,
		MinPolicyTermValue: master.MinPolicyTermValue,
		MaxPolicyTermValue: master.MaxPolicyTermValue,
		MinBaseSumAssured:  master.MinBaseSumAssured,
		MaxBaseSumAssured:  master.MaxBaseSumAssured,
		Currency:           master.Currency,
		Notes:              master.Notes,
	}
}

func decodeOverride(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var patch map[string]any
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil
	}
	return patch
}

// applyOverride overwrites only the keys present in the patch. The key set
// is fixed to the master's own fields; unknown keys are ignored. A JSON null
// clears the base value (zero value, or nil for optional fields).
func applyOverride(record *types.EffectiveEligibility, patch map[string]any) {
	for key, val := range patch {
		switch key {
		case "eligibility_name":
			record.EligibilityName = asString(val)
		case "insurer":
			record.Insurer = asString(val)
		case "jurisdiction":
			record.Jurisdiction = asString(val)
		case "channel":
			record.Channel = asString(val)
		case "pay_type":
			record.PayType = asString(val)
		case "ppt_rule_type":
			record.PPTRuleType = asString(val)
		case "ppt_fixed_years":
			record.PPTFixedYears = asInt16Ptr(val)
		case "ppt_min_years":
			record.PPTMinYears = asInt16Ptr(val)
		case "ppt_max_years":
			record.PPTMaxYears = asInt16Ptr(val)
		case "premium_modes":
			record.PremiumModes = asString(val)
		case "min_policy_term_type":
			record.MinPolicyTermType = asString(val)
		case "max_policy_term_type":
			record.MaxPolicyTermType = asString(val)
		case "min_entry_age":
			record.MinEntryAge = asInt(val)
		case "max_entry_age":
			record.MaxEntryAge = asInt(val)
		case "min_maturity_age":
			record.MinMaturityAge = asInt(val)
		case "max_maturity_age":
			record.MaxMaturityAge = asInt(val)
		case "min_policy_term_value":
			record.MinPolicyTermValue = asInt(val)
		case "max_policy_term_value":
			record.MaxPolicyTermValue = asInt(val)
		case "min_base_sum_assured":
			record.MinBaseSumAssured = asFloat(val)
		case "max_base_sum_assured":
			record.MaxBaseSumAssured = asFloat(val)
		case "currency":
			record.Currency = asString(val)
		case "notes":
			record.Notes = asString(val)
		}
	}
}

func asString(val any) string {
	s, _ := val.(string)
	return s
}

func asInt(val any) int {
	f, _ := val.(float64)
	return int(f)
}

func asFloat(val any) float64 {
	f, _ := val.(float64)
	return f
}

func asInt16Ptr(val any) *int16 {
	f, ok := val.(float64)
	if !ok {
		return nil
	}
	i := int16(f)
	return &i
}

// Compose assembles the denormalized "complete brochure" view from a fully
// eager-loaded product row. It never mutates the input's stored fields; the
// association slices are detached into the view so the composed document
// carries resolved eligibility instead of raw links.
func Compose(product *types.Product) *types.CompleteProduct {
	if product == nil {
		return nil
	}

	complete := &types.CompleteProduct{
		Product:      *product,
		Variants:     make([]types.CompleteVariant, 0, len(product.Variants)),
		PremiumRules: product.PremiumRules,
	}
	complete.Product.Variants = nil
	complete.Product.PremiumRules = nil
	if complete.PremiumRules == nil {
		complete.PremiumRules = []types.MinPremiumRule{}
	}

	for _, variant := range product.Variants {
		cv := types.CompleteVariant{
			PlanVariant:      variant,
			EligibilityRules: ResolveLinks(variant.EligibilityLinks),
			PremiumRules:     variant.PremiumRules,
		}
		cv.PlanVariant.EligibilityLinks = nil
		cv.PlanVariant.PremiumRules = nil
		cv.PlanVariant.Product = nil
		if cv.PremiumRules == nil {
			cv.PremiumRules = []types.MinPremiumRule{}
		}
		complete.Variants = append(complete.Variants, cv)
	}
	return complete
}
