package brochure

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/insurely/brochure-backend/internal/types"
)

func testMaster() *types.EligibilityMaster {
	fixed := int16(10)
	return &types.EligibilityMaster{
		EligibilityID:      uuid.New(),
		EligibilityName:    "Standard Entry",
		Insurer:            "Acme Life",
		Jurisdiction:       "IN",
		Channel:            "any",
		PayType:            "regular",
		PPTRuleType:        "fixed_years",
		PPTFixedYears:      &fixed,
		PremiumModes:       "yearly",
		MinPolicyTermType:  "fixed_years",
		MaxPolicyTermType:  "fixed_years",
		MinEntryAge:        18,
		MaxEntryAge:        60,
		MinMaturityAge:     28,
		MaxMaturityAge:     75,
		MinPolicyTermValue: 10,
		MaxPolicyTermValue: 30,
		MinBaseSumAssured:  100000,
		MaxBaseSumAssured:  5000000,
		Currency:           "INR",
	}
}

func linkFor(master *types.EligibilityMaster, priority int, override string) types.VariantEligibilityLink {
	link := types.VariantEligibilityLink{
		LinkID:        uuid.New(),
		VariantID:     uuid.New(),
		EligibilityID: master.EligibilityID,
		Eligibility:   master,
		Priority:      priority,
		EffectiveFrom: time.Now(),
	}
	if override != "" {
		link.OverrideJSON = datatypes.JSON(override)
	}
	return link
}

func TestResolveLinks_OverrideReplacesOnlyPresentKeys(t *testing.T) {
	master := testMaster()
	links := []types.VariantEligibilityLink{
		linkFor(master, 1, `{"currency":"USD"}`),
	}

	resolved := ResolveLinks(links)
	if len(resolved) != 1 {
		t.Fatalf("expected 1 record, got %d", len(resolved))
	}
	record := resolved[0]
	if record.Currency != "USD" {
		t.Fatalf("expected overridden currency USD, got %q", record.Currency)
	}
	if !record.OverrideApplied {
		t.Fatalf("expected override_applied marker")
	}
	// every other field stays at the master's value
	if record.Insurer != master.Insurer {
		t.Fatalf("insurer changed: %q", record.Insurer)
	}
	if record.MinEntryAge != master.MinEntryAge || record.MaxEntryAge != master.MaxEntryAge {
		t.Fatalf("entry ages changed: %d-%d", record.MinEntryAge, record.MaxEntryAge)
	}
	if record.MinBaseSumAssured != master.MinBaseSumAssured {
		t.Fatalf("sum assured changed: %v", record.MinBaseSumAssured)
	}
	if record.PPTFixedYears == nil || *record.PPTFixedYears != *master.PPTFixedYears {
		t.Fatalf("ppt_fixed_years changed: %v", record.PPTFixedYears)
	}
}

func TestResolveLinks_NullOverrideClearsField(t *testing.T) {
	master := testMaster()
	links := []types.VariantEligibilityLink{
		linkFor(master, 1, `{"currency":null,"ppt_fixed_years":null}`),
	}

	resolved := ResolveLinks(links)
	if resolved[0].Currency != "" {
		t.Fatalf("expected null override to clear currency, got %q", resolved[0].Currency)
	}
	if resolved[0].PPTFixedYears != nil {
		t.Fatalf("expected null override to clear ppt_fixed_years, got %v", *resolved[0].PPTFixedYears)
	}
}

func TestResolveLinks_NumericAndUnknownKeys(t *testing.T) {
	master := testMaster()
	links := []types.VariantEligibilityLink{
		linkFor(master, 1, `{"min_entry_age":25,"max_base_sum_assured":750000.5,"made_up_key":"x"}`),
	}

	record := ResolveLinks(links)[0]
	if record.MinEntryAge != 25 {
		t.Fatalf("expected min_entry_age 25, got %d", record.MinEntryAge)
	}
	if record.MaxBaseSumAssured != 750000.5 {
		t.Fatalf("expected max_base_sum_assured 750000.5, got %v", record.MaxBaseSumAssured)
	}
	if record.EligibilityName != master.EligibilityName {
		t.Fatalf("unknown key must not disturb other fields")
	}
}

func TestResolveLinks_OrdersAscendingByPriority(t *testing.T) {
	master := testMaster()
	links := []types.VariantEligibilityLink{
		linkFor(master, 3, ""),
		linkFor(master, 1, ""),
		linkFor(master, 2, ""),
	}

	resolved := ResolveLinks(links)
	if len(resolved) != 3 {
		t.Fatalf("expected 3 records, got %d", len(resolved))
	}
	for i, want := range []int{1, 2, 3} {
		if resolved[i].Priority != want {
			t.Fatalf("position %d: expected priority %d, got %d", i, want, resolved[i].Priority)
		}
	}
}

func TestResolveLinks_StableOnEqualPriority(t *testing.T) {
	master := testMaster()
	first := linkFor(master, 1, "")
	second := linkFor(master, 1, "")
	resolved := ResolveLinks([]types.VariantEligibilityLink{first, second})
	if resolved[0].LinkID != first.LinkID || resolved[1].LinkID != second.LinkID {
		t.Fatalf("equal priorities must keep input order")
	}
}

func TestResolveLinks_EmptyAndNilMaster(t *testing.T) {
	if got := ResolveLinks(nil); len(got) != 0 {
		t.Fatalf("expected empty sequence for no links, got %d", len(got))
	}

	link := types.VariantEligibilityLink{LinkID: uuid.New(), Priority: 1}
	resolved := ResolveLinks([]types.VariantEligibilityLink{link})
	if len(resolved) != 1 {
		t.Fatalf("a link with a missing master still yields a record")
	}
	if resolved[0].EligibilityName != "" || resolved[0].Currency != "" {
		t.Fatalf("missing master must surface as null fields")
	}
}

func TestResolveLinks_EmptyOverrideObjectIsNotAnOverride(t *testing.T) {
	master := testMaster()
	record := ResolveLinks([]types.VariantEligibilityLink{linkFor(master, 1, `{}`)})[0]
	if record.OverrideApplied {
		t.Fatalf("empty override object must not set override_applied")
	}
}

func TestCompose_DetachesAssociationsAndResolves(t *testing.T) {
	master := testMaster()
	variant := types.PlanVariant{
		VariantID:    uuid.New(),
		VariantCode:  "V1",
		VariantLabel: "Base Plan",
		EligibilityLinks: []types.VariantEligibilityLink{
			linkFor(master, 2, ""),
			linkFor(master, 1, `{"currency":"USD"}`),
		},
	}
	product := &types.Product{
		ProductID:   uuid.New(),
		ProductName: "Secure Life",
		Variants:    []types.PlanVariant{variant},
	}

	complete := Compose(product)
	if len(complete.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(complete.Variants))
	}
	cv := complete.Variants[0]
	if cv.PlanVariant.EligibilityLinks != nil {
		t.Fatalf("raw links must not leak into the composed view")
	}
	if len(cv.EligibilityRules) != 2 {
		t.Fatalf("expected 2 resolved rules, got %d", len(cv.EligibilityRules))
	}
	if cv.EligibilityRules[0].Priority != 1 || cv.EligibilityRules[0].Currency != "USD" {
		t.Fatalf("resolution must order by priority and apply overrides")
	}
	if complete.PremiumRules == nil {
		t.Fatalf("product-level premium rules must be present even when empty")
	}
}
