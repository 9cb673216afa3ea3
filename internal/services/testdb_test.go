package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/insurely/brochure-backend/internal/types"
)

// Tables are created with explicit DDL instead of AutoMigrate because the
// model tags carry postgres defaults that sqlite cannot parse.
var testSchema = []string{
	`CREATE TABLE products (
		product_id TEXT PRIMARY KEY,
		uin TEXT,
		product_name TEXT,
		insurer TEXT,
		jurisdiction TEXT,
		currency TEXT,
		product_tagline TEXT,
		product_version TEXT,
		effective_from DATETIME,
		effective_to DATETIME,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE plan_variants (
		variant_id TEXT PRIMARY KEY,
		product_id TEXT,
		variant_code TEXT,
		variant_label TEXT,
		variant_description TEXT,
		effective_from DATETIME,
		effective_to DATETIME,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE eligibility_master (
		eligibility_id TEXT PRIMARY KEY,
		eligibility_name TEXT,
		insurer TEXT,
		jurisdiction TEXT,
		channel TEXT DEFAULT 'any',
		pay_type TEXT,
		ppt_rule_type TEXT,
		ppt_fixed_years INTEGER,
		ppt_min_years INTEGER,
		ppt_max_years INTEGER,
		premium_modes TEXT,
		min_policy_term_type TEXT,
		max_policy_term_type TEXT,
		min_entry_age INTEGER,
		max_entry_age INTEGER,
		min_maturity_age INTEGER,
		max_maturity_age INTEGER,
		min_policy_term_value INTEGER,
		max_policy_term_value INTEGER,
		min_base_sum_assured REAL,
		max_base_sum_assured REAL,
		currency TEXT,
		effective_from DATETIME,
		effective_to DATETIME,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE variant_eligibility_link (
		link_id TEXT PRIMARY KEY,
		variant_id TEXT,
		eligibility_id TEXT,
		override_json TEXT,
		priority INTEGER DEFAULT 1,
		effective_from DATETIME,
		effective_to DATETIME,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE min_premium_rules (
		minprem_id TEXT PRIMARY KEY,
		product_id TEXT,
		variant_id TEXT,
		pay_type TEXT,
		premium_modes TEXT,
		currency TEXT,
		min_premium_per_install REAL,
		effective_from DATETIME,
		effective_to DATETIME,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE brochure_summaries (
		summary_id TEXT PRIMARY KEY,
		product_id TEXT UNIQUE,
		product_name TEXT,
		product_code TEXT,
		insurer TEXT,
		description TEXT,
		effective_from DATETIME,
		effective_to DATETIME,
		variants TEXT,
		eligibility_snapshot TEXT,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test, kept alive by capping the
	// pool at a single connection.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *types.Product {
	t.Helper()
	product := &types.Product{
		ProductID:      uuid.New(),
		UIN:            "101N999V01",
		ProductName:    "Secure Life Plus",
		Insurer:        "Acme Life",
		Jurisdiction:   types.JurisdictionIN,
		Currency:       "INR",
		ProductVersion: "v1",
		EffectiveFrom:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedVariant(t *testing.T, db *gorm.DB, productID uuid.UUID, code string) *types.PlanVariant {
	t.Helper()
	variant := &types.PlanVariant{
		VariantID:     uuid.New(),
		ProductID:     productID,
		VariantCode:   code,
		VariantLabel:  "Variant " + code,
		EffectiveFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return variant
}

func seedMaster(t *testing.T, db *gorm.DB, name string) *types.EligibilityMaster {
	t.Helper()
	master := &types.EligibilityMaster{
		EligibilityID:      uuid.New(),
		EligibilityName:    name,
		Insurer:            "Acme Life",
		Jurisdiction:       types.JurisdictionIN,
		Channel:            types.ChannelAny,
		PayType:            types.PayTypeRegular,
		PPTRuleType:        types.PPTRuleRangeYears,
		PremiumModes:       "yearly,monthly",
		MinPolicyTermType:  types.PolicyTermFixedYears,
		MaxPolicyTermType:  types.PolicyTermFixedYears,
		MinEntryAge:        18,
		MaxEntryAge:        60,
		MinMaturityAge:     28,
		MaxMaturityAge:     75,
		MinPolicyTermValue: 10,
		MaxPolicyTermValue: 30,
		MinBaseSumAssured:  100000,
		MaxBaseSumAssured:  5000000,
		Currency:           "INR",
		EffectiveFrom:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(master).Error; err != nil {
		t.Fatalf("seed eligibility master: %v", err)
	}
	return master
}

func seedLink(t *testing.T, db *gorm.DB, variantID, eligibilityID uuid.UUID, priority int) *types.VariantEligibilityLink {
	t.Helper()
	link := &types.VariantEligibilityLink{
		LinkID:        uuid.New(),
		VariantID:     variantID,
		EligibilityID: eligibilityID,
		Priority:      priority,
		EffectiveFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("seed link: %v", err)
	}
	return link
}

func seedPremiumRule(t *testing.T, db *gorm.DB, productID uuid.UUID, variantID *uuid.UUID) *types.MinPremiumRule {
	t.Helper()
	rule := &types.MinPremiumRule{
		MinPremID:            uuid.New(),
		ProductID:            productID,
		VariantID:            variantID,
		PayType:              types.PayTypeRegular,
		PremiumModes:         "yearly",
		Currency:             "INR",
		MinPremiumPerInstall: 12000,
		EffectiveFrom:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("seed premium rule: %v", err)
	}
	return rule
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var total int64
	if err := db.Model(model).Count(&total).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return total
}
