package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/apierr"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/types"
)

func newVariantServiceForTest(db *gorm.DB) VariantService {
	log := logger.Nop()
	return NewVariantService(
		db,
		log,
		repos.NewPlanVariantRepo(db, log),
		repos.NewEligibilityLinkRepo(db, log),
		repos.NewMinPremiumRuleRepo(db, log),
	)
}

func TestCreateVariant_LinksEligibility(t *testing.T) {
	db := openTestDB(t)
	svc := newVariantServiceForTest(db)
	ctx := context.Background()

	product := seedProduct(t, db)
	masterA := seedMaster(t, db, "Standard Entry")
	masterB := seedMaster(t, db, "Senior Entry")

	variant := &types.PlanVariant{
		ProductID:    product.ProductID,
		VariantCode:  "BASE",
		VariantLabel: "Base",
	}
	ids := masterA.EligibilityID.String() + "," + masterB.EligibilityID.String()
	created, err := svc.CreateVariant(ctx, variant, ids)
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if created.VariantID == uuid.Nil {
		t.Fatalf("expected generated variant id")
	}

	resolved, err := svc.GetVariantByID(ctx, nil, created.VariantID)
	if err != nil {
		t.Fatalf("GetVariantByID: %v", err)
	}
	if len(resolved.EligibilityRules) != 2 {
		t.Fatalf("resolved rules: want=2 got=%d", len(resolved.EligibilityRules))
	}
	for _, rule := range resolved.EligibilityRules {
		if rule.Priority != 1 {
			t.Fatalf("create links at priority 1, got %d", rule.Priority)
		}
	}
}

func TestCreateVariant_EmptyEligibilityList(t *testing.T) {
	db := openTestDB(t)
	svc := newVariantServiceForTest(db)
	ctx := context.Background()

	product := seedProduct(t, db)
	variant := &types.PlanVariant{
		ProductID:    product.ProductID,
		VariantCode:  "SOLO",
		VariantLabel: "Solo",
	}
	if _, err := svc.CreateVariant(ctx, variant, ""); err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if got := countRows(t, db, &types.VariantEligibilityLink{}); got != 0 {
		t.Fatalf("link rows: want=0 got=%d", got)
	}
}

func TestUpdateVariant_RelinkReplacesLinks(t *testing.T) {
	db := openTestDB(t)
	svc := newVariantServiceForTest(db)
	ctx := context.Background()

	product := seedProduct(t, db)
	masterA := seedMaster(t, db, "Standard Entry")
	masterB := seedMaster(t, db, "Senior Entry")
	variant := seedVariant(t, db, product.ProductID, "BASE")
	seedLink(t, db, variant.VariantID, masterA.EligibilityID, 1)

	update := *variant
	update.VariantLabel = "Base Updated"
	resolved, err := svc.UpdateVariant(ctx, &update, masterB.EligibilityID.String(), true)
	if err != nil {
		t.Fatalf("UpdateVariant: %v", err)
	}
	if resolved.VariantLabel != "Base Updated" {
		t.Fatalf("label not updated: %q", resolved.VariantLabel)
	}
	if len(resolved.EligibilityRules) != 1 {
		t.Fatalf("resolved rules: want=1 got=%d", len(resolved.EligibilityRules))
	}
	if resolved.EligibilityRules[0].EligibilityID != masterB.EligibilityID {
		t.Fatalf("link not replaced, still pointing at %s", resolved.EligibilityRules[0].EligibilityID)
	}
}

func TestUpdateVariant_WithoutRelinkKeepsLinks(t *testing.T) {
	db := openTestDB(t)
	svc := newVariantServiceForTest(db)
	ctx := context.Background()

	product := seedProduct(t, db)
	master := seedMaster(t, db, "Standard Entry")
	variant := seedVariant(t, db, product.ProductID, "BASE")
	seedLink(t, db, variant.VariantID, master.EligibilityID, 1)

	update := *variant
	update.Notes = "touched"
	resolved, err := svc.UpdateVariant(ctx, &update, "", false)
	if err != nil {
		t.Fatalf("UpdateVariant: %v", err)
	}
	if len(resolved.EligibilityRules) != 1 {
		t.Fatalf("existing link dropped: want=1 got=%d", len(resolved.EligibilityRules))
	}
	if resolved.EligibilityRules[0].EligibilityID != master.EligibilityID {
		t.Fatalf("unexpected eligibility id %s", resolved.EligibilityRules[0].EligibilityID)
	}
}

func TestUpdateVariant_UnknownVariant(t *testing.T) {
	db := openTestDB(t)
	svc := newVariantServiceForTest(db)

	missing := &types.PlanVariant{VariantID: uuid.New(), VariantCode: "X", VariantLabel: "X"}
	_, err := svc.UpdateVariant(context.Background(), missing, "", false)
	var notFound *apierr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteVariant_RemovesLinksAndRules(t *testing.T) {
	db := openTestDB(t)
	svc := newVariantServiceForTest(db)
	ctx := context.Background()

	product := seedProduct(t, db)
	master := seedMaster(t, db, "Standard Entry")
	variant := seedVariant(t, db, product.ProductID, "BASE")
	keep := seedVariant(t, db, product.ProductID, "GOLD")
	seedLink(t, db, variant.VariantID, master.EligibilityID, 1)
	seedLink(t, db, keep.VariantID, master.EligibilityID, 1)
	seedPremiumRule(t, db, product.ProductID, &variant.VariantID)
	seedPremiumRule(t, db, product.ProductID, nil)

	if err := svc.DeleteVariant(ctx, variant.VariantID); err != nil {
		t.Fatalf("DeleteVariant: %v", err)
	}

	if got := countRows(t, db, &types.PlanVariant{}); got != 1 {
		t.Fatalf("variant rows: want=1 got=%d", got)
	}
	if got := countRows(t, db, &types.VariantEligibilityLink{}); got != 1 {
		t.Fatalf("link rows: want=1 got=%d", got)
	}

	// The product level rule (null variant id) survives.
	if got := countRows(t, db, &types.MinPremiumRule{}); got != 1 {
		t.Fatalf("rule rows: want=1 got=%d", got)
	}
	var remaining types.MinPremiumRule
	if err := db.First(&remaining).Error; err != nil {
		t.Fatalf("load remaining rule: %v", err)
	}
	if remaining.VariantID != nil {
		t.Fatalf("expected the product level rule to remain")
	}
}

func TestDeleteVariant_Unknown(t *testing.T) {
	db := openTestDB(t)
	svc := newVariantServiceForTest(db)

	err := svc.DeleteVariant(context.Background(), uuid.New())
	var notFound *apierr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
