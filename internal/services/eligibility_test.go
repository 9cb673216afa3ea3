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

func newEligibilityServiceForTest(db *gorm.DB) EligibilityService {
	log := logger.Nop()
	return NewEligibilityService(
		db,
		log,
		repos.NewEligibilityMasterRepo(db, log),
		repos.NewEligibilityLinkRepo(db, log),
	)
}

func TestCreateEligibilityMaster_DefaultsChannel(t *testing.T) {
	db := openTestDB(t)
	svc := newEligibilityServiceForTest(db)

	master := &types.EligibilityMaster{
		EligibilityName:    "Standard Entry",
		Insurer:            "Acme Life",
		Jurisdiction:       types.JurisdictionIN,
		PayType:            types.PayTypeRegular,
		MinEntryAge:        18,
		MaxEntryAge:        60,
		MinMaturityAge:     28,
		MaxMaturityAge:     75,
		MinPolicyTermValue: 10,
		MaxPolicyTermValue: 30,
		MinBaseSumAssured:  100000,
		MaxBaseSumAssured:  5000000,
	}
	created, err := svc.CreateEligibilityMaster(context.Background(), nil, master)
	if err != nil {
		t.Fatalf("CreateEligibilityMaster: %v", err)
	}
	if created.EligibilityID == uuid.Nil {
		t.Fatalf("expected generated eligibility id")
	}
	if created.Channel != types.ChannelAny {
		t.Fatalf("channel default: want=%q got=%q", types.ChannelAny, created.Channel)
	}
}

func TestDeleteEligibilityMaster_BlockedWhileLinked(t *testing.T) {
	db := openTestDB(t)
	svc := newEligibilityServiceForTest(db)
	ctx := context.Background()

	product := seedProduct(t, db)
	master := seedMaster(t, db, "Standard Entry")
	variantA := seedVariant(t, db, product.ProductID, "BASE")
	variantB := seedVariant(t, db, product.ProductID, "GOLD")
	seedLink(t, db, variantA.VariantID, master.EligibilityID, 1)
	seedLink(t, db, variantB.VariantID, master.EligibilityID, 1)

	err := svc.DeleteEligibilityMaster(ctx, nil, master.EligibilityID)
	var validation *apierr.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.BlockingRefs != 2 {
		t.Fatalf("blocking refs: want=2 got=%d", validation.BlockingRefs)
	}
	if got := countRows(t, db, &types.EligibilityMaster{}); got != 1 {
		t.Fatalf("master rows: want=1 got=%d", got)
	}

	// After the links go away the delete succeeds.
	if err := db.Where("eligibility_id = ?", master.EligibilityID).
		Delete(&types.VariantEligibilityLink{}).Error; err != nil {
		t.Fatalf("clear links: %v", err)
	}
	if err := svc.DeleteEligibilityMaster(ctx, nil, master.EligibilityID); err != nil {
		t.Fatalf("DeleteEligibilityMaster after unlink: %v", err)
	}
	if got := countRows(t, db, &types.EligibilityMaster{}); got != 0 {
		t.Fatalf("master rows: want=0 got=%d", got)
	}
}

func TestDeleteEligibilityMaster_Unknown(t *testing.T) {
	db := openTestDB(t)
	svc := newEligibilityServiceForTest(db)

	err := svc.DeleteEligibilityMaster(context.Background(), nil, uuid.New())
	var notFound *apierr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGetAllEligibilityMasters_SearchAndPaging(t *testing.T) {
	db := openTestDB(t)
	svc := newEligibilityServiceForTest(db)
	ctx := context.Background()

	seedMaster(t, db, "Standard Entry")
	seedMaster(t, db, "Standard Entry Senior")
	seedMaster(t, db, "POS Walk-in")

	masters, total, err := svc.GetAllEligibilityMasters(ctx, nil, "Standard", 1, 10, false)
	if err != nil {
		t.Fatalf("GetAllEligibilityMasters: %v", err)
	}
	if total != 2 {
		t.Fatalf("total: want=2 got=%d", total)
	}
	if len(masters) != 2 {
		t.Fatalf("rows: want=2 got=%d", len(masters))
	}

	masters, total, err = svc.GetAllEligibilityMasters(ctx, nil, "", 1, 2, false)
	if err != nil {
		t.Fatalf("GetAllEligibilityMasters: %v", err)
	}
	if total != 3 {
		t.Fatalf("total: want=3 got=%d", total)
	}
	if len(masters) != 2 {
		t.Fatalf("page size: want=2 got=%d", len(masters))
	}
}
