package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/apierr"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/types"
)

type EligibilityService interface {
	CreateEligibilityMaster(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) (*types.EligibilityMaster, error)
	GetEligibilityMasterByID(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (*types.EligibilityMaster, error)
	GetAllEligibilityMasters(ctx context.Context, tx *gorm.DB, search string, page, limit int, withVariants bool) ([]*types.EligibilityMaster, int64, error)
	UpdateEligibilityMaster(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) (*types.EligibilityMaster, error)
	// DeleteEligibilityMaster refuses to delete a master that still has
	// variant links; the caller must remove the links first.
	DeleteEligibilityMaster(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) error
}

type eligibilityService struct {
	db              *gorm.DB
	log             *logger.Logger
	eligibilityRepo repos.EligibilityMasterRepo
	linkRepo        repos.EligibilityLinkRepo
}

func NewEligibilityService(
	db *gorm.DB,
	baseLog *logger.Logger,
	eligibilityRepo repos.EligibilityMasterRepo,
	linkRepo repos.EligibilityLinkRepo,
) EligibilityService {
	serviceLog := baseLog.With("service", "EligibilityService")
	return &eligibilityService{
		db:              db,
		log:             serviceLog,
		eligibilityRepo: eligibilityRepo,
		linkRepo:        linkRepo,
	}
}

func (es *eligibilityService) CreateEligibilityMaster(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) (*types.EligibilityMaster, error) {
	if master.EligibilityID == uuid.Nil {
		master.EligibilityID = uuid.New()
	}
	if master.Channel == "" {
		master.Channel = types.ChannelAny
	}
	if err := es.eligibilityRepo.Create(ctx, tx, master); err != nil {
		return nil, apierr.Database("create eligibility master", err)
	}
	return master, nil
}

func (es *eligibilityService) GetEligibilityMasterByID(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (*types.EligibilityMaster, error) {
	master, err := es.eligibilityRepo.GetByIDWithVariants(ctx, tx, eligibilityID)
	if err != nil {
		return nil, apierr.Database("fetch eligibility master", err)
	}
	if master == nil {
		return nil, apierr.NotFound("eligibility master", eligibilityID.String())
	}
	return master, nil
}

func (es *eligibilityService) GetAllEligibilityMasters(ctx context.Context, tx *gorm.DB, search string, page, limit int, withVariants bool) ([]*types.EligibilityMaster, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	masters, total, err := es.eligibilityRepo.List(ctx, tx, strings.TrimSpace(search), page, limit, withVariants)
	if err != nil {
		return nil, 0, apierr.Database("fetch eligibility masters", err)
	}
	return masters, total, nil
}

func (es *eligibilityService) UpdateEligibilityMaster(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) (*types.EligibilityMaster, error) {
	existing, err := es.eligibilityRepo.GetByID(ctx, tx, master.EligibilityID)
	if err != nil {
		return nil, apierr.Database("fetch eligibility master", err)
	}
	if existing == nil {
		return nil, apierr.NotFound("eligibility master", master.EligibilityID.String())
	}
	master.CreatedAt = existing.CreatedAt
	if err := es.eligibilityRepo.Save(ctx, tx, master); err != nil {
		return nil, apierr.Database("update eligibility master", err)
	}
	return master, nil
}

func (es *eligibilityService) DeleteEligibilityMaster(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) error {
	master, err := es.eligibilityRepo.GetByID(ctx, tx, eligibilityID)
	if err != nil {
		return apierr.Database("fetch eligibility master", err)
	}
	if master == nil {
		return apierr.NotFound("eligibility master", eligibilityID.String())
	}

	linkCount, err := es.linkRepo.CountByEligibility(ctx, tx, eligibilityID)
	if err != nil {
		return apierr.Database("count eligibility links", err)
	}
	if linkCount > 0 {
		return apierr.Validation(
			fmt.Sprintf("Cannot delete eligibility master. It is linked to %d variant(s). Remove links first.", linkCount),
			linkCount,
		)
	}

	if err := es.eligibilityRepo.Delete(ctx, tx, eligibilityID); err != nil {
		return apierr.Database("delete eligibility master", err)
	}
	return nil
}
