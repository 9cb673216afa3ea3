package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/types"
)

type EligibilityLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *types.VariantEligibilityLink) error
	ListByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]types.VariantEligibilityLink, error)
	CountByEligibility(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (int64, error)
	DeleteByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) error
	DeleteByVariantIDs(ctx context.Context, tx *gorm.DB, variantIDs []uuid.UUID) error
}

type eligibilityLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEligibilityLinkRepo(db *gorm.DB, baseLog *logger.Logger) EligibilityLinkRepo {
	repoLog := baseLog.With("repo", "EligibilityLinkRepo")
	return &eligibilityLinkRepo{db: db, log: repoLog}
}

func (lr *eligibilityLinkRepo) Create(ctx context.Context, tx *gorm.DB, link *types.VariantEligibilityLink) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Omit("Eligibility").
		Create(link).Error
}

func (lr *eligibilityLinkRepo) ListByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]types.VariantEligibilityLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []types.VariantEligibilityLink
	err := transaction.WithContext(ctx).
		Preload("Eligibility").
		Where("variant_id = ?", variantID).
		Order("created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *eligibilityLinkRepo) CountByEligibility(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.VariantEligibilityLink{}).
		Where("eligibility_id = ?", eligibilityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *eligibilityLinkRepo) DeleteByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Delete(&types.VariantEligibilityLink{}).Error
}

func (lr *eligibilityLinkRepo) DeleteByVariantIDs(ctx context.Context, tx *gorm.DB, variantIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(variantIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("variant_id IN ?", variantIDs).
		Delete(&types.VariantEligibilityLink{}).Error
}
