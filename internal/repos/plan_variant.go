package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/types"
)

type PlanVariantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, variant *types.PlanVariant) error
	GetByID(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*types.PlanVariant, error)
	GetByIDWithLinks(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*types.PlanVariant, error)
	List(ctx context.Context, tx *gorm.DB, search string) ([]*types.PlanVariant, int64, error)
	ListByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID, page, limit int) ([]*types.PlanVariant, int64, error)
	IDsByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]uuid.UUID, error)
	Save(ctx context.Context, tx *gorm.DB, variant *types.PlanVariant) error
	Delete(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) error
	DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type planVariantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanVariantRepo(db *gorm.DB, baseLog *logger.Logger) PlanVariantRepo {
	repoLog := baseLog.With("repo", "PlanVariantRepo")
	return &planVariantRepo{db: db, log: repoLog}
}

func (vr *planVariantRepo) Create(ctx context.Context, tx *gorm.DB, variant *types.PlanVariant) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).Create(variant).Error
}

func (vr *planVariantRepo) GetByID(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*types.PlanVariant, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var result types.PlanVariant
	err := transaction.WithContext(ctx).
		Where("variant_id = ?", variantID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *planVariantRepo) GetByIDWithLinks(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*types.PlanVariant, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var result types.PlanVariant
	err := transaction.WithContext(ctx).
		Preload("Product").
		Preload("EligibilityLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("EligibilityLinks.Eligibility").
		Where("variant_id = ?", variantID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *planVariantRepo) List(ctx context.Context, tx *gorm.DB, search string) ([]*types.PlanVariant, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	query := transaction.WithContext(ctx).Model(&types.PlanVariant{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"variant_code LIKE ? OR variant_label LIKE ?",
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.PlanVariant
	err := query.
		Preload("Product").
		Preload("EligibilityLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("EligibilityLinks.Eligibility").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (vr *planVariantRepo) ListByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID, page, limit int) ([]*types.PlanVariant, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.PlanVariant{}).
		Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Preload("EligibilityLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("EligibilityLinks.Eligibility").
		Order("created_at DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var results []*types.PlanVariant
	if err := query.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (vr *planVariantRepo) IDsByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var ids []uuid.UUID
	err := transaction.WithContext(ctx).
		Model(&types.PlanVariant{}).
		Where("product_id = ?", productID).
		Pluck("variant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (vr *planVariantRepo) Save(ctx context.Context, tx *gorm.DB, variant *types.PlanVariant) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Omit("Product", "EligibilityLinks", "PremiumRules").
		Save(variant).Error
}

func (vr *planVariantRepo) Delete(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Delete(&types.PlanVariant{}).Error
}

func (vr *planVariantRepo) DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&types.PlanVariant{}).Error
}
