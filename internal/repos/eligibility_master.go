package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/types"
)

type EligibilityMasterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) error
	GetByID(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (*types.EligibilityMaster, error)
	GetByIDWithVariants(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (*types.EligibilityMaster, error)
	List(ctx context.Context, tx *gorm.DB, search string, page, limit int, withVariants bool) ([]*types.EligibilityMaster, int64, error)
	Save(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) error
	Delete(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) error
}

type eligibilityMasterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEligibilityMasterRepo(db *gorm.DB, baseLog *logger.Logger) EligibilityMasterRepo {
	repoLog := baseLog.With("repo", "EligibilityMasterRepo")
	return &eligibilityMasterRepo{db: db, log: repoLog}
}

func (er *eligibilityMasterRepo) Create(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Create(master).Error
}

func (er *eligibilityMasterRepo) GetByID(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (*types.EligibilityMaster, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.EligibilityMaster
	err := transaction.WithContext(ctx).
		Where("eligibility_id = ?", eligibilityID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *eligibilityMasterRepo) GetByIDWithVariants(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) (*types.EligibilityMaster, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.EligibilityMaster
	err := transaction.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.Product").
		Where("eligibility_id = ?", eligibilityID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *eligibilityMasterRepo) List(ctx context.Context, tx *gorm.DB, search string, page, limit int, withVariants bool) ([]*types.EligibilityMaster, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	query := transaction.WithContext(ctx).Model(&types.EligibilityMaster{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"eligibility_name LIKE ? OR insurer LIKE ? OR jurisdiction LIKE ? OR channel LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if withVariants {
		query = query.Preload("Variants").Preload("Variants.Product")
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var results []*types.EligibilityMaster
	if err := query.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (er *eligibilityMasterRepo) Save(ctx context.Context, tx *gorm.DB, master *types.EligibilityMaster) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Omit("Variants").
		Save(master).Error
}

func (er *eligibilityMasterRepo) Delete(ctx context.Context, tx *gorm.DB, eligibilityID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("eligibility_id = ?", eligibilityID).
		Delete(&types.EligibilityMaster{}).Error
}
