package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/types"
)

type BrochureSummaryRepo interface {
	// Upsert keys on product_id: the first call creates the row, later calls
	// overwrite its content in place. Returns whether a new row was created.
	Upsert(ctx context.Context, tx *gorm.DB, summary *types.BrochureSummary) (bool, error)
	GetByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.BrochureSummary, error)
	GetByID(ctx context.Context, tx *gorm.DB, summaryID uuid.UUID) (*types.BrochureSummary, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.BrochureSummary, error)
	DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error)
}

type brochureSummaryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBrochureSummaryRepo(db *gorm.DB, baseLog *logger.Logger) BrochureSummaryRepo {
	repoLog := baseLog.With("repo", "BrochureSummaryRepo")
	return &brochureSummaryRepo{db: db, log: repoLog}
}

func (sr *brochureSummaryRepo) Upsert(ctx context.Context, tx *gorm.DB, summary *types.BrochureSummary) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var existing types.BrochureSummary
	err := transaction.WithContext(ctx).
		Where("product_id = ?", summary.ProductID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if summary.SummaryID == uuid.Nil {
			summary.SummaryID = uuid.New()
		}
		if createErr := transaction.WithContext(ctx).Omit("Product").Create(summary).Error; createErr != nil {
			return false, createErr
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	summary.SummaryID = existing.SummaryID
	summary.CreatedAt = existing.CreatedAt
	if updateErr := transaction.WithContext(ctx).Omit("Product").Save(summary).Error; updateErr != nil {
		return false, updateErr
	}
	return false, nil
}

func (sr *brochureSummaryRepo) GetByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.BrochureSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.BrochureSummary
	err := transaction.WithContext(ctx).
		Preload("Product").
		Where("product_id = ?", productID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *brochureSummaryRepo) GetByID(ctx context.Context, tx *gorm.DB, summaryID uuid.UUID) (*types.BrochureSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.BrochureSummary
	err := transaction.WithContext(ctx).
		Preload("Product").
		Where("summary_id = ?", summaryID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *brochureSummaryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.BrochureSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.BrochureSummary
	err := transaction.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *brochureSummaryRepo) DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	result := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&types.BrochureSummary{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
