package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/types"
)

type MinPremiumRuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) error
	GetByID(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) (*types.MinPremiumRule, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.MinPremiumRule, error)
	ListByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.MinPremiumRule, error)
	ListByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]*types.MinPremiumRule, error)
	Save(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) error
	Delete(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) error
	DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
	DeleteByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) error
}

type minPremiumRuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMinPremiumRuleRepo(db *gorm.DB, baseLog *logger.Logger) MinPremiumRuleRepo {
	repoLog := baseLog.With("repo", "MinPremiumRuleRepo")
	return &minPremiumRuleRepo{db: db, log: repoLog}
}

func (mr *minPremiumRuleRepo) Create(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Omit("Product", "Variant").
		Create(rule).Error
}

func (mr *minPremiumRuleRepo) GetByID(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) (*types.MinPremiumRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.MinPremiumRule
	err := transaction.WithContext(ctx).
		Preload("Product").
		Preload("Variant").
		Where("minprem_id = ?", ruleID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *minPremiumRuleRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.MinPremiumRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MinPremiumRule
	err := transaction.WithContext(ctx).
		Preload("Product").
		Preload("Variant").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *minPremiumRuleRepo) ListByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.MinPremiumRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MinPremiumRule
	err := transaction.WithContext(ctx).
		Preload("Product").
		Preload("Variant").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *minPremiumRuleRepo) ListByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]*types.MinPremiumRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MinPremiumRule
	err := transaction.WithContext(ctx).
		Preload("Product").
		Preload("Variant").
		Where("variant_id = ?", variantID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *minPremiumRuleRepo) Save(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Omit("Product", "Variant").
		Save(rule).Error
}

func (mr *minPremiumRuleRepo) Delete(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("minprem_id = ?", ruleID).
		Delete(&types.MinPremiumRule{}).Error
}

func (mr *minPremiumRuleRepo) DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&types.MinPremiumRule{}).Error
}

func (mr *minPremiumRuleRepo) DeleteByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Delete(&types.MinPremiumRule{}).Error
}
