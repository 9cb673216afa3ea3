package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/types"
)

// EligibilityCriteria filters products by their own fields and by fields of
// the eligibility masters linked to their variants.
type EligibilityCriteria struct {
	Jurisdiction string
	Insurer      string
	Channel      string
	PayType      string
	MinEntryAge  *int
	MaxEntryAge  *int
}

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) error
	GetByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error)
	GetComplete(ctx context.Context, tx *gorm.DB, productID uuid.UUID, onlyActiveLinks bool) (*types.Product, error)
	List(ctx context.Context, tx *gorm.DB, search string, page, limit int) ([]*types.Product, int64, error)
	ListComplete(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
	ListByCriteria(ctx context.Context, tx *gorm.DB, criteria EligibilityCriteria) ([]*types.Product, error)
	Save(ctx context.Context, tx *gorm.DB, product *types.Product) error
	Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Create(product).Error
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Product
	err := transaction.WithContext(ctx).
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

// GetComplete eager-loads the full brochure tree: variants, each variant's
// eligibility links with their masters (links ordered by creation so the
// resolver's priority sort has a stable tie-break), per-variant premium
// rules, and the product-level premium rules (variant_id null).
func (pr *productRepo) GetComplete(ctx context.Context, tx *gorm.DB, productID uuid.UUID, onlyActiveLinks bool) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	query := transaction.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Variants.EligibilityLinks.Eligibility").
		Preload("Variants.PremiumRules").
		Preload("PremiumRules", "variant_id IS NULL")
	if onlyActiveLinks {
		query = query.Preload("Variants.EligibilityLinks", func(db *gorm.DB) *gorm.DB {
			return db.Where("effective_to IS NULL OR effective_to >= ?", time.Now()).Order("created_at ASC")
		})
	} else {
		query = query.Preload("Variants.EligibilityLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	var result types.Product
	err := query.Where("product_id = ?", productID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *productRepo) List(ctx context.Context, tx *gorm.DB, search string, page, limit int) ([]*types.Product, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Product{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"product_name LIKE ? OR insurer LIKE ? OR uin LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var results []*types.Product
	if err := query.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (pr *productRepo) ListComplete(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product
	err := transaction.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Variants.EligibilityLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Variants.EligibilityLinks.Eligibility").
		Preload("Variants.PremiumRules").
		Preload("PremiumRules", "variant_id IS NULL").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) ListByCriteria(ctx context.Context, tx *gorm.DB, criteria EligibilityCriteria) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Product{})
	if criteria.Jurisdiction != "" {
		query = query.Where("jurisdiction = ?", criteria.Jurisdiction)
	}
	if criteria.Insurer != "" {
		query = query.Where("insurer = ?", criteria.Insurer)
	}
	query = query.
		Preload("Variants").
		Preload("Variants.EligibilityLinks").
		Preload("Variants.EligibilityLinks.Eligibility", func(db *gorm.DB) *gorm.DB {
			if criteria.Channel != "" {
				db = db.Where("channel = ?", criteria.Channel)
			}
			if criteria.PayType != "" {
				db = db.Where("pay_type = ?", criteria.PayType)
			}
			if criteria.MinEntryAge != nil {
				db = db.Where("min_entry_age <= ?", *criteria.MinEntryAge)
			}
			if criteria.MaxEntryAge != nil {
				db = db.Where("max_entry_age >= ?", *criteria.MaxEntryAge)
			}
			return db
		})

	var results []*types.Product
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) Save(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Omit("Variants", "PremiumRules").
		Save(product).Error
}

func (pr *productRepo) Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&types.Product{}).Error
}
