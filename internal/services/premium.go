package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/apierr"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/types"
)

type PremiumService interface {
	CreatePremiumRule(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) (*types.MinPremiumRule, error)
	GetPremiumRuleByID(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) (*types.MinPremiumRule, error)
	GetAllPremiumRules(ctx context.Context, tx *gorm.DB) ([]*types.MinPremiumRule, error)
	GetPremiumRulesByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.MinPremiumRule, error)
	GetPremiumRulesByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]*types.MinPremiumRule, error)
	UpdatePremiumRule(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) (*types.MinPremiumRule, error)
	DeletePremiumRule(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) error
}

type premiumService struct {
	db          *gorm.DB
	log         *logger.Logger
	premiumRepo repos.MinPremiumRuleRepo
}

func NewPremiumService(db *gorm.DB, baseLog *logger.Logger, premiumRepo repos.MinPremiumRuleRepo) PremiumService {
	serviceLog := baseLog.With("service", "PremiumService")
	return &premiumService{db: db, log: serviceLog, premiumRepo: premiumRepo}
}

func (ms *premiumService) CreatePremiumRule(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) (*types.MinPremiumRule, error) {
	if rule.MinPremID == uuid.Nil {
		rule.MinPremID = uuid.New()
	}
	if err := ms.premiumRepo.Create(ctx, tx, rule); err != nil {
		return nil, apierr.Database("create premium rule", err)
	}
	return rule, nil
}

func (ms *premiumService) GetPremiumRuleByID(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) (*types.MinPremiumRule, error) {
	rule, err := ms.premiumRepo.GetByID(ctx, tx, ruleID)
	if err != nil {
		return nil, apierr.Database("fetch premium rule", err)
	}
	if rule == nil {
		return nil, apierr.NotFound("premium rule", ruleID.String())
	}
	return rule, nil
}

func (ms *premiumService) GetAllPremiumRules(ctx context.Context, tx *gorm.DB) ([]*types.MinPremiumRule, error) {
	rules, err := ms.premiumRepo.List(ctx, tx)
	if err != nil {
		return nil, apierr.Database("fetch premium rules", err)
	}
	return rules, nil
}

func (ms *premiumService) GetPremiumRulesByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.MinPremiumRule, error) {
	rules, err := ms.premiumRepo.ListByProduct(ctx, tx, productID)
	if err != nil {
		return nil, apierr.Database("fetch premium rules by product", err)
	}
	return rules, nil
}

func (ms *premiumService) GetPremiumRulesByVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]*types.MinPremiumRule, error) {
	rules, err := ms.premiumRepo.ListByVariant(ctx, tx, variantID)
	if err != nil {
		return nil, apierr.Database("fetch premium rules by variant", err)
	}
	return rules, nil
}

func (ms *premiumService) UpdatePremiumRule(ctx context.Context, tx *gorm.DB, rule *types.MinPremiumRule) (*types.MinPremiumRule, error) {
	existing, err := ms.premiumRepo.GetByID(ctx, tx, rule.MinPremID)
	if err != nil {
		return nil, apierr.Database("fetch premium rule", err)
	}
	if existing == nil {
		return nil, apierr.NotFound("premium rule", rule.MinPremID.String())
	}
	rule.CreatedAt = existing.CreatedAt
	if err := ms.premiumRepo.Save(ctx, tx, rule); err != nil {
		return nil, apierr.Database("update premium rule", err)
	}
	return rule, nil
}

func (ms *premiumService) DeletePremiumRule(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) error {
	existing, err := ms.premiumRepo.GetByID(ctx, tx, ruleID)
	if err != nil {
		return apierr.Database("fetch premium rule", err)
	}
	if existing == nil {
		return apierr.NotFound("premium rule", ruleID.String())
	}
	if err := ms.premiumRepo.Delete(ctx, tx, ruleID); err != nil {
		return apierr.Database("delete premium rule", err)
	}
	return nil
}
