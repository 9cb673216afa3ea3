package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/apierr"
	"github.com/insurely/brochure-backend/internal/brochure"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/types"
)

// ResolvedVariant is a variant with its links resolved into effective
// eligibility records, the shape list and detail endpoints return.
type ResolvedVariant struct {
	types.PlanVariant
	EligibilityRules []types.EffectiveEligibility `json:"eligibilityRules"`
}

type VariantService interface {
	// CreateVariant writes the variant and, when eligibilityIDs is non-empty,
	// links each comma separated eligibility id at priority 1 in the same
	// transaction.
	CreateVariant(ctx context.Context, variant *types.PlanVariant, eligibilityIDs string) (*types.PlanVariant, error)
	GetVariantByID(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*ResolvedVariant, error)
	GetAllVariants(ctx context.Context, tx *gorm.DB, search string) ([]*ResolvedVariant, int64, error)
	GetVariantsByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID, page, limit int) ([]*ResolvedVariant, int64, error)
	// UpdateVariant saves the variant row; when relink is true the existing
	// links are replaced with ones built from eligibilityIDs.
	UpdateVariant(ctx context.Context, variant *types.PlanVariant, eligibilityIDs string, relink bool) (*ResolvedVariant, error)
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error
}

type variantService struct {
	db          *gorm.DB
	log         *logger.Logger
	variantRepo repos.PlanVariantRepo
	linkRepo    repos.EligibilityLinkRepo
	premiumRepo repos.MinPremiumRuleRepo
}

func NewVariantService(
	db *gorm.DB,
	baseLog *logger.Logger,
	variantRepo repos.PlanVariantRepo,
	linkRepo repos.EligibilityLinkRepo,
	premiumRepo repos.MinPremiumRuleRepo,
) VariantService {
	serviceLog := baseLog.With("service", "VariantService")
	return &variantService{
		db:          db,
		log:         serviceLog,
		variantRepo: variantRepo,
		linkRepo:    linkRepo,
		premiumRepo: premiumRepo,
	}
}

func (vs *variantService) CreateVariant(ctx context.Context, variant *types.PlanVariant, eligibilityIDs string) (*types.PlanVariant, error) {
	err := vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if variant.VariantID == uuid.Nil {
			variant.VariantID = uuid.New()
		}
		if err := vs.variantRepo.Create(ctx, tx, variant); err != nil {
			return err
		}
		return vs.linkEligibilityIDs(ctx, tx, variant.VariantID, eligibilityIDs)
	})
	if err != nil {
		return nil, apierr.Database("create variant", err)
	}
	return variant, nil
}

// linkEligibilityIDs links each id in the comma separated list at priority 1.
func (vs *variantService) linkEligibilityIDs(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, eligibilityIDs string) error {
	for _, raw := range strings.Split(eligibilityIDs, ",") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		eligibilityID, err := uuid.Parse(trimmed)
		if err != nil {
			return apierr.NotFound("eligibility master", trimmed)
		}
		link := types.VariantEligibilityLink{
			LinkID:        uuid.New(),
			VariantID:     variantID,
			EligibilityID: eligibilityID,
			Priority:      1,
			EffectiveFrom: time.Now(),
		}
		if err := vs.linkRepo.Create(ctx, tx, &link); err != nil {
			return err
		}
	}
	return nil
}

func resolveVariant(variant *types.PlanVariant) *ResolvedVariant {
	resolved := &ResolvedVariant{
		PlanVariant:      *variant,
		EligibilityRules: brochure.ResolveLinks(variant.EligibilityLinks),
	}
	resolved.PlanVariant.EligibilityLinks = nil
	return resolved
}

func (vs *variantService) GetVariantByID(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*ResolvedVariant, error) {
	variant, err := vs.variantRepo.GetByIDWithLinks(ctx, tx, variantID)
	if err != nil {
		return nil, apierr.Database("fetch variant", err)
	}
	if variant == nil {
		return nil, apierr.NotFound("variant", variantID.String())
	}
	return resolveVariant(variant), nil
}

func (vs *variantService) GetAllVariants(ctx context.Context, tx *gorm.DB, search string) ([]*ResolvedVariant, int64, error) {
	variants, total, err := vs.variantRepo.List(ctx, tx, strings.TrimSpace(search))
	if err != nil {
		return nil, 0, apierr.Database("fetch variants", err)
	}
	resolved := make([]*ResolvedVariant, 0, len(variants))
	for _, variant := range variants {
		resolved = append(resolved, resolveVariant(variant))
	}
	return resolved, total, nil
}

func (vs *variantService) GetVariantsByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID, page, limit int) ([]*ResolvedVariant, int64, error) {
	variants, total, err := vs.variantRepo.ListByProduct(ctx, tx, productID, page, limit)
	if err != nil {
		return nil, 0, apierr.Database("fetch variants by product", err)
	}
	resolved := make([]*ResolvedVariant, 0, len(variants))
	for _, variant := range variants {
		resolved = append(resolved, resolveVariant(variant))
	}
	return resolved, total, nil
}

func (vs *variantService) UpdateVariant(ctx context.Context, variant *types.PlanVariant, eligibilityIDs string, relink bool) (*ResolvedVariant, error) {
	err := vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := vs.variantRepo.GetByID(ctx, tx, variant.VariantID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("variant", variant.VariantID.String())
		}
		variant.CreatedAt = existing.CreatedAt
		if err := vs.variantRepo.Save(ctx, tx, variant); err != nil {
			return err
		}
		if relink {
			if err := vs.linkRepo.DeleteByVariant(ctx, tx, variant.VariantID); err != nil {
				return err
			}
			return vs.linkEligibilityIDs(ctx, tx, variant.VariantID, eligibilityIDs)
		}
		return nil
	})
	if err != nil {
		if classified(err) {
			return nil, err
		}
		return nil, apierr.Database("update variant", err)
	}
	return vs.GetVariantByID(ctx, nil, variant.VariantID)
}

// DeleteVariant removes the variant with its links and premium rules in one
// transaction.
func (vs *variantService) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	err := vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variant, err := vs.variantRepo.GetByID(ctx, tx, variantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return apierr.NotFound("variant", variantID.String())
		}
		if err := vs.linkRepo.DeleteByVariant(ctx, tx, variantID); err != nil {
			return err
		}
		if err := vs.premiumRepo.DeleteByVariant(ctx, tx, variantID); err != nil {
			return err
		}
		return vs.variantRepo.Delete(ctx, tx, variantID)
	})
	if err != nil {
		if classified(err) {
			return err
		}
		return apierr.Database("delete variant", err)
	}
	vs.log.Info("Deleted variant with related data", "variantID", variantID)
	return nil
}
