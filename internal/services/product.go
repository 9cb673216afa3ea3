package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/apierr"
	"github.com/insurely/brochure-backend/internal/brochure"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/types"
)

// LinkInput carries per-link settings applied to every eligibility link a
// variant creates. A nil Priority falls back to the 1-based position of the
// eligibility id in the variant's list.
type LinkInput struct {
	Priority      *int           `json:"priority"`
	OverrideJSON  datatypes.JSON `json:"override_json"`
	EffectiveFrom *time.Time     `json:"effective_from"`
	Notes         string         `json:"notes"`
}

// CompleteVariantInput is one variant of a full-brochure create request:
// the variant row, a comma separated list of eligibility master ids to link,
// and the premium rules to attach.
type CompleteVariantInput struct {
	Variant        types.PlanVariant      `json:"variant"`
	EligibilityIDs string                 `json:"eligibility_ids"`
	LinkData       *LinkInput             `json:"linkData"`
	PremiumRules   []types.MinPremiumRule `json:"premiumRules"`
}

type CompleteBrochureInput struct {
	Product  types.Product          `json:"productData"`
	Variants []CompleteVariantInput `json:"variantsData"`
}

// CreatedVariant echoes back everything one variant's create produced.
type CreatedVariant struct {
	Variant          *types.PlanVariant             `json:"variant"`
	EligibilityLinks []types.VariantEligibilityLink `json:"eligibilityLinks"`
	PremiumRules     []*types.MinPremiumRule        `json:"premiumRules"`
}

type CreatedBrochure struct {
	Product  *types.Product   `json:"product"`
	Variants []CreatedVariant `json:"variants"`
}

// SingleBrochure is the denormalized single-product view: the composed
// product plus its variants and a flat list of every resolved eligibility
// rule across them.
type SingleBrochure struct {
	Products         []*types.CompleteProduct     `json:"products"`
	Variants         []types.CompleteVariant      `json:"variants"`
	EligibilityRules []types.EffectiveEligibility `json:"eligibilityRules"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	GetProductByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error)
	GetAllProducts(ctx context.Context, tx *gorm.DB, search string) ([]*types.Product, int64, error)
	SearchProducts(ctx context.Context, tx *gorm.DB, search string, page, limit int) ([]*types.Product, int64, error)
	UpdateProduct(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	GetCompleteProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.CompleteProduct, error)
	GetProductWithResolvedEligibility(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.CompleteProduct, error)
	GetProductsByEligibilityCriteria(ctx context.Context, tx *gorm.DB, criteria repos.EligibilityCriteria) ([]*types.Product, error)

	CreateCompleteBrochure(ctx context.Context, input CompleteBrochureInput) (*CreatedBrochure, error)
	GetCompleteBrochureData(ctx context.Context, tx *gorm.DB) ([]*types.CompleteProduct, error)
	GetCompleteSingleBrochure(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*SingleBrochure, error)
}

type productService struct {
	db              *gorm.DB
	log             *logger.Logger
	productRepo     repos.ProductRepo
	variantRepo     repos.PlanVariantRepo
	eligibilityRepo repos.EligibilityMasterRepo
	linkRepo        repos.EligibilityLinkRepo
	premiumRepo     repos.MinPremiumRuleRepo
	summaryRepo     repos.BrochureSummaryRepo
}

func NewProductService(
	db *gorm.DB,
	baseLog *logger.Logger,
	productRepo repos.ProductRepo,
	variantRepo repos.PlanVariantRepo,
	eligibilityRepo repos.EligibilityMasterRepo,
	linkRepo repos.EligibilityLinkRepo,
	premiumRepo repos.MinPremiumRuleRepo,
	summaryRepo repos.BrochureSummaryRepo,
) ProductService {
	serviceLog := baseLog.With("service", "ProductService")
	return &productService{
		db:              db,
		log:             serviceLog,
		productRepo:     productRepo,
		variantRepo:     variantRepo,
		eligibilityRepo: eligibilityRepo,
		linkRepo:        linkRepo,
		premiumRepo:     premiumRepo,
		summaryRepo:     summaryRepo,
	}
}

func (ps *productService) CreateProduct(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	if product.ProductID == uuid.Nil {
		product.ProductID = uuid.New()
	}
	if err := ps.productRepo.Create(ctx, tx, product); err != nil {
		return nil, apierr.Database("create product", err)
	}
	return product, nil
}

func (ps *productService) GetProductByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error) {
	product, err := ps.productRepo.GetByID(ctx, tx, productID)
	if err != nil {
		return nil, apierr.Database("fetch product", err)
	}
	if product == nil {
		return nil, apierr.NotFound("product", productID.String())
	}
	return product, nil
}

func (ps *productService) GetAllProducts(ctx context.Context, tx *gorm.DB, search string) ([]*types.Product, int64, error) {
	products, total, err := ps.productRepo.List(ctx, tx, strings.TrimSpace(search), 0, 0)
	if err != nil {
		return nil, 0, apierr.Database("fetch products", err)
	}
	return products, total, nil
}

func (ps *productService) SearchProducts(ctx context.Context, tx *gorm.DB, search string, page, limit int) ([]*types.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	products, total, err := ps.productRepo.List(ctx, tx, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, 0, apierr.Database("search products", err)
	}
	return products, total, nil
}

func (ps *productService) UpdateProduct(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	existing, err := ps.productRepo.GetByID(ctx, tx, product.ProductID)
	if err != nil {
		return nil, apierr.Database("fetch product", err)
	}
	if existing == nil {
		return nil, apierr.NotFound("product", product.ProductID.String())
	}
	product.CreatedAt = existing.CreatedAt
	if err := ps.productRepo.Save(ctx, tx, product); err != nil {
		return nil, apierr.Database("update product", err)
	}
	return product, nil
}

// DeleteProduct removes a product and everything hanging off it in one
// transaction: eligibility links, plan variants, premium rules, the stored
// summary, then the product row itself.
func (ps *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := ps.productRepo.GetByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return apierr.NotFound("product", productID.String())
		}

		variantIDs, err := ps.variantRepo.IDsByProduct(ctx, tx, productID)
		if err != nil {
			return err
		}
		if err := ps.linkRepo.DeleteByVariantIDs(ctx, tx, variantIDs); err != nil {
			return err
		}
		if err := ps.variantRepo.DeleteByProduct(ctx, tx, productID); err != nil {
			return err
		}
		if err := ps.premiumRepo.DeleteByProduct(ctx, tx, productID); err != nil {
			return err
		}
		if _, err := ps.summaryRepo.DeleteByProduct(ctx, tx, productID); err != nil {
			return err
		}
		return ps.productRepo.Delete(ctx, tx, productID)
	})
	if err != nil {
		if classified(err) {
			return err
		}
		return apierr.Database("delete product", err)
	}
	ps.log.Info("Deleted product with related data", "productID", productID)
	return nil
}

func (ps *productService) GetCompleteProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.CompleteProduct, error) {
	product, err := ps.productRepo.GetComplete(ctx, tx, productID, false)
	if err != nil {
		return nil, apierr.Database("fetch complete product", err)
	}
	if product == nil {
		return nil, apierr.NotFound("product", productID.String())
	}
	return brochure.Compose(product), nil
}

// GetProductWithResolvedEligibility is GetCompleteProduct restricted to
// links whose effective window has not closed.
func (ps *productService) GetProductWithResolvedEligibility(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.CompleteProduct, error) {
	product, err := ps.productRepo.GetComplete(ctx, tx, productID, true)
	if err != nil {
		return nil, apierr.Database("fetch product with resolved eligibility", err)
	}
	if product == nil {
		return nil, apierr.NotFound("product", productID.String())
	}
	return brochure.Compose(product), nil
}

func (ps *productService) GetProductsByEligibilityCriteria(ctx context.Context, tx *gorm.DB, criteria repos.EligibilityCriteria) ([]*types.Product, error) {
	products, err := ps.productRepo.ListByCriteria(ctx, tx, criteria)
	if err != nil {
		return nil, apierr.Database("fetch products by eligibility criteria", err)
	}
	return products, nil
}

// CreateCompleteBrochure writes a product, its variants, their eligibility
// links and premium rules in one transaction. A missing eligibility master
// id aborts the whole request. Link priority falls back to the id's 1-based
// position in the variant's comma separated list.
func (ps *productService) CreateCompleteBrochure(ctx context.Context, input CompleteBrochureInput) (*CreatedBrochure, error) {
	result := &CreatedBrochure{}
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product := input.Product
		product.ProductID = uuid.New()
		product.Variants = nil
		product.PremiumRules = nil
		if err := ps.productRepo.Create(ctx, tx, &product); err != nil {
			return err
		}
		result.Product = &product

		result.Variants = make([]CreatedVariant, 0, len(input.Variants))
		for _, variantInput := range input.Variants {
			variant := variantInput.Variant
			variant.VariantID = uuid.New()
			variant.ProductID = product.ProductID
			variant.EligibilityLinks = nil
			variant.PremiumRules = nil
			if err := ps.variantRepo.Create(ctx, tx, &variant); err != nil {
				return err
			}

			links, err := ps.createLinks(ctx, tx, variant.VariantID, variantInput.EligibilityIDs, variantInput.LinkData)
			if err != nil {
				return err
			}

			rules := make([]*types.MinPremiumRule, 0, len(variantInput.PremiumRules))
			for _, ruleInput := range variantInput.PremiumRules {
				rule := ruleInput
				rule.MinPremID = uuid.New()
				rule.ProductID = product.ProductID
				variantID := variant.VariantID
				rule.VariantID = &variantID
				if err := ps.premiumRepo.Create(ctx, tx, &rule); err != nil {
					return err
				}
				rules = append(rules, &rule)
			}

			result.Variants = append(result.Variants, CreatedVariant{
				Variant:          &variant,
				EligibilityLinks: links,
				PremiumRules:     rules,
			})
		}
		return nil
	})
	if err != nil {
		if classified(err) {
			return nil, err
		}
		return nil, apierr.Database("create complete brochure", err)
	}
	ps.log.Info("Created complete brochure", "productID", result.Product.ProductID, "variants", len(result.Variants))
	return result, nil
}

func (ps *productService) createLinks(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, eligibilityIDs string, linkData *LinkInput) ([]types.VariantEligibilityLink, error) {
	links := []types.VariantEligibilityLink{}
	position := 0
	for _, raw := range strings.Split(eligibilityIDs, ",") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		position++

		eligibilityID, err := uuid.Parse(trimmed)
		if err != nil {
			return nil, apierr.NotFound("eligibility master", trimmed)
		}
		master, err := ps.eligibilityRepo.GetByID(ctx, tx, eligibilityID)
		if err != nil {
			return nil, err
		}
		if master == nil {
			return nil, apierr.NotFound("eligibility master", trimmed)
		}

		link := types.VariantEligibilityLink{
			LinkID:        uuid.New(),
			VariantID:     variantID,
			EligibilityID: master.EligibilityID,
			Priority:      position,
			EffectiveFrom: time.Now(),
		}
		if linkData != nil {
			if linkData.Priority != nil {
				link.Priority = *linkData.Priority
			}
			if len(linkData.OverrideJSON) > 0 {
				link.OverrideJSON = linkData.OverrideJSON
			}
			if linkData.EffectiveFrom != nil {
				link.EffectiveFrom = *linkData.EffectiveFrom
			}
			link.Notes = linkData.Notes
		}
		if err := ps.linkRepo.Create(ctx, tx, &link); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (ps *productService) GetCompleteBrochureData(ctx context.Context, tx *gorm.DB) ([]*types.CompleteProduct, error) {
	products, err := ps.productRepo.ListComplete(ctx, tx)
	if err != nil {
		return nil, apierr.Database("fetch complete brochure data", err)
	}
	composed := make([]*types.CompleteProduct, 0, len(products))
	for _, product := range products {
		composed = append(composed, brochure.Compose(product))
	}
	return composed, nil
}

func (ps *productService) GetCompleteSingleBrochure(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*SingleBrochure, error) {
	complete, err := ps.GetCompleteProduct(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	rules := []types.EffectiveEligibility{}
	for _, variant := range complete.Variants {
		rules = append(rules, variant.EligibilityRules...)
	}
	return &SingleBrochure{
		Products:         []*types.CompleteProduct{complete},
		Variants:         complete.Variants,
		EligibilityRules: rules,
	}, nil
}
