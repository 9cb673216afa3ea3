package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/apierr"
	"github.com/insurely/brochure-backend/internal/brochure"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/openai"
	"github.com/insurely/brochure-backend/internal/pdf"
	"github.com/insurely/brochure-backend/internal/prompts"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/types"
)

type SummaryService interface {
	// GenerateSummary builds the prompt input from the product and its
	// variants, calls the text generator once, and returns the decoded
	// result. Nothing is persisted; a generator failure surfaces as an
	// upstream error with no fallback content.
	GenerateSummary(ctx context.Context, productID uuid.UUID) (*types.GeneratedSummary, error)
	// StoreSummary upserts keyed on product id. The bool reports whether a
	// new row was created.
	StoreSummary(ctx context.Context, tx *gorm.DB, generated *types.GeneratedSummary) (*types.BrochureSummary, bool, error)
	GetSummaryByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.BrochureSummary, error)
	GetSummaryByID(ctx context.Context, tx *gorm.DB, summaryID uuid.UUID) (*types.BrochureSummary, error)
	GetAllSummaries(ctx context.Context, tx *gorm.DB) ([]*types.BrochureSummary, error)
	DeleteSummaryByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error)
	GenerateSummaryPDF(ctx context.Context, summaryID uuid.UUID) ([]byte, error)
}

type summaryService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	variantRepo  repos.PlanVariantRepo
	summaryRepo  repos.BrochureSummaryRepo
	aiClient     openai.Client
	pdfGenerator *pdf.Generator
}

func NewSummaryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	productRepo repos.ProductRepo,
	variantRepo repos.PlanVariantRepo,
	summaryRepo repos.BrochureSummaryRepo,
	aiClient openai.Client,
) SummaryService {
	serviceLog := baseLog.With("service", "SummaryService")
	return &summaryService{
		db:           db,
		log:          serviceLog,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		summaryRepo:  summaryRepo,
		aiClient:     aiClient,
		pdfGenerator: pdf.NewGenerator(),
	}
}

func (ss *summaryService) GenerateSummary(ctx context.Context, productID uuid.UUID) (*types.GeneratedSummary, error) {
	var product *types.Product
	var variants []*types.PlanVariant

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = ss.productRepo.GetByID(gctx, nil, productID)
		return err
	})
	g.Go(func() error {
		var err error
		variants, _, err = ss.variantRepo.ListByProduct(gctx, nil, productID, 0, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Database("fetch product for summary", err)
	}
	if product == nil || len(variants) == 0 {
		return nil, apierr.NotFound("product or variants", productID.String())
	}

	product.Variants = make([]types.PlanVariant, 0, len(variants))
	for _, variant := range variants {
		product.Variants = append(product.Variants, *variant)
	}
	input := brochure.FlattenForPrompt(brochure.Compose(product))

	prompt, err := prompts.BuildBrochurePrompt(input)
	if err != nil {
		return nil, apierr.Upstream(err)
	}

	content, err := ss.aiClient.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, apierr.Upstream(err)
	}

	var generated types.GeneratedSummary
	if err := json.Unmarshal([]byte(content), &generated); err != nil {
		return nil, apierr.Upstream(err)
	}
	ss.log.Info("Generated brochure summary", "productID", productID, "variants", len(generated.Variants))
	return &generated, nil
}

func (ss *summaryService) StoreSummary(ctx context.Context, tx *gorm.DB, generated *types.GeneratedSummary) (*types.BrochureSummary, bool, error) {
	summary, err := brochure.SummaryFromGenerated(generated)
	if err != nil {
		return nil, false, apierr.Validation(err.Error(), 0)
	}
	created, err := ss.summaryRepo.Upsert(ctx, tx, summary)
	if err != nil {
		return nil, false, apierr.Database("upsert brochure summary", err)
	}
	return summary, created, nil
}

// GetSummaryByProduct returns nil without error when no summary has been
// stored for the product yet.
func (ss *summaryService) GetSummaryByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.BrochureSummary, error) {
	summary, err := ss.summaryRepo.GetByProduct(ctx, tx, productID)
	if err != nil {
		return nil, apierr.Database("fetch brochure summary", err)
	}
	return summary, nil
}

func (ss *summaryService) GetSummaryByID(ctx context.Context, tx *gorm.DB, summaryID uuid.UUID) (*types.BrochureSummary, error) {
	summary, err := ss.summaryRepo.GetByID(ctx, tx, summaryID)
	if err != nil {
		return nil, apierr.Database("fetch brochure summary", err)
	}
	if summary == nil {
		return nil, apierr.NotFound("brochure summary", summaryID.String())
	}
	return summary, nil
}

func (ss *summaryService) GetAllSummaries(ctx context.Context, tx *gorm.DB) ([]*types.BrochureSummary, error) {
	summaries, err := ss.summaryRepo.List(ctx, tx)
	if err != nil {
		return nil, apierr.Database("fetch brochure summaries", err)
	}
	return summaries, nil
}

func (ss *summaryService) DeleteSummaryByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error) {
	deleted, err := ss.summaryRepo.DeleteByProduct(ctx, tx, productID)
	if err != nil {
		return 0, apierr.Database("delete brochure summary", err)
	}
	return deleted, nil
}

func (ss *summaryService) GenerateSummaryPDF(ctx context.Context, summaryID uuid.UUID) ([]byte, error) {
	summary, err := ss.GetSummaryByID(ctx, nil, summaryID)
	if err != nil {
		return nil, err
	}
	out, err := ss.pdfGenerator.Generate(summary)
	if err != nil {
		return nil, apierr.Database("generate summary pdf", err)
	}
	return out, nil
}
