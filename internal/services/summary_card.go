package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/apierr"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/types"
)

// CardService renders a stored brochure summary as a shareable PNG card:
// a colored band with the insurer monogram, the product name and tagline,
// and one line per variant.
type CardService interface {
	GenerateSummaryCard(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (bytes.Buffer, error)
}

type cardService struct {
	db          *gorm.DB
	log         *logger.Logger
	summaryRepo repos.BrochureSummaryRepo

	titleFace    font.Face
	bodyFace     font.Face
	monogramFace font.Face
}

func NewCardService(db *gorm.DB, baseLog *logger.Logger, summaryRepo repos.BrochureSummaryRepo) (CardService, error) {
	serviceLog := baseLog.With("service", "CardService")

	fontPath := os.Getenv("CARD_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("Env var CARD_FONT is empty")
	}
	serviceLog.Info("Loading card font", "font", fontPath)

	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	faceAt := func(size float64) font.Face {
		return truetype.NewFace(parsedFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}

	return &cardService{
		db:           db,
		log:          serviceLog,
		summaryRepo:  summaryRepo,
		titleFace:    faceAt(44),
		bodyFace:     faceAt(22),
		monogramFace: faceAt(72),
	}, nil
}

const (
	cardWidth  = 1200
	cardHeight = 630
	bandHeight = 180
)

var cardBandColors = []color.NRGBA{
	{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF},
	{R: 0x1F, G: 0x82, B: 0xC4, A: 0xFF},
	{R: 0x16, G: 0xA0, B: 0x85, A: 0xFF},
	{R: 0x8E, G: 0x44, B: 0xAD, A: 0xFF},
}

func (cs *cardService) GenerateSummaryCard(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (bytes.Buffer, error) {
	var buf bytes.Buffer

	summary, err := cs.summaryRepo.GetByProduct(ctx, tx, productID)
	if err != nil {
		return buf, apierr.Database("fetch brochure summary", err)
	}
	if summary == nil {
		return buf, apierr.NotFound("brochure summary", productID.String())
	}

	dc := gg.NewContext(cardWidth, cardHeight)

	dc.SetColor(color.White)
	dc.DrawRectangle(0, 0, cardWidth, cardHeight)
	dc.Fill()

	// band color keyed on the product id so a product's card is stable
	band := cardBandColors[int(summary.ProductID[0])%len(cardBandColors)]
	dc.SetColor(band)
	dc.DrawRectangle(0, 0, cardWidth, bandHeight)
	dc.Fill()

	// insurer monogram in a circle at the band's right edge
	monogram := insurerMonogram(summary.Insurer)
	cxCircle := float64(cardWidth - 130)
	cyCircle := float64(bandHeight / 2)
	dc.SetColor(color.White)
	dc.DrawCircle(cxCircle, cyCircle, 64)
	dc.Fill()
	dc.SetColor(band)
	dc.SetFontFace(cs.monogramFace)
	tw, th := dc.MeasureString(monogram)
	dc.DrawString(monogram, cxCircle-tw/2, cyCircle+th/2-8)

	dc.SetColor(color.White)
	dc.SetFontFace(cs.titleFace)
	dc.DrawString(truncate(summary.ProductName, 38), 60, 88)
	dc.SetFontFace(cs.bodyFace)
	dc.DrawString(truncate(summary.Insurer, 60), 60, 136)

	dc.SetColor(color.NRGBA{R: 0x34, G: 0x49, B: 0x5E, A: 0xFF})
	y := float64(bandHeight + 70)
	if summary.Description != "" {
		dc.DrawString(truncate(summary.Description, 86), 60, y)
		y += 48
	}

	var variants []types.SummaryVariant
	_ = json.Unmarshal(summary.Variants, &variants)
	for i, variant := range variants {
		if y > cardHeight-80 {
			break
		}
		label := variant.VariantLabel
		if label == "" {
			label = variant.VariantCode
		}
		dc.DrawString(fmt.Sprintf("%d. %s", i+1, truncate(label, 78)), 60, y)
		y += 40
	}

	dc.SetColor(color.NRGBA{R: 0x95, G: 0xA5, B: 0xA6, A: 0xFF})
	dc.DrawString("Code: "+orDash(summary.ProductCode), 60, cardHeight-40)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func insurerMonogram(insurer string) string {
	fields := strings.Fields(insurer)
	switch {
	case len(fields) >= 2:
		return strings.ToUpper(fields[0][:1] + fields[1][:1])
	case len(fields) == 1:
		return strings.ToUpper(fields[0][:1])
	default:
		return "?"
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
