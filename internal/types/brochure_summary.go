package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BrochureSummary stores the generated brochure text, one row per product
// (unique on product_id, written via upsert).
type BrochureSummary struct {
	SummaryID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"summary_id"`
	ProductID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Product             *Product       `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
	ProductName         string         `gorm:"column:product_name;not null" json:"product_name"`
	ProductCode         string         `gorm:"column:product_code;not null" json:"product_code"`
	Insurer             string         `gorm:"column:insurer;not null" json:"insurer"`
	Description         string         `gorm:"column:description;not null" json:"description"`
	EffectiveFrom       time.Time      `gorm:"column:effective_from;not null" json:"effective_from"`
	EffectiveTo         *time.Time     `gorm:"column:effective_to" json:"effective_to,omitempty"`
	Variants            datatypes.JSON `gorm:"column:variants;type:jsonb;not null" json:"variants"`
	EligibilitySnapshot string         `gorm:"column:eligibility_snapshot;not null" json:"eligibility_snapshot"`
	Notes               string         `gorm:"column:notes;not null" json:"notes"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (BrochureSummary) TableName() string { return "brochure_summaries" }

// SummaryVariant is one element of the persisted variants array.
type SummaryVariant struct {
	VariantCode  string `json:"variant_code"`
	VariantLabel string `json:"variant_label"`
	Summary      string `json:"summary"`
}
