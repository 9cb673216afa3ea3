package types

import (
	"time"

	"github.com/google/uuid"
)

type PlanVariant struct {
	VariantID          uuid.UUID                `gorm:"type:uuid;primaryKey" json:"variant_id"`
	ProductID          uuid.UUID                `gorm:"type:uuid;not null;index" json:"product_id"`
	Product            *Product                 `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
	VariantCode        string                   `gorm:"column:variant_code;not null" json:"variant_code"`
	VariantLabel       string                   `gorm:"column:variant_label;not null" json:"variant_label"`
	VariantDescription string                   `gorm:"column:variant_description" json:"variant_description,omitempty"`
	EffectiveFrom      time.Time                `gorm:"column:effective_from;not null;default:now()" json:"effective_from"`
	EffectiveTo        *time.Time               `gorm:"column:effective_to" json:"effective_to,omitempty"`
	Notes              string                   `gorm:"column:notes" json:"notes,omitempty"`
	EligibilityLinks   []VariantEligibilityLink `gorm:"foreignKey:VariantID;references:VariantID" json:"eligibilityLinks,omitempty"`
	PremiumRules       []MinPremiumRule         `gorm:"foreignKey:VariantID;references:VariantID" json:"premiumRules,omitempty"`
	CreatedAt          time.Time                `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time                `gorm:"not null;default:now()" json:"updated_at"`
}

func (PlanVariant) TableName() string { return "plan_variants" }
