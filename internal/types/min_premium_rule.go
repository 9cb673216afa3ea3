package types

import (
	"time"

	"github.com/google/uuid"
)

// MinPremiumRule belongs to a product; a null variant id means the rule is
// the product-level default.
type MinPremiumRule struct {
	MinPremID            uuid.UUID    `gorm:"column:minprem_id;type:uuid;primaryKey" json:"minprem_id"`
	ProductID            uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	Product              *Product     `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
	VariantID            *uuid.UUID   `gorm:"type:uuid;index" json:"variant_id,omitempty"`
	Variant              *PlanVariant `gorm:"foreignKey:VariantID;references:VariantID" json:"variant,omitempty"`
	PayType              string       `gorm:"column:pay_type;not null" json:"pay_type"`
	PremiumModes         string       `gorm:"column:premium_modes;not null" json:"premium_modes"`
	Currency             string       `gorm:"column:currency;not null" json:"currency"`
	MinPremiumPerInstall float64      `gorm:"column:min_premium_per_install;type:decimal(14,2);not null" json:"min_premium_per_install"`
	EffectiveFrom        time.Time    `gorm:"column:effective_from;not null;default:now()" json:"effective_from"`
	EffectiveTo          *time.Time   `gorm:"column:effective_to" json:"effective_to,omitempty"`
	Notes                string       `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt            time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (MinPremiumRule) TableName() string { return "min_premium_rules" }
