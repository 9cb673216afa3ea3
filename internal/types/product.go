package types

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ProductID      uuid.UUID        `gorm:"type:uuid;primaryKey" json:"product_id"`
	UIN            string           `gorm:"column:uin;not null" json:"UIN"`
	ProductName    string           `gorm:"column:product_name;not null" json:"product_name"`
	Insurer        string           `gorm:"column:insurer;not null" json:"insurer"`
	Jurisdiction   string           `gorm:"column:jurisdiction;not null" json:"jurisdiction"`
	Currency       string           `gorm:"column:currency;not null" json:"currency"`
	ProductTagline string           `gorm:"column:product_tagline" json:"product_tagline"`
	ProductVersion string           `gorm:"column:product_version;not null" json:"product_version"`
	EffectiveFrom  time.Time        `gorm:"column:effective_from;not null;default:now()" json:"effective_from"`
	EffectiveTo    *time.Time       `gorm:"column:effective_to" json:"effective_to,omitempty"`
	Notes          string           `gorm:"column:notes" json:"notes,omitempty"`
	Variants       []PlanVariant    `gorm:"foreignKey:ProductID;references:ProductID" json:"variants,omitempty"`
	PremiumRules   []MinPremiumRule `gorm:"foreignKey:ProductID;references:ProductID" json:"premiumRules,omitempty"`
	CreatedAt      time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// Jurisdictions accepted on product and eligibility writes.
const (
	JurisdictionIN = "IN"
	JurisdictionPH = "PH"
	JurisdictionMY = "MY"
)
