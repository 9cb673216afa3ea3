package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VariantEligibilityLink is the many-to-many join between a plan variant and
// an eligibility master. It carries its own attributes: override_json is a
// partial EligibilityMaster-shaped patch applied over the master when the
// link is resolved, priority orders the resolved records ascending.
type VariantEligibilityLink struct {
	LinkID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"link_id"`
	VariantID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"variant_id"`
	EligibilityID uuid.UUID          `gorm:"type:uuid;not null;index" json:"eligibility_id"`
	Eligibility   *EligibilityMaster `gorm:"foreignKey:EligibilityID;references:EligibilityID" json:"eligibility,omitempty"`
	OverrideJSON  datatypes.JSON     `gorm:"column:override_json;type:jsonb" json:"override_json,omitempty"`
	Priority      int                `gorm:"column:priority;default:1" json:"priority"`
	EffectiveFrom time.Time          `gorm:"column:effective_from;not null;default:now()" json:"effective_from"`
	EffectiveTo   *time.Time         `gorm:"column:effective_to" json:"effective_to,omitempty"`
	Notes         string             `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt     time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"not null;default:now()" json:"updated_at"`
}

func (VariantEligibilityLink) TableName() string { return "variant_eligibility_link" }
