package types

import (
	"time"

	"github.com/google/uuid"
)

// EligibilityMaster is a reusable eligibility rule template. It has an
// independent lifecycle and may be linked to many plan variants; per-link
// customization lives on VariantEligibilityLink.override_json, never here.
type EligibilityMaster struct {
	EligibilityID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"eligibility_id"`
	EligibilityName    string     `gorm:"column:eligibility_name;not null" json:"eligibility_name"`
	Insurer            string     `gorm:"column:insurer;not null" json:"insurer"`
	Jurisdiction       string     `gorm:"column:jurisdiction;not null" json:"jurisdiction"`
	Channel            string     `gorm:"column:channel;default:any" json:"channel"`
	PayType            string     `gorm:"column:pay_type" json:"pay_type"`
	PPTRuleType        string     `gorm:"column:ppt_rule_type" json:"ppt_rule_type"`
	PPTFixedYears      *int16     `gorm:"column:ppt_fixed_years" json:"ppt_fixed_years,omitempty"`
	PPTMinYears        *int16     `gorm:"column:ppt_min_years" json:"ppt_min_years,omitempty"`
	PPTMaxYears        *int16     `gorm:"column:ppt_max_years" json:"ppt_max_years,omitempty"`
	PremiumModes       string     `gorm:"column:premium_modes" json:"premium_modes"`
	MinPolicyTermType  string     `gorm:"column:min_policy_term_type" json:"min_policy_term_type"`
	MaxPolicyTermType  string     `gorm:"column:max_policy_term_type" json:"max_policy_term_type"`
	MinEntryAge        int        `gorm:"column:min_entry_age;not null" json:"min_entry_age"`
	MaxEntryAge        int        `gorm:"column:max_entry_age;not null" json:"max_entry_age"`
	MinMaturityAge     int        `gorm:"column:min_maturity_age;not null" json:"min_maturity_age"`
	MaxMaturityAge     int        `gorm:"column:max_maturity_age;not null" json:"max_maturity_age"`
	MinPolicyTermValue int        `gorm:"column:min_policy_term_value;not null" json:"min_policy_term_value"`
	MaxPolicyTermValue int        `gorm:"column:max_policy_term_value;not null" json:"max_policy_term_value"`
	MinBaseSumAssured  float64    `gorm:"column:min_base_sum_assured;type:decimal(18,2);not null" json:"min_base_sum_assured"`
	MaxBaseSumAssured  float64    `gorm:"column:max_base_sum_assured;type:decimal(18,2);not null" json:"max_base_sum_assured"`
	Currency           string     `gorm:"column:currency" json:"currency"`
	EffectiveFrom      time.Time  `gorm:"column:effective_from;not null;default:now()" json:"effective_from"`
	EffectiveTo        *time.Time `gorm:"column:effective_to" json:"effective_to,omitempty"`
	Notes              string     `gorm:"column:notes" json:"notes,omitempty"`
	Variants           []PlanVariant `gorm:"many2many:variant_eligibility_link;foreignKey:EligibilityID;joinForeignKey:EligibilityID;references:VariantID;joinReferences:VariantID" json:"variants,omitempty"`
	CreatedAt          time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (EligibilityMaster) TableName() string { return "eligibility_master" }

const (
	ChannelPOS    = "pos"
	ChannelNonPOS = "non_pos"
	ChannelAny    = "any"

	PayTypeSingle  = "single"
	PayTypeRegular = "regular"
	PayTypeLimited = "limited"

	PPTRuleFixedYears       = "fixed_years"
	PPTRuleRangeYears       = "range_years"
	PPTRuleRelativeToTerm   = "relative_to_polterm"

	PolicyTermFixedYears   = "fixed_years"
	PolicyTermAgeLessEntry = "age_less_entry"
	PolicyTermWholeLife    = "whole_life"
)
