package models

import (
	"time"

	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialRevision is a row in a scheme's funding ledger. Rows are only
// ever inserted or closed (effective_date_to set), never deleted.
type FinancialRevision struct {
	Model
	SchemeID  uint
	Scheme    Scheme          `json:"-"`
	Effective types.DateRange `gorm:"embedded;embeddedPrefix:effective_"`
	Type      domain.FinancialType
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Source    domain.DataSource
}

// AfterFind sets the timezone for the effective range to UTC.
func (r *FinancialRevision) AfterFind(tx *gorm.DB) error {
	_ = r.Model.AfterFind(tx)
	r.Effective = rangeUTC(r.Effective)

	return nil
}

// MilestoneRevision is a row in a scheme's milestone ledger.
type MilestoneRevision struct {
	Model
	SchemeID        uint
	Scheme          Scheme          `json:"-"`
	Effective       types.DateRange `gorm:"embedded;embeddedPrefix:effective_"`
	Milestone       domain.Milestone
	ObservationType domain.ObservationType
	StatusDate      time.Time
	Source          domain.DataSource
}

// AfterFind sets the timezone for all dates to UTC.
func (r *MilestoneRevision) AfterFind(tx *gorm.DB) error {
	_ = r.Model.AfterFind(tx)
	r.Effective = rangeUTC(r.Effective)
	r.StatusDate = r.StatusDate.In(time.UTC)

	return nil
}

// OutputRevision is a row in a scheme's output ledger.
type OutputRevision struct {
	Model
	SchemeID        uint
	Scheme          Scheme          `json:"-"`
	Effective       types.DateRange `gorm:"embedded;embeddedPrefix:effective_"`
	Type            domain.OutputType
	Measure         domain.OutputMeasure
	ObservationType domain.ObservationType
	Value           decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// AfterFind sets the timezone for the effective range to UTC.
func (r *OutputRevision) AfterFind(tx *gorm.DB) error {
	_ = r.Model.AfterFind(tx)
	r.Effective = rangeUTC(r.Effective)

	return nil
}

// AuthorityReview is a row recording that an authority reviewed a scheme.
type AuthorityReview struct {
	Model
	SchemeID   uint
	Scheme     Scheme `json:"-"`
	ReviewDate time.Time
	Source     domain.DataSource
}

// AfterFind sets the timezone for the review date to UTC.
func (r *AuthorityReview) AfterFind(tx *gorm.DB) error {
	_ = r.Model.AfterFind(tx)
	r.ReviewDate = r.ReviewDate.In(time.UTC)

	return nil
}

func rangeUTC(r types.DateRange) types.DateRange {
	from := r.DateFrom.In(time.UTC)
	to := r.DateTo
	if to != nil {
		utc := to.In(time.UTC)
		to = &utc
	}

	return types.DateRange{DateFrom: from, DateTo: to}
}
