package models

import (
	"strings"

	"github.com/capital-schemes/backend/internal/domain"
	"gorm.io/gorm"
)

// Scheme is the row for a capital scheme's overview fields. The revision
// ledgers live in their own tables, keyed by the scheme id.
type Scheme struct {
	Model
	Name             string
	AuthorityID      uint
	Authority        Authority `json:"-"`
	Type             *domain.SchemeType
	FundingProgramme *domain.FundingProgramme
	BidStatus        domain.BidStatus
}

// BeforeSave trims whitespace from the name.
func (s *Scheme) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	return nil
}

// BeforeCreate verifies that the authority exists.
func (s *Scheme) BeforeCreate(tx *gorm.DB) error {
	return tx.First(&Authority{}, s.AuthorityID).Error
}
