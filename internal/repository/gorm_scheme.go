package repository

import (
	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/internal/models"
	"gorm.io/gorm"
)

// GormSchemes stores scheme aggregates in the relational database.
type GormSchemes struct{}

func (GormSchemes) Add(schemes ...*domain.Scheme) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		for _, scheme := range schemes {
			row := schemeRow(scheme)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}

			if err := createRevisions(tx, scheme, false); err != nil {
				return err
			}
		}

		return nil
	})
}

func (GormSchemes) Get(id uint) (*domain.Scheme, error) {
	var row models.Scheme
	if err := models.DB.First(&row, id).Error; err != nil {
		return nil, err
	}

	return loadScheme(models.DB, row)
}

func (GormSchemes) GetByAuthority(authorityID uint) ([]*domain.Scheme, error) {
	var rows []models.Scheme
	err := models.DB.Where(models.Scheme{AuthorityID: authorityID}).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	schemes := make([]*domain.Scheme, 0, len(rows))
	for _, row := range rows {
		scheme, err := loadScheme(models.DB, row)
		if err != nil {
			return nil, err
		}

		schemes = append(schemes, scheme)
	}

	return schemes, nil
}

// Update persists the aggregate. Overview fields are saved, new revisions
// (id zero) are inserted, and previously persisted revisions only ever have
// their effective_date_to updated - everything else about them is immutable.
func (GormSchemes) Update(scheme *domain.Scheme) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		row := schemeRow(scheme)
		err := tx.Model(&row).
			Select("Name", "AuthorityID", "Type", "FundingProgramme", "BidStatus").
			Updates(row).Error
		if err != nil {
			return err
		}

		for _, revision := range scheme.Funding.FinancialRevisions() {
			if revision.ID == 0 {
				continue
			}

			err = tx.Model(&models.FinancialRevision{Model: models.Model{ID: revision.ID}}).
				Update("effective_date_to", revision.Effective.DateTo).Error
			if err != nil {
				return err
			}
		}

		for _, revision := range scheme.Milestones.MilestoneRevisions() {
			if revision.ID == 0 {
				continue
			}

			err = tx.Model(&models.MilestoneRevision{Model: models.Model{ID: revision.ID}}).
				Update("effective_date_to", revision.Effective.DateTo).Error
			if err != nil {
				return err
			}
		}

		for _, revision := range scheme.Outputs.OutputRevisions() {
			if revision.ID == 0 {
				continue
			}

			err = tx.Model(&models.OutputRevision{Model: models.Model{ID: revision.ID}}).
				Update("effective_date_to", revision.Effective.DateTo).Error
			if err != nil {
				return err
			}
		}

		return createRevisions(tx, scheme, true)
	})
}

func (GormSchemes) Clear() error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		// Foreign keys are checked, so revision rows go before scheme rows
		resources := []any{
			models.FinancialRevision{},
			models.MilestoneRevision{},
			models.OutputRevision{},
			models.AuthorityReview{},
			models.Scheme{},
		}

		for _, model := range resources {
			if err := tx.Unscoped().Where("true").Delete(&model).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func schemeRow(scheme *domain.Scheme) models.Scheme {
	return models.Scheme{
		Model:            models.Model{ID: scheme.ID},
		Name:             scheme.Name,
		AuthorityID:      scheme.AuthorityID,
		Type:             scheme.Type,
		FundingProgramme: scheme.FundingProgramme,
		BidStatus:        scheme.BidStatus,
	}
}

// createRevisions inserts revision rows. With onlyNew set, revisions that
// already have an id are skipped - that is the update path, where persisted
// revisions only ever change via their effective_date_to. Without it, every
// revision is inserted, keeping caller-assigned ids (the import path).
func createRevisions(tx *gorm.DB, scheme *domain.Scheme, onlyNew bool) error {
	for _, revision := range scheme.Funding.FinancialRevisions() {
		if onlyNew && revision.ID != 0 {
			continue
		}

		row := models.FinancialRevision{
			Model:     models.Model{ID: revision.ID},
			SchemeID:  scheme.ID,
			Effective: revision.Effective,
			Type:      revision.Type,
			Amount:    revision.Amount,
			Source:    revision.Source,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for _, revision := range scheme.Milestones.MilestoneRevisions() {
		if onlyNew && revision.ID != 0 {
			continue
		}

		row := models.MilestoneRevision{
			Model:           models.Model{ID: revision.ID},
			SchemeID:        scheme.ID,
			Effective:       revision.Effective,
			Milestone:       revision.Milestone,
			ObservationType: revision.ObservationType,
			StatusDate:      revision.StatusDate,
			Source:          revision.Source,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for _, revision := range scheme.Outputs.OutputRevisions() {
		if onlyNew && revision.ID != 0 {
			continue
		}

		row := models.OutputRevision{
			Model:           models.Model{ID: revision.ID},
			SchemeID:        scheme.ID,
			Effective:       revision.Effective,
			Type:            revision.Type,
			Measure:         revision.Measure,
			ObservationType: revision.ObservationType,
			Value:           revision.Value,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for _, review := range scheme.Reviews.AuthorityReviews() {
		if onlyNew && review.ID != 0 {
			continue
		}

		row := models.AuthorityReview{
			Model:      models.Model{ID: review.ID},
			SchemeID:   scheme.ID,
			ReviewDate: review.ReviewDate,
			Source:     review.Source,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

// loadScheme reconstructs the full aggregate for a scheme row. Revisions are
// replayed in insertion order, which re-checks the ledger invariants.
func loadScheme(db *gorm.DB, row models.Scheme) (*domain.Scheme, error) {
	scheme := domain.Scheme{
		ID:               row.ID,
		Name:             row.Name,
		AuthorityID:      row.AuthorityID,
		Type:             row.Type,
		FundingProgramme: row.FundingProgramme,
		BidStatus:        row.BidStatus,
	}

	var financials []models.FinancialRevision
	err := db.Where(models.FinancialRevision{SchemeID: row.ID}).Order("id ASC").Find(&financials).Error
	if err != nil {
		return nil, err
	}

	for _, revision := range financials {
		err = scheme.Funding.UpdateFinancial(domain.FinancialRevision{
			ID:        revision.ID,
			Effective: revision.Effective,
			Type:      revision.Type,
			Amount:    revision.Amount,
			Source:    revision.Source,
		})
		if err != nil {
			return nil, err
		}
	}

	var milestones []models.MilestoneRevision
	err = db.Where(models.MilestoneRevision{SchemeID: row.ID}).Order("id ASC").Find(&milestones).Error
	if err != nil {
		return nil, err
	}

	for _, revision := range milestones {
		err = scheme.Milestones.UpdateMilestone(domain.MilestoneRevision{
			ID:              revision.ID,
			Effective:       revision.Effective,
			Milestone:       revision.Milestone,
			ObservationType: revision.ObservationType,
			StatusDate:      revision.StatusDate,
			Source:          revision.Source,
		})
		if err != nil {
			return nil, err
		}
	}

	var outputs []models.OutputRevision
	err = db.Where(models.OutputRevision{SchemeID: row.ID}).Order("id ASC").Find(&outputs).Error
	if err != nil {
		return nil, err
	}

	for _, revision := range outputs {
		scheme.Outputs.UpdateOutput(domain.OutputRevision{
			ID:              revision.ID,
			Effective:       revision.Effective,
			Type:            revision.Type,
			Measure:         revision.Measure,
			ObservationType: revision.ObservationType,
			Value:           revision.Value,
		})
	}

	var reviews []models.AuthorityReview
	err = db.Where(models.AuthorityReview{SchemeID: row.ID}).Order("id ASC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	for _, review := range reviews {
		scheme.Reviews.UpdateAuthorityReview(domain.AuthorityReview{
			ID:         review.ID,
			ReviewDate: review.ReviewDate,
			Source:     review.Source,
		})
	}

	return &scheme, nil
}
