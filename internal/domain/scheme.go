package domain

import "fmt"

// referencePrefix is prepended to the zero-padded scheme id to form the
// display reference, e.g. ATE00001.
const referencePrefix = "ATE"

// Scheme is the aggregate root for a capital scheme. It exclusively owns its
// four revision ledgers; they are never shared or referenced from elsewhere.
type Scheme struct {
	ID               uint
	Name             string
	AuthorityID      uint
	Type             *SchemeType
	FundingProgramme *FundingProgramme
	BidStatus        BidStatus

	Funding    SchemeFunding
	Milestones SchemeMilestones
	Outputs    SchemeOutputs
	Reviews    SchemeReviews
}

// Reference is the display reference for the scheme.
func (s *Scheme) Reference() string {
	return fmt.Sprintf("%s%05d", referencePrefix, s.ID)
}

// IsUpdateable reports whether an authority may update the scheme itself:
// the bid must be funded, the scheme must still be actively progressing, and
// the funding programme must allow self-service updates.
func (s *Scheme) IsUpdateable() bool {
	if s.BidStatus != BidStatusFunded {
		return false
	}

	if s.Milestones.hasCurrentTerminalMilestone() {
		return false
	}

	if current := s.Milestones.CurrentMilestone(); current != nil {
		ordinal, _ := current.Ordinal()
		completed, _ := MilestoneConstructionCompleted.Ordinal()
		if ordinal >= completed {
			return false
		}
	}

	if s.FundingProgramme == nil {
		return false
	}

	return !s.FundingProgramme.IsUnderEmbargo() && s.FundingProgramme.IsEligibleForAuthorityUpdate()
}

// MilestonesEligibleForAuthorityUpdate returns the milestones an authority
// may set a date for. The construction milestones only apply to construction
// schemes.
func (s *Scheme) MilestonesEligibleForAuthorityUpdate() []Milestone {
	eligible := []Milestone{
		MilestoneFeasibilityDesignCompleted,
		MilestonePreliminaryDesignCompleted,
		MilestoneDetailedDesignCompleted,
	}

	if s.Type != nil && *s.Type == SchemeTypeConstruction {
		eligible = append(eligible, MilestoneConstructionStarted, MilestoneConstructionCompleted)
	}

	return eligible
}
