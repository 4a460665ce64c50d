package domain

import (
	"fmt"
	"time"

	"github.com/capital-schemes/backend/internal/types"
	"golang.org/x/exp/slices"
)

// MilestoneRevision records when a milestone was, or is planned to be,
// reached.
type MilestoneRevision struct {
	ID              uint // zero until persisted
	Effective       types.DateRange
	Milestone       Milestone
	ObservationType ObservationType
	StatusDate      time.Time
	Source          DataSource
}

func (r MilestoneRevision) String() string {
	return fmt.Sprintf("milestone revision %s (%s) at %s %s", r.Milestone, r.ObservationType, r.StatusDate.Format("2006-01-02"), r.Effective)
}

// SchemeMilestones is the append-only ledger of a scheme's milestone
// revisions. At most one open revision may exist per milestone and
// observation type.
type SchemeMilestones struct {
	revisions []MilestoneRevision
}

// MilestoneRevisions returns a copy of the ledger.
func (m *SchemeMilestones) MilestoneRevisions() []MilestoneRevision {
	return slices.Clone(m.revisions)
}

// CurrentMilestoneRevisions returns the revisions that are currently in
// effect.
func (m *SchemeMilestones) CurrentMilestoneRevisions() []MilestoneRevision {
	var current []MilestoneRevision
	for _, revision := range m.revisions {
		if revision.Effective.IsOpen() {
			current = append(current, revision)
		}
	}

	return current
}

// UpdateMilestone appends a revision to the ledger. It fails without
// modifying the ledger when an open revision already exists for the same
// milestone and observation type.
func (m *SchemeMilestones) UpdateMilestone(revision MilestoneRevision) error {
	if revision.Effective.IsOpen() {
		for _, existing := range m.revisions {
			if existing.Effective.IsOpen() &&
				existing.Milestone == revision.Milestone &&
				existing.ObservationType == revision.ObservationType {
				return DuplicateCurrentRevisionError{Existing: existing}
			}
		}
	}

	m.revisions = append(m.revisions, revision)
	return nil
}

// UpdateMilestones appends revisions in the given order.
func (m *SchemeMilestones) UpdateMilestones(revisions ...MilestoneRevision) error {
	for _, revision := range revisions {
		if err := m.UpdateMilestone(revision); err != nil {
			return err
		}
	}

	return nil
}

// UpdateMilestoneDate closes the current revision for the milestone and
// observation type, if one exists, and opens a new one with the given status
// date.
func (m *SchemeMilestones) UpdateMilestoneDate(now time.Time, milestone Milestone, observationType ObservationType, statusDate time.Time) {
	for i, revision := range m.revisions {
		if revision.Effective.IsOpen() &&
			revision.Milestone == milestone &&
			revision.ObservationType == observationType {
			m.revisions[i].Effective = revision.Effective.ClosedAt(now)
			break
		}
	}

	m.revisions = append(m.revisions, MilestoneRevision{
		Effective:       types.OpenDateRange(now),
		Milestone:       milestone,
		ObservationType: observationType,
		StatusDate:      statusDate,
		Source:          DataSourceAuthorityUpdate,
	})
}

// CurrentMilestone is the furthest progressed milestone among the open
// actual revisions, or nil when the scheme has no confirmed progress.
// Terminal states do not count as progress.
func (m *SchemeMilestones) CurrentMilestone() *Milestone {
	var current *Milestone
	best := -1

	for _, revision := range m.revisions {
		if !revision.Effective.IsOpen() || revision.ObservationType != ObservationTypeActual {
			continue
		}

		ordinal, ok := revision.Milestone.Ordinal()
		if !ok || ordinal <= best {
			continue
		}

		milestone := revision.Milestone
		current = &milestone
		best = ordinal
	}

	return current
}

// CurrentStatusDate is the status date of the open revision for the
// milestone and observation type, or nil when there is none.
func (m *SchemeMilestones) CurrentStatusDate(milestone Milestone, observationType ObservationType) *time.Time {
	for _, revision := range m.revisions {
		if revision.Effective.IsOpen() &&
			revision.Milestone == milestone &&
			revision.ObservationType == observationType {
			statusDate := revision.StatusDate
			return &statusDate
		}
	}

	return nil
}

// hasCurrentTerminalMilestone reports whether an open actual revision marks
// the scheme as not progressed, superseded or removed.
func (m *SchemeMilestones) hasCurrentTerminalMilestone() bool {
	for _, revision := range m.revisions {
		if revision.Effective.IsOpen() &&
			revision.ObservationType == ObservationTypeActual &&
			revision.Milestone.IsTerminal() {
			return true
		}
	}

	return false
}
