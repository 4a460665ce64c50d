package domain

import (
	"github.com/capital-schemes/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// OutputRevision records a planned or actual output value for a type and
// measure, e.g. 1.5 miles of new segregated cycling facility.
type OutputRevision struct {
	ID              uint // zero until persisted
	Effective       types.DateRange
	Type            OutputType
	Measure         OutputMeasure
	ObservationType ObservationType
	Value           decimal.Decimal
}

// SchemeOutputs is the append-only ledger of a scheme's output revisions.
// Planned and actual values for the same type and measure coexist, so there
// is no uniqueness rule here.
type SchemeOutputs struct {
	revisions []OutputRevision
}

// OutputRevisions returns a copy of the ledger.
func (o *SchemeOutputs) OutputRevisions() []OutputRevision {
	return slices.Clone(o.revisions)
}

// CurrentOutputRevisions returns the revisions that are currently in effect.
func (o *SchemeOutputs) CurrentOutputRevisions() []OutputRevision {
	var current []OutputRevision
	for _, revision := range o.revisions {
		if revision.Effective.IsOpen() {
			current = append(current, revision)
		}
	}

	return current
}

// UpdateOutput appends a revision to the ledger.
func (o *SchemeOutputs) UpdateOutput(revision OutputRevision) {
	o.revisions = append(o.revisions, revision)
}

// UpdateOutputs appends revisions in the given order.
func (o *SchemeOutputs) UpdateOutputs(revisions ...OutputRevision) {
	o.revisions = append(o.revisions, revisions...)
}
