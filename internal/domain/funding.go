package domain

import (
	"fmt"
	"time"

	"github.com/capital-schemes/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// FinancialRevision is one entry in a scheme's funding ledger.
type FinancialRevision struct {
	ID        uint // zero until persisted
	Effective types.DateRange
	Type      FinancialType
	Amount    decimal.Decimal
	Source    DataSource
}

// IsCurrentFundingAllocation reports whether the revision is the open,
// non-change-control funding allocation.
func (r FinancialRevision) IsCurrentFundingAllocation() bool {
	return r.Type == FinancialTypeFundingAllocation &&
		r.Source != DataSourceChangeControl &&
		r.Effective.IsOpen()
}

// IsCurrentSpentToDate reports whether the revision is the open spend to
// date figure.
func (r FinancialRevision) IsCurrentSpentToDate() bool {
	return r.Type == FinancialTypeSpentToDate && r.Effective.IsOpen()
}

func (r FinancialRevision) isOpenChangeControlAdjustment() bool {
	return r.Type == FinancialTypeFundingAllocation &&
		r.Source == DataSourceChangeControl &&
		r.Effective.IsOpen()
}

func (r FinancialRevision) String() string {
	return fmt.Sprintf("financial revision %s %s of %s %s", r.Type, r.Amount, r.Source, r.Effective)
}

// SchemeFunding is the append-only ledger of a scheme's financial revisions.
// Revisions are never removed, only closed and superseded.
type SchemeFunding struct {
	revisions []FinancialRevision
}

// FinancialRevisions returns a copy of the ledger. Mutating the returned
// slice does not change the ledger.
func (f *SchemeFunding) FinancialRevisions() []FinancialRevision {
	return slices.Clone(f.revisions)
}

// UpdateFinancial appends a revision to the ledger. It fails without
// modifying the ledger when the revision would be a second current funding
// allocation or a second current spend to date figure.
func (f *SchemeFunding) UpdateFinancial(revision FinancialRevision) error {
	if revision.IsCurrentFundingAllocation() {
		for _, existing := range f.revisions {
			if existing.IsCurrentFundingAllocation() {
				return DuplicateCurrentRevisionError{Existing: existing}
			}
		}
	}

	if revision.IsCurrentSpentToDate() {
		for _, existing := range f.revisions {
			if existing.IsCurrentSpentToDate() {
				return DuplicateCurrentRevisionError{Existing: existing}
			}
		}
	}

	f.revisions = append(f.revisions, revision)
	return nil
}

// UpdateFinancials appends revisions in the given order. This is also the
// path used to rebuild a ledger from storage, so the uniqueness checks run
// again on load.
func (f *SchemeFunding) UpdateFinancials(revisions ...FinancialRevision) error {
	for _, revision := range revisions {
		if err := f.UpdateFinancial(revision); err != nil {
			return err
		}
	}

	return nil
}

// UpdateSpentToDate closes the current spend to date revision, if one
// exists, and opens a new one with the given amount.
func (f *SchemeFunding) UpdateSpentToDate(now time.Time, amount decimal.Decimal) {
	for i, revision := range f.revisions {
		if revision.IsCurrentSpentToDate() {
			f.revisions[i].Effective = revision.Effective.ClosedAt(now)
			break
		}
	}

	f.revisions = append(f.revisions, FinancialRevision{
		Effective: types.OpenDateRange(now),
		Type:      FinancialTypeSpentToDate,
		Amount:    amount,
		Source:    DataSourceAuthorityUpdate,
	})
}

// FundingAllocation is the amount of the current funding allocation, or nil
// when there is none.
func (f *SchemeFunding) FundingAllocation() *decimal.Decimal {
	for _, revision := range f.revisions {
		if revision.IsCurrentFundingAllocation() {
			amount := revision.Amount
			return &amount
		}
	}

	return nil
}

// ChangeControlAdjustment is the sum of all open change control allocations,
// or nil when there are none. Unlike FundingAllocation this is a sum: change
// control adjustments accumulate.
func (f *SchemeFunding) ChangeControlAdjustment() *decimal.Decimal {
	var sum decimal.Decimal
	found := false

	for _, revision := range f.revisions {
		if revision.isOpenChangeControlAdjustment() {
			sum = sum.Add(revision.Amount)
			found = true
		}
	}

	if !found {
		return nil
	}

	return &sum
}

// SpentToDate is the amount of the current spend to date revision, or nil
// when there is none.
func (f *SchemeFunding) SpentToDate() *decimal.Decimal {
	for _, revision := range f.revisions {
		if revision.IsCurrentSpentToDate() {
			amount := revision.Amount
			return &amount
		}
	}

	return nil
}

// AllocationStillToSpend is allocation plus change control adjustment minus
// spend to date, with missing terms treated as zero.
func (f *SchemeFunding) AllocationStillToSpend() decimal.Decimal {
	remaining := decimal.Zero

	if allocation := f.FundingAllocation(); allocation != nil {
		remaining = remaining.Add(*allocation)
	}

	if adjustment := f.ChangeControlAdjustment(); adjustment != nil {
		remaining = remaining.Add(*adjustment)
	}

	if spent := f.SpentToDate(); spent != nil {
		remaining = remaining.Sub(*spent)
	}

	return remaining
}
