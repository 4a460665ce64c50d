// Package domain implements the revision ledger model for capital schemes.
//
// Every fact about a scheme (a milestone date, a funding amount, an output
// value) is stored as an append-only sequence of time-bounded revisions. The
// current value of a fact is the revision whose effective range is still
// open.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// enumIDs is a checked bijection between enum members and their stable
// storage ids. Construction panics on a duplicate id so a mapping bug fails
// at startup instead of silently merging members.
type enumIDs[E ~string] struct {
	name   string
	ids    map[E]int64
	byID   map[int64]E
}

func newEnumIDs[E ~string](name string, ids map[E]int64) enumIDs[E] {
	byID := make(map[int64]E, len(ids))
	for member, id := range ids {
		if existing, ok := byID[id]; ok {
			panic(fmt.Sprintf("%s: id %d is assigned to both %q and %q", name, id, existing, member))
		}
		byID[id] = member
	}

	return enumIDs[E]{name: name, ids: ids, byID: byID}
}

// id returns the storage id for a member.
func (e enumIDs[E]) id(member E) (int64, error) {
	id, ok := e.ids[member]
	if !ok {
		return 0, fmt.Errorf("unknown %s %q", e.name, string(member))
	}

	return id, nil
}

// fromID returns the member for a storage id.
func (e enumIDs[E]) fromID(id int64) (E, error) {
	member, ok := e.byID[id]
	if !ok {
		var zero E
		return zero, fmt.Errorf("unknown %s id %d", e.name, id)
	}

	return member, nil
}

// parse validates a label and returns the member it names.
func (e enumIDs[E]) parse(label string) (E, error) {
	member := E(label)
	if _, ok := e.ids[member]; !ok {
		var zero E
		return zero, fmt.Errorf("unknown %s %q", e.name, label)
	}

	return member, nil
}

func (e enumIDs[E]) value(member E) (driver.Value, error) {
	return e.id(member)
}

func (e enumIDs[E]) scan(target *E, value any) error {
	id, ok := value.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into %s", value, e.name)
	}

	member, err := e.fromID(id)
	if err != nil {
		return err
	}

	*target = member
	return nil
}

func (e enumIDs[E]) marshalJSON(member E) ([]byte, error) {
	if _, ok := e.ids[member]; !ok {
		return nil, fmt.Errorf("unknown %s %q", e.name, string(member))
	}

	return json.Marshal(string(member))
}

func (e enumIDs[E]) unmarshalJSON(target *E, data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}

	member, err := e.parse(label)
	if err != nil {
		return err
	}

	*target = member
	return nil
}

// FinancialType classifies what a financial revision records.
type FinancialType string

const (
	FinancialTypeExpectedCost      FinancialType = "expected cost"
	FinancialTypeActualCost        FinancialType = "actual cost"
	FinancialTypeFundingAllocation FinancialType = "funding allocation"
	FinancialTypeSpentToDate       FinancialType = "spent to date"
	FinancialTypeFundingRequest    FinancialType = "funding request"
)

var financialTypes = newEnumIDs("financial type", map[FinancialType]int64{
	FinancialTypeExpectedCost:      1,
	FinancialTypeActualCost:        2,
	FinancialTypeFundingAllocation: 3,
	FinancialTypeSpentToDate:       4,
	FinancialTypeFundingRequest:    5,
})

func ParseFinancialType(label string) (FinancialType, error) { return financialTypes.parse(label) }

func (t FinancialType) Value() (driver.Value, error) { return financialTypes.value(t) }
func (t *FinancialType) Scan(value any) error        { return financialTypes.scan(t, value) }
func (FinancialType) GormDataType() string           { return "integer" }

func (t FinancialType) MarshalJSON() ([]byte, error)  { return financialTypes.marshalJSON(t) }
func (t *FinancialType) UnmarshalJSON(b []byte) error { return financialTypes.unmarshalJSON(t, b) }

// Milestone is one stage in a scheme's delivery workflow.
type Milestone string

const (
	MilestonePublicConsultationCompleted Milestone = "public consultation completed"
	MilestoneFeasibilityDesignCompleted  Milestone = "feasibility design completed"
	MilestonePreliminaryDesignCompleted  Milestone = "preliminary design completed"
	MilestoneOutlineDesignCompleted      Milestone = "outline design completed"
	MilestoneDetailedDesignCompleted     Milestone = "detailed design completed"
	MilestoneConstructionStarted         Milestone = "construction started"
	MilestoneConstructionCompleted       Milestone = "construction completed"
	MilestoneInspection                  Milestone = "inspection"
	MilestoneNotProgressed               Milestone = "not progressed"
	MilestoneSuperseded                  Milestone = "superseded"
	MilestoneRemoved                     Milestone = "removed"
)

var milestones = newEnumIDs("milestone", map[Milestone]int64{
	MilestonePublicConsultationCompleted: 1,
	MilestoneFeasibilityDesignCompleted:  2,
	MilestonePreliminaryDesignCompleted:  3,
	MilestoneOutlineDesignCompleted:      4,
	MilestoneDetailedDesignCompleted:     5,
	MilestoneConstructionStarted:         6,
	MilestoneConstructionCompleted:       7,
	MilestoneInspection:                  8,
	MilestoneNotProgressed:               9,
	MilestoneSuperseded:                  10,
	MilestoneRemoved:                     11,
})

// milestoneOrder is the explicit workflow order used to pick the furthest
// progressed milestone. The terminal states (not progressed, superseded,
// removed) carry no ordinal and never count as progress.
var milestoneOrder = []Milestone{
	MilestonePublicConsultationCompleted,
	MilestoneFeasibilityDesignCompleted,
	MilestonePreliminaryDesignCompleted,
	MilestoneOutlineDesignCompleted,
	MilestoneDetailedDesignCompleted,
	MilestoneConstructionStarted,
	MilestoneConstructionCompleted,
	MilestoneInspection,
}

var milestoneOrdinals = func() map[Milestone]int {
	ordinals := make(map[Milestone]int, len(milestoneOrder))
	for i, m := range milestoneOrder {
		ordinals[m] = i
	}
	return ordinals
}()

// Ordinal returns the position of the milestone in the delivery workflow.
// Terminal states have no position.
func (m Milestone) Ordinal() (int, bool) {
	ordinal, ok := milestoneOrdinals[m]
	return ordinal, ok
}

// IsTerminal reports whether the milestone is a non-progress end state.
func (m Milestone) IsTerminal() bool {
	switch m {
	case MilestoneNotProgressed, MilestoneSuperseded, MilestoneRemoved:
		return true
	}
	return false
}

func ParseMilestone(label string) (Milestone, error) { return milestones.parse(label) }

func (m Milestone) Value() (driver.Value, error) { return milestones.value(m) }
func (m *Milestone) Scan(value any) error        { return milestones.scan(m, value) }
func (Milestone) GormDataType() string           { return "integer" }

func (m Milestone) MarshalJSON() ([]byte, error)  { return milestones.marshalJSON(m) }
func (m *Milestone) UnmarshalJSON(b []byte) error { return milestones.unmarshalJSON(m, b) }

// ObservationType distinguishes forecast dates from confirmed ones.
type ObservationType string

const (
	ObservationTypePlanned ObservationType = "planned"
	ObservationTypeActual  ObservationType = "actual"
)

var observationTypes = newEnumIDs("observation type", map[ObservationType]int64{
	ObservationTypePlanned: 1,
	ObservationTypeActual:  2,
})

func ParseObservationType(label string) (ObservationType, error) {
	return observationTypes.parse(label)
}

func (t ObservationType) Value() (driver.Value, error) { return observationTypes.value(t) }
func (t *ObservationType) Scan(value any) error        { return observationTypes.scan(t, value) }
func (ObservationType) GormDataType() string           { return "integer" }

func (t ObservationType) MarshalJSON() ([]byte, error)  { return observationTypes.marshalJSON(t) }
func (t *ObservationType) UnmarshalJSON(b []byte) error { return observationTypes.unmarshalJSON(t, b) }

// DataSource records why a revision exists - which data feed, bid round or
// authority action produced it.
type DataSource string

const (
	DataSourcePulse5                          DataSource = "Pulse 5"
	DataSourcePulse6                          DataSource = "Pulse 6"
	DataSourceATF4Bid                         DataSource = "ATF4 bid"
	DataSourceATF3Bid                         DataSource = "ATF3 bid"
	DataSourceInspectorateReview              DataSource = "inspectorate review"
	DataSourceRegionalEngagementManagerReview DataSource = "regional engagement manager review"
	DataSourceInvestmentTeamReview            DataSource = "investment team review"
	DataSourceChangeControl                   DataSource = "change control"
	DataSourceAuthorityUpdate                 DataSource = "authority update"
	DataSourceUnknown                         DataSource = "unknown"
)

var dataSources = newEnumIDs("data source", map[DataSource]int64{
	DataSourcePulse5:                          1,
	DataSourcePulse6:                          2,
	DataSourceATF4Bid:                         3,
	DataSourceATF3Bid:                         4,
	DataSourceInspectorateReview:              5,
	DataSourceRegionalEngagementManagerReview: 6,
	DataSourceInvestmentTeamReview:            7,
	DataSourceChangeControl:                   8,
	DataSourceAuthorityUpdate:                 9,
	DataSourceUnknown:                         10,
})

func ParseDataSource(label string) (DataSource, error) { return dataSources.parse(label) }

func (s DataSource) Value() (driver.Value, error) { return dataSources.value(s) }
func (s *DataSource) Scan(value any) error        { return dataSources.scan(s, value) }
func (DataSource) GormDataType() string           { return "integer" }

func (s DataSource) MarshalJSON() ([]byte, error)  { return dataSources.marshalJSON(s) }
func (s *DataSource) UnmarshalJSON(b []byte) error { return dataSources.unmarshalJSON(s, b) }

// SchemeType says whether a scheme is being designed or built.
type SchemeType string

const (
	SchemeTypeDevelopment  SchemeType = "development"
	SchemeTypeConstruction SchemeType = "construction"
)

var schemeTypes = newEnumIDs("scheme type", map[SchemeType]int64{
	SchemeTypeDevelopment:  1,
	SchemeTypeConstruction: 2,
})

func ParseSchemeType(label string) (SchemeType, error) { return schemeTypes.parse(label) }

func (t SchemeType) Value() (driver.Value, error) { return schemeTypes.value(t) }
func (t *SchemeType) Scan(value any) error        { return schemeTypes.scan(t, value) }
func (SchemeType) GormDataType() string           { return "integer" }

func (t SchemeType) MarshalJSON() ([]byte, error)  { return schemeTypes.marshalJSON(t) }
func (t *SchemeType) UnmarshalJSON(b []byte) error { return schemeTypes.unmarshalJSON(t, b) }

// FundingProgramme is the programme a scheme is funded under.
type FundingProgramme string

const (
	FundingProgrammeATF2   FundingProgramme = "ATF2"
	FundingProgrammeATF3   FundingProgramme = "ATF3"
	FundingProgrammeATF4   FundingProgramme = "ATF4"
	FundingProgrammeATF4e  FundingProgramme = "ATF4e"
	FundingProgrammeCRSTS1 FundingProgramme = "CRSTS1"
	FundingProgrammeLUF1   FundingProgramme = "LUF1"
)

var fundingProgrammes = newEnumIDs("funding programme", map[FundingProgramme]int64{
	FundingProgrammeATF2:   1,
	FundingProgrammeATF3:   2,
	FundingProgrammeATF4:   3,
	FundingProgrammeATF4e:  4,
	FundingProgrammeCRSTS1: 5,
	FundingProgrammeLUF1:   6,
})

// eligibleProgrammes are the programmes authorities may update themselves.
// CRSTS1 is reported through a separate process, LUF1 is under embargo while
// allocations are agreed.
var eligibleProgrammes = map[FundingProgramme]bool{
	FundingProgrammeATF2:  true,
	FundingProgrammeATF3:  true,
	FundingProgrammeATF4:  true,
	FundingProgrammeATF4e: true,
}

var embargoedProgrammes = map[FundingProgramme]bool{
	FundingProgrammeLUF1: true,
}

// IsEligibleForAuthorityUpdate reports whether authorities can self-serve
// updates for schemes in this programme.
func (p FundingProgramme) IsEligibleForAuthorityUpdate() bool {
	return eligibleProgrammes[p]
}

// IsUnderEmbargo reports whether updates for this programme are currently
// embargoed.
func (p FundingProgramme) IsUnderEmbargo() bool {
	return embargoedProgrammes[p]
}

func ParseFundingProgramme(label string) (FundingProgramme, error) {
	return fundingProgrammes.parse(label)
}

func (p FundingProgramme) Value() (driver.Value, error) { return fundingProgrammes.value(p) }
func (p *FundingProgramme) Scan(value any) error        { return fundingProgrammes.scan(p, value) }
func (FundingProgramme) GormDataType() string           { return "integer" }

func (p FundingProgramme) MarshalJSON() ([]byte, error)  { return fundingProgrammes.marshalJSON(p) }
func (p *FundingProgramme) UnmarshalJSON(b []byte) error { return fundingProgrammes.unmarshalJSON(p, b) }

// BidStatus is the funding decision state of the bid behind a scheme.
type BidStatus string

const (
	BidStatusSubmitted BidStatus = "submitted"
	BidStatusFunded    BidStatus = "funded"
	BidStatusNotFunded BidStatus = "not funded"
	BidStatusSplit     BidStatus = "split"
	BidStatusDeleted   BidStatus = "deleted"
)

var bidStatuses = newEnumIDs("bid status", map[BidStatus]int64{
	BidStatusSubmitted: 1,
	BidStatusFunded:    2,
	BidStatusNotFunded: 3,
	BidStatusSplit:     4,
	BidStatusDeleted:   5,
})

func ParseBidStatus(label string) (BidStatus, error) { return bidStatuses.parse(label) }

func (s BidStatus) Value() (driver.Value, error) { return bidStatuses.value(s) }
func (s *BidStatus) Scan(value any) error        { return bidStatuses.scan(s, value) }
func (BidStatus) GormDataType() string           { return "integer" }

func (s BidStatus) MarshalJSON() ([]byte, error)  { return bidStatuses.marshalJSON(s) }
func (s *BidStatus) UnmarshalJSON(b []byte) error { return bidStatuses.unmarshalJSON(s, b) }

// OutputType is the kind of infrastructure a scheme delivers.
type OutputType string

const (
	OutputTypeNewSegregatedCyclingFacility OutputType = "new segregated cycling facility"
	OutputTypeImprovementsToExistingRoute  OutputType = "improvements to make an existing walking/cycle route safer"
	OutputTypeNewJunctionTreatment         OutputType = "new junction treatment"
	OutputTypeNewPermanentFootway          OutputType = "new permanent footway"
	OutputTypeAreaWideTrafficManagement    OutputType = "area-wide traffic management"
	OutputTypeBusPriorityMeasures          OutputType = "bus priority measures"
	OutputTypeSchoolStreets                OutputType = "school streets"
)

var outputTypes = newEnumIDs("output type", map[OutputType]int64{
	OutputTypeNewSegregatedCyclingFacility: 1,
	OutputTypeImprovementsToExistingRoute:  2,
	OutputTypeNewJunctionTreatment:         3,
	OutputTypeNewPermanentFootway:          4,
	OutputTypeAreaWideTrafficManagement:    5,
	OutputTypeBusPriorityMeasures:          6,
	OutputTypeSchoolStreets:                7,
})

func ParseOutputType(label string) (OutputType, error) { return outputTypes.parse(label) }

func (t OutputType) Value() (driver.Value, error) { return outputTypes.value(t) }
func (t *OutputType) Scan(value any) error        { return outputTypes.scan(t, value) }
func (OutputType) GormDataType() string           { return "integer" }

func (t OutputType) MarshalJSON() ([]byte, error)  { return outputTypes.marshalJSON(t) }
func (t *OutputType) UnmarshalJSON(b []byte) error { return outputTypes.unmarshalJSON(t, b) }

// OutputMeasure is the unit an output value is measured in.
type OutputMeasure string

const (
	OutputMeasureMiles             OutputMeasure = "miles"
	OutputMeasureNumberOfJunctions OutputMeasure = "number of junctions"
	OutputMeasureSquareMetres      OutputMeasure = "square metres"
	OutputMeasureUnits             OutputMeasure = "units"
	OutputMeasureParkingSpaces     OutputMeasure = "number of parking spaces"
	OutputMeasureSchoolStreets     OutputMeasure = "number of school streets"
)

var outputMeasures = newEnumIDs("output measure", map[OutputMeasure]int64{
	OutputMeasureMiles:             1,
	OutputMeasureNumberOfJunctions: 2,
	OutputMeasureSquareMetres:      3,
	OutputMeasureUnits:             4,
	OutputMeasureParkingSpaces:     5,
	OutputMeasureSchoolStreets:     6,
})

func ParseOutputMeasure(label string) (OutputMeasure, error) { return outputMeasures.parse(label) }

func (m OutputMeasure) Value() (driver.Value, error) { return outputMeasures.value(m) }
func (m *OutputMeasure) Scan(value any) error        { return outputMeasures.scan(m, value) }
func (OutputMeasure) GormDataType() string           { return "integer" }

func (m OutputMeasure) MarshalJSON() ([]byte, error)  { return outputMeasures.marshalJSON(m) }
func (m *OutputMeasure) UnmarshalJSON(b []byte) error { return outputMeasures.unmarshalJSON(m, b) }
