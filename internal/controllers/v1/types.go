package v1

import (
	"fmt"
	"time"

	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/internal/models"
	"github.com/capital-schemes/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type URIID struct {
	ID uint `uri:"id" binding:"required"` // The ID of the resource
}

type URIAuthorityID struct {
	AuthorityID uint `uri:"authority_id" binding:"required"` // The ID of the authority
}

// AuthorityEditable represents all user configurable parameters
type AuthorityEditable struct {
	ID   uint   `json:"id" example:"1"`                               // ID of the authority
	Name string `json:"name" example:"Liverpool City Region Combined Authority"` // Name of the authority
}

func (editable AuthorityEditable) model() domain.Authority {
	return domain.Authority{
		ID:   editable.ID,
		Name: editable.Name,
	}
}

type AuthorityLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/authorities/1"`            // The authority itself
	Schemes string `json:"schemes" example:"https://example.com/api/v1/authorities/1/schemes"` // Schemes for this authority
	Users   string `json:"users" example:"https://example.com/api/v1/authorities/1/users"`     // Users for this authority
}

type Authority struct {
	AuthorityEditable
	Links AuthorityLinks `json:"links"`
}

func newAuthority(c *gin.Context, model domain.Authority) Authority {
	url := c.GetString(string(models.DBContextURL))

	return Authority{
		AuthorityEditable: AuthorityEditable{
			ID:   model.ID,
			Name: model.Name,
		},
		Links: AuthorityLinks{
			Self:    fmt.Sprintf("%s/v1/authorities/%d", url, model.ID),
			Schemes: fmt.Sprintf("%s/v1/authorities/%d/schemes", url, model.ID),
			Users:   fmt.Sprintf("%s/v1/authorities/%d/users", url, model.ID),
		},
	}
}

type AuthorityResponse struct {
	Data  *Authority `json:"data"`                                             // Data for the authority
	Error *string    `json:"error" example:"the authority name must be unique"` // The error, if any occurred
}

type AuthorityCreateResponse struct {
	Data  []AuthorityResponse `json:"data"`                                             // List of the created authorities or their respective error
	Error *string             `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

func (r *AuthorityCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AuthorityResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Email string `json:"email" example:"planner@example.gov.uk"` // Email address of the user
}

type User struct {
	ID          uint   `json:"id" example:"1"`                         // ID of the user
	Email       string `json:"email" example:"planner@example.gov.uk"` // Email address of the user
	AuthorityID uint   `json:"authorityId" example:"1"`                // ID of the authority the user belongs to
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the user
	Error *string `json:"error" example:"a user with this email address already exists"` // The error, if any occurred
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                               // List of the created users or their respective error
	Error *string        `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

func (r *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, UserResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// FinancialRevision is one entry of a scheme's funding ledger in its API
// representation. The effective range serializes flat as effectiveDateFrom
// and effectiveDateTo, with effectiveDateTo null while the revision is
// current.
type FinancialRevision struct {
	ID uint `json:"id" example:"1"`
	types.DateRange
	Type   domain.FinancialType `json:"type" example:"funding allocation"`
	Amount decimal.Decimal      `json:"amount" example:"100000"`
	Source domain.DataSource    `json:"source" example:"ATF4 bid"`
}

func (r FinancialRevision) model() (domain.FinancialRevision, error) {
	effective, err := types.NewDateRange(r.DateFrom, r.DateTo)
	if err != nil {
		return domain.FinancialRevision{}, err
	}

	return domain.FinancialRevision{
		ID:        r.ID,
		Effective: effective,
		Type:      r.Type,
		Amount:    r.Amount,
		Source:    r.Source,
	}, nil
}

func newFinancialRevision(model domain.FinancialRevision) FinancialRevision {
	return FinancialRevision{
		ID:        model.ID,
		DateRange: model.Effective,
		Type:      model.Type,
		Amount:    model.Amount,
		Source:    model.Source,
	}
}

type MilestoneRevision struct {
	ID uint `json:"id" example:"1"`
	types.DateRange
	Milestone       domain.Milestone       `json:"milestone" example:"detailed design completed"`
	ObservationType domain.ObservationType `json:"observationType" example:"actual"`
	StatusDate      time.Time              `json:"statusDate" example:"2023-01-02T00:00:00Z"`
	Source          domain.DataSource      `json:"source" example:"authority update"`
}

func (r MilestoneRevision) model() (domain.MilestoneRevision, error) {
	effective, err := types.NewDateRange(r.DateFrom, r.DateTo)
	if err != nil {
		return domain.MilestoneRevision{}, err
	}

	return domain.MilestoneRevision{
		ID:              r.ID,
		Effective:       effective,
		Milestone:       r.Milestone,
		ObservationType: r.ObservationType,
		StatusDate:      r.StatusDate,
		Source:          r.Source,
	}, nil
}

func newMilestoneRevision(model domain.MilestoneRevision) MilestoneRevision {
	return MilestoneRevision{
		ID:              model.ID,
		DateRange:       model.Effective,
		Milestone:       model.Milestone,
		ObservationType: model.ObservationType,
		StatusDate:      model.StatusDate,
		Source:          model.Source,
	}
}

type OutputRevision struct {
	ID uint `json:"id" example:"1"`
	types.DateRange
	Type            domain.OutputType      `json:"type" example:"new segregated cycling facility"`
	Measure         domain.OutputMeasure   `json:"measure" example:"miles"`
	ObservationType domain.ObservationType `json:"observationType" example:"planned"`
	Value           decimal.Decimal        `json:"value" example:"1.5"`
}

func (r OutputRevision) model() (domain.OutputRevision, error) {
	effective, err := types.NewDateRange(r.DateFrom, r.DateTo)
	if err != nil {
		return domain.OutputRevision{}, err
	}

	return domain.OutputRevision{
		ID:              r.ID,
		Effective:       effective,
		Type:            r.Type,
		Measure:         r.Measure,
		ObservationType: r.ObservationType,
		Value:           r.Value,
	}, nil
}

func newOutputRevision(model domain.OutputRevision) OutputRevision {
	return OutputRevision{
		ID:              model.ID,
		DateRange:       model.Effective,
		Type:            model.Type,
		Measure:         model.Measure,
		ObservationType: model.ObservationType,
		Value:           model.Value,
	}
}

type AuthorityReview struct {
	ID         uint              `json:"id" example:"1"`
	ReviewDate time.Time         `json:"reviewDate" example:"2023-01-02T00:00:00Z"`
	Source     domain.DataSource `json:"source" example:"authority update"`
}

func (r AuthorityReview) model() domain.AuthorityReview {
	return domain.AuthorityReview{
		ID:         r.ID,
		ReviewDate: r.ReviewDate,
		Source:     r.Source,
	}
}

func newAuthorityReview(model domain.AuthorityReview) AuthorityReview {
	return AuthorityReview{
		ID:         model.ID,
		ReviewDate: model.ReviewDate,
		Source:     model.Source,
	}
}

// SchemeEditable is the full import representation of a scheme, including
// every revision ledger. IDs are assigned by the caller.
type SchemeEditable struct {
	ID                 uint                     `json:"id" example:"1"`
	Name               string                   `json:"name" example:"Hospital Fields Road"`
	AuthorityID        uint                     `json:"authorityId" example:"1"`
	Type               *domain.SchemeType       `json:"type" example:"construction"`
	FundingProgramme   *domain.FundingProgramme `json:"fundingProgramme" example:"ATF4"`
	BidStatus          domain.BidStatus         `json:"bidStatus" example:"funded"`
	FinancialRevisions []FinancialRevision      `json:"financialRevisions"`
	MilestoneRevisions []MilestoneRevision      `json:"milestoneRevisions"`
	OutputRevisions    []OutputRevision         `json:"outputRevisions"`
	AuthorityReviews   []AuthorityReview        `json:"authorityReviews"`
}

// model rebuilds the aggregate by replaying every revision, so the ledger
// invariants and date range validity are checked on import.
func (editable SchemeEditable) model() (*domain.Scheme, error) {
	scheme := domain.Scheme{
		ID:               editable.ID,
		Name:             editable.Name,
		AuthorityID:      editable.AuthorityID,
		Type:             editable.Type,
		FundingProgramme: editable.FundingProgramme,
		BidStatus:        editable.BidStatus,
	}

	for _, revision := range editable.FinancialRevisions {
		model, err := revision.model()
		if err != nil {
			return nil, err
		}

		if err := scheme.Funding.UpdateFinancial(model); err != nil {
			return nil, err
		}
	}

	for _, revision := range editable.MilestoneRevisions {
		model, err := revision.model()
		if err != nil {
			return nil, err
		}

		if err := scheme.Milestones.UpdateMilestone(model); err != nil {
			return nil, err
		}
	}

	for _, revision := range editable.OutputRevisions {
		model, err := revision.model()
		if err != nil {
			return nil, err
		}

		scheme.Outputs.UpdateOutput(model)
	}

	for _, review := range editable.AuthorityReviews {
		scheme.Reviews.UpdateAuthorityReview(review.model())
	}

	return &scheme, nil
}

func newSchemeEditable(model *domain.Scheme) SchemeEditable {
	editable := SchemeEditable{
		ID:                 model.ID,
		Name:               model.Name,
		AuthorityID:        model.AuthorityID,
		Type:               model.Type,
		FundingProgramme:   model.FundingProgramme,
		BidStatus:          model.BidStatus,
		FinancialRevisions: make([]FinancialRevision, 0),
		MilestoneRevisions: make([]MilestoneRevision, 0),
		OutputRevisions:    make([]OutputRevision, 0),
		AuthorityReviews:   make([]AuthorityReview, 0),
	}

	for _, revision := range model.Funding.FinancialRevisions() {
		editable.FinancialRevisions = append(editable.FinancialRevisions, newFinancialRevision(revision))
	}

	for _, revision := range model.Milestones.MilestoneRevisions() {
		editable.MilestoneRevisions = append(editable.MilestoneRevisions, newMilestoneRevision(revision))
	}

	for _, revision := range model.Outputs.OutputRevisions() {
		editable.OutputRevisions = append(editable.OutputRevisions, newOutputRevision(revision))
	}

	for _, review := range model.Reviews.AuthorityReviews() {
		editable.AuthorityReviews = append(editable.AuthorityReviews, newAuthorityReview(review))
	}

	return editable
}

// SchemeFunding carries the funding figures derived from the ledger.
type SchemeFunding struct {
	FundingAllocation       *decimal.Decimal `json:"fundingAllocation" example:"100000"`      // Current funding allocation, null when there is none
	ChangeControlAdjustment *decimal.Decimal `json:"changeControlAdjustment" example:"10000"` // Sum of the open change control adjustments, null when there are none
	SpentToDate             *decimal.Decimal `json:"spentToDate" example:"50000"`             // Current spend to date figure, null when there is none
	AllocationStillToSpend  decimal.Decimal  `json:"allocationStillToSpend" example:"60000"`  // Allocation plus adjustments minus spend, missing terms count as zero
}

type SchemeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/schemes/1"` // The scheme itself
}

type Scheme struct {
	SchemeEditable
	Reference        string            `json:"reference" example:"ATE00001"`                    // Display reference derived from the ID
	Funding          SchemeFunding     `json:"funding"`                                         // Derived funding figures
	CurrentMilestone *domain.Milestone `json:"currentMilestone" example:"construction started"` // Furthest progressed milestone, null without confirmed progress
	LastReviewed     *time.Time        `json:"lastReviewed" example:"2023-01-02T00:00:00Z"`     // Most recent authority review, null when never reviewed
	NeedsReview      bool              `json:"needsReview" example:"true"`                      // Whether the scheme has not been reviewed in the current reporting window
	Updateable       bool              `json:"updateable" example:"true"`                       // Whether the authority may update the scheme
	Links            SchemeLinks       `json:"links"`
}

func newScheme(c *gin.Context, model *domain.Scheme, window types.ReportingWindow) Scheme {
	url := c.GetString(string(models.DBContextURL))

	return Scheme{
		SchemeEditable: newSchemeEditable(model),
		Reference:      model.Reference(),
		Funding: SchemeFunding{
			FundingAllocation:       model.Funding.FundingAllocation(),
			ChangeControlAdjustment: model.Funding.ChangeControlAdjustment(),
			SpentToDate:             model.Funding.SpentToDate(),
			AllocationStillToSpend:  model.Funding.AllocationStillToSpend(),
		},
		CurrentMilestone: model.Milestones.CurrentMilestone(),
		LastReviewed:     model.Reviews.LastReviewed(),
		NeedsReview:      model.Reviews.NeedsReview(window),
		Updateable:       model.IsUpdateable(),
		Links: SchemeLinks{
			Self: fmt.Sprintf("%s/v1/schemes/%d", url, model.ID),
		},
	}
}

type SchemeResponse struct {
	Data  *Scheme `json:"data"`                                                 // Data for the scheme
	Error *string `json:"error" example:"a current revision already exists"` // The error, if any occurred
}

type SchemeListResponse struct {
	Data  []Scheme `json:"data"`                                                  // List of schemes
	Error *string  `json:"error" example:"there is no authority matching your query"` // The error, if any occurred
}

type SchemeImportResponse struct {
	Data  []SchemeResponse `json:"data"`                                               // List of the imported schemes or their respective error
	Error *string          `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

func (r *SchemeImportResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, SchemeResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SchemeQueryFilter struct {
	Name string `form:"name" example:"Hospital*"` // Glob pattern matched against scheme names
}

// SpentToDateEditable is the body of a spend to date update.
type SpentToDateEditable struct {
	Amount decimal.Decimal `json:"amount" example:"50000"` // Cumulative amount spent
}

// MilestoneDateEditable is the body of a milestone date update.
type MilestoneDateEditable struct {
	Milestone       domain.Milestone       `json:"milestone" example:"detailed design completed"`
	ObservationType domain.ObservationType `json:"observationType" example:"actual"`
	StatusDate      time.Time              `json:"statusDate" example:"2023-01-02T00:00:00Z"`
}

// ReviewEditable is the body of an authority review confirmation.
type ReviewEditable struct {
	ReviewDate time.Time `json:"reviewDate" example:"2023-01-02T00:00:00Z"`
}
