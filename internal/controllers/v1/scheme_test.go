package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/capital-schemes/backend/internal/controllers/v1"
	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// importTestScheme imports a scheme over the API and returns it.
func (suite *TestSuiteStandard) importTestScheme(editable v1.SchemeEditable) v1.Scheme {
	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/schemes", []v1.SchemeEditable{editable})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SchemeImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)

	return *response.Data[0].Data
}

func (suite *TestSuiteStandard) TestOptionsSchemes() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/schemes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "PUT", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsSchemeDetail() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/schemes/1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/schemes/1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestImportSchemes() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	scheme := suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	assert.Equal(suite.T(), "ATE00001", scheme.Reference)
	assert.Equal(suite.T(), "http://example.com/v1/schemes/1", scheme.Links.Self)
	assert.True(suite.T(), scheme.Updateable)
	assert.True(suite.T(), scheme.NeedsReview)
	assert.Nil(suite.T(), scheme.LastReviewed)
}

func (suite *TestSuiteStandard) TestImportSchemesRoundTrip() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	imported := suite.defaultSchemeEditable(1, 1)
	suite.importTestScheme(imported)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/schemes/1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SchemeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	// The export contains exactly what was imported, ids included
	exported := response.Data.SchemeEditable
	assert.Equal(suite.T(), imported.Name, exported.Name)
	assert.Equal(suite.T(), imported.BidStatus, exported.BidStatus)

	require.Len(suite.T(), exported.FinancialRevisions, 2)
	assert.Equal(suite.T(), uint(11), exported.FinancialRevisions[0].ID)
	assert.True(suite.T(), exported.FinancialRevisions[0].DateFrom.Equal(imported.FinancialRevisions[0].DateFrom))
	assert.Nil(suite.T(), exported.FinancialRevisions[0].DateTo)
	assert.True(suite.T(), exported.FinancialRevisions[0].Amount.Equal(decimal.NewFromInt(100000)))

	require.Len(suite.T(), exported.MilestoneRevisions, 1)
	assert.Equal(suite.T(), uint(13), exported.MilestoneRevisions[0].ID)
	assert.Equal(suite.T(), domain.MilestoneDetailedDesignCompleted, exported.MilestoneRevisions[0].Milestone)

	require.Len(suite.T(), exported.OutputRevisions, 1)
	assert.Equal(suite.T(), uint(14), exported.OutputRevisions[0].ID)
	assert.True(suite.T(), exported.OutputRevisions[0].Value.Equal(decimal.RequireFromString("1.5")))

	assert.NotNil(suite.T(), exported.AuthorityReviews)
	assert.Empty(suite.T(), exported.AuthorityReviews)
}

func (suite *TestSuiteStandard) TestImportSchemesDerivedFunding() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	scheme := suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	require.NotNil(suite.T(), scheme.Funding.FundingAllocation)
	assert.True(suite.T(), scheme.Funding.FundingAllocation.Equal(decimal.NewFromInt(100000)))
	assert.Nil(suite.T(), scheme.Funding.ChangeControlAdjustment)
	require.NotNil(suite.T(), scheme.Funding.SpentToDate)
	assert.True(suite.T(), scheme.Funding.SpentToDate.Equal(decimal.NewFromInt(50000)))
	assert.True(suite.T(), scheme.Funding.AllocationStillToSpend.Equal(decimal.NewFromInt(50000)))

	require.NotNil(suite.T(), scheme.CurrentMilestone)
	assert.Equal(suite.T(), domain.MilestoneDetailedDesignCompleted, *scheme.CurrentMilestone)
}

func (suite *TestSuiteStandard) TestImportSchemesInvalidBody() {
	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/schemes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPut, "http://example.com/v1/schemes", "not json")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportSchemesDuplicateCurrentRevision() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	editable := suite.defaultSchemeEditable(1, 1)
	duplicate := editable.FinancialRevisions[0]
	duplicate.ID = 19
	editable.FinancialRevisions = append(editable.FinancialRevisions, duplicate)

	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/schemes", []v1.SchemeEditable{editable})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.SchemeImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.NotNil(suite.T(), response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestImportSchemesPartialFailure() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	// The second scheme references an authority that does not exist. It
	// fails, the first one is still imported.
	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/schemes", []v1.SchemeEditable{
		suite.defaultSchemeEditable(1, 1),
		suite.defaultSchemeEditable(2, 42),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.SchemeImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	assert.NotNil(suite.T(), response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestGetSchemeNotFound() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/schemes/42", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetSchemeDBError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/schemes/1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestUpdateSpentToDate() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/spend-to-date", v1.SpentToDateEditable{
		Amount: decimal.NewFromInt(60000),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SchemeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	require.NotNil(suite.T(), response.Data.Funding.SpentToDate)
	assert.True(suite.T(), response.Data.Funding.SpentToDate.Equal(decimal.NewFromInt(60000)))
	assert.True(suite.T(), response.Data.Funding.AllocationStillToSpend.Equal(decimal.NewFromInt(40000)))

	// The previous revision is closed, not replaced
	require.Len(suite.T(), response.Data.FinancialRevisions, 3)
	assert.NotNil(suite.T(), response.Data.FinancialRevisions[1].DateTo)
	assert.Nil(suite.T(), response.Data.FinancialRevisions[2].DateTo)
	assert.Equal(suite.T(), domain.DataSourceAuthorityUpdate, response.Data.FinancialRevisions[2].Source)
}

func (suite *TestSuiteStandard) TestUpdateSpentToDateNegativeAmount() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/spend-to-date", v1.SpentToDateEditable{
		Amount: decimal.NewFromInt(-1),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateSpentToDateNotUpdateable() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	editable := suite.defaultSchemeEditable(1, 1)
	editable.BidStatus = domain.BidStatusSubmitted
	suite.importTestScheme(editable)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/spend-to-date", v1.SpentToDateEditable{
		Amount: decimal.NewFromInt(60000),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestUpdateSpentToDateEmbargoedProgramme() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	editable := suite.defaultSchemeEditable(1, 1)
	programme := domain.FundingProgrammeLUF1
	editable.FundingProgramme = &programme
	suite.importTestScheme(editable)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/spend-to-date", v1.SpentToDateEditable{
		Amount: decimal.NewFromInt(60000),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestUpdateSpentToDateNotFound() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/42/spend-to-date", v1.SpentToDateEditable{
		Amount: decimal.NewFromInt(60000),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateMilestoneDate() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	statusDate := suite.date("2023-04-20T00:00:00Z")
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/milestones", v1.MilestoneDateEditable{
		Milestone:       domain.MilestoneDetailedDesignCompleted,
		ObservationType: domain.ObservationTypeActual,
		StatusDate:      statusDate,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SchemeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	require.Len(suite.T(), response.Data.MilestoneRevisions, 2)
	assert.NotNil(suite.T(), response.Data.MilestoneRevisions[0].DateTo)
	assert.Nil(suite.T(), response.Data.MilestoneRevisions[1].DateTo)
	assert.True(suite.T(), response.Data.MilestoneRevisions[1].StatusDate.Equal(statusDate))
	assert.Equal(suite.T(), domain.DataSourceAuthorityUpdate, response.Data.MilestoneRevisions[1].Source)
}

func (suite *TestSuiteStandard) TestUpdateMilestoneDateNotEligible() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	// Construction milestones are not available for development schemes
	editable := suite.defaultSchemeEditable(1, 1)
	schemeType := domain.SchemeTypeDevelopment
	editable.Type = &schemeType
	suite.importTestScheme(editable)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/milestones", v1.MilestoneDateEditable{
		Milestone:       domain.MilestoneConstructionStarted,
		ObservationType: domain.ObservationTypeActual,
		StatusDate:      suite.date("2023-04-20T00:00:00Z"),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateMilestoneDateNotUpdateable() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	editable := suite.defaultSchemeEditable(1, 1)
	editable.BidStatus = domain.BidStatusNotFunded
	suite.importTestScheme(editable)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/milestones", v1.MilestoneDateEditable{
		Milestone:       domain.MilestoneDetailedDesignCompleted,
		ObservationType: domain.ObservationTypeActual,
		StatusDate:      suite.date("2023-04-20T00:00:00Z"),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestCreateReview() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	reviewDate := time.Now().UTC()
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/1/reviews", v1.ReviewEditable{
		ReviewDate: reviewDate,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SchemeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	require.NotNil(suite.T(), response.Data.LastReviewed)
	assert.True(suite.T(), response.Data.LastReviewed.Equal(reviewDate))
	assert.False(suite.T(), response.Data.NeedsReview)

	require.Len(suite.T(), response.Data.AuthorityReviews, 1)
	assert.Equal(suite.T(), domain.DataSourceAuthorityUpdate, response.Data.AuthorityReviews[0].Source)
}

func (suite *TestSuiteStandard) TestCreateReviewNotFound() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/schemes/42/reviews", v1.ReviewEditable{
		ReviewDate: time.Now().UTC(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
