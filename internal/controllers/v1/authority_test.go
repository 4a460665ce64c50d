package v1_test

import (
	"net/http"

	v1 "github.com/capital-schemes/backend/internal/controllers/v1"
	"github.com/capital-schemes/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestAuthority creates an authority over the API and returns it.
func (suite *TestSuiteStandard) createTestAuthority(editable v1.AuthorityEditable) v1.Authority {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/authorities", []v1.AuthorityEditable{editable})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.AuthorityCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)

	return *response.Data[0].Data
}

func (suite *TestSuiteStandard) TestOptionsAuthorities() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/authorities", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateAuthorities() {
	authority := suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	assert.Equal(suite.T(), uint(1), authority.ID)
	assert.Equal(suite.T(), "Liverpool City Region Combined Authority", authority.Name)
	assert.Equal(suite.T(), "http://example.com/v1/authorities/1", authority.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/authorities/1/schemes", authority.Links.Schemes)
	assert.Equal(suite.T(), "http://example.com/v1/authorities/1/users", authority.Links.Users)
}

func (suite *TestSuiteStandard) TestCreateAuthoritiesDuplicateName() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/authorities", []v1.AuthorityEditable{
		{ID: 2, Name: "Liverpool City Region Combined Authority"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AuthorityCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), "the authority name must be unique", *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestCreateAuthoritiesInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/authorities", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/authorities", "not json")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOptionsAuthoritySchemes() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/authorities/1/schemes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetAuthoritySchemes() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	second := suite.defaultSchemeEditable(2, 1)
	second.Name = "School Streets Phase 1"
	suite.importTestScheme(second)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/authorities/1/schemes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SchemeListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Hospital Fields Road", response.Data[0].Name)
	assert.Equal(suite.T(), "ATE00001", response.Data[0].Reference)
	assert.True(suite.T(), response.Data[0].NeedsReview)
	assert.Equal(suite.T(), "School Streets Phase 1", response.Data[1].Name)
}

func (suite *TestSuiteStandard) TestGetAuthoritySchemesFilter() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	second := suite.defaultSchemeEditable(2, 1)
	second.Name = "School Streets Phase 1"
	suite.importTestScheme(second)

	tests := []struct {
		pattern string
		matches int
	}{
		{"Hospital*", 1},
		{"*Streets*", 1},
		{"*", 2},
		{"Motorway*", 0},
	}

	for _, tt := range tests {
		r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/authorities/1/schemes?name="+tt.pattern, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var response v1.SchemeListResponse
		test.DecodeResponse(suite.T(), &r, &response)
		assert.Len(suite.T(), response.Data, tt.matches, "pattern %s", tt.pattern)
	}
}

func (suite *TestSuiteStandard) TestGetAuthoritySchemesUnknownAuthority() {
	// An empty list for an authority that does not exist would be misleading
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/authorities/42/schemes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestOptionsAuthorityUsers() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/authorities/1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateUsers() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/authorities/1/users", []v1.UserEditable{
		{Email: "Boardman@Example.gov.uk"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)

	// IDs come from the database, emails are normalized
	assert.NotZero(suite.T(), response.Data[0].Data.ID)
	assert.Equal(suite.T(), "boardman@example.gov.uk", response.Data[0].Data.Email)
	assert.Equal(suite.T(), uint(1), response.Data[0].Data.AuthorityID)
}

func (suite *TestSuiteStandard) TestCreateUsersDuplicateEmail() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/authorities/1/users", []v1.UserEditable{
		{Email: "boardman@example.gov.uk"},
		{Email: "boardman@example.gov.uk"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	require.NotNil(suite.T(), response.Data[1].Error)
	assert.Equal(suite.T(), "the user email address must be unique for the authority", *response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestCreateUsersUnknownAuthority() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/authorities/42/users", []v1.UserEditable{
		{Email: "boardman@example.gov.uk"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
