package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/capital-schemes/backend/internal/controllers/v1"
	"github.com/capital-schemes/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	suite.createTestAuthority(v1.AuthorityEditable{ID: 1, Name: "Liverpool City Region Combined Authority"})
	suite.importTestScheme(suite.defaultSchemeEditable(1, 1))

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/schemes/1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/authorities/1/schemes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"no parameter", "http://example.com/v1"},
		{"wrong value", "http://example.com/v1?confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestOptionsV1() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetV1() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
