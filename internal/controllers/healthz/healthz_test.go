package healthz_test

import (
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/capital-schemes/backend/internal/controllers/healthz"
	"github.com/capital-schemes/backend/internal/models"
	"github.com/capital-schemes/backend/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TestSuiteStandard struct {
	suite.Suite
}

func TestStandard(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

func (suite *TestSuiteStandard) SetupTest() {
	err := models.Connect(test.TmpFile(suite.T()))
	if err != nil {
		log.Fatalf("Database connection failed with: %#v", err)
	}
}

func (suite *TestSuiteStandard) TearDownTest() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		log.Fatalf("Database connection for teardown failed with: %#v", err)
	}

	_ = sqlDB.Close()
}

func (suite *TestSuiteStandard) TestOptions() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthz.Options(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
	assert.Equal(suite.T(), "GET", w.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGet() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthz.Get(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
}

func (suite *TestSuiteStandard) TestGetDBError() {
	sqlDB, err := models.DB.DB()
	assert.Nil(suite.T(), err)
	_ = sqlDB.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthz.Get(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}
