package v1

import (
	"errors"
	"net/http"

	"github.com/capital-schemes/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no scheme matching your query"`
}

// status returns the appropriate status for a database or binding error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errSchemeNotUpdateable  = errors.New("this scheme cannot be updated by its authority")
	errMilestoneNotEligible = errors.New("this milestone cannot be updated by the authority for this scheme type")
	errNegativeAmount       = errors.New("the amount must not be negative")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)
