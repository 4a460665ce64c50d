package v1

import (
	"net/http"
	"time"

	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/internal/httputil"
	"github.com/capital-schemes/backend/internal/repository"
	"github.com/capital-schemes/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// The repositories the handlers work against. Variables so that tests can
// substitute the in-memory implementations.
var (
	authorities repository.Authorities = repository.GormAuthorities{}
	users       repository.Users       = repository.GormUsers{}
	schemes     repository.Schemes     = repository.GormSchemes{}
)

// RegisterSchemeRoutes registers the routes for schemes with
// the RouterGroup that is passed.
func RegisterSchemeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSchemeList)
		r.PUT("", ImportSchemes)
	}

	// Scheme with ID
	{
		r.OPTIONS("/:id", OptionsSchemeDetail)
		r.GET("/:id", GetScheme)
		r.POST("/:id/spend-to-date", UpdateSpentToDate)
		r.POST("/:id/milestones", UpdateMilestoneDate)
		r.POST("/:id/reviews", CreateReview)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Schemes
// @Success		204
// @Router			/v1/schemes [options]
func OptionsSchemeList(c *gin.Context) {
	httputil.OptionsPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Schemes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/schemes/{id} [options]
func OptionsSchemeDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = schemes.Get(uri.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Import schemes
// @Description	Imports full scheme representations including all revision ledgers. IDs are assigned by the caller.
// @Tags			Schemes
// @Accept			json
// @Produce		json
// @Success		201		{object}	SchemeImportResponse
// @Failure		400		{object}	SchemeImportResponse
// @Failure		500		{object}	SchemeImportResponse
// @Param			schemes	body		[]SchemeEditable	true	"Schemes"
// @Router			/v1/schemes [put]
func ImportSchemes(c *gin.Context) {
	var editables []SchemeEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SchemeImportResponse{
			Error: &e,
		})
		return
	}

	window := types.ReportingWindowContaining(time.Now().UTC())

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SchemeImportResponse{}

	for _, editable := range editables {
		scheme, err := editable.model()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		if err := schemes.Add(scheme); err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newScheme(c, scheme, window)
		r.Data = append(r.Data, SchemeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get scheme
// @Description	Returns a specific scheme with all revision ledgers and derived figures
// @Tags			Schemes
// @Produce		json
// @Success		200	{object}	SchemeResponse
// @Failure		400	{object}	SchemeResponse
// @Failure		404	{object}	SchemeResponse
// @Failure		500	{object}	SchemeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/schemes/{id} [get]
func GetScheme(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	scheme, err := schemes.Get(uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	data := newScheme(c, scheme, types.ReportingWindowContaining(time.Now().UTC()))
	c.JSON(http.StatusOK, SchemeResponse{Data: &data})
}

// @Summary		Update spend to date
// @Description	Closes the current spend to date revision and opens a new one with the given amount
// @Tags			Schemes
// @Accept			json
// @Produce		json
// @Success		200		{object}	SchemeResponse
// @Failure		400		{object}	SchemeResponse
// @Failure		403		{object}	SchemeResponse
// @Failure		404		{object}	SchemeResponse
// @Failure		500		{object}	SchemeResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			amount	body		SpentToDateEditable	true	"Spend to date"
// @Router			/v1/schemes/{id}/spend-to-date [post]
func UpdateSpentToDate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	scheme, err := schemes.Get(uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	if !scheme.IsUpdateable() {
		s := errSchemeNotUpdateable.Error()
		c.JSON(http.StatusForbidden, SchemeResponse{
			Error: &s,
		})
		return
	}

	var data SpentToDateEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	if data.Amount.IsNegative() {
		s := errNegativeAmount.Error()
		c.JSON(http.StatusBadRequest, SchemeResponse{
			Error: &s,
		})
		return
	}

	now := time.Now().UTC()
	scheme.Funding.UpdateSpentToDate(now, data.Amount)

	if err := schemes.Update(scheme); err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	r := newScheme(c, scheme, types.ReportingWindowContaining(now))
	c.JSON(http.StatusOK, SchemeResponse{Data: &r})
}

// @Summary		Update milestone date
// @Description	Closes the current revision for the milestone and observation type and opens a new one with the given status date
// @Tags			Schemes
// @Accept			json
// @Produce		json
// @Success		200			{object}	SchemeResponse
// @Failure		400			{object}	SchemeResponse
// @Failure		403			{object}	SchemeResponse
// @Failure		404			{object}	SchemeResponse
// @Failure		500			{object}	SchemeResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			milestone	body		MilestoneDateEditable	true	"Milestone date"
// @Router			/v1/schemes/{id}/milestones [post]
func UpdateMilestoneDate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	scheme, err := schemes.Get(uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	if !scheme.IsUpdateable() {
		s := errSchemeNotUpdateable.Error()
		c.JSON(http.StatusForbidden, SchemeResponse{
			Error: &s,
		})
		return
	}

	var data MilestoneDateEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	if !slices.Contains(scheme.MilestonesEligibleForAuthorityUpdate(), data.Milestone) {
		s := errMilestoneNotEligible.Error()
		c.JSON(http.StatusBadRequest, SchemeResponse{
			Error: &s,
		})
		return
	}

	now := time.Now().UTC()
	scheme.Milestones.UpdateMilestoneDate(now, data.Milestone, data.ObservationType, data.StatusDate)

	if err := schemes.Update(scheme); err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	r := newScheme(c, scheme, types.ReportingWindowContaining(now))
	c.JSON(http.StatusOK, SchemeResponse{Data: &r})
}

// @Summary		Confirm authority review
// @Description	Records that the authority confirmed its scheme data is up to date
// @Tags			Schemes
// @Accept			json
// @Produce		json
// @Success		200		{object}	SchemeResponse
// @Failure		400		{object}	SchemeResponse
// @Failure		404		{object}	SchemeResponse
// @Failure		500		{object}	SchemeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			review	body		ReviewEditable	true	"Review"
// @Router			/v1/schemes/{id}/reviews [post]
func CreateReview(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	scheme, err := schemes.Get(uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	var data ReviewEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	scheme.Reviews.UpdateAuthorityReview(domain.AuthorityReview{
		ReviewDate: data.ReviewDate,
		Source:     domain.DataSourceAuthorityUpdate,
	})

	if err := schemes.Update(scheme); err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeResponse{
			Error: &s,
		})
		return
	}

	r := newScheme(c, scheme, types.ReportingWindowContaining(time.Now().UTC()))
	c.JSON(http.StatusOK, SchemeResponse{Data: &r})
}
