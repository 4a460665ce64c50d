package v1

import (
	"net/http"
	"time"

	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/internal/httputil"
	"github.com/capital-schemes/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterAuthorityRoutes registers the routes for authorities with
// the RouterGroup that is passed.
func RegisterAuthorityRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAuthorityList)
		r.POST("", CreateAuthorities)
	}

	// Authority with ID
	{
		r.OPTIONS("/:authority_id/schemes", OptionsAuthoritySchemes)
		r.GET("/:authority_id/schemes", GetAuthoritySchemes)
		r.OPTIONS("/:authority_id/users", OptionsAuthorityUsers)
		r.POST("/:authority_id/users", CreateUsers)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authorities
// @Success		204
// @Router			/v1/authorities [options]
func OptionsAuthorityList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authorities
// @Success		204
// @Router			/v1/authorities/{authority_id}/schemes [options]
func OptionsAuthoritySchemes(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authorities
// @Success		204
// @Router			/v1/authorities/{authority_id}/users [options]
func OptionsAuthorityUsers(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create authorities
// @Description	Creates or updates authorities. IDs are assigned by the caller.
// @Tags			Authorities
// @Accept			json
// @Produce		json
// @Success		201			{object}	AuthorityCreateResponse
// @Failure		400			{object}	AuthorityCreateResponse
// @Failure		500			{object}	AuthorityCreateResponse
// @Param			authorities	body		[]AuthorityEditable	true	"Authorities"
// @Router			/v1/authorities [post]
func CreateAuthorities(c *gin.Context) {
	var editables []AuthorityEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AuthorityCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AuthorityCreateResponse{}

	for _, editable := range editables {
		authority := editable.model()

		if err := authorities.Add(authority); err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newAuthority(c, authority)
		r.Data = append(r.Data, AuthorityResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List schemes for an authority
// @Description	Returns the schemes of an authority with derived figures and the needs-review flag for the current reporting window
// @Tags			Authorities
// @Produce		json
// @Success		200	{object}	SchemeListResponse
// @Failure		400	{object}	SchemeListResponse
// @Failure		404	{object}	SchemeListResponse
// @Failure		500	{object}	SchemeListResponse
// @Param			authority_id	path	URIAuthorityID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			name			query	string			false	"Filter by name, glob patterns are supported"
// @Router			/v1/authorities/{authority_id}/schemes [get]
func GetAuthoritySchemes(c *gin.Context) {
	var uri URIAuthorityID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeListResponse{
			Error: &s,
		})
		return
	}

	var filter SchemeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// The authority must exist, an empty list for an unknown one would
	// be misleading
	if _, err := authorities.Get(uri.AuthorityID); err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeListResponse{
			Error: &s,
		})
		return
	}

	list, err := schemes.GetByAuthority(uri.AuthorityID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SchemeListResponse{
			Error: &s,
		})
		return
	}

	window := types.ReportingWindowContaining(time.Now().UTC())

	data := make([]Scheme, 0)
	for _, scheme := range list {
		if filter.Name != "" && !glob.Glob(filter.Name, scheme.Name) {
			continue
		}

		data = append(data, newScheme(c, scheme, window))
	}

	c.JSON(http.StatusOK, SchemeListResponse{Data: data})
}

// @Summary		Create users
// @Description	Adds users to an authority
// @Tags			Authorities
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserCreateResponse
// @Failure		400		{object}	UserCreateResponse
// @Failure		404		{object}	UserCreateResponse
// @Failure		500		{object}	UserCreateResponse
// @Param			authority_id	path	URIAuthorityID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			users			body	[]UserEditable	true	"Users"
// @Router			/v1/authorities/{authority_id}/users [post]
func CreateUsers(c *gin.Context) {
	var uri URIAuthorityID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []UserEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := UserCreateResponse{}

	for _, editable := range editables {
		user := domain.User{
			Email:       editable.Email,
			AuthorityID: uri.AuthorityID,
		}

		if err := users.Add(&user); err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, UserResponse{Data: &User{
			ID:          user.ID,
			Email:       user.Email,
			AuthorityID: user.AuthorityID,
		}})
	}

	c.JSON(status, r)
}
