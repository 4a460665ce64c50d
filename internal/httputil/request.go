package httputil

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ParseID parses the named URI parameter as a resource ID.
func ParseID(c *gin.Context, param string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}

	return uint(parsed), nil
}

// BindData binds the JSON request body to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(io.EOF, err) {
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}
