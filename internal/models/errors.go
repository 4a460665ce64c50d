package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAuthorityNameNotUnique = errors.New("the authority name must be unique")
	ErrUserEmailNotUnique     = errors.New("the user email address must be unique for the authority")
)
