package errors

import "errors"

var (
	ErrCompanyNotConfigured = errors.New("company details have not been configured")

	ErrPageOutOfRange = errors.New("page is out of range")
)
