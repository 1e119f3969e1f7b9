package errors

import "errors"

var (
	ErrDuplicate = errors.New("an active booking already exists for this email and date")
)
