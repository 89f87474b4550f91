package starlark

import "errors"

var (
	ErrContentNil         = errors.New("content is nil")
	ErrValidationFailed   = errors.New("starlark script validation error")
	ErrProgramNil         = errors.New("starlark program is nil")
	ErrExecCreationFailed = errors.New("unable to create starlark executable")
)
