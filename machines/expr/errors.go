package expr

import "errors"

var (
	ErrContentNil         = errors.New("content is nil")
	ErrValidationFailed   = errors.New("expr script validation error")
	ErrBytecodeNil        = errors.New("expr program is nil")
	ErrExecCreationFailed = errors.New("unable to create expr executable")
)
