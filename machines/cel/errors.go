package cel

import "errors"

var (
	ErrContentNil         = errors.New("content is nil")
	ErrValidationFailed   = errors.New("cel expression check failed")
	ErrProgramNil         = errors.New("cel program is nil")
	ErrExecCreationFailed = errors.New("unable to create cel executable")
)
