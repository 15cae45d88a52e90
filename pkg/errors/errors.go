package errors

import (
	"fmt"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrAlreadyExists = fmt.Errorf("already exists")
	ErrMaxExceeded   = fmt.Errorf("max length exceeded")
	ErrInvalidState  = fmt.Errorf("invalid state")
	ErrInvalidArg    = fmt.Errorf("invalid arg")
	ErrNotSupported  = fmt.Errorf("not supported")
)
