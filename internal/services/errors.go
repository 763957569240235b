package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes with errors.Is; anything else becomes a 500.
var (
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	ErrIdentityIncomplete   = errors.New("identity token missing subject or email")
	ErrUserNotFound         = errors.New("user not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrForbidden            = errors.New("not authorized for this resource")
	ErrAlreadyEnrolled      = errors.New("user is already enrolled in this course")
	ErrOrderInUse           = errors.New("order value is already in use")
	ErrInvalidRole          = errors.New("invalid enrollment role")
)
