package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is inactive")
	ErrFaceNotEnrolled  = errors.New("employee has no enrolled face")
)
