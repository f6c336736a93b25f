package services

import "errors"

// Configuration errors: the caller or the loaded tables refer to something the matrix does not define
var (
	ErrApprovalTypeNotFound = errors.New("approval type not found")
	ErrInvalidMatrix        = errors.New("invalid approval matrix")
)

// Resolution errors: the matrix could not produce a requirement for valid input
var (
	ErrNoThreshold = errors.New("no threshold found for amount")
)

// Input and workflow errors
var (
	ErrInvalidAmount        = errors.New("amount must be a non-negative finite number")
	ErrInvalidDecision      = errors.New("decision status must be approved or rejected")
	ErrUnauthorizedApprover = errors.New("role is not authorized to approve this item")
	ErrAlreadyDecided       = errors.New("role has already approved this item")
)

// IsConfigurationError reports whether err is caused by unknown types or a bad matrix
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrApprovalTypeNotFound) || errors.Is(err, ErrInvalidMatrix)
}

// IsResolutionError reports whether err is caused by a matrix that failed to cover an amount
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrNoThreshold)
}
