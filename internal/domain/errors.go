package domain

import "errors"

var (
	ErrScanInProgress      = errors.New("alert scan already in progress")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrSupplierNotInactive = errors.New("supplier is not inactive")
	ErrReactivationBlocked = errors.New("supplier reactivation is blocked")
	ErrAlertNotFound       = errors.New("alert not found")
	ErrInvalidAlertStatus  = errors.New("invalid alert status")
	ErrInvalidInput        = errors.New("invalid input")
)
