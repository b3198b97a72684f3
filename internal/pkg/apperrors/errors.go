package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
)

// Synchronization errors
var (
	ErrSyncInProgress      = errors.New("a synchronization run is already in progress")
	ErrUpstreamUnavailable = errors.New("upstream source unavailable")
)

// Season errors
var (
	ErrSeasonNotFound = errors.New("season not found")
)

// Department errors
var (
	ErrDepartmentNotFound = errors.New("department not found")
)

// Schedule errors
var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleAlreadyExists = errors.New("a schedule with this name already exists for this owner")
)

// Is returns whether target matches err or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
