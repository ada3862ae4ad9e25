package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but is not the role
// allowed to perform this action.
var ErrForbidden = errors.New("forbidden")

// ErrStateConflict indicates a workflow guard failed because the record has
// already been moved to a different state by a concurrent transition.
// Callers must re-fetch the record before retrying.
var ErrStateConflict = errors.New("record state conflict")

// ErrCapacityExceeded indicates a verification slot reached its daily capacity
// between listing and submission. Callers must pick a fresh slot.
var ErrCapacityExceeded = errors.New("appointment capacity exceeded")

// ErrLedgerUnavailable indicates a transient failure talking to the external
// ledger. Retrying with the same payload is safe (mint is idempotent).
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// ErrAlreadyRegistered indicates the external ledger refused a duplicate key.
// This is distinct from ErrLedgerUnavailable so callers can offer the
// force-sync recovery path instead of treating it as a hard failure.
var ErrAlreadyRegistered = errors.New("key already registered on ledger")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
