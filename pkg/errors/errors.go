package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeParse      = "PARSE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeAPI        = "API_ERROR"
	CodeStore      = "STORE_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeSync       = "SYNC_ERROR"
)

type FolioError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *FolioError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FolioError) Unwrap() error {
	return e.Cause
}

func (e *FolioError) WithCause(cause error) *FolioError {
	e.Cause = cause
	return e
}

// Folio is promoted through every typed error so AsFolioError can reach the
// embedded base regardless of the concrete wrapper.
func (e *FolioError) Folio() *FolioError {
	return e
}

// AsFolioError walks the error chain and extracts the shared base when any
// typed error from this package is present.
func AsFolioError(err error) (*FolioError, bool) {
	var carrier interface{ Folio() *FolioError }
	if stderrors.As(err, &carrier) {
		return carrier.Folio(), true
	}
	return nil, false
}

// ParseError covers corrupt cached or imported JSON documents.
type ParseError struct {
	*FolioError
	Source string
}

func NewParseError(message, source string, cause error) *ParseError {
	return &ParseError{
		FolioError: &FolioError{
			Message:    message,
			Code:       CodeParse,
			StatusCode: 400,
			Context: map[string]any{
				"source": source,
			},
			Cause: cause,
		},
		Source: source,
	}
}

type ValidationError struct {
	*FolioError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		FolioError: &FolioError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// APIError covers non-success responses from the blob store, the image host
// and metadata fetches.
type APIError struct {
	*FolioError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		FolioError: &FolioError{
			Message:    message,
			Code:       CodeAPI,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type StoreError struct {
	*FolioError
	Operation string
	Key       string
}

func NewStoreError(message, operation, key string, cause error) *StoreError {
	return &StoreError{
		FolioError: &FolioError{
			Message:    message,
			Code:       CodeStore,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type AuthError struct {
	*FolioError
}

func NewAuthError(message string) *AuthError {
	return &AuthError{
		FolioError: &FolioError{
			Message:    message,
			Code:       CodeAuth,
			StatusCode: 401,
		},
	}
}

// SyncError covers invalid sync invocations, such as a second sync started
// while one is still in flight.
type SyncError struct {
	*FolioError
	Operation string
}

func NewSyncError(message, operation string, cause error) *SyncError {
	return &SyncError{
		FolioError: &FolioError{
			Message:    message,
			Code:       CodeSync,
			StatusCode: 409,
			Context: map[string]any{
				"operation": operation,
			},
			Cause: cause,
		},
		Operation: operation,
	}
}
