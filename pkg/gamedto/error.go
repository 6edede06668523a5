package gamedto

import "errors"

// Error taxonomy codes shared by both services.
const (
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeInvalidState    = "invalid_state"
	CodeInvalidArgument = "invalid_argument"
	CodeStorage         = "storage"
)

type DomainError struct {
	Code    string
	Message string
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "service error"
}

func NotFound(msg string) error        { return DomainError{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) error        { return DomainError{Code: CodeConflict, Message: msg} }
func InvalidState(msg string) error    { return DomainError{Code: CodeInvalidState, Message: msg} }
func InvalidArgument(msg string) error { return DomainError{Code: CodeInvalidArgument, Message: msg} }

// CodeOf extracts the taxonomy code from err, or CodeStorage for anything
// that is not a DomainError (store failures propagate untyped).
func CodeOf(err error) string {
	var de DomainError
	if errors.As(err, &de) && de.Code != "" {
		return de.Code
	}
	return CodeStorage
}
