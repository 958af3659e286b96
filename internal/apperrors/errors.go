package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Expected failure conditions surfaced by the service layer. Handlers map
// these onto HTTP status codes; anything else is treated as internal.
var (
	ErrSelfRequest        = errors.New("you cannot send a friend request to yourself")
	ErrRequestExists      = errors.New("friend request already exists")
	ErrAlreadyFriends     = errors.New("you are already friends with this user")
	ErrUserNotFound       = errors.New("user not found")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrForbidden          = errors.New("you are not authorized to accept this friend request")
	ErrDuplicateEmail     = errors.New("email already exists, please use a different one")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPresenceSync       = errors.New("failed to sync user with chat provider")
)

// ValidationError reports missing or malformed input, optionally naming
// the absent fields.
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.MissingFields, ", "))
}

// NewValidationError builds a ValidationError for the given message and
// missing field names.
func NewValidationError(message string, missing ...string) *ValidationError {
	return &ValidationError{Message: message, MissingFields: missing}
}
