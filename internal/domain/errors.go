package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is compares by code so wrapped or contextual errors still match the sentinels.
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUsernameTaken = "USERNAME_TAKEN"
	CodeTeamNameTaken = "TEAM_NAME_TAKEN"
)

var (
	// ErrNotFound - resource not found
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrInvalidInput - request payload failed validation
	ErrInvalidInput = &DomainError{
		Code:    CodeInvalidInput,
		Message: "invalid input",
	}

	// ErrUsernameTaken - another user already owns the username
	ErrUsernameTaken = &DomainError{
		Code:    CodeUsernameTaken,
		Message: "username already exists",
	}

	// ErrTeamNameTaken - another team already owns the name
	ErrTeamNameTaken = &DomainError{
		Code:    CodeTeamNameTaken,
		Message: "team name already exists",
	}
)

// NewNotFoundError returns a NOT_FOUND error naming the missing resource.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInvalidInputError returns an INVALID_INPUT error with a field-specific message.
func NewInvalidInputError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}
