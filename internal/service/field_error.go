package service

import "github.com/mfimia/reddit-clone/internal/domain"

// FieldError is a validation or conflict failure tied to a named input
// field. It travels as response data, never as a transport-level error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserResult carries either a user or field errors, mirroring the
// UserResponse shape of the API.
type UserResult struct {
	User   *domain.User
	Errors []FieldError
}

func fieldError(field, message string) *UserResult {
	return &UserResult{Errors: []FieldError{{Field: field, Message: message}}}
}
