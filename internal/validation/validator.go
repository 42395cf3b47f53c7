// Package validation checks API request input and produces field-level
// error messages suitable for 422 responses.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/article-comments-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength is the minimum accepted password length on login
const MinPasswordLength = 6

// Errors maps a field name to its validation error messages
type Errors map[string][]string

// Add appends a message for a field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// ValidateComment validates a comment submission body
func ValidateComment(content string) Errors {
	errs := Errors{}

	if strings.TrimSpace(content) == "" {
		errs.Add("content", "The content field is required.")
		return errs
	}
	if len(content) > models.MaxCommentLength {
		errs.Add("content", fmt.Sprintf("The content must not be greater than %d characters.", models.MaxCommentLength))
	}

	return errs
}

// ValidateLogin validates a login request body
func ValidateLogin(email, password string) Errors {
	errs := Errors{}

	if email == "" {
		errs.Add("email", "The email field is required.")
	} else if !emailRegex.MatchString(email) {
		errs.Add("email", "The email must be a valid email address.")
	}

	if password == "" {
		errs.Add("password", "The password field is required.")
	} else if len(password) < MinPasswordLength {
		errs.Add("password", fmt.Sprintf("The password must be at least %d characters.", MinPasswordLength))
	}

	return errs
}
