package validation

import (
	"strings"
	"testing"

	"github.com/article-comments-api/internal/models"
)

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{"valid content", "This is a perfectly fine comment.", ""},
		{"empty content", "", "content"},
		{"whitespace only", "   \t\n", "content"},
		{"too long", strings.Repeat("a", models.MaxCommentLength+1), "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateComment(tt.content)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs[tt.wantField]) == 0 {
				t.Errorf("expected an error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateCommentAtLimit(t *testing.T) {
	content := strings.Repeat("a", models.MaxCommentLength)
	if errs := ValidateComment(content); len(errs) != 0 {
		t.Errorf("content at the limit should pass, got %v", errs)
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{"valid", "john@example.com", "password", ""},
		{"missing email", "", "password", "email"},
		{"invalid email", "not-an-email", "password", "email"},
		{"missing password", "john@example.com", "", "password"},
		{"short password", "john@example.com", "abc", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.email, tt.password)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs[tt.wantField]) == 0 {
				t.Errorf("expected an error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateLoginReportsAllFields(t *testing.T) {
	errs := ValidateLogin("", "")
	if len(errs["email"]) == 0 || len(errs["password"]) == 0 {
		t.Errorf("expected errors on both fields, got %v", errs)
	}
}
