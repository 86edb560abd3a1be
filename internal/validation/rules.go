// Package validation provides the custom rules used by admin input forms.
package validation

import (
	"net/url"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
)

// slugRegex matches a single URL path segment usable as a proxy slug.
var slugRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Slug validates a single path segment: letters, digits, dot, dash and underscore, no slashes or spaces.
var Slug = validation.NewStringRuleWithError(
	func(s string) bool {
		return slugRegex.MatchString(s)
	},
	validation.NewError("validation_slug", "must contain only letters, digits, '.', '-' or '_'"),
)

// HTTPURL validates an absolute http or https URL with a host.
var HTTPURL = validation.NewStringRuleWithError(
	func(s string) bool {
		u, err := url.Parse(s)
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	},
	validation.NewError("validation_http_url", "must be an absolute http or https URL"),
)

// HTTPMethod validates an upper-case HTTP method name.
var HTTPMethod = validation.In("GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS").
	Error("must be a valid HTTP method")
