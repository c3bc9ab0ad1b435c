package settings

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// IsHTTPURL reports whether text is an absolute http or https URL with a host.
func IsHTTPURL(text string) bool {
	return validate.Var(text, "required,http_url") == nil
}
