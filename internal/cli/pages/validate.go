package pages

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidEmail reports whether s is a well-formed email address
func ValidEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
