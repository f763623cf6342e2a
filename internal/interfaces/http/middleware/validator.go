package middleware

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers custom validations with gin's binding engine.
// Call once during startup, before routes are served.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", notBlank)
	}
}

// notBlank rejects strings that are empty or whitespace only. The stock
// "required" validation accepts a value like "   ", which would otherwise
// slip past length checks for names and titles.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
