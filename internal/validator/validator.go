// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("media_kind", validateMediaKind)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

func validateMediaKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "image", "video", "audio", "file":
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "auditor":
		return true
	}
	return false
}
