package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// mark accepts an empty cell as well as either player.
	_ = validate.RegisterValidation("mark", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "X", "O":
			return true
		}
		return false
	})
	_ = validate.RegisterValidation("playermark", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "X", "O":
			return true
		}
		return false
	})
}

func GetValidator() *validator.Validate {
	return validate
}
