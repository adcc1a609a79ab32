package user

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	domainUser "foodfast-user-service/internal/domain/user"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("user_role", validateUserRole); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return domainUser.IsValidRole(fl.Field().String())
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-()]{2,19}$`)

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
