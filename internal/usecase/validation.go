package usecase

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NewValidator returns a validator with the custom tags used by input structs.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldMessages maps a struct field name to the message shown when it fails.
type fieldMessages struct {
	blank  string
	fields map[string]string
}

// validate runs struct validation and converts the first failure into a
// domain validation error. A blank field anywhere wins over shape failures.
func validate(v *validator.Validate, input any, msgs fieldMessages) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	if msgs.blank != "" {
		for _, fe := range verrs {
			if fe.Tag() == "notblank" || fe.Tag() == "required" {
				return domain.NewValidationError(msgs.blank)
			}
		}
	}

	fe := verrs[0]
	if msg, ok := msgs.fields[fe.Field()]; ok {
		return domain.NewValidationError(msg)
	}
	return domain.NewValidationError(fe.Error())
}
