package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrInvalidInput is shown for a failed field check with no specific message.
var ErrInvalidInput = newValidationError("Invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

// RegisterValidations adds the custom tags used on input structs to v. The
// handlers register them on gin's binding engine too.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

// fieldMessages maps "<Field>.<tag>" to the message the user sees. notblank
// is looked up as required.
var fieldMessages = map[string]*ValidationError{
	"Username.required":    ErrUsernameRequired,
	"Username.max":         ErrUsernameTooLong,
	"Password.required":    ErrPasswordRequired,
	"Confirmation.eqfield": ErrPasswordMismatch,
	"FirstName.required":   ErrFirstNameMissing,
	"LastName.required":    ErrLastNameMissing,
	"Email.required":       ErrEmailMissing,
	"Email.email":          ErrEmailInvalid,
	"EmployeeID.required":  ErrEmployeeIDMissing,
	"Name.required":        ErrProjectNameMissing,
	"Deadline.required":    ErrDeadlineMissing,
	"Priority.required":    ErrInvalidPriority,
	"Priority.oneof":       ErrInvalidPriority,
}

// FieldError converts the first failed field check in err into the
// ValidationError shown to the user. It returns nil when err does not come
// from the validator.
func FieldError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return nil
	}

	fe := fieldErrs[0]
	tag := fe.Tag()
	if tag == "notblank" {
		tag = "required"
	}
	if verr, ok := fieldMessages[fe.Field()+"."+tag]; ok {
		return verr
	}
	return ErrInvalidInput
}

// validateInput checks the validate tags on input.
func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		if verr := FieldError(err); verr != nil {
			return verr
		}
		return err
	}
	return nil
}
