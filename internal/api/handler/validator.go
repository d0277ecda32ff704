package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

var (
	dniPattern    = regexp.MustCompile(`^\d{10}$`)
	mobilePattern = regexp.MustCompile(`^[36]\d{6,14}$`)
)

// echoValidator wraps go-playground/validator so Echo can call
// c.Validate(req). Failures come back as *domain.ValidationError keyed
// by the JSON field name, ready for the HTTP error handler to render.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator. Two domain rules are registered on top of the
// built-ins:
//   - dni:      exactly 10 digits
//   - mobileco: digits only, starting with 3 or 6
func NewValidator() *echoValidator {
	v := validator.New()

	// Report violations under the JSON field name, not the Go one.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return dniPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mobileco", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ve := domain.NewValidationError()
			for _, fe := range verrs {
				ve.Add(fe.Field(), fieldError(fe))
			}
			return ve
		}
		return err
	}
	return nil
}

// fieldError converts a single validation error into a human-readable
// Spanish message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "email":
		return "Ingresa una dirección de correo electrónico válida."
	case "dni":
		return "El DNI debe tener exactamente 10 dígitos."
	case "mobileco":
		return "El número de teléfono debe iniciar con 3 o 6."
	case "oneof":
		return fmt.Sprintf("Debe ser uno de: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("Debe tener al menos %s caracteres.", fe.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual a %s.", fe.Param())
	default:
		return fmt.Sprintf("Valor inválido (%s).", fe.Tag())
	}
}
