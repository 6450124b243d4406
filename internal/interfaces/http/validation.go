package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// bodyError cuerpo ilegible o que no pasa las reglas de validación.
type bodyError struct {
	resp dto.ErrorResponse
}

func (e *bodyError) Error() string { return e.resp.Message }

// parseBody decodifica el JSON y aplica las etiquetas validate del DTO.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return &bodyError{resp: dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}}
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *bodyError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := make(map[string]string, len(errs))
		for _, fe := range errs {
			details[fieldPath(fe)] = validationMessage(fe)
		}
		return &bodyError{resp: dto.ErrorResponse{Code: "VALIDATION", Message: "validación fallida", Details: details}}
	}
	return &bodyError{resp: dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}}
}

// fieldPath quita el nombre del struct raíz: "BulkRequest.rows[0].qty" -> "rows[0].qty".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s elementos", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual que %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	}
	return "es inválido"
}
