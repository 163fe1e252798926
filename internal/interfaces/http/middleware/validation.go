package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors report the form field name (or
// the JSON name for JSON bodies) instead of the Go struct field.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// FieldErrors maps each invalid field to a user-facing message. Errors that
// are not validator errors yield a nil map.
func FieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, e := range ve {
		if _, seen := out[e.Field()]; !seen {
			out[e.Field()] = ValidationMessage(e)
		}
	}
	return out
}

// HandleValidationError writes a 400 JSON response for /ui endpoints.
func HandleValidationError(c *gin.Context, err error) {
	info := dto.ErrorInfo{Code: dto.ErrCodeValidation, Message: dto.MessageValidation}
	if fields := FieldErrors(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   dto.ErrorInfo{Code: info.Code, Message: info.Message, RequestID: GetRequestID(c)},
			"fields":  fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(info, GetRequestID(c)))
}

// ValidationMessage returns a human-readable message for a single rule failure.
func ValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if", "required_with":
		return "Este campo es obligatorio"
	case "email":
		return "Correo electrónico no válido"
	case "min":
		if e.Kind() == reflect.String {
			return "Debe tener al menos " + e.Param() + " caracteres"
		}
		return "Debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Debe tener como máximo " + e.Param() + " caracteres"
		}
		return "Debe ser como máximo " + e.Param()
	case "len":
		return "Debe tener exactamente " + e.Param() + " caracteres"
	case "oneof":
		return "Debe ser uno de: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "gte":
		return "Debe ser mayor o igual a " + e.Param()
	case "lte":
		return "Debe ser menor o igual a " + e.Param()
	case "gt":
		return "Debe ser mayor que " + e.Param()
	case "lt":
		return "Debe ser menor que " + e.Param()
	case "gtfield", "gtefield":
		return "Debe ser posterior a " + e.Param()
	case "url":
		return "URL no válida"
	case "numeric", "number":
		return "Debe ser numérico"
	case "datetime":
		return "Fecha no válida"
	case "iso4217":
		return "Moneda no válida"
	default:
		return "Valor no válido"
	}
}
