package api

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BindingErrors converts a gin binding error into the field -> messages map
// the client flattens into one display string.
func BindingErrors(err error) map[string][]string {
	result := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result["general"] = []string{err.Error()}
		return result
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		result[field] = append(result[field], fieldMessage(fe))
	}

	return result
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "El campo " + field + " es obligatorio"
	case "email":
		return "El campo " + field + " debe ser un email válido"
	case "min":
		return "El campo " + field + " debe tener al menos " + fe.Param() + " caracteres"
	case "max":
		return "El campo " + field + " debe tener como máximo " + fe.Param() + " caracteres"
	case "gte":
		return "El campo " + field + " debe ser mayor o igual a " + fe.Param()
	case "lte":
		return "El campo " + field + " debe ser menor o igual a " + fe.Param()
	case "oneof":
		return "El campo " + field + " debe ser uno de: " + fe.Param()
	case "datetime":
		return "El campo " + field + " debe tener formato de fecha válido"
	default:
		return "El campo " + field + " no es válido"
	}
}
