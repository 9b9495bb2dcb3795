package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describe la primera regla de validación que falló.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("campo '%s' falló la regla '%s'", e.Field, e.Tag)
}

// Struct valida las etiquetas `validate` del struct. Devuelve *FieldError con
// el primer campo que falló, o nil si todo es válido.
func Struct(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &FieldError{Field: errs[0].StructNamespace(), Tag: errs[0].Tag()}
	}
	return err
}
