package customvalidator

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// RegisterNullTypes учит валидатор "смотреть внутрь" null.String, null.Int и null.Bool.
// Невалидное значение превращается в nil, чтобы срабатывал omitempty.
func RegisterNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Int); ok && val.Valid {
			return val.Int
		}
		return nil
	}, null.Int{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Bool); ok && val.Valid {
			return val.Bool
		}
		return nil
	}, null.Bool{})
}
