// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"print3d-service/pkg/constants"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	innRegex   = regexp.MustCompile(`^(\d{10}|\d{12})$`)
)

const maxColorLength = 64

// RegisterCustomValidations регистрирует правила предметной области в валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"email":         isGoodEmailFormat,
		"inn":           isINN,
		"plastic":       isPlastic,
		"order_status":  isOrderStatus,
		"customer_type": isCustomerType,
		"order_color":   isOrderColor,
		"technology":    isTechnology,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// New возвращает валидатор с уже зарегистрированными правилами.
func New() *validator.Validate {
	v := validator.New()
	RegisterNullTypes(v)
	if err := RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	return v
}

func IsEmail(s string) bool { return emailRegex.MatchString(s) }

func IsINN(s string) bool { return innRegex.MatchString(s) }

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// Пустой ИНН пропускается: обязательность задаётся через required_if.
func isINN(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s == "" || IsINN(s)
}

func isPlastic(fl validator.FieldLevel) bool {
	return slices.Contains(constants.Plastics, fl.Field().String())
}

func isOrderStatus(fl validator.FieldLevel) bool {
	return constants.IsValidStatus(fl.Field().String())
}

func isCustomerType(fl validator.FieldLevel) bool {
	_, ok := constants.CustomerTypeLabels[fl.Field().String()]
	return ok
}

func isOrderColor(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s != "" && utf8.RuneCountInString(s) <= maxColorLength
}

func isTechnology(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || slices.Contains(constants.Technologies, s)
}
