package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator возвращает валидатор, который понимает decimal.Decimal
// (значение сравнивается как число, поэтому работают теги gt/gte/lt).
//
// Тег decimal=P_S проверяет, что значение помещается в NUMERIC(P, S):
// не больше S знаков после запятой и не больше P-S знаков в целой части.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("decimal", fitsNumeric); err != nil {
		panic(err)
	}
	return v
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// fitsNumeric читает исходный decimal из родительской структуры:
// в fl.Field() уже лежит float64 после decimalValue.
func fitsNumeric(fl validator.FieldLevel) bool {
	precision, scale := numericParams(fl.Param())

	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}
	d, ok := parent.FieldByName(fl.StructFieldName()).Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	if !d.Equal(d.Truncate(scale)) {
		return false
	}
	return d.Abs().LessThan(decimal.New(1, precision-scale))
}

func numericParams(param string) (int32, int32) {
	p, s, ok := strings.Cut(param, "_")
	precision, perr := strconv.Atoi(p)
	scale, serr := strconv.Atoi(s)
	if !ok || perr != nil || serr != nil || scale < 0 || scale > precision {
		panic(fmt.Sprintf("bad decimal param %q, want P_S", param))
	}
	return int32(precision), int32(scale)
}
