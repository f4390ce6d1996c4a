package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"purchase-manager/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

const (
	MsgRequired      = "Обязательное поле"
	MsgEmail         = "Неверный формат email"
	MsgInn           = "ИНН должен содержать 10 или 12 цифр"
	MsgKpp           = "КПП должен содержать 9 цифр"
	MsgPositivePrice = "Цена должна быть положительной"
	MsgPriceScale    = "Не более двух знаков после запятой"
	MsgCurrency      = "Неизвестный код валюты"
	MsgNdsRate       = "Неизвестная ставка НДС"
	MsgTooLong       = "Слишком длинное значение"
	MsgKind          = "Контрагент не может быть одновременно юридическим и физическим лицом"
	MsgDate          = "Неверный формат даты"
	MsgInvalid       = "Некорректное значение"
)

var (
	validate *validator.Validate

	// та же проверка, что и в форме: text@text.text без якорей
	emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)
	innRegex   = regexp.MustCompile(`^(\d{10}|\d{12})$`)
	kppRegex   = regexp.MustCompile(`^\d{9}$`)
)

func init() {
	validate = validator.New()

	// ошибки адресуются по json-именам полей
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	for tag, fn := range map[string]validator.Func{
		"notblank":         validators.NotBlank,
		"simple_email":     validateEmail,
		"inn":              validateInn,
		"kpp":              validateKpp,
		"currency":         validateCurrency,
		"nds_rate":         validateNdsRate,
		"positive_decimal": validatePositiveDecimal,
		"price_scale":      validatePriceScale,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}

	validate.RegisterStructValidation(customerKind, models.Customer{})
}

// Errors: сообщения об ошибках по полям.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}

// Is позволяет проверять ошибки валидации через errors.Is(err, models.ErrInvalid).
func (e Errors) Is(target error) bool {
	return target == models.ErrInvalid
}

// Struct проверяет v по тегам validate. Возвращает nil или Errors.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return MsgRequired
	case "simple_email":
		return MsgEmail
	case "inn":
		return MsgInn
	case "kpp":
		return MsgKpp
	case "gt", "positive_decimal":
		return MsgPositivePrice
	case "price_scale":
		return MsgPriceScale
	case "currency":
		return MsgCurrency
	case "nds_rate":
		return MsgNdsRate
	case "max":
		return MsgTooLong
	case "kind":
		return MsgKind
	case "datetime":
		return MsgDate
	}
	return MsgInvalid
}

func decimalValue(v reflect.Value) interface{} {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func validateInn(fl validator.FieldLevel) bool {
	return innRegex.MatchString(fl.Field().String())
}

func validateKpp(fl validator.FieldLevel) bool {
	return kppRegex.MatchString(fl.Field().String())
}

func validateCurrency(fl validator.FieldLevel) bool {
	return models.Currency(fl.Field().String()).Valid()
}

func validateNdsRate(fl validator.FieldLevel) bool {
	return models.NdsRate(fl.Field().String()).Valid()
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// validatePriceScale: в базе цена хранится с двумя знаками после запятой.
// Поле decimal.Decimal приходит сюда как float64 (см. decimalValue).
func validatePriceScale(fl validator.FieldLevel) bool {
	var d decimal.Decimal
	switch f := fl.Field(); f.Kind() {
	case reflect.String:
		v, err := decimal.NewFromString(strings.TrimSpace(f.String()))
		if err != nil {
			return false
		}
		d = v
	case reflect.Float32, reflect.Float64:
		d = decimal.NewFromFloat(f.Float())
	default:
		return false
	}
	return d.Equal(d.Round(2))
}

func customerKind(sl validator.StructLevel) {
	c := sl.Current().Interface().(models.Customer)
	if c.IsOrganization && c.IsPerson {
		sl.ReportError(c.IsPerson, "isPerson", "IsPerson", "kind", "")
	}
}
