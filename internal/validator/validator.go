package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError - одна ошибка поля: имя из form-тега, тег правила и сообщение.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// ValidationError содержит ошибки полей в порядке объявления полей структуры.
type ValidationError struct {
	Fields []FieldError
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for _, fe := range e.Fields {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", fe.Field, fe.Message))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// First возвращает первую ошибку (порядок как в форме)
func (e *ValidationError) First() FieldError {
	if len(e.Fields) == 0 {
		return FieldError{}
	}
	return e.Fields[0]
}

// Map - "поле" -> "сообщение", для деталей ошибки.
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, fe := range e.Fields {
		if _, exists := out[fe.Field]; !exists {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Validator - это наша обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает новый экземпляр Validator.
func New() *Validator {
	v := validator.New()

	// Имена полей берутся из form-тегов, как они приходят из HTML-формы.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate выполняет валидацию переданной структуры.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Это какая-то другая ошибка (например, передали не структуру)
		return err
	}

	result := &ValidationError{Fields: make([]FieldError, 0, len(validationErrors))}
	for _, fe := range validationErrors {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}
	return result
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Поле обязательно для заполнения"
	case "min":
		return fmt.Sprintf("Должно быть не короче %s символов", fe.Param())
	case "max":
		return fmt.Sprintf("Должно быть не длиннее %s символов", fe.Param())
	case "is-gender":
		return "Неверно выбран пол"
	case "max-bytes":
		return fmt.Sprintf("Слишком длинное значение (не более %s байт, кириллица занимает 2 байта на символ)", fe.Param())
	default:
		return fmt.Sprintf("Неверное значение (правило '%s')", fe.Tag())
	}
}
