package validator

import (
	"log"
	"strconv"

	"sueta_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил приложение запускать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-gender': только "male" или "female", пустое значение тоже ошибка
	mustRegister("is-gender", validateGender)

	// 'max-bytes=N': длина строки в байтах UTF-8, а не в символах (bcrypt режет по 72 байтам)
	mustRegister("max-bytes", validateMaxBytes)
}

// --- Функции валидации ---

func validateGender(fl validator.FieldLevel) bool {
	_, ok := models.ParseGender(fl.Field().String())
	return ok
}

func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}
