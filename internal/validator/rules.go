package validator

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout - формат дат в API (valid_until)
const DateLayout = "2006-01-02"

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}._-]+$`)

// registerCustomRules регистрирует кастомные функции валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'date': строка вида 2025-04-17
	mustRegister("date", validateDate)

	// 'username': логин без пробелов и спецсимволов
	mustRegister("username", validateUsername)

	// 'notblank': строка не из одних пробелов
	mustRegister("notblank", validateNotBlank)
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return usernamePattern.MatchString(value)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
