package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tnqbao/gau-sequia-service/domain"
)

const MinPasswordLength = 8

// commonPasswords is a short list of passwords rejected outright.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "87654321": {},
	"qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {},
	"abc12345": {}, "11111111": {}, "00000000": {}, "superman": {},
	"contraseña": {}, "contrasena": {}, "contraseña1": {}, "contrasena123": {},
	"micontraseña": {}, "chile123": {}, "santiago": {}, "admin123": {},
	"administrador": {}, "trustno1": {}, "letmein1": {}, "dragon12": {},
}

// ValidatePassword applies the password rules: minimum length, not entirely
// numeric, not a common password, and not too close to the user's own data.
func ValidatePassword(password string, attrs ...string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.NewValidationError("password", "La contraseña es demasiado corta. Debe contener al menos 8 caracteres.")
	}
	if isNumeric(password) {
		return domain.NewValidationError("password", "La contraseña es completamente numérica.")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return domain.NewValidationError("password", "La contraseña tiene un valor demasiado común.")
	}
	for _, attr := range attrs {
		if tooSimilar(password, attr) {
			return domain.NewValidationError("password", "La contraseña es demasiado similar a la información del usuario.")
		}
	}
	return nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// tooSimilar rejects a password containing the attribute (or any of its
// parts split on "@", ".", "-", "_") or contained in it.
func tooSimilar(password, attr string) bool {
	password = strings.ToLower(password)
	attr = strings.ToLower(strings.TrimSpace(attr))
	if attr == "" {
		return false
	}

	parts := strings.FieldsFunc(attr, func(r rune) bool {
		return r == '@' || r == '.' || r == '-' || r == '_' || unicode.IsSpace(r)
	})
	parts = append(parts, attr)
	for _, part := range parts {
		if utf8.RuneCountInString(part) < 3 {
			continue
		}
		if strings.Contains(password, part) || strings.Contains(part, password) {
			return true
		}
	}
	return false
}
