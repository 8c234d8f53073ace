package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength - минимальная длина пароля при регистрации.
const MinLength = 8

// ErrTooLong возвращается для паролей длиннее 72 байт: bcrypt их молча обрезает.
var ErrTooLong = errors.New("password exceeds 72 bytes")

// Hash хеширует пароль с использованием bcrypt.
func Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare сравнивает хэш пароля и «сырой» пароль.
func Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
