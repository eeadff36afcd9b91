package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type HashServiceInterface interface {
	HashPIN(pin string) (string, error)
	ComparePIN(hashedPIN, pin string) bool
}

type HashService struct{}

func (b *HashService) HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", errors.New("pin cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *HashService) ComparePIN(hashedPIN, pin string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPIN), []byte(pin))
	return err == nil
}
