package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("payment gateway is not configured")
	ErrValidation         = errors.New("validation failed")
	ErrSignature          = errors.New("invalid signature")
	ErrTradeStatus        = errors.New("trade is not successful")
	ErrProvider           = errors.New("payment provider rejected the request")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrUserNotFound       = errors.New("user not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrInvalidPIN         = errors.New("invalid pin")
)

// ProviderError carries the gateway's own message for a rejected call.
type ProviderError struct {
	Code int
	Msg  string
}

func (e *ProviderError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("provider error: code %d", e.Code)
	}
	return fmt.Sprintf("provider error: %s", e.Msg)
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// ValidationErrorf wraps ErrValidation with a caller-facing message.
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
