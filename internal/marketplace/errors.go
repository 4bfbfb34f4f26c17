package marketplace

import (
	"errors"
)

var (
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrInvalidFee       = errors.New("fee percent out of range")
	ErrInvalidRecipient = errors.New("fee recipient cannot be the null address")
	ErrUnauthorized     = errors.New("caller not authorized")
	ErrListingNotFound  = errors.New("listing not found")
	ErrListingInactive  = errors.New("listing is not active")
	ErrPaymentMismatch  = errors.New("supplied amount does not match the listing terms")
)
