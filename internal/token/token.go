package token

import (
	"errors"
	"github.com/mintbay/nft-marketplace/pkg/eth"
	"math/big"
)

// Native is the currency key for the host platform's base unit of value.
const Native = eth.ZeroAddress

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidAmount         = errors.New("invalid amount")
)

// Service moves value between accounts, keyed by currency contract address.
// The Native sentinel addresses the platform's base currency; every other
// key is a fungible token contract. Transfer spends the sender's own
// balance, TransferFrom spends a prior allowance granted to the spender.
type Service interface {
	BalanceOf(currency string, account string) *big.Int
	Allowance(currency string, owner string, spender string) *big.Int
	Approve(currency string, owner string, spender string, amount *big.Int)
	Transfer(currency string, from string, to string, amount *big.Int) error
	TransferFrom(currency string, spender string, from string, to string, amount *big.Int) error
}

func IsNative(currency string) bool {
	return eth.IsZero(currency)
}
