package token

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/big"
	"testing"
)

const (
	currency = "0x00000000000000000000000000000000000000dd"
	alice    = "0x00000000000000000000000000000000000000aa"
	bob      = "0x00000000000000000000000000000000000000bb"
	spender  = "0x0000000000000000000000000000000000000001"
)

func TestMemoryService_Deposit(t *testing.T) {
	s := NewMemoryService()

	assert.Equal(t, "0", s.BalanceOf(currency, alice).String())

	s.Deposit(currency, alice, big.NewInt(100))
	s.Deposit(currency, alice, big.NewInt(50))
	assert.Equal(t, "150", s.BalanceOf(currency, alice).String())

	// balances are scoped per currency
	assert.Equal(t, "0", s.BalanceOf(Native, alice).String())
}

func TestMemoryService_Transfer(t *testing.T) {
	s := NewMemoryService()
	s.Deposit(currency, alice, big.NewInt(100))

	err := s.Transfer(currency, alice, bob, big.NewInt(101))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	err = s.Transfer(currency, alice, bob, big.NewInt(-1))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = s.Transfer(currency, alice, bob, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	require.NoError(t, s.Transfer(currency, alice, bob, big.NewInt(60)))
	assert.Equal(t, "40", s.BalanceOf(currency, alice).String())
	assert.Equal(t, "60", s.BalanceOf(currency, bob).String())
}

func TestMemoryService_TransferFrom(t *testing.T) {
	s := NewMemoryService()
	s.Deposit(currency, alice, big.NewInt(100))

	err := s.TransferFrom(currency, spender, alice, bob, big.NewInt(50))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	s.Approve(currency, alice, spender, big.NewInt(70))

	err = s.TransferFrom(currency, spender, alice, bob, big.NewInt(71))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, s.TransferFrom(currency, spender, alice, bob, big.NewInt(50)))
	assert.Equal(t, "50", s.BalanceOf(currency, alice).String())
	assert.Equal(t, "50", s.BalanceOf(currency, bob).String())

	// spending decrements the allowance
	assert.Equal(t, "20", s.Allowance(currency, alice, spender).String())

	err = s.TransferFrom(currency, spender, alice, bob, big.NewInt(21))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)
}

func TestMemoryService_TransferFrom_InsufficientBalance(t *testing.T) {
	s := NewMemoryService()
	s.Deposit(currency, alice, big.NewInt(10))
	s.Approve(currency, alice, spender, big.NewInt(100))

	err := s.TransferFrom(currency, spender, alice, bob, big.NewInt(50))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// a failed pull leaves the allowance untouched
	assert.Equal(t, "100", s.Allowance(currency, alice, spender).String())
}

func TestMemoryService_Approve(t *testing.T) {
	s := NewMemoryService()

	assert.Equal(t, "0", s.Allowance(currency, alice, spender).String())

	s.Approve(currency, alice, spender, big.NewInt(100))
	assert.Equal(t, "100", s.Allowance(currency, alice, spender).String())

	// a second approval replaces, not adds
	s.Approve(currency, alice, spender, big.NewInt(10))
	assert.Equal(t, "10", s.Allowance(currency, alice, spender).String())
}

func TestMemoryService_BalanceOf_Copies(t *testing.T) {
	s := NewMemoryService()
	s.Deposit(currency, alice, big.NewInt(100))

	balance := s.BalanceOf(currency, alice)
	balance.SetInt64(0)
	assert.Equal(t, "100", s.BalanceOf(currency, alice).String())
}

func TestIsNative(t *testing.T) {
	assert.True(t, IsNative(Native))
	assert.True(t, IsNative("0x0000000000000000000000000000000000000000"))
	assert.False(t, IsNative(currency))
}
