package token

import (
	"github.com/mintbay/nft-marketplace/pkg/eth"
	"math/big"
	"sync"
)

// MemoryService is an in-process bank covering the native currency and any
// number of fungible tokens. Balances and allowances are never negative.
type MemoryService struct {
	mu         sync.RWMutex
	balances   map[string]map[string]*big.Int
	allowances map[string]map[string]map[string]*big.Int
}

func NewMemoryService() *MemoryService {
	return &MemoryService{
		balances:   make(map[string]map[string]*big.Int),
		allowances: make(map[string]map[string]map[string]*big.Int),
	}
}

// Deposit credits an account out of thin air. Simulation faucet, not part
// of the Service contract the engine settles against.
func (s *MemoryService) Deposit(currency string, account string, amount *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.balance(currency, account)
	balance.Add(balance, amount)
}

func (s *MemoryService) BalanceOf(currency string, account string) *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.balances[eth.Normalize(currency)][eth.Normalize(account)]; ok {
		return new(big.Int).Set(b)
	}

	return big.NewInt(0)
}

func (s *MemoryService) Allowance(currency string, owner string, spender string) *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.allowances[eth.Normalize(currency)][eth.Normalize(owner)][eth.Normalize(spender)]; ok {
		return new(big.Int).Set(a)
	}

	return big.NewInt(0)
}

func (s *MemoryService) Approve(currency string, owner string, spender string, amount *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.allowance(currency, owner, spender).Set(amount)
}

func (s *MemoryService) Transfer(currency string, from string, to string, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transfer(currency, from, to, amount)
}

func (s *MemoryService) TransferFrom(currency string, spender string, from string, to string, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	allowance := s.allowance(currency, from, spender)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}

	if err := s.transfer(currency, from, to, amount); err != nil {
		return err
	}

	allowance.Sub(allowance, amount)

	return nil
}

func (s *MemoryService) transfer(currency string, from string, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	fromBalance := s.balance(currency, from)
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}

	fromBalance.Sub(fromBalance, amount)

	toBalance := s.balance(currency, to)
	toBalance.Add(toBalance, amount)

	return nil
}

func (s *MemoryService) balance(currency string, account string) *big.Int {
	currency = eth.Normalize(currency)
	account = eth.Normalize(account)

	if _, ok := s.balances[currency]; !ok {
		s.balances[currency] = make(map[string]*big.Int)
	}
	if _, ok := s.balances[currency][account]; !ok {
		s.balances[currency][account] = big.NewInt(0)
	}

	return s.balances[currency][account]
}

func (s *MemoryService) allowance(currency string, owner string, spender string) *big.Int {
	currency = eth.Normalize(currency)
	owner = eth.Normalize(owner)
	spender = eth.Normalize(spender)

	if _, ok := s.allowances[currency]; !ok {
		s.allowances[currency] = make(map[string]map[string]*big.Int)
	}
	if _, ok := s.allowances[currency][owner]; !ok {
		s.allowances[currency][owner] = make(map[string]*big.Int)
	}
	if _, ok := s.allowances[currency][owner][spender]; !ok {
		s.allowances[currency][owner][spender] = big.NewInt(0)
	}

	return s.allowances[currency][owner][spender]
}
