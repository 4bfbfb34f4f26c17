package registry

import (
	"github.com/mintbay/nft-marketplace/pkg/eth"
	"sync"
)

type asset struct {
	owner    string
	approved string
	tokenUri string
}

// MemoryService is an in-process asset registry with ERC721 transfer
// semantics: a transfer requires the caller-equivalent operator to be the
// owner, the approved address for the token, or an approved operator for
// all of the owner's assets. A successful transfer clears the single-token
// approval.
type MemoryService struct {
	mu        sync.RWMutex
	assets    map[string]map[uint64]*asset
	operators map[string]map[string]map[string]bool
}

func NewMemoryService() *MemoryService {
	return &MemoryService{
		assets:    make(map[string]map[uint64]*asset),
		operators: make(map[string]map[string]map[string]bool),
	}
}

func (s *MemoryService) Mint(contract string, tokenId uint64, owner string, tokenUri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract = eth.Normalize(contract)
	if _, ok := s.assets[contract]; !ok {
		s.assets[contract] = make(map[uint64]*asset)
	}

	s.assets[contract][tokenId] = &asset{owner: eth.Normalize(owner), tokenUri: tokenUri}
}

func (s *MemoryService) Approve(contract string, tokenId uint64, caller string, operator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.get(contract, tokenId)
	if err != nil {
		return err
	}

	if a.owner != eth.Normalize(caller) {
		return ErrNotOwner
	}

	a.approved = eth.Normalize(operator)

	return nil
}

func (s *MemoryService) SetApprovalForAll(contract string, owner string, operator string, approved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract = eth.Normalize(contract)
	owner = eth.Normalize(owner)

	if _, ok := s.operators[contract]; !ok {
		s.operators[contract] = make(map[string]map[string]bool)
	}
	if _, ok := s.operators[contract][owner]; !ok {
		s.operators[contract][owner] = make(map[string]bool)
	}

	s.operators[contract][owner][eth.Normalize(operator)] = approved
}

func (s *MemoryService) OwnerOf(contract string, tokenId uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.get(contract, tokenId)
	if err != nil {
		return "", err
	}

	return a.owner, nil
}

func (s *MemoryService) IsAuthorized(contract string, tokenId uint64, operator string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.get(contract, tokenId)
	if err != nil {
		return false, err
	}

	return s.isAuthorized(contract, a, operator), nil
}

func (s *MemoryService) TokenURI(contract string, tokenId uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.get(contract, tokenId)
	if err != nil {
		return "", err
	}

	return a.tokenUri, nil
}

func (s *MemoryService) TransferFrom(contract string, operator string, from string, to string, tokenId uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.get(contract, tokenId)
	if err != nil {
		return err
	}

	if a.owner != eth.Normalize(from) {
		return ErrNotOwner
	}

	if !s.isAuthorized(contract, a, operator) {
		return ErrNotAuthorized
	}

	a.owner = eth.Normalize(to)
	a.approved = ""

	return nil
}

func (s *MemoryService) get(contract string, tokenId uint64) (*asset, error) {
	tokens, ok := s.assets[eth.Normalize(contract)]
	if !ok {
		return nil, ErrAssetNotFound
	}

	a, ok := tokens[tokenId]
	if !ok {
		return nil, ErrAssetNotFound
	}

	return a, nil
}

func (s *MemoryService) isAuthorized(contract string, a *asset, operator string) bool {
	operator = eth.Normalize(operator)
	if a.owner == operator || a.approved == operator {
		return true
	}

	return s.operators[eth.Normalize(contract)][a.owner][operator]
}
