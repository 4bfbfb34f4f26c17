package registry

import (
	"errors"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNotOwner      = errors.New("not the asset owner")
	ErrNotAuthorized = errors.New("transfer not authorized")
)

// Service is the asset registry the marketplace settles against. The
// marketplace never holds custody of an asset; it is granted transfer
// authorization by the owner and issues a single TransferFrom per sale.
// TransferFrom must fail loudly when the authorization has been revoked.
type Service interface {
	OwnerOf(contract string, tokenId uint64) (string, error)
	IsAuthorized(contract string, tokenId uint64, operator string) (bool, error)
	TokenURI(contract string, tokenId uint64) (string, error)
	TransferFrom(contract string, operator string, from string, to string, tokenId uint64) error
}
