package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

// Listing is the read-side projection of a ledger listing, enriched with
// asset metadata for the presentation layer. The authoritative record
// lives in the settlement core; this document only follows its events.
type Listing struct {
	ListingId     uint64 `json:"listingId"`
	Seller        string `json:"seller"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Price         string `json:"price"`
	PaymentToken  string `json:"paymentToken"`
	Active        bool   `json:"active"`
	ListedAt      string `json:"listedAt"`

	Name     string `json:"name"`
	MediaUri string `json:"mediaUri"`

	MetadataAttempted bool   `json:"metadataAttempted"`
	MetadataError     string `json:"metadataError"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.ListingId)
}

func CreateListingSlug(listingId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", listingId))
}
