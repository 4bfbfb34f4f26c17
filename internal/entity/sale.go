package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

// Sale records a settled purchase: the price paid and how it was split
// between the fee recipient and the seller.
type Sale struct {
	ListingId     uint64 `json:"listingId"`
	Buyer         string `json:"buyer"`
	Seller        string `json:"seller"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Price         string `json:"price"`
	Fee           string `json:"fee"`
	SellerAmount  string `json:"sellerAmount"`
	PaymentToken  string `json:"paymentToken"`
	SoldAt        string `json:"soldAt"`
}

func (s Sale) Slug() string {
	return slug.Make(fmt.Sprintf("sale-%d-%s", s.ListingId, s.Buyer))
}
