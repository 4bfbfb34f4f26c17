package factory

import (
	"github.com/mintbay/nft-marketplace/internal/entity"
	"github.com/mintbay/nft-marketplace/internal/event"
	"time"
)

func CreateListing(msg event.Listed, listedAt time.Time) entity.Listing {
	return entity.Listing{
		ListingId:     msg.ListingId,
		Seller:        msg.Seller,
		AssetContract: msg.AssetContract,
		TokenId:       msg.TokenId,
		Price:         msg.Price,
		PaymentToken:  msg.PaymentToken,
		Active:        true,
		ListedAt:      listedAt.UTC().Format(time.RFC3339),
	}
}

func CreateSale(msg event.Bought, soldAt time.Time) entity.Sale {
	return entity.Sale{
		ListingId:     msg.ListingId,
		Buyer:         msg.Buyer,
		Seller:        msg.Seller,
		AssetContract: msg.AssetContract,
		TokenId:       msg.TokenId,
		Price:         msg.Price,
		Fee:           msg.Fee,
		SellerAmount:  msg.SellerAmount,
		PaymentToken:  msg.PaymentToken,
		SoldAt:        soldAt.UTC().Format(time.RFC3339),
	}
}
