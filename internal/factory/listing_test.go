package factory

import (
	"github.com/mintbay/nft-marketplace/internal/event"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestCreateListing(t *testing.T) {
	listedAt := time.Date(2022, 3, 1, 12, 30, 0, 0, time.UTC)

	listing := CreateListing(event.Listed{
		ListingId:     7,
		Seller:        "0x00000000000000000000000000000000000000aa",
		AssetContract: "0x00000000000000000000000000000000000000cc",
		TokenId:       3,
		Price:         "1000000",
		PaymentToken:  "0x0000000000000000000000000000000000000000",
	}, listedAt)

	assert.Equal(t, uint64(7), listing.ListingId)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", listing.Seller)
	assert.Equal(t, uint64(3), listing.TokenId)
	assert.Equal(t, "1000000", listing.Price)
	assert.True(t, listing.Active)
	assert.False(t, listing.MetadataAttempted)
	assert.Equal(t, "2022-03-01T12:30:00Z", listing.ListedAt)
	assert.Equal(t, "listing-7", listing.Slug())
}

func TestCreateSale(t *testing.T) {
	soldAt := time.Date(2022, 3, 2, 9, 0, 0, 0, time.UTC)

	sale := CreateSale(event.Bought{
		ListingId:    7,
		Buyer:        "0x00000000000000000000000000000000000000bb",
		Seller:       "0x00000000000000000000000000000000000000aa",
		TokenId:      3,
		Price:        "100",
		Fee:          "2",
		SellerAmount: "98",
	}, soldAt)

	assert.Equal(t, uint64(7), sale.ListingId)
	assert.Equal(t, "2", sale.Fee)
	assert.Equal(t, "98", sale.SellerAmount)
	assert.Equal(t, "2022-03-02T09:00:00Z", sale.SoldAt)
	assert.Equal(t, "sale-7-0x00000000000000000000000000000000000000bb", sale.Slug())
}
