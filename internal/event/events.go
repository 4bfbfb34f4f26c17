package event

import (
	"time"
)

type Type string

const (
	ListedEvent              Type = "ListedEvent"
	BoughtEvent              Type = "BoughtEvent"
	CancelledEvent           Type = "CancelledEvent"
	FeeUpdatedEvent          Type = "FeeUpdatedEvent"
	FeeRecipientUpdatedEvent Type = "FeeRecipientUpdatedEvent"
)

// Envelope wraps a payload with an audit identity. Events are the engine's
// side-channel output, not ledger state; indexers and queue publishers
// consume them.
type Envelope struct {
	Id      string      `json:"id"`
	Type    Type        `json:"type"`
	Time    time.Time   `json:"time"`
	Payload interface{} `json:"payload"`
}

type Listed struct {
	ListingId     uint64 `json:"listingId"`
	Seller        string `json:"seller"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Price         string `json:"price"`
	PaymentToken  string `json:"paymentToken"`
}

type Bought struct {
	ListingId     uint64 `json:"listingId"`
	Buyer         string `json:"buyer"`
	Seller        string `json:"seller"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Price         string `json:"price"`
	Fee           string `json:"fee"`
	SellerAmount  string `json:"sellerAmount"`
	PaymentToken  string `json:"paymentToken"`
}

type Cancelled struct {
	ListingId uint64 `json:"listingId"`
}

type FeeUpdated struct {
	FeePercent uint `json:"feePercent"`
}

type FeeRecipientUpdated struct {
	FeeRecipient string `json:"feeRecipient"`
}
