package marketplace

import (
	"fmt"
	"github.com/mintbay/nft-marketplace/internal/event"
	"github.com/mintbay/nft-marketplace/internal/registry"
	"github.com/mintbay/nft-marketplace/internal/token"
	"github.com/mintbay/nft-marketplace/pkg/eth"
	"go.uber.org/zap"
	"math/big"
	"sync"
)

// Engine is the settlement core: it owns the listing ledger and the fee
// configuration and orchestrates the asset registry and the bank per
// operation. Every public mutation runs to completion under the engine
// mutex; no operation observes a partially applied effect of another.
type Engine struct {
	mu       sync.Mutex
	ledger   *Ledger
	registry registry.Service
	bank     token.Service

	account string

	admin        string
	feePercent   uint
	feeRecipient string
}

func NewEngine(
	ledger *Ledger,
	assetRegistry registry.Service,
	bank token.Service,
	account string,
	admin string,
	feeRecipient string,
	feePercent uint,
) (*Engine, error) {
	if feePercent > 100 {
		return nil, ErrInvalidFee
	}
	if eth.IsZero(feeRecipient) {
		return nil, ErrInvalidRecipient
	}

	return &Engine{
		ledger:       ledger,
		registry:     assetRegistry,
		bank:         bank,
		account:      eth.Normalize(account),
		admin:        eth.Normalize(admin),
		feePercent:   feePercent,
		feeRecipient: eth.Normalize(feeRecipient),
	}, nil
}

// List records a new listing for the caller's asset. No funds move and the
// asset stays with the seller; only the transfer authorization granted to
// the marketplace account is relied upon later, at settlement time.
func (e *Engine) List(caller string, assetContract string, tokenId uint64, price *big.Int, paymentToken string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if price == nil || price.Sign() <= 0 {
		return 0, ErrInvalidPrice
	}

	listing := Listing{
		Seller:        eth.Normalize(caller),
		AssetContract: eth.Normalize(assetContract),
		TokenId:       tokenId,
		Price:         price,
		PaymentToken:  eth.Normalize(paymentToken),
	}

	id := e.ledger.Append(listing)

	zap.L().With(
		zap.Uint64("listingId", id),
		zap.String("seller", listing.Seller),
		zap.String("assetContract", listing.AssetContract),
		zap.Uint64("tokenId", tokenId),
		zap.String("price", price.String()),
		zap.String("paymentToken", listing.PaymentToken),
	).Info("Marketplace: Listed")

	event.EmitEvent(event.ListedEvent, event.Listed{
		ListingId:     id,
		Seller:        listing.Seller,
		AssetContract: listing.AssetContract,
		TokenId:       tokenId,
		Price:         price.String(),
		PaymentToken:  listing.PaymentToken,
	})

	return id, nil
}

// Buy settles a listing for the caller. The payment is pulled into the
// marketplace escrow account first, then the asset moves seller to buyer,
// then the escrowed funds are split between the fee recipient and the
// seller. A failed asset transfer refunds the escrowed payment and leaves
// the listing untouched.
func (e *Engine) Buy(caller string, id uint64, value *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if value == nil {
		value = big.NewInt(0)
	}
	caller = eth.Normalize(caller)

	listing, err := e.ledger.beginSettlement(id)
	if err != nil {
		return err
	}

	currency := listing.PaymentToken

	if token.IsNative(currency) {
		if value.Cmp(listing.Price) != 0 {
			e.ledger.abortSettlement(id)
			return ErrPaymentMismatch
		}
		if err := e.bank.Transfer(currency, caller, e.account, listing.Price); err != nil {
			e.ledger.abortSettlement(id)
			return fmt.Errorf("payment transfer failed: %w", err)
		}
	} else {
		if value.Sign() != 0 {
			e.ledger.abortSettlement(id)
			return ErrPaymentMismatch
		}
		if err := e.bank.TransferFrom(currency, e.account, caller, e.account, listing.Price); err != nil {
			e.ledger.abortSettlement(id)
			return fmt.Errorf("payment transfer failed: %w", err)
		}
	}

	if err := e.registry.TransferFrom(listing.AssetContract, e.account, listing.Seller, caller, listing.TokenId); err != nil {
		if refundErr := e.bank.Transfer(currency, e.account, caller, listing.Price); refundErr != nil {
			zap.L().With(zap.Uint64("listingId", id), zap.Error(refundErr)).Error("Marketplace: Failed to refund escrowed payment")
		}
		e.ledger.abortSettlement(id)
		return fmt.Errorf("asset transfer failed: %w", err)
	}

	fee, sellerAmount := feeSplit(listing.Price, e.feePercent)

	// The escrow holds the full price at this point; a disbursement
	// failure means the bank adapter broke its contract.
	if fee.Sign() > 0 {
		if err := e.bank.Transfer(currency, e.account, e.feeRecipient, fee); err != nil {
			zap.L().With(zap.Uint64("listingId", id), zap.Error(err)).Error("Marketplace: Fee disbursement failed")
		}
	}
	if err := e.bank.Transfer(currency, e.account, listing.Seller, sellerAmount); err != nil {
		zap.L().With(zap.Uint64("listingId", id), zap.Error(err)).Error("Marketplace: Seller disbursement failed")
	}

	e.ledger.commitSettlement(id)

	zap.L().With(
		zap.Uint64("listingId", id),
		zap.String("buyer", caller),
		zap.String("seller", listing.Seller),
		zap.String("price", listing.Price.String()),
		zap.String("fee", fee.String()),
		zap.String("paymentToken", currency),
	).Info("Marketplace: Bought")

	event.EmitEvent(event.BoughtEvent, event.Bought{
		ListingId:     id,
		Buyer:         caller,
		Seller:        listing.Seller,
		AssetContract: listing.AssetContract,
		TokenId:       listing.TokenId,
		Price:         listing.Price.String(),
		Fee:           fee.String(),
		SellerAmount:  sellerAmount.String(),
		PaymentToken:  currency,
	})

	return nil
}

// Cancel deactivates a listing. Seller only. The asset never left the
// seller, so this is a pure state flip.
func (e *Engine) Cancel(caller string, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.ledger.beginSettlement(id)
	if err != nil {
		return err
	}

	if eth.Normalize(caller) != listing.Seller {
		e.ledger.abortSettlement(id)
		return ErrUnauthorized
	}

	e.ledger.commitSettlement(id)

	zap.L().With(zap.Uint64("listingId", id)).Info("Marketplace: Cancelled")

	event.EmitEvent(event.CancelledEvent, event.Cancelled{ListingId: id})

	return nil
}

func (e *Engine) Listing(id uint64) (Listing, error) {
	return e.ledger.Get(id)
}

func (e *Engine) ListingCount() uint64 {
	return e.ledger.Count()
}

func (e *Engine) ActiveListings(size int, page int) []Listing {
	return e.ledger.Active(size, page)
}

// Account is the escrow identity sellers and buyers grant authorizations to.
func (e *Engine) Account() string {
	return e.account
}

// fee = price * feePercent / 100, truncating. The remainder of the integer
// division stays with the seller, so fee + sellerAmount always equals price.
func feeSplit(price *big.Int, feePercent uint) (*big.Int, *big.Int) {
	fee := new(big.Int).Mul(price, new(big.Int).SetUint64(uint64(feePercent)))
	fee.Div(fee, big.NewInt(100))

	return fee, new(big.Int).Sub(price, fee)
}
