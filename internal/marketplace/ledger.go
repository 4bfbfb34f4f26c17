package marketplace

import (
	"math/big"
	"sync"
)

// Listing is the sole persisted entity of the settlement core. Every field
// except Active is immutable after creation; Active flips true to false
// exactly once, on purchase or cancellation.
type Listing struct {
	Id            uint64   `json:"id"`
	Seller        string   `json:"seller"`
	AssetContract string   `json:"assetContract"`
	TokenId       uint64   `json:"tokenId"`
	Price         *big.Int `json:"price"`
	PaymentToken  string   `json:"paymentToken"`
	Active        bool     `json:"active"`
}

type record struct {
	listing  Listing
	settling bool
}

// Ledger is the authoritative listing table. Ids are dense, start at 1 and
// are never reused; records are never deleted. The mutex reproduces the
// serialized-transaction contract on a multi-threaded host.
type Ledger struct {
	mu       sync.RWMutex
	listings map[uint64]*record
	lastId   uint64
}

func NewLedger() *Ledger {
	return &Ledger{listings: make(map[uint64]*record)}
}

func (l *Ledger) Append(listing Listing) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastId++
	listing.Id = l.lastId
	listing.Active = true
	listing.Price = new(big.Int).Set(listing.Price)

	l.listings[listing.Id] = &record{listing: listing}

	return listing.Id
}

func (l *Ledger) Get(id uint64) (Listing, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.listings[id]
	if !ok {
		return Listing{}, ErrListingNotFound
	}

	return copyListing(rec.listing), nil
}

// Count returns the highest assigned listing id.
func (l *Ledger) Count() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.lastId
}

// Active returns the active listings in id order, a page at a time.
// Pages start at 1.
func (l *Ledger) Active(size int, page int) []Listing {
	l.mu.RLock()
	defer l.mu.RUnlock()

	listings := make([]Listing, 0)
	skip := size * (page - 1)

	for id := uint64(1); id <= l.lastId; id++ {
		rec := l.listings[id]
		if !rec.listing.Active || rec.settling {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if len(listings) == size {
			break
		}
		listings = append(listings, copyListing(rec.listing))
	}

	return listings
}

// beginSettlement takes the settling guard for a listing, removing it from
// the settleable set before any external adapter is invoked. A listing
// already settling cannot be re-entered.
func (l *Ledger) beginSettlement(id uint64) (Listing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.listings[id]
	if !ok {
		return Listing{}, ErrListingNotFound
	}

	if !rec.listing.Active || rec.settling {
		return Listing{}, ErrListingInactive
	}

	rec.settling = true

	return copyListing(rec.listing), nil
}

func (l *Ledger) commitSettlement(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.listings[id]; ok {
		rec.listing.Active = false
		rec.settling = false
	}
}

func (l *Ledger) abortSettlement(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.listings[id]; ok {
		rec.settling = false
	}
}

func copyListing(listing Listing) Listing {
	listing.Price = new(big.Int).Set(listing.Price)
	return listing
}
