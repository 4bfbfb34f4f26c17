package indexer

import (
	"github.com/mintbay/nft-marketplace/internal/elastic_search"
	"github.com/mintbay/nft-marketplace/internal/entity"
	"github.com/mintbay/nft-marketplace/internal/event"
	"github.com/mintbay/nft-marketplace/internal/factory"
	"github.com/mintbay/nft-marketplace/internal/marketplace"
	"github.com/mintbay/nft-marketplace/internal/repository"
	"go.uber.org/zap"
)

// ListingIndexer follows engine events and keeps the search index in step
// with the ledger. It is the only writer of listing and sale documents.
type ListingIndexer interface {
	IndexListing(msg event.Envelope)
	IndexSale(msg event.Envelope)
	IndexCancellation(msg event.Envelope)

	IndexListings(listings []marketplace.Listing)
}

type listingIndexer struct {
	elastic     elastic_search.Index
	listingRepo repository.ListingRepository
}

func NewListingIndexer(elastic elastic_search.Index, listingRepo repository.ListingRepository) ListingIndexer {
	return listingIndexer{elastic, listingRepo}
}

func (i listingIndexer) IndexListing(msg event.Envelope) {
	listed, ok := msg.Payload.(event.Listed)
	if !ok {
		zap.L().With(zap.String("eventId", msg.Id)).Error("ListingIndexer: Unexpected payload for Listed")
		return
	}

	listing := factory.CreateListing(listed, msg.Time)

	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), listing, elastic_search.ListingCreate)
	i.elastic.Persist()
}

func (i listingIndexer) IndexSale(msg event.Envelope) {
	bought, ok := msg.Payload.(event.Bought)
	if !ok {
		zap.L().With(zap.String("eventId", msg.Id)).Error("ListingIndexer: Unexpected payload for Bought")
		return
	}

	sale := factory.CreateSale(bought, msg.Time)
	i.elastic.AddIndexRequest(elastic_search.SaleIndex.Get(), sale, elastic_search.SaleCreate)

	i.deactivateListing(bought.ListingId, elastic_search.ListingSold)
	i.elastic.Persist()
}

func (i listingIndexer) IndexCancellation(msg event.Envelope) {
	cancelled, ok := msg.Payload.(event.Cancelled)
	if !ok {
		zap.L().With(zap.String("eventId", msg.Id)).Error("ListingIndexer: Unexpected payload for Cancelled")
		return
	}

	i.deactivateListing(cancelled.ListingId, elastic_search.ListingCancelled)
	i.elastic.Persist()
}

// IndexListings rebuilds listing documents straight from the ledger.
func (i listingIndexer) IndexListings(listings []marketplace.Listing) {
	for _, l := range listings {
		doc := entity.Listing{
			ListingId:     l.Id,
			Seller:        l.Seller,
			AssetContract: l.AssetContract,
			TokenId:       l.TokenId,
			Price:         l.Price.String(),
			PaymentToken:  l.PaymentToken,
			Active:        l.Active,
		}

		i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), doc, elastic_search.ListingCreate)
		i.elastic.BatchPersist()
	}

	i.elastic.Persist()
}

func (i listingIndexer) deactivateListing(listingId uint64, action elastic_search.RequestAction) {
	listing := i.getListing(listingId)
	if listing == nil {
		zap.L().With(zap.Uint64("listingId", listingId)).Warn("ListingIndexer: Listing document missing, cannot deactivate")
		return
	}

	listing.Active = false

	i.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), *listing, action)
}

func (i listingIndexer) getListing(listingId uint64) *entity.Listing {
	if req := i.elastic.GetRequest(entity.CreateListingSlug(listingId)); req != nil {
		listing := req.Entity.(entity.Listing)
		return &listing
	}

	listing, err := i.listingRepo.GetListing(listingId)
	if err != nil {
		return nil
	}

	return listing
}
