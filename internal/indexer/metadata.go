package indexer

import (
	"encoding/json"
	"github.com/mintbay/nft-marketplace/internal/elastic_search"
	"github.com/mintbay/nft-marketplace/internal/entity"
	"github.com/mintbay/nft-marketplace/internal/event"
	"github.com/mintbay/nft-marketplace/internal/messenger"
	"github.com/mintbay/nft-marketplace/internal/metadata"
	"github.com/mintbay/nft-marketplace/internal/registry"
	"github.com/mintbay/nft-marketplace/internal/repository"
	"go.uber.org/zap"
)

// MetadataIndexer enriches listing documents with the asset's off-platform
// metadata. Fetches run through the refresh queue so a slow or failing
// gateway never blocks settlement or projection.
type MetadataIndexer interface {
	TriggerMetadataRefresh(msg event.Envelope)
	RefreshMetadata(listingId uint64) error
	RefreshPending() error
}

type metadataIndexer struct {
	elastic         elastic_search.Index
	listingRepo     repository.ListingRepository
	assetRegistry   registry.Service
	metadataService metadata.Service
	messenger       messenger.MessageService
}

func NewMetadataIndexer(
	elastic elastic_search.Index,
	listingRepo repository.ListingRepository,
	assetRegistry registry.Service,
	metadataService metadata.Service,
	messageService messenger.MessageService,
) MetadataIndexer {
	return metadataIndexer{elastic, listingRepo, assetRegistry, metadataService, messageService}
}

func (i metadataIndexer) TriggerMetadataRefresh(msg event.Envelope) {
	listed, ok := msg.Payload.(event.Listed)
	if !ok {
		zap.L().With(zap.String("eventId", msg.Id)).Error("MetadataIndexer: Unexpected payload for Listed")
		return
	}

	body, err := json.Marshal(messenger.Listing{
		ListingId:     listed.ListingId,
		AssetContract: listed.AssetContract,
		TokenId:       listed.TokenId,
	})
	if err != nil {
		zap.L().With(zap.Error(err)).Error("MetadataIndexer: Failed to marshal refresh message")
		return
	}

	if err := i.messenger.SendMessage(messenger.MetadataRefresh, body); err != nil {
		zap.L().With(zap.Uint64("listingId", listed.ListingId), zap.Error(err)).Error("MetadataIndexer: Failed to queue refresh")
	}
}

func (i metadataIndexer) RefreshMetadata(listingId uint64) error {
	listing, err := i.listingRepo.GetListing(listingId)
	if err != nil {
		return err
	}

	listing.MetadataAttempted = true
	listing.MetadataError = ""

	md, err := i.fetch(*listing)
	if err != nil {
		listing.MetadataError = err.Error()
	} else {
		if name, ok := md["name"].(string); ok {
			listing.Name = name
		}
		if image, ok := md["image"].(string); ok {
			listing.MediaUri = image
		}
	}

	i.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), *listing, elastic_search.ListingMetadata)
	i.elastic.Persist()

	return nil
}

func (i metadataIndexer) RefreshPending() error {
	size := 100
	page := 1

	for {
		listings, _, err := i.listingRepo.GetListingsWithoutMetadata(size, page)
		if err != nil {
			return err
		}
		if len(listings) == 0 {
			return nil
		}

		for _, listing := range listings {
			body, err := json.Marshal(messenger.Listing{
				ListingId:     listing.ListingId,
				AssetContract: listing.AssetContract,
				TokenId:       listing.TokenId,
			})
			if err != nil {
				return err
			}
			if err := i.messenger.SendMessage(messenger.MetadataRefresh, body); err != nil {
				return err
			}
		}

		page++
	}
}

func (i metadataIndexer) fetch(listing entity.Listing) (map[string]interface{}, error) {
	tokenUri, err := i.assetRegistry.TokenURI(listing.AssetContract, listing.TokenId)
	if err != nil {
		return nil, err
	}

	return i.metadataService.FetchMetadata(tokenUri)
}
