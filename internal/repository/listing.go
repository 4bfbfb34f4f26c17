package repository

import (
	"encoding/json"
	"errors"
	"github.com/mintbay/nft-marketplace/internal/elastic_search"
	"github.com/mintbay/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	GetListing(listingId uint64) (*entity.Listing, error)
	GetActiveListings(size, page int) ([]entity.Listing, int64, error)
	GetListingsByContract(assetContract string, size, page int) ([]entity.Listing, int64, error)
	GetListingsWithoutMetadata(size, page int) ([]entity.Listing, int64, error)
}

type listingRepository struct {
	elastic elastic_search.Index
	cache   *cache.Cache
}

func NewListingRepository(elastic elastic_search.Index, cache *cache.Cache) ListingRepository {
	return listingRepository{elastic, cache}
}

func (r listingRepository) GetListing(listingId uint64) (*entity.Listing, error) {
	if cached, found := r.cache.Get(entity.CreateListingSlug(listingId)); found {
		listing := cached.(entity.Listing)
		return &listing, nil
	}

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("listingId", listingId)).
		Size(1))

	listing, err := r.findOne(result, err)
	if err != nil {
		return nil, err
	}

	r.cache.Set(listing.Slug(), *listing, cache.DefaultExpiration)

	return listing, nil
}

func (r listingRepository) GetActiveListings(size, page int) ([]entity.Listing, int64, error) {
	from := size*page - size

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("active", true)).
		Sort("listingId", true).
		TrackTotalHits(true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r listingRepository) GetListingsByContract(assetContract string, size, page int) ([]entity.Listing, int64, error) {
	from := size*page - size

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("assetContract.keyword", assetContract)).
		Sort("listingId", true).
		TrackTotalHits(true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r listingRepository) GetListingsWithoutMetadata(size, page int) ([]entity.Listing, int64, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("metadataAttempted", false),
	)

	from := size*page - size

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(query).
		Sort("listingId", true).
		TrackTotalHits(true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r listingRepository) findOne(results *elastic.SearchResult, err error) (*entity.Listing, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrListingNotFound
	}

	var listing entity.Listing
	hit := results.Hits.Hits[0]
	if err = json.Unmarshal(hit.Source, &listing); err != nil {
		return nil, err
	}

	return &listing, nil
}

func (r listingRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Listing, int64, error) {
	listings := make([]entity.Listing, 0)

	if err != nil {
		return listings, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var listing entity.Listing
		if err := json.Unmarshal(hit.Source, &listing); err != nil {
			zap.L().With(zap.Error(err)).Warn("ListingRepository: Failed to unmarshal listing")
			continue
		}
		listings = append(listings, listing)
	}

	return listings, results.TotalHits(), nil
}
