package elastic_search

import (
	"github.com/mintbay/nft-marketplace/internal/entity"
	"go.uber.org/zap"
)

func mergeRequests(index string, cached Request, action RequestAction, e entity.Entity) entity.Entity {
	switch {
	case index == SaleIndex.Get():
		return cached.Entity.(entity.Sale)

	case index == ListingIndex.Get():
		result := cached.Entity.(entity.Listing)
		if action == ListingSold || action == ListingCancelled {
			result.Active = e.(entity.Listing).Active
		}

		if action == ListingMetadata {
			result.Name = e.(entity.Listing).Name
			result.MediaUri = e.(entity.Listing).MediaUri
			result.MetadataAttempted = e.(entity.Listing).MetadataAttempted
			result.MetadataError = e.(entity.Listing).MetadataError
		}

		return result
	}

	zap.L().Fatal("Failed to merge request")
	return nil
}
