package daemon

import (
	"github.com/mintbay/nft-marketplace/internal/api"
	"github.com/mintbay/nft-marketplace/internal/config"
	"github.com/mintbay/nft-marketplace/internal/elastic_search"
	"github.com/mintbay/nft-marketplace/internal/indexer"
	"github.com/mintbay/nft-marketplace/internal/marketplace"
	"go.uber.org/zap"
	"net/http"
)

type Daemon struct {
	elastic        elastic_search.Index
	engine         *marketplace.Engine
	listingIndexer indexer.ListingIndexer
	server         api.Server
}

func NewDaemon(
	elastic elastic_search.Index,
	engine *marketplace.Engine,
	listingIndexer indexer.ListingIndexer,
	server api.Server,
) *Daemon {
	return &Daemon{elastic, engine, listingIndexer, server}
}

func (d *Daemon) Execute() {
	d.elastic.InstallMappings()

	if config.Get().Reindex == true {
		d.rebuildProjection()
		zap.L().Info("Projection rebuild complete")
	}

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace Api listening")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, d.server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to serve marketplace api")
	}
}

// rebuildProjection reindexes every listing document straight from the
// authoritative ledger.
func (d *Daemon) rebuildProjection() {
	count := d.engine.ListingCount()
	listings := make([]marketplace.Listing, 0, count)

	for id := uint64(1); id <= count; id++ {
		listing, err := d.engine.Listing(id)
		if err != nil {
			zap.L().With(zap.Uint64("listingId", id), zap.Error(err)).Error("Daemon: Failed to read listing")
			continue
		}
		listings = append(listings, listing)
	}

	d.listingIndexer.IndexListings(listings)
}
