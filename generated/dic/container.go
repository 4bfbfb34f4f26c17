package dic

import (
	configDi "github.com/mintbay/nft-marketplace/internal/config/di"
	"github.com/mintbay/nft-marketplace/internal/api"
	"github.com/mintbay/nft-marketplace/internal/daemon"
	"github.com/mintbay/nft-marketplace/internal/elastic_search"
	"github.com/mintbay/nft-marketplace/internal/indexer"
	"github.com/mintbay/nft-marketplace/internal/marketplace"
	"github.com/mintbay/nft-marketplace/internal/messenger"
	"github.com/mintbay/nft-marketplace/internal/metadata"
	"github.com/mintbay/nft-marketplace/internal/registry"
	"github.com/mintbay/nft-marketplace/internal/repository"
	"github.com/mintbay/nft-marketplace/internal/token"
	"github.com/sarulabs/di/v2"
)

// Container resolves the service graph declared in internal/config/di.
type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(configDi.Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetRegistry() *registry.MemoryService {
	return c.ctn.Get("registry").(*registry.MemoryService)
}

func (c *Container) GetBank() *token.MemoryService {
	return c.ctn.Get("bank").(*token.MemoryService)
}

func (c *Container) GetLedger() *marketplace.Ledger {
	return c.ctn.Get("ledger").(*marketplace.Ledger)
}

func (c *Container) GetEngine() *marketplace.Engine {
	return c.ctn.Get("engine").(*marketplace.Engine)
}

func (c *Container) GetListingRepo() repository.ListingRepository {
	return c.ctn.Get("listing.repo").(repository.ListingRepository)
}

func (c *Container) GetSaleRepo() repository.SaleRepository {
	return c.ctn.Get("sale.repo").(repository.SaleRepository)
}

func (c *Container) GetListingIndexer() indexer.ListingIndexer {
	return c.ctn.Get("listing.indexer").(indexer.ListingIndexer)
}

func (c *Container) GetMetadataIndexer() indexer.MetadataIndexer {
	return c.ctn.Get("metadata.indexer").(indexer.MetadataIndexer)
}

func (c *Container) GetMetadataService() metadata.Service {
	return c.ctn.Get("metadata").(metadata.Service)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}

func (c *Container) GetDaemon() *daemon.Daemon {
	return c.ctn.Get("daemon").(*daemon.Daemon)
}
