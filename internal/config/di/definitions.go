package di

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mintbay/nft-marketplace/internal/api"
	"github.com/mintbay/nft-marketplace/internal/config"
	"github.com/mintbay/nft-marketplace/internal/daemon"
	"github.com/mintbay/nft-marketplace/internal/elastic_search"
	"github.com/mintbay/nft-marketplace/internal/indexer"
	"github.com/mintbay/nft-marketplace/internal/marketplace"
	"github.com/mintbay/nft-marketplace/internal/messenger"
	"github.com/mintbay/nft-marketplace/internal/metadata"
	"github.com/mintbay/nft-marketplace/internal/registry"
	"github.com/mintbay/nft-marketplace/internal/repository"
	"github.com/mintbay/nft-marketplace/internal/token"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
	"time"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "cache",
		Build: func(ctn di.Container) (interface{}, error) {
			return cache.New(5*time.Minute, 10*time.Minute), nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn di.Container) (interface{}, error) {
			return registry.NewMemoryService(), nil
		},
	},
	{
		Name: "bank",
		Build: func(ctn di.Container) (interface{}, error) {
			return token.NewMemoryService(), nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewLedger(), nil
		},
	},
	{
		Name: "engine",
		Build: func(ctn di.Container) (interface{}, error) {
			engine, err := marketplace.NewEngine(
				ctn.Get("ledger").(*marketplace.Ledger),
				ctn.Get("registry").(*registry.MemoryService),
				ctn.Get("bank").(*token.MemoryService),
				config.Get().Account,
				config.Get().Admin,
				config.Get().FeeRecipient,
				config.Get().FeePercent,
			)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to create settlement engine")
			}

			return engine, nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewListingRepository(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("cache").(*cache.Cache),
			), nil
		},
	},
	{
		Name: "sale.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewSaleRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "listing.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewListingIndexer(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("listing.repo").(repository.ListingRepository),
			), nil
		},
	},
	{
		Name: "metadata.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewMetadataIndexer(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("registry").(*registry.MemoryService),
				ctn.Get("metadata").(metadata.Service),
				ctn.Get("messenger").(messenger.MessageService),
			), nil
		},
	},
	{
		Name: "metadata",
		Build: func(ctn di.Container) (interface{}, error) {
			client := retryablehttp.NewClient()
			client.RetryMax = config.Get().MetadataRetries
			client.HTTPClient.Timeout = time.Duration(config.Get().IpfsTimeout) * time.Second
			client.Logger = nil

			return metadata.NewMetadataService(client), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			awsConfig := &aws.Config{Region: aws.String(config.Get().Aws.Region)}
			if config.Get().Aws.AccessKey != "" {
				awsConfig.Credentials = credentials.NewStaticCredentials(
					config.Get().Aws.AccessKey,
					config.Get().Aws.SecretKey,
					"",
				)
			}

			return messenger.NewMessenger(sqs.New(session.Must(session.NewSession(awsConfig)))), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("engine").(*marketplace.Engine),
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("sale.repo").(repository.SaleRepository),
			), nil
		},
	},
	{
		Name: "daemon",
		Build: func(ctn di.Container) (interface{}, error) {
			return daemon.NewDaemon(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("engine").(*marketplace.Engine),
				ctn.Get("listing.indexer").(indexer.ListingIndexer),
				ctn.Get("api").(api.Server),
			), nil
		},
	},
}
