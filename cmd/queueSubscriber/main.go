package main

import (
	"encoding/json"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/mintbay/nft-marketplace/generated/dic"
	"github.com/mintbay/nft-marketplace/internal/config"
	"github.com/mintbay/nft-marketplace/internal/indexer"
	"github.com/mintbay/nft-marketplace/internal/messenger"
	"go.uber.org/zap"
)

var (
	messageService  messenger.MessageService
	metadataIndexer indexer.MetadataIndexer
)

func main() {
	config.Init("queueSubscriber")

	container, _ := dic.NewContainer()
	messageService = container.GetMessenger()
	metadataIndexer = container.GetMetadataIndexer()

	go pollMetadataRefresh()

	select {}
}

func pollMetadataRefresh() {
	zap.L().Info("Subscribing to metadata refresh")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.MetadataRefresh, messages)

	for message := range messages {
		var data messenger.Listing
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read message")
			continue
		}
		zap.L().With(zap.Uint64("listingId", data.ListingId)).Info("Metadata refresh")

		if err := metadataIndexer.RefreshMetadata(data.ListingId); err != nil {
			zap.L().With(zap.Uint64("listingId", data.ListingId), zap.Error(err)).Error("Metadata refresh failed")
		} else {
			zap.L().With(zap.Uint64("listingId", data.ListingId)).Info("Metadata refresh success")
		}

		if err := messageService.DeleteMessage(messenger.MetadataRefresh, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}
