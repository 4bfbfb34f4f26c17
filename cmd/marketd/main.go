package main

import (
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/mintbay/nft-marketplace/generated/dic"
	"github.com/mintbay/nft-marketplace/internal/config"
	"github.com/mintbay/nft-marketplace/internal/event"
	"github.com/mintbay/nft-marketplace/internal/messenger"
	"go.uber.org/zap"
	"net/http"
)

var container *dic.Container

func main() {
	config.Init("marketd")
	container, _ = dic.NewContainer()

	go health()

	zap.L().With(zap.String("port", config.Get().HealthPort)).Info("Marketplace Started")

	event.AddEventListener(event.ListedEvent, container.GetListingIndexer().IndexListing)
	event.AddEventListener(event.BoughtEvent, container.GetListingIndexer().IndexSale)
	event.AddEventListener(event.CancelledEvent, container.GetListingIndexer().IndexCancellation)
	event.AddEventListener(event.ListedEvent, container.GetMetadataIndexer().TriggerMetadataRefresh)
	event.AddEventListener(event.BoughtEvent, publishSettlement)

	container.GetDaemon().Execute()
}

func publishSettlement(msg event.Envelope) {
	body, err := json.Marshal(msg)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to marshal settlement message")
		return
	}

	if err := container.GetMessenger().SendMessage(messenger.ListingSettled, body); err != nil {
		zap.L().With(zap.Error(err), zap.String("eventId", msg.Id)).Error("Failed to publish settlement")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
