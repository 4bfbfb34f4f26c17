package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/mintbay/nft-marketplace/internal/marketplace"
	"github.com/mintbay/nft-marketplace/internal/registry"
	"github.com/mintbay/nft-marketplace/internal/repository"
	"github.com/mintbay/nft-marketplace/internal/token"
	"go.uber.org/zap"
	"math/big"
	"net/http"
	"strconv"
)

// Server is the HTTP boundary the presentation layer talks to. Browsing
// goes to the search projection; reads by id and every mutation go to the
// settlement engine.
type Server struct {
	engine      *marketplace.Engine
	listingRepo repository.ListingRepository
	saleRepo    repository.SaleRepository
}

func NewServer(engine *marketplace.Engine, listingRepo repository.ListingRepository, saleRepo repository.SaleRepository) Server {
	return Server{engine, listingRepo, saleRepo}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/listings", s.handleGetListings).Methods("GET")
	r.HandleFunc("/listings", s.handleCreateListing).Methods("POST")
	r.HandleFunc("/listings/count", s.handleGetListingCount).Methods("GET")
	r.HandleFunc("/listings/{id:[0-9]+}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{id:[0-9]+}/buy", s.handleBuyListing).Methods("POST")
	r.HandleFunc("/listings/{id:[0-9]+}/cancel", s.handleCancelListing).Methods("POST")

	r.HandleFunc("/sales", s.handleGetRecentSales).Methods("GET")
	r.HandleFunc("/sales/{contractAddr}/{tokenId:[0-9]+}", s.handleGetAssetSales).Methods("GET")

	r.HandleFunc("/fee", s.handleUpdateFee).Methods("PUT")
	r.HandleFunc("/fee/recipient", s.handleUpdateFeeRecipient).Methods("PUT")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleGetListings(w http.ResponseWriter, r *http.Request) {
	size, page := pagination(r)

	listings, total, err := s.listingRepo.GetActiveListings(size, page)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Api: Failed to get active listings")
		http.Error(w, "Failed to get listings", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"listings": listings, "total": total})
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)

	listing, err := s.engine.Listing(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, listingResponse(listing))
}

func (s Server) handleGetListingCount(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]uint64{"count": s.engine.ListingCount()})
}

type createListingRequest struct {
	Seller        string `json:"seller"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Price         string `json:"price"`
	PaymentToken  string `json:"paymentToken"`
}

func (s Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	price, ok := new(big.Int).SetString(req.Price, 10)
	if !ok {
		http.Error(w, "Invalid price", http.StatusBadRequest)
		return
	}

	id, err := s.engine.List(req.Seller, req.AssetContract, req.TokenId, price, req.PaymentToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]uint64{"listingId": id})
}

type buyListingRequest struct {
	Buyer string `json:"buyer"`
	Value string `json:"value"`
}

func (s Server) handleBuyListing(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)

	var req buyListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	value := big.NewInt(0)
	if req.Value != "" {
		var ok bool
		if value, ok = new(big.Int).SetString(req.Value, 10); !ok {
			http.Error(w, "Invalid value", http.StatusBadRequest)
			return
		}
	}

	if err := s.engine.Buy(req.Buyer, id, value); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type cancelListingRequest struct {
	Caller string `json:"caller"`
}

func (s Server) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)

	var req cancelListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.Cancel(req.Caller, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleGetRecentSales(w http.ResponseWriter, r *http.Request) {
	size, page := pagination(r)

	sales, total, err := s.saleRepo.GetRecentSales(size, page)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Api: Failed to get recent sales")
		http.Error(w, "Failed to get sales", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"sales": sales, "total": total})
}

func (s Server) handleGetAssetSales(w http.ResponseWriter, r *http.Request) {
	contractAddr := mux.Vars(r)["contractAddr"]
	tokenId, _ := strconv.ParseUint(mux.Vars(r)["tokenId"], 10, 64)
	size, page := pagination(r)

	sales, total, err := s.saleRepo.GetSalesByAsset(contractAddr, tokenId, size, page)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Api: Failed to get asset sales")
		http.Error(w, "Failed to get sales", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"sales": sales, "total": total})
}

type updateFeeRequest struct {
	Caller  string `json:"caller"`
	Percent uint   `json:"percent"`
}

func (s Server) handleUpdateFee(w http.ResponseWriter, r *http.Request) {
	var req updateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.UpdateFee(req.Caller, req.Percent); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateFeeRecipientRequest struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
}

func (s Server) handleUpdateFeeRecipient(w http.ResponseWriter, r *http.Request) {
	var req updateFeeRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.UpdateFeeRecipient(req.Caller, req.Recipient); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func listingResponse(listing marketplace.Listing) map[string]interface{} {
	return map[string]interface{}{
		"id":            listing.Id,
		"seller":        listing.Seller,
		"assetContract": listing.AssetContract,
		"tokenId":       listing.TokenId,
		"price":         listing.Price.String(),
		"paymentToken":  listing.PaymentToken,
		"active":        listing.Active,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marketplace.ErrListingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, marketplace.ErrListingInactive):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, marketplace.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, marketplace.ErrInvalidPrice),
		errors.Is(err, marketplace.ErrInvalidFee),
		errors.Is(err, marketplace.ErrInvalidRecipient),
		errors.Is(err, marketplace.ErrPaymentMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, registry.ErrNotAuthorized),
		errors.Is(err, registry.ErrNotOwner),
		errors.Is(err, registry.ErrAssetNotFound),
		errors.Is(err, token.ErrInsufficientBalance),
		errors.Is(err, token.ErrInsufficientAllowance):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		zap.L().With(zap.Error(err)).Error("Api: Unexpected error")
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func pagination(r *http.Request) (int, int) {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 || size > 100 {
		size = 25
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	return size, page
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
