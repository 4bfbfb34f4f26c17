package api

import (
	"bytes"
	"encoding/json"
	"github.com/mintbay/nft-marketplace/internal/entity"
	"github.com/mintbay/nft-marketplace/internal/marketplace"
	"github.com/mintbay/nft-marketplace/internal/registry"
	"github.com/mintbay/nft-marketplace/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	escrowAccount = "0x0000000000000000000000000000000000000001"
	adminAccount  = "0x0000000000000000000000000000000000000002"
	feeRecipient  = "0x0000000000000000000000000000000000000003"
	seller        = "0x00000000000000000000000000000000000000aa"
	buyer         = "0x00000000000000000000000000000000000000bb"
	nftContract   = "0x00000000000000000000000000000000000000cc"
)

type stubListingRepo struct {
	listings []entity.Listing
	err      error
}

func (r stubListingRepo) GetListing(listingId uint64) (*entity.Listing, error) {
	return nil, r.err
}

func (r stubListingRepo) GetActiveListings(size, page int) ([]entity.Listing, int64, error) {
	return r.listings, int64(len(r.listings)), r.err
}

func (r stubListingRepo) GetListingsByContract(assetContract string, size, page int) ([]entity.Listing, int64, error) {
	return r.listings, int64(len(r.listings)), r.err
}

func (r stubListingRepo) GetListingsWithoutMetadata(size, page int) ([]entity.Listing, int64, error) {
	return nil, 0, r.err
}

type stubSaleRepo struct {
	sales []entity.Sale
	err   error
}

func (r stubSaleRepo) GetSale(listingId uint64) (*entity.Sale, error) {
	return nil, r.err
}

func (r stubSaleRepo) GetRecentSales(size, page int) ([]entity.Sale, int64, error) {
	return r.sales, int64(len(r.sales)), r.err
}

func (r stubSaleRepo) GetSalesByAsset(assetContract string, tokenId uint64, size, page int) ([]entity.Sale, int64, error) {
	return r.sales, int64(len(r.sales)), r.err
}

func newTestServer(t *testing.T) (Server, *registry.MemoryService, *token.MemoryService) {
	assetRegistry := registry.NewMemoryService()
	bank := token.NewMemoryService()

	engine, err := marketplace.NewEngine(marketplace.NewLedger(), assetRegistry, bank, escrowAccount, adminAccount, feeRecipient, 2)
	require.NoError(t, err)

	return NewServer(engine, stubListingRepo{}, stubSaleRepo{}), assetRegistry, bank
}

func doRequest(t *testing.T, server Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	return rec
}

func TestServer_Health(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_CreateListing(t *testing.T) {
	server, assetRegistry, _ := newTestServer(t)
	assetRegistry.Mint(nftContract, 1, seller, "")

	rec := doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller":        seller,
		"assetContract": nftContract,
		"tokenId":       1,
		"price":         "100",
		"paymentToken":  token.Native,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint64(1), created["listingId"])

	rec = doRequest(t, server, http.MethodGet, "/listings/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, seller, listing["seller"])
	assert.Equal(t, "100", listing["price"])
	assert.Equal(t, true, listing["active"])
}

func TestServer_CreateListing_InvalidPrice(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller": seller, "assetContract": nftContract, "tokenId": 1, "price": "abc", "paymentToken": token.Native,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller": seller, "assetContract": nftContract, "tokenId": 1, "price": "0", "paymentToken": token.Native,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GetListing_NotFound(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/listings/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_BuyListing(t *testing.T) {
	server, assetRegistry, bank := newTestServer(t)
	assetRegistry.Mint(nftContract, 1, seller, "")
	assetRegistry.SetApprovalForAll(nftContract, seller, escrowAccount, true)
	bank.Deposit(token.Native, buyer, big.NewInt(100))

	rec := doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller": seller, "assetContract": nftContract, "tokenId": 1, "price": "100", "paymentToken": token.Native,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/listings/1/buy", map[string]interface{}{
		"buyer": buyer, "value": "100",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	owner, err := assetRegistry.OwnerOf(nftContract, 1)
	require.NoError(t, err)
	assert.Equal(t, buyer, owner)

	// a second purchase hits an inactive listing
	rec = doRequest(t, server, http.MethodPost, "/listings/1/buy", map[string]interface{}{
		"buyer": buyer, "value": "100",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_BuyListing_PaymentMismatch(t *testing.T) {
	server, assetRegistry, bank := newTestServer(t)
	assetRegistry.Mint(nftContract, 1, seller, "")
	assetRegistry.SetApprovalForAll(nftContract, seller, escrowAccount, true)
	bank.Deposit(token.Native, buyer, big.NewInt(100))

	doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller": seller, "assetContract": nftContract, "tokenId": 1, "price": "100", "paymentToken": token.Native,
	})

	rec := doRequest(t, server, http.MethodPost, "/listings/1/buy", map[string]interface{}{
		"buyer": buyer, "value": "50",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_BuyListing_InsufficientBalance(t *testing.T) {
	server, assetRegistry, _ := newTestServer(t)
	assetRegistry.Mint(nftContract, 1, seller, "")
	assetRegistry.SetApprovalForAll(nftContract, seller, escrowAccount, true)

	doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller": seller, "assetContract": nftContract, "tokenId": 1, "price": "100", "paymentToken": token.Native,
	})

	rec := doRequest(t, server, http.MethodPost, "/listings/1/buy", map[string]interface{}{
		"buyer": buyer, "value": "100",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_CancelListing(t *testing.T) {
	server, assetRegistry, _ := newTestServer(t)
	assetRegistry.Mint(nftContract, 1, seller, "")

	doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller": seller, "assetContract": nftContract, "tokenId": 1, "price": "100", "paymentToken": token.Native,
	})

	rec := doRequest(t, server, http.MethodPost, "/listings/1/cancel", map[string]interface{}{"caller": buyer})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/listings/1/cancel", map[string]interface{}{"caller": seller})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/listings/1/cancel", map[string]interface{}{"caller": seller})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_ListingCount(t *testing.T) {
	server, assetRegistry, _ := newTestServer(t)
	assetRegistry.Mint(nftContract, 1, seller, "")

	rec := doRequest(t, server, http.MethodGet, "/listings/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var count map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	assert.Equal(t, uint64(0), count["count"])

	doRequest(t, server, http.MethodPost, "/listings", map[string]interface{}{
		"seller": seller, "assetContract": nftContract, "tokenId": 1, "price": "100", "paymentToken": token.Native,
	})

	rec = doRequest(t, server, http.MethodGet, "/listings/count", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	assert.Equal(t, uint64(1), count["count"])
}

func TestServer_UpdateFee(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodPut, "/fee", map[string]interface{}{"caller": seller, "percent": 5})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, server, http.MethodPut, "/fee", map[string]interface{}{"caller": adminAccount, "percent": 101})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, server, http.MethodPut, "/fee", map[string]interface{}{"caller": adminAccount, "percent": 5})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_UpdateFeeRecipient(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodPut, "/fee/recipient", map[string]interface{}{"caller": seller, "recipient": buyer})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, server, http.MethodPut, "/fee/recipient", map[string]interface{}{"caller": adminAccount, "recipient": token.Native})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, server, http.MethodPut, "/fee/recipient", map[string]interface{}{"caller": adminAccount, "recipient": buyer})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_GetListings(t *testing.T) {
	engine, err := marketplace.NewEngine(marketplace.NewLedger(), registry.NewMemoryService(), token.NewMemoryService(), escrowAccount, adminAccount, feeRecipient, 2)
	require.NoError(t, err)

	server := NewServer(engine, stubListingRepo{listings: []entity.Listing{
		{ListingId: 1, Seller: seller, AssetContract: nftContract, TokenId: 1, Price: "100", Active: true},
	}}, stubSaleRepo{})

	rec := doRequest(t, server, http.MethodGet, "/listings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Listings []entity.Listing `json:"listings"`
		Total    int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Total)
	require.Len(t, body.Listings, 1)
	assert.Equal(t, uint64(1), body.Listings[0].ListingId)
}

func TestServer_GetSales(t *testing.T) {
	engine, err := marketplace.NewEngine(marketplace.NewLedger(), registry.NewMemoryService(), token.NewMemoryService(), escrowAccount, adminAccount, feeRecipient, 2)
	require.NoError(t, err)

	server := NewServer(engine, stubListingRepo{}, stubSaleRepo{sales: []entity.Sale{
		{ListingId: 1, Buyer: buyer, Seller: seller, AssetContract: nftContract, TokenId: 1, Price: "100", Fee: "2", SellerAmount: "98"},
	}})

	rec := doRequest(t, server, http.MethodGet, "/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sales []entity.Sale `json:"sales"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Total)

	rec = doRequest(t, server, http.MethodGet, "/sales/"+nftContract+"/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
