package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/mintbay/nft-marketplace/generated/dic"
	"github.com/mintbay/nft-marketplace/internal/config"
	"github.com/mintbay/nft-marketplace/internal/messenger"
	"github.com/mintbay/nft-marketplace/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"math/big"
	"net/http"
	"os"
	"strconv"
)

var (
	container        *dic.Container
	listingRepo      repository.ListingRepository
	saleRepo         repository.SaleRepository
	messengerService messenger.MessageService
)

func main() {
	config.Init("cli")

	container, _ = dic.NewContainer()
	listingRepo = container.GetListingRepo()
	saleRepo = container.GetSaleRepo()
	messengerService = container.GetMessenger()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "listings",
				Usage:  "Show active listings",
				Action: showListings,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 25, Usage: "page size"},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "page number"},
				},
			},
			{
				Name:   "listing",
				Usage:  "Show a single listing by id",
				Action: showListing,
			},
			{
				Name:   "sales",
				Usage:  "Show recent sales",
				Action: showSales,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 25, Usage: "page size"},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "page number"},
				},
			},
			{
				Name:   "set-fee",
				Usage:  "Update the protocol fee percent (admin)",
				Action: setFee,
			},
			{
				Name:   "set-fee-recipient",
				Usage:  "Update the protocol fee recipient (admin)",
				Action: setFeeRecipient,
			},
			{
				Name:   "metadata",
				Usage:  "Queue listings without metadata for a refresh",
				Action: processMetadata,
			},
			{
				Name:   "demo",
				Usage:  "Run a local list and buy walkthrough against an in-process engine",
				Action: runDemo,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func showListings(c *cli.Context) error {
	listings, total, err := listingRepo.GetActiveListings(c.Int("size"), c.Int("page"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get active listings")
		return err
	}

	zap.S().Infof("Active listings: %d", total)
	for _, listing := range listings {
		printJson(listing)
	}

	return nil
}

func showListing(c *cli.Context) error {
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		zap.L().Error("No listing id provided")
		return nil
	}

	listing, err := listingRepo.GetListing(id)
	if err != nil {
		zap.S().With(zap.Error(err)).Errorf("Failed to find listing: %d", id)
		return err
	}

	printJson(listing)

	return nil
}

func showSales(c *cli.Context) error {
	sales, total, err := saleRepo.GetRecentSales(c.Int("size"), c.Int("page"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get recent sales")
		return err
	}

	zap.S().Infof("Sales: %d", total)
	for _, sale := range sales {
		printJson(sale)
	}

	return nil
}

// Fee administration goes through the running api so that it reaches the
// live engine rather than this process's own container.
func setFee(c *cli.Context) error {
	percent, err := strconv.ParseUint(c.Args().First(), 10, 32)
	if err != nil {
		zap.L().Error("No fee percent provided")
		return nil
	}

	return apiPut("/fee", map[string]interface{}{"caller": config.Get().Admin, "percent": percent})
}

func setFeeRecipient(c *cli.Context) error {
	recipient := c.Args().First()
	if recipient == "" {
		zap.L().Error("No fee recipient provided")
		return nil
	}

	return apiPut("/fee/recipient", map[string]interface{}{"caller": config.Get().Admin, "recipient": recipient})
}

func processMetadata(c *cli.Context) error {
	size, err := messengerService.GetQueueSize(messenger.MetadataRefresh)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get the queue size")
		return nil
	}
	if *size != 0 {
		zap.S().Errorf("Can only schedule metadata updates when the queue is empty, current size (%d)", *size)
		return nil
	}

	if err := container.GetMetadataIndexer().RefreshPending(); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to queue metadata refreshes")
		return err
	}
	zap.L().Info("Metadata refresh queued")

	return nil
}

func runDemo(c *cli.Context) error {
	engine := container.GetEngine()
	assetRegistry := container.GetRegistry()
	bank := container.GetBank()

	seller := "0x00000000000000000000000000000000000000aa"
	buyer := "0x00000000000000000000000000000000000000bb"
	nftContract := "0x00000000000000000000000000000000000000cc"
	erc20 := "0x00000000000000000000000000000000000000dd"
	native := "0x0000000000000000000000000000000000000000"

	assetRegistry.Mint(nftContract, 1, seller, "")
	assetRegistry.Mint(nftContract, 2, seller, "")
	assetRegistry.SetApprovalForAll(nftContract, seller, engine.Account(), true)

	bank.Deposit(native, buyer, big.NewInt(1000))
	bank.Deposit(erc20, buyer, big.NewInt(1000))

	// native sale
	id, err := engine.List(seller, nftContract, 1, big.NewInt(100), native)
	if err != nil {
		return err
	}
	if err := engine.Buy(buyer, id, big.NewInt(100)); err != nil {
		return err
	}
	zap.S().Infof("Bought listing %d with native currency", id)

	// token sale
	id, err = engine.List(seller, nftContract, 2, big.NewInt(10), erc20)
	if err != nil {
		return err
	}
	bank.Approve(erc20, buyer, engine.Account(), big.NewInt(10))
	if err := engine.Buy(buyer, id, nil); err != nil {
		return err
	}
	zap.S().Infof("Bought listing %d with tokens", id)

	owner, _ := assetRegistry.OwnerOf(nftContract, 1)
	zap.S().Infof("Asset 1 owner: %s", owner)
	zap.S().Infof("Seller native balance: %s", bank.BalanceOf(native, seller))
	zap.S().Infof("Seller token balance: %s", bank.BalanceOf(erc20, seller))
	zap.S().Infof("Fee recipient native balance: %s", bank.BalanceOf(native, engine.FeeRecipient()))

	return nil
}

func apiPut(path string, body interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, config.Get().ApiUrl+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to reach the marketplace api")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		zap.S().Errorf("Marketplace api rejected the request: %s", resp.Status)
		return fmt.Errorf("api error: %s", resp.Status)
	}

	zap.L().Info("Done")

	return nil
}

func printJson(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to marshal")
		return
	}

	fmt.Println(string(b))
}
