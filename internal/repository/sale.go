package repository

import (
	"encoding/json"
	"errors"
	"github.com/mintbay/nft-marketplace/internal/elastic_search"
	"github.com/mintbay/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
)

type SaleRepository interface {
	GetSale(listingId uint64) (*entity.Sale, error)
	GetRecentSales(size, page int) ([]entity.Sale, int64, error)
	GetSalesByAsset(assetContract string, tokenId uint64, size, page int) ([]entity.Sale, int64, error)
}

type saleRepository struct {
	elastic elastic_search.Index
}

func NewSaleRepository(elastic elastic_search.Index) SaleRepository {
	return saleRepository{elastic}
}

func (r saleRepository) GetSale(listingId uint64) (*entity.Sale, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.SaleIndex.Get()).
		Query(elastic.NewTermQuery("listingId", listingId)).
		Size(1))

	return r.findOne(result, err)
}

func (r saleRepository) GetRecentSales(size, page int) ([]entity.Sale, int64, error) {
	from := size*page - size

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.SaleIndex.Get()).
		Sort("soldAt.keyword", false).
		TrackTotalHits(true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r saleRepository) GetSalesByAsset(assetContract string, tokenId uint64, size, page int) ([]entity.Sale, int64, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("assetContract.keyword", assetContract),
		elastic.NewTermQuery("tokenId", tokenId),
	)

	from := size*page - size

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.SaleIndex.Get()).
		Query(query).
		Sort("listingId", true).
		TrackTotalHits(true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r saleRepository) findOne(results *elastic.SearchResult, err error) (*entity.Sale, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrSaleNotFound
	}

	var sale entity.Sale
	hit := results.Hits.Hits[0]
	if err = json.Unmarshal(hit.Source, &sale); err != nil {
		return nil, err
	}

	return &sale, nil
}

func (r saleRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Sale, int64, error) {
	sales := make([]entity.Sale, 0)

	if err != nil {
		return sales, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var sale entity.Sale
		if err := json.Unmarshal(hit.Source, &sale); err != nil {
			zap.L().With(zap.Error(err)).Warn("SaleRepository: Failed to unmarshal sale")
			continue
		}
		sales = append(sales, sale)
	}

	return sales, results.TotalHits(), nil
}
