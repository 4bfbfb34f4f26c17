package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mintbay/nft-marketplace/internal/config"
	"net/url"
	"regexp"
)

var (
	ErrInvalidUri      = errors.New("invalid metadata uri")
	ErrMetadataFetch   = errors.New("failed to fetch metadata")
	ErrInvalidMetadata = errors.New("invalid metadata payload")
)

var ipfsRegex = regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")

// Service fetches the off-platform metadata document an asset's token uri
// points at.
type Service interface {
	FetchMetadata(uri string) (map[string]interface{}, error)
}

type service struct {
	client *retryablehttp.Client
}

func NewMetadataService(client *retryablehttp.Client) Service {
	return service{client}
}

func (s service) FetchMetadata(uri string) (map[string]interface{}, error) {
	uri = resolveUri(uri)
	if !isUrl(uri) {
		return nil, ErrInvalidUri
	}

	resp, err := s.client.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: %s", ErrMetadataFetch, resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, ErrInvalidMetadata
	}

	return md, nil
}

// resolveUri rewrites ipfs uris onto the first configured gateway.
func resolveUri(uri string) string {
	parts := ipfsRegex.FindStringSubmatch(uri)
	if len(parts) == 2 {
		hosts := config.Get().IpfsHosts
		if len(hosts) != 0 {
			return fmt.Sprintf("%s/ipfs/%s", hosts[0], parts[1])
		}
	}

	return uri
}

func isUrl(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
