package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/mintbay/nft-marketplace/internal/log"
	"go.uber.org/zap"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool
	Reindex bool

	ApiPort    string
	ApiUrl     string
	HealthPort string

	Account      string
	Admin        string
	FeePercent   uint
	FeeRecipient string

	MetadataRetries int
	IpfsHosts       []string
	IpfsTimeout     int

	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

type AwsConfig struct {
	AccessKey   string
	SecretKey   string
	Region      string
	QueuePrefix string
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

var ipfsHosts = []string{
	"https://gateway.pinata.cloud",
	"https://cloudflare-ipfs.com",
	"https://gateway.ipfs.io",
}

func Init(app string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	log.NewLogger(fmt.Sprintf("%s/%s.log", getString("LOG_PATH", "./var/log"), app), Get().Debug)
}

func Get() *Config {
	return &Config{
		Env:             getString("ENV", ""),
		Network:         getString("NETWORK", "mainnet"),
		Index:           getString("INDEX_NAME", "marketplace"),
		Debug:           getBool("DEBUG", false),
		Reindex:         getBool("REINDEX", false),
		ApiPort:         getString("API_PORT", "8080"),
		ApiUrl:          getString("API_URL", "http://localhost:8080"),
		HealthPort:      getString("HEALTH_PORT", "8081"),
		Account:         getString("MARKETPLACE_ACCOUNT", "0x0000000000000000000000000000000000000001"),
		Admin:           getString("MARKETPLACE_ADMIN", ""),
		FeePercent:      getUint("MARKETPLACE_FEE_PERCENT", 2),
		FeeRecipient:    getString("MARKETPLACE_FEE_RECIPIENT", ""),
		MetadataRetries: getInt("METADATA_RETRIES", 3),
		IpfsHosts:       getSlice("IPFS_HOSTS", ipfsHosts, ","),
		IpfsTimeout:     getInt("IPFS_TIMEOUT", 10),
		Aws: AwsConfig{
			AccessKey:   getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey:   getString("AWS_SECRET_KEY_ID", ""),
			Region:      getString("AWS_REGION", ""),
			QueuePrefix: getString("AWS_QUEUE_PREFIX", "marketplace"),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "/data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	val, err := strconv.Atoi(getString(key, ""))
	if err != nil {
		return defaultValue
	}

	return val
}

func getUint(key string, defaultValue uint) uint {
	return uint(getInt(key, int(defaultValue)))
}

func getBool(key string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(getString(key, "")); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
