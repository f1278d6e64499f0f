package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"rhystmorgan/thorDeck/internal/blockchain"
)

type Config struct {
	Network         string        `mapstructure:"network"`
	NodeURL         string        `mapstructure:"node_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RetryCount      int           `mapstructure:"retry_count"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	DataDir         string        `mapstructure:"data_dir"`
	Debug           bool          `mapstructure:"debug"`
}

// Load reads configuration from file and env. Env overrides use the
// THORDECK_ prefix (THORDECK_NODE_URL, THORDECK_NETWORK, ...). An
// explicit cfgFile must exist. Otherwise config.toml is searched in
// dataDir when given, falling back to ~/.thordeck, and may be absent.
func Load(cfgFile, dataDir string) (*Config, error) {
	v := viper.New()

	if dataDir == "" {
		dataDir = defaultDataDir()
	}

	v.SetDefault("network", "mainnet")
	v.SetDefault("node_url", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("retry_count", 3)
	v.SetDefault("cache_ttl", 30*time.Second)
	v.SetDefault("refresh_interval", 30*time.Second)
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("debug", false)

	v.SetConfigType("toml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dataDir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("THORDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Network {
	case "mainnet", "testnet":
		// Valid networks
	default:
		return fmt.Errorf("invalid network: %s (must be 'mainnet' or 'testnet')", c.Network)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.RetryCount < 0 {
		return fmt.Errorf("retry count must be non-negative, got: %d", c.RetryCount)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %v", c.CacheTTL)
	}

	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got: %v", c.RefreshInterval)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data dir must not be empty")
	}

	return nil
}

func (c *Config) ToBlockchainConfig() blockchain.Config {
	var network blockchain.Network
	switch c.Network {
	case "mainnet":
		network = blockchain.MainNet
	case "testnet":
		network = blockchain.TestNet
	default:
		network = blockchain.MainNet // Default fallback
	}

	return blockchain.Config{
		Network:    network,
		NodeURL:    c.NodeURL,
		Timeout:    c.Timeout,
		RetryCount: c.RetryCount,
		RetryDelay: 2 * time.Second,
		CacheTTL:   c.CacheTTL,
	}
}

func Default() *Config {
	return &Config{
		Network:         "mainnet",
		NodeURL:         "",
		Timeout:         30 * time.Second,
		RetryCount:      3,
		CacheTTL:        30 * time.Second,
		RefreshInterval: 30 * time.Second,
		DataDir:         defaultDataDir(),
		Debug:           false,
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".thordeck"
	}
	return filepath.Join(homeDir, ".thordeck")
}
