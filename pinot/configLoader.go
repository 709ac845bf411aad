package pinot

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const configEnvPrefix = "PINOT"

// LoadClusterConfig reads a ClusterConfig from a YAML, JSON or TOML file.
// Every key can be overridden through the environment, e.g.
// PINOT_METADATA_EXPIRY=30s overrides metadata-expiry.
func LoadClusterConfig(path string) (*ClusterConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(configEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("metadata-expiry", defaultMetadataCacheExpiry)
	v.SetDefault("max-cached-tables", defaultMaxCachedTables)
	v.SetDefault("caller-header-param", defaultCallerHeaderParam)
	v.SetDefault("caller-header-value", defaultCallerHeaderValue)
	v.SetDefault("service-header-param", defaultServiceHeaderParam)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("an error occurred when reading cluster config %s: %w", path, err)
	}
	var config ClusterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("an error occurred when decoding cluster config %s: %w", path, err)
	}
	config.applyDefaults()
	return &config, nil
}
