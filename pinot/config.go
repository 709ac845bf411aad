package pinot

import "time"

const (
	defaultMetadataCacheExpiry = 2 * time.Minute
	defaultCallerHeaderParam   = "RPC-Caller"
	defaultCallerHeaderValue   = "presto"
	defaultServiceHeaderParam  = "RPC-Service"
	defaultMaxCachedTables     = 1000
	defaultZkSessionTimeoutSec = 60
)

// ClusterConfig configs to create a ClusterInfoFetcher
type ClusterConfig struct {
	// Controller addresses, host:port or with an http/https scheme. One is picked at random per request.
	ControllerURLs []string `mapstructure:"controller-urls"`
	// How long a table's broker list is kept after it was loaded - defaults to 2 minutes
	MetadataCacheExpiry time.Duration `mapstructure:"metadata-expiry"`
	// Upper bound on the number of tables with a cached broker list
	MaxCachedTables int64 `mapstructure:"max-cached-tables"`
	// Header names and value identifying the caller when ControllerRestService is set
	CallerHeaderParam  string `mapstructure:"caller-header-param"`
	CallerHeaderValue  string `mapstructure:"caller-header-value"`
	ServiceHeaderParam string `mapstructure:"service-header-param"`
	// RPC service name of the controller, sent in the service header on controller requests
	ControllerRestService string `mapstructure:"controller-rest-service"`
	// Additional HTTP headers to include in every controller and broker request
	ExtraHTTPHeaders map[string]string `mapstructure:"extra-http-headers"`
	// HTTP request timeout for controller and broker API requests
	HTTPTimeout time.Duration `mapstructure:"http-timeout"`
	// Zookeeper Configs. When set, broker instances are read from the Helix external view instead of the controller.
	ZkConfig *ZookeeperConfig `mapstructure:"zookeeper"`
}

// ZookeeperConfig describes how to config Pinot Zookeeper connection
type ZookeeperConfig struct {
	PathPrefix        string   `mapstructure:"path-prefix"`
	ZookeeperPath     []string `mapstructure:"servers"`
	SessionTimeoutSec int      `mapstructure:"session-timeout-sec"`
}

func (c *ClusterConfig) applyDefaults() {
	if c.MetadataCacheExpiry <= 0 {
		c.MetadataCacheExpiry = defaultMetadataCacheExpiry
	}
	if c.MaxCachedTables <= 0 {
		c.MaxCachedTables = defaultMaxCachedTables
	}
	if c.CallerHeaderParam == "" {
		c.CallerHeaderParam = defaultCallerHeaderParam
	}
	if c.CallerHeaderValue == "" {
		c.CallerHeaderValue = defaultCallerHeaderValue
	}
	if c.ServiceHeaderParam == "" {
		c.ServiceHeaderParam = defaultServiceHeaderParam
	}
	if c.ZkConfig != nil && c.ZkConfig.SessionTimeoutSec == 0 {
		c.ZkConfig.SessionTimeoutSec = defaultZkSessionTimeoutSec
	}
}
