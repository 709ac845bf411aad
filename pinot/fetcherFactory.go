package pinot

import (
	"net/http"
)

// NewFromControllers creates a new ClusterInfoFetcher talking to the given Pinot controllers.
func NewFromControllers(controllerURLs []string) (*ClusterInfoFetcher, error) {
	return NewWithConfig(&ClusterConfig{
		ControllerURLs: controllerURLs,
	})
}

// NewWithConfig creates a new ClusterInfoFetcher.
// Controller addresses are only checked when a request is sent.
func NewWithConfig(config *ClusterConfig) (*ClusterInfoFetcher, error) {
	return NewWithConfigAndClient(config, &http.Client{Timeout: config.HTTPTimeout})
}

// NewWithConfigAndClient creates a new ClusterInfoFetcher with a custom HTTP client.
func NewWithConfigAndClient(config *ClusterConfig, httpClient HTTPClient) (*ClusterInfoFetcher, error) {
	cfg := *config
	if config.ZkConfig != nil {
		zkConfig := *config.ZkConfig
		cfg.ZkConfig = &zkConfig
	}
	cfg.applyDefaults()

	transport := &httpTransport{
		client:  httpClient,
		config:  &cfg,
		monitor: prometheusRequestMonitor{},
	}

	var source brokerInstanceSource = &controllerInstanceSource{transport: transport}
	if cfg.ZkConfig != nil {
		zkSource, err := newZookeeperInstanceSource(cfg.ZkConfig)
		if err != nil {
			return nil, err
		}
		source = zkSource
	}

	return &ClusterInfoFetcher{
		config:       &cfg,
		transport:    transport,
		brokerSource: source,
		brokerCache:  newBrokerCache(source, cfg.MetadataCacheExpiry, cfg.MaxCachedTables),
	}, nil
}

// SetRequestMonitor replaces the default Prometheus request metrics.
// It must be called before the fetcher is shared between goroutines.
func (f *ClusterInfoFetcher) SetRequestMonitor(monitor RequestMonitor) {
	f.transport.monitor = monitor
}
