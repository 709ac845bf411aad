package pinot

import (
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"
)

const (
	getAllTablesAPITemplate = "tables"
	tableSchemaAPITemplate  = "tables/%s/schema"
)

// ClusterInfoFetcher answers metadata questions about one Pinot cluster,
// normally created through calls to NewWithConfig. Each fetcher owns its broker cache.
type ClusterInfoFetcher struct {
	config       *ClusterConfig
	transport    *httpTransport
	brokerSource brokerInstanceSource
	brokerCache  *brokerCache
}

// GetAllTables lists the tables known to the controller.
func (f *ClusterInfoFetcher) GetAllTables() ([]string, error) {
	body, err := f.transport.sendHTTPGetToController(getAllTablesAPITemplate)
	if err != nil {
		return nil, err
	}
	var r getTablesResponse
	if err = decodeJSONWithNumber(body, &r); err != nil {
		return nil, fmt.Errorf("an error occurred when decoding list tables response: %w", err)
	}
	return r.Tables, nil
}

// GetTableSchema fetches and parses the schema of a table.
func (f *ClusterInfoFetcher) GetTableSchema(table string) (*Schema, error) {
	body, err := f.transport.sendHTTPGetToController(fmt.Sprintf(tableSchemaAPITemplate, url.PathEscape(table)))
	if err != nil {
		return nil, err
	}
	return parseSchema(body)
}

// GetAllBrokersForTable returns the cached broker set of a table, loading it on a miss.
// An empty result is a successful load; use GetBrokerHost to pick a broker.
func (f *ClusterInfoFetcher) GetAllBrokersForTable(table string) ([]string, error) {
	brokers, err := f.brokerCache.get(table)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(brokers))
	copy(out, brokers)
	return out, nil
}

// GetBrokerHost returns one broker serving the table in the form host:port,
// drawn at random on every call.
func (f *ClusterInfoFetcher) GetBrokerHost(table string) (string, error) {
	brokers, err := f.brokerCache.get(table)
	if err != nil {
		log.Errorf("Unable to find an available broker for table %s, Error: %v", table, err)
		return "", err
	}
	if len(brokers) == 0 {
		return "", newClusterError(CodeUnableToFindBroker, nil, "no valid brokers found for %s", table)
	}
	return selectAddress(brokers), nil
}

// InvalidateBrokers drops the cached broker set of a table so the next lookup reloads it.
func (f *ClusterInfoFetcher) InvalidateBrokers(table string) {
	f.brokerCache.invalidate(table)
}

// Close releases the cache and the zookeeper connection, if any.
func (f *ClusterInfoFetcher) Close() {
	f.brokerCache.stop()
	f.brokerSource.close()
}

func (f *ClusterInfoFetcher) sendHTTPGetToBroker(table string, path string) ([]byte, error) {
	brokerHost, err := f.GetBrokerHost(table)
	if err != nil {
		return nil, err
	}
	return f.transport.sendHTTPGetToBroker(brokerHost, path)
}

func (f *ClusterInfoFetcher) String() string {
	return fmt.Sprintf(
		"ClusterInfoFetcher{controllers=%v, metadataCacheExpiry=%v, controllerRestService=%q, zookeeper=%t}",
		f.config.ControllerURLs, f.config.MetadataCacheExpiry, f.config.ControllerRestService, f.config.ZkConfig != nil,
	)
}
