// Package pinot provides the cluster metadata layer for Pinot, a real-time distributed OLAP datastore:
// table listing, schemas, broker discovery, routing tables and time boundaries.
package pinot

import (
	"fmt"
	"net/url"
	"regexp"
)

const (
	tableInstancesAPITemplate = "tables/%s/instances"
)

var brokerPattern = regexp.MustCompile(`^Broker_(.*)_(\d+)$`)

// brokerInstanceSource lists the raw broker instance ids serving a table,
// e.g. Broker_172.17.0.2_8000.
type brokerInstanceSource interface {
	brokerInstances(table string) ([]string, error)
	close()
}

// controllerInstanceSource asks the controller table-instances API.
type controllerInstanceSource struct {
	transport *httpTransport
}

func (s *controllerInstanceSource) brokerInstances(table string) ([]string, error) {
	body, err := s.transport.sendHTTPGetToController(fmt.Sprintf(tableInstancesAPITemplate, url.PathEscape(table)))
	if err != nil {
		return nil, err
	}
	var r brokersForTableResponse
	if err = decodeJSONWithNumber(body, &r); err != nil {
		return nil, fmt.Errorf("an error occurred when decoding table instances response for %s: %w", table, err)
	}
	return r.extractInstances(), nil
}

func (s *controllerInstanceSource) close() {}

// extractBrokerHostPort turns Broker_<host>_<port> into host:port.
func extractBrokerHostPort(instance string) (string, error) {
	m := brokerPattern.FindStringSubmatch(instance)
	if m == nil {
		return "", newClusterError(CodeBrokerParse, nil, "cannot parse %s in the broker instance", instance)
	}
	return m[1] + ":" + m[2], nil
}
