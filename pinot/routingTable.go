package pinot

import (
	"fmt"
	"net/url"

	"github.com/zhangyunhao116/fastrand"

	log "github.com/sirupsen/logrus"
)

const routingTableAPITemplate = "debug/routingTable/%s"

// RoutingTable maps a table name with type to host -> segments.
// A hybrid table has one entry per type.
type RoutingTable map[string]map[string][]string

// GetRoutingTableForTable asks a broker of the table for its routing table.
// When the broker holds several interchangeable routing tables one is picked
// at random, and every host's segment list is shuffled, so a retry likely
// lands on a different plan.
func (f *ClusterInfoFetcher) GetRoutingTableForTable(table string) (RoutingTable, error) {
	log.Debugf("Trying to get routingTable for %s from broker", table)
	body, err := f.sendHTTPGetToBroker(table, fmt.Sprintf(routingTableAPITemplate, url.PathEscape(table)))
	if err != nil {
		return nil, err
	}
	var r routingTablesResponse
	if err = decodeJSONWithNumber(body, &r); err != nil {
		return nil, fmt.Errorf("an error occurred when decoding routing table response for %s: %w", table, err)
	}
	return reduceRoutingTables(table, &r, body)
}

func reduceRoutingTables(table string, r *routingTablesResponse, body []byte) (RoutingTable, error) {
	routingTable := RoutingTable{}
	for _, snapshot := range r.RoutingTableSnapshot {
		// the broker matches by prefix, so "table1" may bring back "table1_staging"
		if !isSameRawTable(snapshot.TableName, table) {
			log.Debugf("Ignoring routingTable for %s", snapshot.TableName)
			continue
		}
		entries := snapshot.RoutingTableEntries
		if len(entries) == 0 {
			return nil, newClusterError(
				CodeUnexpectedResponse, nil,
				"empty routingTableEntries for %s. RoutingTable: %s", table, body,
			)
		}
		chosen := entries[fastrand.Intn(len(entries))]
		hostSegments := make(map[string][]string, len(chosen))
		for host, segments := range chosen {
			hostSegments[host] = shuffledCopy(segments)
		}
		routingTable[snapshot.TableName] = hostSegments
	}
	return routingTable, nil
}
