package pinot

// getTablesResponse is the body of the controller list-tables API.
type getTablesResponse struct {
	Tables []string `json:"tables"`
}

type instancesInBroker struct {
	Instances []string `json:"instances"`
}

// brokersForTableResponse is the body of the controller table-instances API.
type brokersForTableResponse struct {
	Brokers []instancesInBroker `json:"brokers"`
}

func (r *brokersForTableResponse) extractInstances() []string {
	instances := []string{}
	for _, broker := range r.Brokers {
		instances = append(instances, broker.Instances...)
	}
	return instances
}

type routingTableSnapshot struct {
	TableName           string                `json:"tableName"`
	RoutingTableEntries []map[string][]string `json:"routingTableEntries"`
}

// routingTablesResponse is the body of the broker routing table debug API.
type routingTablesResponse struct {
	RoutingTableSnapshot []routingTableSnapshot `json:"routingTableSnapshot"`
}

// timeBoundaryResponse is the body of the broker time boundary debug API.
type timeBoundaryResponse struct {
	TimeColumnName  *string `json:"timeColumnName"`
	TimeColumnValue *string `json:"timeColumnValue"`
}
