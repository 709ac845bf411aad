package pinot

import (
	"time"

	"github.com/karlseguin/ccache/v2"
	"golang.org/x/sync/singleflight"

	log "github.com/sirupsen/logrus"
)

// brokerCache maps a raw table name to its broker set. Entries expire a fixed
// time after they were written and are never refreshed by reads. Concurrent
// misses on the same table share one load.
type brokerCache struct {
	source    brokerInstanceSource
	cache     *ccache.Cache
	loadGroup singleflight.Group
	ttl       time.Duration
}

func newBrokerCache(source brokerInstanceSource, ttl time.Duration, maxTables int64) *brokerCache {
	return &brokerCache{
		source: source,
		cache:  ccache.New(ccache.Configure().MaxSize(maxTables)),
		ttl:    ttl,
	}
}

// get returns the broker set of a table. The returned slice is shared with
// the cache and must not be modified.
func (c *brokerCache) get(table string) ([]string, error) {
	if brokers, ok := c.lookup(table); ok {
		return brokers, nil
	}
	v, err, _ := c.loadGroup.Do(table, func() (interface{}, error) {
		// a flight that completed between lookup and Do already filled the entry
		if brokers, ok := c.lookup(table); ok {
			return brokers, nil
		}
		brokers, err := c.load(table)
		if err != nil {
			return nil, err
		}
		c.cache.Set(table, brokers, c.ttl)
		return brokers, nil
	})
	if err != nil {
		if isClusterError(err) {
			return nil, err
		}
		return nil, newClusterError(CodeUnableToFindBroker, err, "error when getting brokers for table %s", table)
	}
	return v.([]string), nil
}

func (c *brokerCache) lookup(table string) ([]string, bool) {
	item := c.cache.Get(table)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value().([]string), true
}

// load fetches, parses, de-duplicates and shuffles the brokers of a table.
// A single unparsable instance fails the whole load.
func (c *brokerCache) load(table string) ([]string, error) {
	log.Debugf("Loading brokers for table %s", table)
	instances, err := c.source.brokerInstances(table)
	if err != nil {
		return nil, err
	}
	instances = distinct(instances)
	brokers := make([]string, 0, len(instances))
	for _, instance := range instances {
		broker, err := extractBrokerHostPort(instance)
		if err != nil {
			log.Errorf("Unable to parse broker instance %s for table %s", instance, table)
			return nil, err
		}
		brokers = append(brokers, broker)
	}
	return shuffledCopy(brokers), nil
}

func (c *brokerCache) invalidate(table string) {
	c.cache.Delete(table)
}

func (c *brokerCache) stop() {
	c.cache.Stop()
}
