package pinot

import (
	"fmt"
	"strings"
	"time"

	zk "github.com/go-zookeeper/zk"

	log "github.com/sirupsen/logrus"
)

const (
	brokerExternalViewPath = "EXTERNALVIEW/brokerResource"
	brokerOnlineState      = "ONLINE"
)

type ReadZNode func(path string) ([]byte, error)

// zookeeperInstanceSource reads the Helix external view of the broker resource.
// It is read on every cache load; freshness is governed by the broker cache TTL.
type zookeeperInstanceSource struct {
	zkConfig           *ZookeeperConfig
	zkConn             *zk.Conn
	readZNode          ReadZNode
	externalViewZkPath string
}

type externalView struct {
	SimpleFields map[string]string              `json:"simpleFields"`
	MapFields    map[string](map[string]string) `json:"mapFields"`
	ListFields   map[string]([]string)          `json:"listFields"`
	ID           string                         `json:"id"`
}

func newZookeeperInstanceSource(zkConfig *ZookeeperConfig) (*zookeeperInstanceSource, error) {
	s := &zookeeperInstanceSource{
		zkConfig:           zkConfig,
		externalViewZkPath: zkConfig.PathPrefix + "/" + brokerExternalViewPath,
	}
	var err error
	s.zkConn, _, err = zk.Connect(zkConfig.ZookeeperPath, time.Duration(zkConfig.SessionTimeoutSec)*time.Second)
	if err != nil {
		log.Errorf("Failed to connect to zookeeper: %v\n", zkConfig.ZookeeperPath)
		return nil, err
	}
	s.readZNode = func(path string) ([]byte, error) {
		node, _, err := s.zkConn.Get(path)
		if err != nil {
			log.Errorf("Failed to read zk: %s, ExternalView path: %s\n", strings.Join(zkConfig.ZookeeperPath, ","), path)
			return nil, err
		}
		return node, nil
	}
	return s, nil
}

func (s *zookeeperInstanceSource) brokerInstances(table string) ([]string, error) {
	if s.readZNode == nil {
		return nil, fmt.Errorf("no method defined to read from a ZNode")
	}
	node, err := s.readZNode(s.externalViewZkPath)
	if err != nil {
		return nil, err
	}
	ev, err := getExternalView(node)
	if err != nil {
		return nil, err
	}
	return extractOnlineInstances(ev, table), nil
}

func (s *zookeeperInstanceSource) close() {
	if s.zkConn != nil {
		s.zkConn.Close()
	}
}

func getExternalView(evBytes []byte) (*externalView, error) {
	var ev externalView
	if err := json.Unmarshal(evBytes, &ev); err != nil {
		log.Errorf("Failed to unmarshal ExternalView: %s, Error: %v\n", evBytes, err)
		return nil, err
	}
	return &ev, nil
}

// extractOnlineInstances collects the ONLINE broker instances of every
// typed variant of the raw table.
func extractOnlineInstances(ev *externalView, table string) []string {
	instances := []string{}
	for tableNameWithType, brokerMapping := range ev.MapFields {
		if !isSameRawTable(tableNameWithType, table) {
			continue
		}
		for instance, state := range brokerMapping {
			if state == brokerOnlineState {
				instances = append(instances, instance)
			}
		}
	}
	return instances
}
