package pinot

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstanceSource struct {
	calls     int32
	release   chan struct{}
	instances []string
	err       error
}

func (s *fakeInstanceSource) brokerInstances(table string) ([]string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.instances, nil
}

func (s *fakeInstanceSource) close() {}

func (s *fakeInstanceSource) callCount() int {
	return int(atomic.LoadInt32(&s.calls))
}

func TestExtractBrokerHostPort(t *testing.T) {
	broker, err := extractBrokerHostPort("Broker_host1_8000")
	assert.Nil(t, err)
	assert.Equal(t, "host1:8000", broker)

	broker, err = extractBrokerHostPort("Broker_pinot_broker_0.svc_8099")
	assert.Nil(t, err)
	assert.Equal(t, "pinot_broker_0.svc:8099", broker)

	for _, instance := range []string{"garbage", "Broker_host1_port", "host1:8000", "Server_host1_8000", "Broker_host1_8000_x"} {
		_, err = extractBrokerHostPort(instance)
		assert.True(t, errors.Is(err, ErrBrokerParse), instance)
	}
}

func TestBrokerCacheLoad(t *testing.T) {
	source := &fakeInstanceSource{instances: []string{
		"Broker_host1_8000", "Broker_host2_8000", "Broker_host1_8000", "Broker_host3_8123",
	}}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	brokers, err := c.get("baseballStats")
	require.Nil(t, err)
	assert.ElementsMatch(t, []string{"host1:8000", "host2:8000", "host3:8123"}, brokers)

	again, err := c.get("baseballStats")
	require.Nil(t, err)
	// the permutation is fixed for the lifetime of the entry
	assert.Equal(t, brokers, again)
	assert.Equal(t, 1, source.callCount())
}

func TestBrokerCacheParseErrorAbortsLoad(t *testing.T) {
	source := &fakeInstanceSource{instances: []string{"Broker_host1_8000", "garbage"}}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	_, err := c.get("baseballStats")
	assert.True(t, errors.Is(err, ErrBrokerParse))
	assert.False(t, errors.Is(err, ErrBrokerNotFound))

	// nothing was cached, the next lookup loads again
	_, err = c.get("baseballStats")
	assert.True(t, errors.Is(err, ErrBrokerParse))
	assert.Equal(t, 2, source.callCount())
}

func TestBrokerCacheWrapsForeignErrors(t *testing.T) {
	cause := errors.New("connection refused")
	source := &fakeInstanceSource{err: cause}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	_, err := c.get("baseballStats")
	assert.True(t, errors.Is(err, ErrBrokerNotFound))
	assert.True(t, errors.Is(err, cause))
}

func TestBrokerCachePassesClusterErrorsThrough(t *testing.T) {
	httpErr := &HTTPError{StatusCode: 404, URI: "http://controller/tables/t/instances"}
	source := &fakeInstanceSource{err: httpErr}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	_, err := c.get("t")
	assert.Equal(t, error(httpErr), err)
	assert.False(t, errors.Is(err, ErrBrokerNotFound))
}

func TestBrokerCacheEmptyLoadIsCached(t *testing.T) {
	source := &fakeInstanceSource{instances: []string{}}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	brokers, err := c.get("t")
	assert.Nil(t, err)
	assert.Empty(t, brokers)
	_, err = c.get("t")
	assert.Nil(t, err)
	assert.Equal(t, 1, source.callCount())
}

func TestBrokerCacheExpiry(t *testing.T) {
	source := &fakeInstanceSource{instances: []string{"Broker_host1_8000"}}
	c := newBrokerCache(source, 50*time.Millisecond, 100)
	defer c.stop()

	_, err := c.get("t")
	require.Nil(t, err)
	_, err = c.get("t")
	require.Nil(t, err)
	assert.Equal(t, 1, source.callCount())

	time.Sleep(100 * time.Millisecond)
	_, err = c.get("t")
	require.Nil(t, err)
	assert.Equal(t, 2, source.callCount())
}

func TestBrokerCacheInvalidate(t *testing.T) {
	source := &fakeInstanceSource{instances: []string{"Broker_host1_8000"}}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	_, err := c.get("t")
	require.Nil(t, err)
	c.invalidate("t")
	_, err = c.get("t")
	require.Nil(t, err)
	assert.Equal(t, 2, source.callCount())
}

func TestBrokerCacheSingleFlight(t *testing.T) {
	source := &fakeInstanceSource{
		instances: []string{"Broker_host1_8000", "Broker_host2_8000"},
		release:   make(chan struct{}),
	}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	const callers = 64
	var wg sync.WaitGroup
	results := make([][]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.get("t")
		}(i)
	}
	require.Eventually(t, func() bool { return source.callCount() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(source.release)
	wg.Wait()

	assert.Equal(t, 1, source.callCount())
	for i := 0; i < callers; i++ {
		assert.Nil(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestBrokerCacheKeysAreIndependent(t *testing.T) {
	source := &fakeInstanceSource{instances: []string{"Broker_host1_8000"}}
	c := newBrokerCache(source, time.Minute, 100)
	defer c.stop()

	_, err := c.get("a")
	require.Nil(t, err)
	_, err = c.get("b")
	require.Nil(t, err)
	assert.Equal(t, 2, source.callCount())
}
