package pinot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestNewTimeBoundary(t *testing.T) {
	b := newTimeBoundary(strPtr("ts"), strPtr("100"))
	require.True(t, b.HasBoundary())
	assert.Equal(t, "ts >= 100", *b.OnlineTimePredicate)
	assert.Equal(t, "ts < 100", *b.OfflineTimePredicate)

	for _, b := range []*TimeBoundary{
		newTimeBoundary(nil, nil),
		newTimeBoundary(strPtr("ts"), nil),
		newTimeBoundary(nil, strPtr("100")),
	} {
		assert.False(t, b.HasBoundary())
		assert.Nil(t, b.OnlineTimePredicate)
		assert.Nil(t, b.OfflineTimePredicate)
	}
}

func TestDecodeTimeBoundary(t *testing.T) {
	var r timeBoundaryResponse
	require.Nil(t, decodeJSONWithNumber([]byte(`{"timeColumnName":"daysSinceEpoch","timeColumnValue":"16000"}`), &r))
	b := newTimeBoundary(r.TimeColumnName, r.TimeColumnValue)
	assert.Equal(t, "daysSinceEpoch >= 16000", *b.OnlineTimePredicate)
	assert.Equal(t, "daysSinceEpoch < 16000", *b.OfflineTimePredicate)

	r = timeBoundaryResponse{}
	require.Nil(t, decodeJSONWithNumber([]byte(`{}`), &r))
	assert.False(t, newTimeBoundary(r.TimeColumnName, r.TimeColumnValue).HasBoundary())
}
