package pinot

import (
	"fmt"
	"net/url"
)

const timeBoundaryAPITemplate = "debug/timeBoundary/%s"

// TimeBoundary splits a hybrid table between its offline and realtime parts.
// Both predicates are set, or neither is.
type TimeBoundary struct {
	OnlineTimePredicate  *string
	OfflineTimePredicate *string
}

func newTimeBoundary(timeColumnName *string, timeColumnValue *string) *TimeBoundary {
	if timeColumnName == nil || timeColumnValue == nil {
		return &TimeBoundary{}
	}
	offline := fmt.Sprintf("%s < %s", *timeColumnName, *timeColumnValue)
	online := fmt.Sprintf("%s >= %s", *timeColumnName, *timeColumnValue)
	return &TimeBoundary{
		OnlineTimePredicate:  &online,
		OfflineTimePredicate: &offline,
	}
}

// HasBoundary reports whether the broker returned a time boundary.
func (b *TimeBoundary) HasBoundary() bool {
	return b.OnlineTimePredicate != nil && b.OfflineTimePredicate != nil
}

// GetTimeBoundaryForTable asks a broker of the table for its current time boundary.
// The boundary moves as data is ingested, so it is never cached.
func (f *ClusterInfoFetcher) GetTimeBoundaryForTable(table string) (*TimeBoundary, error) {
	body, err := f.sendHTTPGetToBroker(table, fmt.Sprintf(timeBoundaryAPITemplate, url.PathEscape(table)))
	if err != nil {
		return nil, err
	}
	var r timeBoundaryResponse
	if err = decodeJSONWithNumber(body, &r); err != nil {
		return nil, fmt.Errorf("an error occurred when decoding time boundary response for %s: %w", table, err)
	}
	return newTimeBoundary(r.TimeColumnName, r.TimeColumnValue), nil
}
