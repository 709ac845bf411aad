package pinot

import (
	"strings"
)

// TableType is the offline or realtime half of a table.
type TableType string

const (
	Offline  TableType = "OFFLINE"
	Realtime TableType = "REALTIME"

	offlineSuffix  = "_OFFLINE"
	realtimeSuffix = "_REALTIME"
)

// ExtractRawTableName strips a trailing type suffix, so that both
// "orders_OFFLINE" and "orders_REALTIME" map to "orders".
// Only a trailing suffix is removed: "orders_staging" stays as is.
func ExtractRawTableName(table string) string {
	if strings.HasSuffix(table, offlineSuffix) {
		return strings.TrimSuffix(table, offlineSuffix)
	}
	return strings.TrimSuffix(table, realtimeSuffix)
}

// GetTableType returns the type carried by a table name, if any.
func GetTableType(table string) (TableType, bool) {
	switch {
	case strings.HasSuffix(table, offlineSuffix):
		return Offline, true
	case strings.HasSuffix(table, realtimeSuffix):
		return Realtime, true
	}
	return "", false
}

// TableNameWithType appends the type suffix to a raw table name.
func TableNameWithType(rawTable string, tableType TableType) string {
	return rawTable + "_" + string(tableType)
}

// isSameRawTable compares a possibly type-qualified table name against a raw one.
func isSameRawTable(tableNameWithType string, rawTable string) bool {
	return ExtractRawTableName(tableNameWithType) == rawTable
}
