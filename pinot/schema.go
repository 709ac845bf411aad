package pinot

import (
	"fmt"
)

// Schema is the Pinot schema document of a table.
type Schema struct {
	SchemaName          string              `json:"schemaName"`
	DimensionFieldSpecs []FieldSpec         `json:"dimensionFieldSpecs,omitempty"`
	MetricFieldSpecs    []FieldSpec         `json:"metricFieldSpecs,omitempty"`
	DateTimeFieldSpecs  []DateTimeFieldSpec `json:"dateTimeFieldSpecs,omitempty"`
	TimeFieldSpec       *TimeFieldSpec      `json:"timeFieldSpec,omitempty"`
	PrimaryKeyColumns   []string            `json:"primaryKeyColumns,omitempty"`
}

// FieldSpec describes a dimension or metric column.
type FieldSpec struct {
	Name             string      `json:"name"`
	DataType         string      `json:"dataType"`
	SingleValueField *bool       `json:"singleValueField,omitempty"`
	DefaultNullValue interface{} `json:"defaultNullValue,omitempty"`
}

// DateTimeFieldSpec describes a date time column.
type DateTimeFieldSpec struct {
	FieldSpec
	Format      string `json:"format"`
	Granularity string `json:"granularity"`
}

// TimeGranularitySpec is the legacy incoming/outgoing time column description.
type TimeGranularitySpec struct {
	Name       string `json:"name"`
	DataType   string `json:"dataType"`
	TimeType   string `json:"timeType"`
	TimeFormat string `json:"timeFormat,omitempty"`
}

// TimeFieldSpec is the legacy single time column of a schema.
type TimeFieldSpec struct {
	IncomingGranularitySpec *TimeGranularitySpec `json:"incomingGranularitySpec,omitempty"`
	OutgoingGranularitySpec *TimeGranularitySpec `json:"outgoingGranularitySpec,omitempty"`
}

// ColumnNames lists every column of the schema, dimensions first.
func (s *Schema) ColumnNames() []string {
	names := []string{}
	for _, f := range s.DimensionFieldSpecs {
		names = append(names, f.Name)
	}
	for _, f := range s.MetricFieldSpecs {
		names = append(names, f.Name)
	}
	for _, f := range s.DateTimeFieldSpecs {
		names = append(names, f.Name)
	}
	if s.TimeFieldSpec != nil {
		spec := s.TimeFieldSpec.OutgoingGranularitySpec
		if spec == nil {
			spec = s.TimeFieldSpec.IncomingGranularitySpec
		}
		if spec != nil {
			names = append(names, spec.Name)
		}
	}
	return names
}

func parseSchema(body []byte) (*Schema, error) {
	var schema Schema
	if err := decodeJSONWithNumber(body, &schema); err != nil {
		return nil, fmt.Errorf("an error occurred when decoding schema: %w", err)
	}
	if schema.SchemaName == "" {
		return nil, newClusterError(CodeUnexpectedResponse, nil, "schema without schemaName: %s", body)
	}
	return &schema, nil
}
