package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

// TestConfig is a sample config struct for testing
type TestConfig struct {
	Name        string `json:"name" jsonschema:"description=The name of the config"`
	Value       int    `json:"value" jsonschema:"description=A numeric value"`
	Enabled     bool   `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

// NestedConfig is a sample nested config struct for testing
type NestedConfig struct {
	ID     string     `json:"id"`
	Config TestConfig `json:"config"`
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigSimple() {
	config := TestConfig{}
	schema, err := GetSchemaFromConfig(config)

	suite.NoError(err)
	suite.NotEmpty(schema)

	// Verify it's valid JSON
	var result map[string]interface{}
	err = json.Unmarshal([]byte(schema), &result)
	suite.NoError(err)

	// Check basic schema properties exist
	suite.Contains(result, "$schema")
	// Schema uses $ref to reference definitions in $defs
	suite.Contains(result, "$ref")
	suite.Contains(result, "$defs")
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigNested() {
	config := NestedConfig{}
	schema, err := GetSchemaFromConfig(config)

	suite.NoError(err)
	suite.NotEmpty(schema)

	// Verify it's valid JSON
	var result map[string]interface{}
	err = json.Unmarshal([]byte(schema), &result)
	suite.NoError(err)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigPointer() {
	config := &TestConfig{}
	schema, err := GetSchemaFromConfig(config)

	suite.NoError(err)
	suite.NotEmpty(schema)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigWithValues() {
	config := TestConfig{
		Name:    "test",
		Value:   42,
		Enabled: true,
		Tags:    []string{"tag1", "tag2"},
	}
	schema, err := GetSchemaFromConfig(config)

	suite.NoError(err)
	suite.NotEmpty(schema)

	// Verify it's valid JSON
	var result map[string]interface{}
	err = json.Unmarshal([]byte(schema), &result)
	suite.NoError(err)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigEmptyStruct() {
	type EmptyConfig struct{}
	config := EmptyConfig{}
	schema, err := GetSchemaFromConfig(config)

	suite.NoError(err)
	suite.NotEmpty(schema)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigPrimitiveTypes() {
	// Test with various primitive types
	schema, err := GetSchemaFromConfig("string")
	suite.NoError(err)
	suite.NotEmpty(schema)

	schema, err = GetSchemaFromConfig(42)
	suite.NoError(err)
	suite.NotEmpty(schema)

	schema, err = GetSchemaFromConfig(true)
	suite.NoError(err)
	suite.NotEmpty(schema)

	schema, err = GetSchemaFromConfig(3.14)
	suite.NoError(err)
	suite.NotEmpty(schema)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigSlice() {
	config := []TestConfig{}
	schema, err := GetSchemaFromConfig(config)

	suite.NoError(err)
	suite.NotEmpty(schema)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigMap() {
	config := map[string]TestConfig{}
	schema, err := GetSchemaFromConfig(config)

	suite.NoError(err)
	suite.NotEmpty(schema)
}

func (suite *UtilsTestSuite) TestExtractJSON() {
	suite.Equal(`{"a":1}`, ExtractJSON("```json\n{\"a\":1}\n```"))
	suite.Equal(`{"a":{"b":2}}`, ExtractJSON(`Here you go: {"a":{"b":2}} hope it helps`))
	suite.Equal("no object", ExtractJSON("no object"))
	suite.Equal("} {", ExtractJSON("} {"))
}

func (suite *UtilsTestSuite) TestParseNumber() {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"float", 12.5, 12.5, true},
		{"json number", json.Number("-3"), -3, true},
		{"string", " 7.25 ", 7.25, true},
		{"percent string", "65%", 65, true},
		{"garbage string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"infinite string", "Inf", 0, false},
		{"nan string", "NaN", 0, false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, ok := ParseNumber(tt.input)
			suite.Equal(tt.ok, ok)
			suite.Equal(tt.want, got)
		})
	}
}

func (suite *UtilsTestSuite) TestParseIndex() {
	idx, ok := ParseIndex(4.0)
	suite.True(ok)
	suite.Equal(4, idx)

	idx, ok = ParseIndex("12")
	suite.True(ok)
	suite.Equal(12, idx)

	_, ok = ParseIndex(2.5)
	suite.False(ok)

	_, ok = ParseIndex(-1.0)
	suite.False(ok)

	_, ok = ParseIndex(nil)
	suite.False(ok)
}

func (suite *UtilsTestSuite) TestRoundToDecimalPrecision() {
	suite.Equal(1.12346, RoundToDecimalPrecision(1.123456, 5))
	suite.Equal(55.12, RoundToDecimalPrecision(55.1234, 2))
	suite.Equal(-0.5, RoundToDecimalPrecision(-0.49999, 2))
}

func (suite *UtilsTestSuite) TestToJSONSchemaInlinesDefinitions() {
	schema, err := ToJSONSchema(NestedConfig{})
	suite.NoError(err)

	var result map[string]any
	suite.NoError(json.Unmarshal([]byte(schema), &result))
	suite.NotContains(schema, "$ref")

	properties, ok := result["properties"].(map[string]any)
	suite.True(ok)
	suite.Contains(properties, "config")
}
