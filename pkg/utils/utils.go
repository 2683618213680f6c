package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a struct to a JSON schema with every definition inlined.
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

func GetSchemaFromConfig(config any) (string, error) {
	schema := jsonschema.Reflect(config)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// ExtractJSON returns the text between the first '{' and the last '}'. Model
// output often wraps the object in prose or code fences. The input is returned
// unchanged when it holds no object.
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end == -1 || end < start {
		return text
	}

	return text[start : end+1]
}

// ParseNumber reads a finite number from a decoded JSON value. Numeric strings
// such as "12.5" or "65%" are accepted.
func ParseNumber(value any) (float64, bool) {
	var f float64

	switch v := value.(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}

		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
		if err != nil {
			return 0, false
		}

		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// ParseIndex reads a non-negative whole number from a decoded JSON value.
func ParseIndex(value any) (int, bool) {
	f, ok := ParseNumber(value)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}

// RoundToDecimalPrecision rounds value half away from zero to the given number
// of decimal places.
func RoundToDecimalPrecision(value float64, places int) float64 {
	multiplier := math.Pow10(places)

	return math.Round(value*multiplier) / multiplier
}
