package results

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const measurementSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["size", "samples_ns"],
  "properties": {
    "key": {"type": "string"},
    "size": {"type": "integer", "minimum": 0},
    "repetitions": {"type": "integer", "minimum": 1},
    "samples_ns": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "number", "minimum": 0}
    },
    "timestamp": {"type": "string"}
  }
}`

const inputSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["size", "data"],
  "properties": {
    "size": {"type": "integer", "minimum": 0},
    "repetitions": {"type": "integer", "minimum": 1},
    "warmup": {"type": "integer", "minimum": 0}
  }
}`

var (
	measurementSchema = mustSchema(measurementSchemaJSON)
	inputSchema       = mustSchema(inputSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("results: compile schema: %v", err))
	}
	return schema
}

// validate checks raw against schema and flattens the violations into one error.
func validate(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
