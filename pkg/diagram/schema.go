package diagram

import (
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// diagramSchemaJSON is the JSON Schema for diagram input validation.
// Embedded as a constant to avoid filesystem dependencies.
const diagramSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://sketchflow.dev/schemas/diagram.json",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {
      "type": "string",
      "enum": ["flow", "sequence"]
    }
  },
  "allOf": [
    {
      "if": { "properties": { "type": { "const": "flow" } } },
      "then": { "$ref": "#/$defs/flow" }
    },
    {
      "if": { "properties": { "type": { "const": "sequence" } } },
      "then": { "$ref": "#/$defs/sequence" }
    }
  ],
  "$defs": {
    "color": {
      "type": "string",
      "pattern": "^#[0-9a-fA-F]{6}$"
    },
    "edgeStyle": {
      "type": "string",
      "enum": ["solid", "dashed", "dotted"]
    },
    "flow": {
      "type": "object",
      "required": ["type", "nodes"],
      "properties": {
        "type": { "const": "flow" },
        "title": { "type": "string" },
        "nodes": {
          "type": "array",
          "items": { "$ref": "#/$defs/node" }
        },
        "edges": {
          "type": "array",
          "items": { "$ref": "#/$defs/edge" }
        },
        "groups": {
          "type": "array",
          "items": { "$ref": "#/$defs/group" }
        },
        "style": {
          "type": "string",
          "enum": ["hand-drawn", "clean", "minimal"]
        },
        "direction": {
          "type": "string",
          "enum": ["TB", "LR", "BT", "RL"]
        }
      },
      "additionalProperties": false
    },
    "node": {
      "type": "object",
      "required": ["id", "label"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "shape": {
          "type": "string",
          "enum": ["rectangle", "ellipse", "diamond", "cylinder", "cloud", "hexagon", "parallelogram"]
        },
        "color": { "$ref": "#/$defs/color" },
        "textColor": { "$ref": "#/$defs/color" },
        "width": { "type": "number", "exclusiveMinimum": 0 },
        "height": { "type": "number", "exclusiveMinimum": 0 }
      },
      "additionalProperties": false
    },
    "edge": {
      "type": "object",
      "required": ["from", "to"],
      "properties": {
        "from": { "type": "string", "minLength": 1 },
        "to": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "style": { "$ref": "#/$defs/edgeStyle" },
        "direction": {
          "type": "string",
          "enum": ["forward", "backward", "both", "none"]
        },
        "color": { "$ref": "#/$defs/color" }
      },
      "additionalProperties": false
    },
    "group": {
      "type": "object",
      "required": ["id", "contains"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "contains": {
          "type": "array",
          "items": { "type": "string" }
        },
        "color": { "$ref": "#/$defs/color" }
      },
      "additionalProperties": false
    },
    "sequence": {
      "type": "object",
      "required": ["type", "participants"],
      "properties": {
        "type": { "const": "sequence" },
        "title": { "type": "string" },
        "participants": {
          "type": "array",
          "minItems": 1,
          "items": { "$ref": "#/$defs/participant" }
        },
        "messages": {
          "type": "array",
          "items": { "$ref": "#/$defs/message" }
        },
        "style": {
          "type": "string",
          "enum": ["hand-drawn", "clean", "minimal"]
        }
      },
      "additionalProperties": false
    },
    "participant": {
      "type": "object",
      "required": ["id", "label"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "color": { "$ref": "#/$defs/color" }
      },
      "additionalProperties": false
    },
    "message": {
      "type": "object",
      "required": ["from", "to", "label"],
      "properties": {
        "from": { "type": "string", "minLength": 1 },
        "to": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "style": { "$ref": "#/$defs/edgeStyle" },
        "color": { "$ref": "#/$defs/color" }
      },
      "additionalProperties": false
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema returns the compiled diagram schema, compiling it on first
// use. Compilation of the embedded document cannot fail at runtime unless the
// constant itself is broken, which the parser tests cover.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat()

		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(diagramSchemaJSON))
		if err != nil {
			schemaErr = err
			return
		}
		if err := c.AddResource("https://sketchflow.dev/schemas/diagram.json", doc); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("https://sketchflow.dev/schemas/diagram.json")
	})
	return schema, schemaErr
}
