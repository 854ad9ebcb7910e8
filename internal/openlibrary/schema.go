// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"github.com/xeipuuv/gojsonschema"
)

// searchSchemaJSON describes the catalog search payload. Only start,
// num_found and docs are required; each doc needs a key. Optional fields
// are type-checked when present.
const searchSchemaJSON = `{
  "type": "object",
  "required": ["start", "num_found", "docs"],
  "properties": {
    "start": {"type": "integer"},
    "num_found": {"type": "integer"},
    "docs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {
          "key": {"type": "string"},
          "title": {"type": "string"},
          "author_key": {"type": "array", "items": {"type": "string"}},
          "cover_i": {"type": "integer"},
          "isbn": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

// authorSchemaJSON describes the author lookup payload. Only key is required.
const authorSchemaJSON = `{
  "type": "object",
  "required": ["key"],
  "properties": {
    "key": {"type": "string"},
    "name": {"type": "string"},
    "personal_name": {"type": "string"},
    "alternate_names": {"type": "array", "items": {"type": "string"}},
    "birth_date": {"type": "string"},
    "death_date": {"type": "string"}
  }
}`

var (
	searchSchema = mustSchema(searchSchemaJSON)
	authorSchema = mustSchema(authorSchemaJSON)
)

func mustSchema(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic("openlibrary: invalid embedded schema: " + err.Error())
	}
	return s
}

// validate checks body against schema and returns a *SchemaValidationError
// listing every violation, or nil when the body conforms.
func validate(schema *gojsonschema.Schema, endpoint string, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// The body is not JSON at all.
		return &SchemaValidationError{Endpoint: endpoint, Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.String())
	}
	return &SchemaValidationError{Endpoint: endpoint, Problems: problems}
}
