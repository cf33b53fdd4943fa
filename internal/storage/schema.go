/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// manifestSchema is the JSON Schema the screenplay.json manifest must satisfy.
// Kept permissive on optional fields so older manifests still open.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Screenplay Project Manifest",
  "type": "object",
  "required": ["name", "scripts"],
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "metadata": {
      "type": "object",
      "properties": {
        "title":   { "type": "string" },
        "authors": { "type": "string" },
        "contact": { "type": "string" },
        "notes":   { "type": "string" }
      },
      "additionalProperties": false
    },
    "scripts": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["slug", "title", "file"],
        "properties": {
          "slug":  { "type": "string", "pattern": "^[a-z0-9][a-z0-9_-]*$" },
          "title": { "type": "string" },
          "file":  { "type": "string", "minLength": 1 },
          "notes": { "type": "string" },
          "revision": {
            "type": "object",
            "properties": {
              "draft": { "type": "string" },
              "color": { "type": "string" },
              "date":  { "type": "string" }
            },
            "additionalProperties": false
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var schemaLoader = gojsonschema.NewStringLoader(manifestSchema)

// ValidateManifest checks manifest bytes against the project schema. The
// returned error lists every violation, not just the first.
func ValidateManifest(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("manifest does not conform to schema:")
	for _, e := range result.Errors() {
		sb.WriteString(" ")
		sb.WriteString(e.String())
		sb.WriteString(";")
	}
	return fmt.Errorf("%s", strings.TrimSuffix(sb.String(), ";"))
}
