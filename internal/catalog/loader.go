// internal/catalog/loader.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	cerrors "dinebot/internal/common/errors"
	"dinebot/internal/models"
)

// menuSchema validates the menu seed file before it is trusted.
const menuSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["name", "price", "category", "is_vegetarian", "is_vegan", "spice_level", "description", "ingredients", "preparation_time"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "price": {"type": "integer", "minimum": 0},
      "category": {
        "type": "string",
        "enum": ["appetizer", "starter", "main course", "dessert", "beverage", "drink"]
      },
      "is_vegetarian": {"type": "boolean"},
      "is_vegan": {"type": "boolean"},
      "spice_level": {
        "type": "string",
        "enum": ["none", "mild", "hot"]
      },
      "description": {"type": "string"},
      "ingredients": {
        "type": "array",
        "items": {"type": "string"}
      },
      "preparation_time": {"type": "integer", "minimum": 0}
    },
    "additionalProperties": false
  }
}`

// ValidateMenu checks raw menu JSON against the schema.
func ValidateMenu(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(menuSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return cerrors.NewMenuValidationFailedError(err.Error())
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return cerrors.NewMenuValidationFailedError(strings.Join(problems, "; "))
	}
	return nil
}

// ParseMenu validates and decodes menu JSON. Items are normalized: the
// category aliases collapse and vegan items are forced vegetarian.
func ParseMenu(raw []byte) ([]models.MenuItem, error) {
	if err := ValidateMenu(raw); err != nil {
		return nil, err
	}

	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, cerrors.NewMenuValidationFailedError(err.Error())
	}

	seen := make(map[string]struct{}, len(items))
	for i := range items {
		items[i].Category = models.NormalizeCategory(string(items[i].Category))
		if items[i].IsVegan {
			items[i].IsVegetarian = true
		}
		key := strings.ToLower(items[i].Name)
		if _, dup := seen[key]; dup {
			return nil, cerrors.NewMenuValidationFailedError(fmt.Sprintf("duplicate item name: %s", items[i].Name))
		}
		seen[key] = struct{}{}
	}
	return items, nil
}

// LoadMenuFile reads, validates and decodes a menu seed file.
func LoadMenuFile(path string) ([]models.MenuItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.NewMenuLoadFailedError(err)
	}
	return ParseMenu(raw)
}
