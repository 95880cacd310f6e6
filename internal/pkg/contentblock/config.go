package contentblock

import (
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

const (
	AllowedImageTypes = "common-image-types"
	AllowedMediaTypes = "common-media-types"
	// Relation of the nested content elements to the parent record.
	ContentForeignField      = "tx_mask_content_parent_uid"
	ContentForeignTableField = "tx_mask_content_tablenames"
	ContentRoleField         = "tx_mask_content_role"
	RenderTypeCodeEditor     = "t3editor"
)

// mergeConfig sets config values to the node, existing keys keep their position.
func mergeConfig(node *orderedmap.OrderedMap, configs ...*orderedmap.OrderedMap) {
	for _, config := range configs {
		for _, key := range config.Keys() {
			node.Set(key, config.GetOrNil(key))
		}
	}
}

func cleanupConfig(node *orderedmap.OrderedMap, fieldType mask.FieldType) {
	if v, found := node.Get("nullable"); found && isZeroOrFalse(v) {
		node.Delete("nullable")
	}

	if fieldType == mask.FieldTypeSelect || fieldType == mask.FieldTypeCheck {
		if v, found := node.Get("items"); found && isEmptyList(v) {
			node.Delete("items")
		}
	}
}

func applyDefaults(node *orderedmap.OrderedMap, fieldType mask.FieldType, fieldKey string, field *mask.TcaFieldDefinition) {
	switch fieldType {
	case mask.FieldTypeFile:
		setDefaultString(node, "allowed", AllowedImageTypes)
	case mask.FieldTypeMedia:
		setDefaultString(node, "allowed", AllowedMediaTypes)
	case mask.FieldTypeContent:
		node.Set("foreign_field", ContentForeignField)
		node.Set("foreign_table_field", ContentForeignTableField)
		node.Set("foreign_match_fields", orderedmap.FromPairs([]orderedmap.Pair{
			{Key: ContentRoleField, Value: fieldKey},
		}))
		if field != nil && len(field.CTypes) > 0 {
			// A scalar on the path cannot be replaced, the default is skipped.
			if config, ok := ensureNestedMap(node, "overrideChildTca", "columns", "CType", "config"); ok {
				config.Set("default", field.CTypes[0])
			}
		}
		if columns, ok := nestedMap(node, "overrideChildTca", "columns"); ok {
			columns.Delete("colPos")
		}
	}

	if fieldType.IsTextareaField() && isTruthy(node.GetOrNil("format")) {
		node.Set("renderType", RenderTypeCodeEditor)
	}
}

func setDefaultString(node *orderedmap.OrderedMap, key, value string) {
	if cast.ToString(node.GetOrNil(key)) == "" {
		node.Set(key, value)
	}
}

// nestedMap returns the map on the path, if all parts exist.
func nestedMap(m *orderedmap.OrderedMap, path ...string) (*orderedmap.OrderedMap, bool) {
	current := m
	for _, key := range path {
		next, ok := current.GetOrNil(key).(*orderedmap.OrderedMap)
		if !ok || next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

// ensureNestedMap returns the map on the path, missing parts, nulls and empty lists are replaced by empty maps.
// False is returned if a part is a scalar or a non-empty list.
func ensureNestedMap(m *orderedmap.OrderedMap, path ...string) (*orderedmap.OrderedMap, bool) {
	current := m
	for _, key := range path {
		value := current.GetOrNil(key)
		if next, ok := value.(*orderedmap.OrderedMap); ok && next != nil {
			current = next
			continue
		}
		if list, ok := value.([]any); value != nil && (!ok || len(list) > 0) {
			return nil, false
		}
		next := orderedmap.New()
		current.Set(key, next)
		current = next
	}
	return current, true
}

func isZeroOrFalse(v any) bool {
	switch v := v.(type) {
	case bool:
		return !v
	case int, int64, float64:
		return cast.ToFloat64(v) == 0
	default:
		return false
	}
}

func isEmptyList(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case []any:
		return len(v) == 0
	case *orderedmap.OrderedMap:
		return v == nil || len(v.Keys()) == 0
	default:
		return false
	}
}

// isTruthy converts the value to bool like PHP does.
func isTruthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	case int, int64, float64:
		return cast.ToFloat64(v) != 0
	case []any:
		return len(v) > 0
	case *orderedmap.OrderedMap:
		return v != nil && len(v.Keys()) > 0
	default:
		return true
	}
}
