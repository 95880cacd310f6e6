package mask

import (
	"context"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
	"github.com/typo3-migrate/mask2cb/internal/pkg/validator"
)

// Keys of a field definition which are Mask metadata, not TCA.
var maskFieldKeys = map[string]bool{
	"key":                   true,
	"fullKey":               true,
	"type":                  true,
	"coreField":             true,
	"inlineParent":          true,
	"inPalette":             true,
	"order":                 true,
	"cTypes":                true,
	"bodytextTypeByElement": true,
	"imageoverlayPalette":   true,
	"allowedFileExtensions": true,
	"onlineMedia":           true,
	"inlineLabel":           true,
	"inlineIcon":            true,
	"ctrl":                  true,
}

var validate = validator.New() //nolint:gochecknoglobals

// ParseCollection converts decoded Mask JSON definitions to the TableDefinitionCollection.
func ParseCollection(root *orderedmap.OrderedMap) (*TableDefinitionCollection, error) {
	collection := NewTableDefinitionCollection()
	errs := errors.NewMultiError()
	for _, tableName := range root.Keys() {
		tableMap, ok := mapValue(root.GetOrNil(tableName))
		if !ok {
			errs.Append(errors.Errorf(`table "%s": expected object, found "%T"`, tableName, root.GetOrNil(tableName)))
			continue
		}

		table, err := parseTable(tableName, tableMap)
		if err != nil {
			errs.AppendWithPrefixf(err, `invalid table "%s"`, tableName)
			continue
		}
		collection.AddTable(table)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return collection, nil
}

func parseTable(tableName string, tableMap *orderedmap.OrderedMap) (*TableDefinition, error) {
	table := &TableDefinition{Table: tableName}
	errs := errors.NewMultiError()

	// Elements
	if raw, found := tableMap.Get("elements"); found {
		elementsMap, ok := mapValue(raw)
		if !ok {
			errs.Append(errors.Errorf(`"elements": expected object, found "%T"`, raw))
		} else {
			for _, key := range elementsMap.Keys() {
				element, err := parseElement(key, elementsMap.GetOrNil(key))
				if err != nil {
					errs.AppendWithPrefixf(err, `invalid element "%s"`, key)
					continue
				}
				table.Elements = append(table.Elements, element)
			}
		}
	}

	// TCA
	if raw, found := tableMap.Get("tca"); found {
		tcaMap, ok := mapValue(raw)
		if !ok {
			errs.Append(errors.Errorf(`"tca": expected object, found "%T"`, raw))
		} else {
			tca, err := parseTca(tableName, tcaMap)
			if err != nil {
				errs.Append(err)
			} else {
				table.Tca = tca
			}
		}
	}

	// Palettes
	if raw, found := tableMap.Get("palettes"); found {
		if palettes, ok := mapValue(raw); ok {
			table.Palettes = NormalizeMap(palettes)
		}
	}

	return table, errs.ErrorOrNil()
}

func parseElement(key string, raw any) (*ElementDefinition, error) {
	elementMap, ok := raw.(*orderedmap.OrderedMap)
	if !ok {
		return nil, errors.Errorf(`expected object, found "%T"`, raw)
	}

	// Decode scalar values, ordered values are processed separately
	plain := make(map[string]any)
	for _, k := range elementMap.Keys() {
		if k == "columnsOverride" {
			continue
		}
		plain[k] = ToPlainValue(NormalizeValue(elementMap.GetOrNil(k)))
	}

	element := &ElementDefinition{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           element,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(plain); err != nil {
		return nil, err
	}

	if element.Key == "" {
		element.Key = key
	}
	if err := validate.Validate(context.Background(), element); err != nil {
		return nil, err
	}

	// Columns override
	element.ColumnsOverride = NewTcaDefinition()
	if raw, found := elementMap.Get("columnsOverride"); found {
		overrideMap, ok := mapValue(raw)
		if !ok {
			return nil, errors.Errorf(`"columnsOverride": expected object, found "%T"`, raw)
		}
		overrides, err := parseTca(ContentTable, overrideMap)
		if err != nil {
			return nil, errors.PrefixError(err, `invalid "columnsOverride"`)
		}
		element.ColumnsOverride = overrides
	}

	return element, nil
}

func parseTca(tableName string, tcaMap *orderedmap.OrderedMap) (*TcaDefinition, error) {
	tca := NewTcaDefinition()
	errs := errors.NewMultiError()
	for _, fieldKey := range tcaMap.Keys() {
		field, err := parseField(tableName, fieldKey, tcaMap.GetOrNil(fieldKey))
		if err != nil {
			errs.AppendWithPrefixf(err, `invalid field "%s"`, fieldKey)
			continue
		}
		tca.Add(field)
	}
	return tca, errs.ErrorOrNil()
}

func parseField(tableName, fieldKey string, raw any) (*TcaFieldDefinition, error) {
	fieldMap, ok := raw.(*orderedmap.OrderedMap)
	if !ok {
		return nil, errors.Errorf(`expected object, found "%T"`, raw)
	}
	fieldMap = NormalizeMap(fieldMap)

	field := &TcaFieldDefinition{
		FullKey: cast.ToString(fieldMap.GetOrNil("fullKey")),
		Key:     cast.ToString(fieldMap.GetOrNil("key")),
		Type:    FieldType(cast.ToString(fieldMap.GetOrNil("type"))),
		RealTca: orderedmap.New(),
	}

	if field.FullKey == "" {
		field.FullKey = fieldKey
	}
	if field.Key == "" {
		field.Key = strings.TrimPrefix(field.FullKey, FieldPrefix)
	}
	// An unknown type is kept, it is resolved when the field is translated

	field.IsCoreField = cast.ToBool(fieldMap.GetOrNil("coreField"))
	if tableName == ContentTable && !strings.HasPrefix(field.FullKey, FieldPrefix) {
		field.IsCoreField = true
	}

	for _, k := range fieldMap.Keys() {
		if !maskFieldKeys[k] && k != "label" && k != "description" {
			field.RealTca.Set(k, fieldMap.GetOrNil(k))
		}
	}

	field.InlineParent = perElementString(fieldMap.GetOrNil("inlineParent"))
	field.Label = perElementString(fieldMap.GetOrNil("label"))
	field.Description = perElementString(fieldMap.GetOrNil("description"))
	field.Order = perElementInt(fieldMap.GetOrNil("order"))
	field.CTypes = cast.ToStringSlice(ToPlainValue(fieldMap.GetOrNil("cTypes")))

	if raw, ok := fieldMap.GetOrNil("bodytextTypeByElement").(*orderedmap.OrderedMap); ok {
		field.BodytextTypeByElement = make(map[string]FieldType)
		for _, k := range raw.Keys() {
			field.BodytextTypeByElement[k] = FieldType(cast.ToString(raw.GetOrNil(k)))
		}
	}

	return field, nil
}

func perElementString(v any) PerElement[string] {
	if m, ok := v.(*orderedmap.OrderedMap); ok {
		out := PerElement[string]{ByElement: make(map[string]string)}
		for _, k := range m.Keys() {
			out.ByElement[k] = cast.ToString(m.GetOrNil(k))
		}
		return out
	}
	return PerElement[string]{Value: cast.ToString(v)}
}

func perElementInt(v any) PerElement[int] {
	if m, ok := v.(*orderedmap.OrderedMap); ok {
		out := PerElement[int]{ByElement: make(map[string]int)}
		for _, k := range m.Keys() {
			out.ByElement[k] = cast.ToInt(m.GetOrNil(k))
		}
		return out
	}
	return PerElement[int]{Value: cast.ToInt(v)}
}
