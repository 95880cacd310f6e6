package mask

import (
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// TableDefinitionCollection contains all Mask tables, in the source order.
type TableDefinitionCollection struct {
	tables []*TableDefinition
	index  map[string]*TableDefinition
}

func NewTableDefinitionCollection(tables ...*TableDefinition) *TableDefinitionCollection {
	c := &TableDefinitionCollection{index: make(map[string]*TableDefinition)}
	for _, t := range tables {
		c.AddTable(t)
	}
	return c
}

func (c *TableDefinitionCollection) AddTable(table *TableDefinition) {
	if existing, found := c.index[table.Table]; found {
		// Merge definitions from multiple files
		existing.Elements = append(existing.Elements, table.Elements...)
		if table.Tca != nil {
			if existing.Tca == nil {
				existing.Tca = NewTcaDefinition()
			}
			for _, f := range table.Tca.Fields() {
				existing.Tca.Add(f)
			}
		}
		if table.Palettes != nil {
			if existing.Palettes == nil {
				existing.Palettes = table.Palettes
			} else {
				for _, k := range table.Palettes.Keys() {
					existing.Palettes.Set(k, table.Palettes.GetOrNil(k))
				}
			}
		}
		return
	}
	c.tables = append(c.tables, table)
	c.index[table.Table] = table
}

func (c *TableDefinitionCollection) Tables() []*TableDefinition {
	return c.tables
}

func (c *TableDefinitionCollection) HasTable(table string) bool {
	_, found := c.index[table]
	return found
}

func (c *TableDefinitionCollection) GetTable(table string) (*TableDefinition, bool) {
	t, found := c.index[table]
	return t, found
}

// GetFieldType returns type of the field in the table.
// An error is returned if the field is not found or the type cannot be resolved.
func (c *TableDefinitionCollection) GetFieldType(fieldKey, table, elementKey string) (FieldType, error) {
	t, found := c.GetTable(table)
	if !found {
		return "", errors.Errorf(`table "%s" not found`, table)
	}

	field, found := t.Tca.GetField(fieldKey)
	if !found {
		return "", errors.Errorf(`field "%s" not found in the table "%s"`, fieldKey, table)
	}

	if fieldType, found := field.BodytextTypeByElement[elementKey]; found && fieldType.IsValid() {
		return fieldType, nil
	}

	if field.Type != "" {
		if !field.Type.IsValid() {
			return "", errors.Errorf(`field "%s" has unknown type "%s"`, fieldKey, field.Type)
		}
		return field.Type, nil
	}

	fieldType, err := InferFieldType(field.RealTca)
	if err != nil {
		return "", errors.PrefixErrorf(err, `cannot resolve type of the field "%s"`, fieldKey)
	}
	return fieldType, nil
}

// GetLabel returns label of the field in the element, or an empty string.
// Fields in a palette or an inline field define label themselves, other fields have labels in the element.
func (c *TableDefinitionCollection) GetLabel(elementKey, fieldKey, table string) string {
	return c.fieldText(elementKey, fieldKey, table, func(f *TcaFieldDefinition) string {
		return f.Label.Get(elementKey)
	}, func(e *ElementDefinition, index int) string {
		if index < len(e.Labels) {
			return e.Labels[index]
		}
		return ""
	})
}

// GetDescription returns description of the field in the element, or an empty string.
func (c *TableDefinitionCollection) GetDescription(elementKey, fieldKey, table string) string {
	return c.fieldText(elementKey, fieldKey, table, func(f *TcaFieldDefinition) string {
		return f.Description.Get(elementKey)
	}, func(e *ElementDefinition, index int) string {
		if index < len(e.Descriptions) {
			return e.Descriptions[index]
		}
		return ""
	})
}

func (c *TableDefinitionCollection) fieldText(
	elementKey, fieldKey, table string,
	fromField func(f *TcaFieldDefinition) string,
	fromElement func(e *ElementDefinition, index int) string,
) string {
	t, found := c.GetTable(table)
	if !found {
		return ""
	}

	field, found := t.Tca.GetField(fieldKey)
	if !found {
		return ""
	}

	if field.HasInlineParent(elementKey) || table != ContentTable {
		return fromField(field)
	}

	element, found := t.GetElement(elementKey)
	if !found {
		return ""
	}

	if index := element.ColumnIndex(fieldKey); index >= 0 {
		return fromElement(element, index)
	}
	return ""
}

// LoadInlineFields returns children of the parent field in the element, sorted by order.
// Children are searched in all tables.
func (c *TableDefinitionCollection) LoadInlineFields(parentKey, elementKey string, element *ElementDefinition) []*TcaFieldDefinition {
	if parentKey == "" {
		return nil
	}
	if elementKey == "" && element != nil {
		elementKey = element.Key
	}

	var out []*TcaFieldDefinition
	for _, t := range c.tables {
		for _, field := range t.Tca.Fields() {
			if field.InlineParent.Get(elementKey) == parentKey {
				out = append(out, field)
			}
		}
	}
	sortByOrder(out, elementKey)
	return out
}
