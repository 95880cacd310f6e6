package contentblock

import (
	"context"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

// DefinitionSource provides Mask definitions, it is implemented by mask.TableDefinitionCollection.
type DefinitionSource interface {
	GetTable(table string) (*mask.TableDefinition, bool)
	GetFieldType(fieldKey, table, elementKey string) (mask.FieldType, error)
	GetLabel(elementKey, fieldKey, table string) string
	GetDescription(elementKey, fieldKey, table string) string
	LoadInlineFields(parentKey, elementKey string, element *mask.ElementDefinition) []*mask.TcaFieldDefinition
}

// Translator converts Mask fields to Content Blocks fields.
// The output depends only on the input definitions.
type Translator struct {
	source DefinitionSource
	shape  OutputShape
	logger log.Logger
}

func NewTranslator(source DefinitionSource, shape OutputShape, logger log.Logger) *Translator {
	return &Translator{source: source, shape: shape, logger: logger.WithComponent("translator")}
}

// Translate columns of the element from the table.
// The result has the same order as the columns, children of the "content" and "inline" fields are in the "fields" key.
func (t *Translator) Translate(ctx context.Context, element *mask.ElementDefinition, columns []string, table *mask.TableDefinition) []*orderedmap.OrderedMap {
	out := make([]*orderedmap.OrderedMap, 0, len(columns))
	if table == nil || table.Tca == nil {
		return out
	}
	for _, fieldKey := range columns {
		out = append(out, t.translateField(ctx, element, fieldKey, table))
	}
	return out
}

func (t *Translator) translateField(ctx context.Context, element *mask.ElementDefinition, fieldKey string, table *mask.TableDefinition) *orderedmap.OrderedMap {
	field, _ := table.Tca.GetField(fieldKey)

	fieldType, err := t.source.GetFieldType(fieldKey, table.Table, element.Key)
	if err != nil {
		t.logger.Debugf(ctx, `Using type "%s" for the field "%s": %s`, mask.FieldTypeString, fieldKey, err.Error())
		fieldType = mask.FieldTypeString
	}

	node := orderedmap.New()
	node.Set("type", TypeFor(fieldType).String())
	if fieldType != mask.FieldTypeLinebreak {
		node.Set("identifier", fieldKey)
	}
	if field != nil && field.IsCoreField {
		node.Set("useExistingField", true)
	}
	if t.shape.IsFull() {
		if label := t.source.GetLabel(element.Key, fieldKey, table.Table); label != "" {
			node.Set("label", label)
		}
		if description := t.source.GetDescription(element.Key, fieldKey, table.Table); description != "" {
			node.Set("description", description)
		}
	}

	// Base config and the element override, the type is defined by the node
	config := field.Config()
	config.Delete("type")
	override := orderedmap.New()
	if f, found := element.GetColumnsOverride(fieldKey); found {
		override = f.Config()
		override.Delete("type")
	}
	mergeConfig(node, config, override)

	cleanupConfig(node, fieldType)
	applyDefaults(node, fieldType, fieldKey, field)

	if fieldType.IsParentField() {
		var columns []string
		for _, child := range t.source.LoadInlineFields(fieldKey, element.Key, element) {
			columns = append(columns, child.FullKey)
		}

		childTable := table
		if fieldType == mask.FieldTypeInline {
			// Inline field has own table
			node.Delete("foreign_table")
			node.Delete("foreign_table_field")
			childTable, _ = t.source.GetTable(fieldKey)
		}

		children := t.Translate(ctx, element, columns, childTable)
		items := make([]any, 0, len(children))
		for _, child := range children {
			items = append(items, child)
		}
		node.Set("fields", items)
	}

	return node
}
