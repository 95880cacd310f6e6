package contentblock_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/typo3-migrate/mask2cb/internal/pkg/contentblock"
	"github.com/typo3-migrate/mask2cb/internal/pkg/encoding/yaml"
	"github.com/typo3-migrate/mask2cb/internal/pkg/fixtures"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

// testField creates a field definition, config is a list of key-value pairs.
func testField(fullKey string, fieldType mask.FieldType, config ...orderedmap.Pair) *mask.TcaFieldDefinition {
	realTca := orderedmap.New()
	if len(config) > 0 {
		realTca.Set("config", orderedmap.FromPairs(config))
	}
	return &mask.TcaFieldDefinition{FullKey: fullKey, Key: strings.TrimPrefix(fullKey, mask.FieldPrefix), Type: fieldType, RealTca: realTca}
}

func testCollection(element *mask.ElementDefinition, fields ...*mask.TcaFieldDefinition) (*mask.TableDefinitionCollection, *mask.TableDefinition) {
	table := &mask.TableDefinition{
		Table:    mask.ContentTable,
		Elements: []*mask.ElementDefinition{element},
		Tca:      mask.NewTcaDefinition(fields...),
	}
	return mask.NewTableDefinitionCollection(table), table
}

func translateOne(t *testing.T, shape OutputShape, element *mask.ElementDefinition, fields ...*mask.TcaFieldDefinition) *orderedmap.OrderedMap {
	t.Helper()
	collection, table := testCollection(element, fields...)
	out := NewTranslator(collection, shape, log.NewNopLogger()).Translate(context.Background(), element, element.Columns, table)
	require.Len(t, out, len(element.Columns))
	return out[0]
}

func plain(fields []*orderedmap.OrderedMap) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, mask.ToPlainValue(f))
	}
	return out
}

func TestTranslator_HeroFixture(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	collection := fixtures.MaskCollection(t, "hero")
	table, _ := collection.GetTable(mask.ContentTable)
	element, _ := table.GetElement("hero_teaser")

	logger := log.NewDebugLogger()
	fields := NewTranslator(collection, ShapeFull, logger).Translate(ctx, element, element.Columns, table)
	doc := NewAssembler("", ShapeFull).Assemble(element, fields)

	expected := `
name: mask/hero-teaser
table: tt_content
typeField: CType
typeName: mask_hero_teaser
prefixFields: false
title: Hero teaser
description: Big teaser with slides
basics:
  - TYPO3/Appearance
  - TYPO3/Links
fields:
  - type: Text
    identifier: header
    useExistingField: true
    label: Headline
    description: The main headline
  - type: Textarea
    identifier: bodytext
    useExistingField: true
    label: Text
    enableRichtext: 1
  - type: File
    identifier: tx_mask_image
    label: Image
    allowed: common-image-types
    maxitems: 1
  - type: Linebreak
  - type: Collection
    identifier: tx_mask_slides
    label: Slides
    foreign_field: parentid
    appearance:
      collapseAll: 1
    fields:
      - type: Text
        identifier: tx_mask_title
        label: Title
        description: Slide title
        nullable: 1
      - type: Textarea
        identifier: tx_mask_caption
        label: Caption
        format: html
        renderType: t3editor
  - type: Collection
    identifier: tx_mask_content
    label: Nested content
    foreign_table: tt_content
    overrideChildTca:
      columns:
        CType:
          config:
            default: mask_hero_teaser
    foreign_field: tx_mask_content_parent_uid
    foreign_table_field: tx_mask_content_tablenames
    foreign_match_fields:
      tx_mask_content_role: tx_mask_content
    fields: []
  - type: Palette
    identifier: tx_mask_settings
    label: Settings
`
	actual, err := yaml.EncodeString(doc)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimLeft(expected, "\n"), actual)
}

func TestTranslator_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	collection := fixtures.MaskCollection(t, "hero")
	table, _ := collection.GetTable(mask.ContentTable)
	element, _ := table.GetElement("hero_teaser")
	translator := NewTranslator(collection, ShapeFull, log.NewNopLogger())

	first := translator.Translate(ctx, element, element.Columns, table)
	second := translator.Translate(ctx, element, element.Columns, table)
	if diff := cmp.Diff(plain(first), plain(second)); diff != "" {
		t.Fatalf("translation is not deterministic (-first +second):\n%s", diff)
	}

	// Source definitions are not modified
	contentField, _ := table.Tca.GetField("tx_mask_content")
	_, found, err := contentField.RealTca.GetNested("config.overrideChildTca.columns.colPos")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTranslator_Order(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{
		Key:     "a",
		Columns: []string{"tx_mask_c", "tx_mask_a", "tx_mask_b"},
	}
	collection, table := testCollection(element,
		testField("tx_mask_a", mask.FieldTypeString),
		testField("tx_mask_b", mask.FieldTypeInteger),
		testField("tx_mask_c", mask.FieldTypeCheck),
	)
	out := NewTranslator(collection, ShapeFull, log.NewNopLogger()).Translate(context.Background(), element, element.Columns, table)
	require.Len(t, out, 3)
	assert.Equal(t, "tx_mask_c", out[0].GetOrNil("identifier"))
	assert.Equal(t, "tx_mask_a", out[1].GetOrNil("identifier"))
	assert.Equal(t, "tx_mask_b", out[2].GetOrNil("identifier"))
	assert.Equal(t, "Checkbox", out[0].GetOrNil("type"))
	assert.Equal(t, "Number", out[2].GetOrNil("type"))
}

func TestTranslator_UnknownFieldDefaultsToText(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_missing"}}
	collection, table := testCollection(element)
	logger := log.NewDebugLogger()
	out := NewTranslator(collection, ShapeFull, logger).Translate(context.Background(), element, element.Columns, table)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"type", "identifier"}, out[0].Keys())
	assert.Equal(t, "Text", out[0].GetOrNil("type"))
	assert.Contains(t, logger.DebugMessages(), `Using type "string" for the field "tx_mask_missing"`)
}

func TestTranslator_NoTca(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_a"}}
	table := &mask.TableDefinition{Table: mask.ContentTable}
	collection := mask.NewTableDefinitionCollection(table)
	out := NewTranslator(collection, ShapeFull, log.NewNopLogger()).Translate(context.Background(), element, element.Columns, table)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestTranslator_OverrideMerge(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{
		Key:     "a",
		Columns: []string{"tx_mask_a"},
		ColumnsOverride: mask.NewTcaDefinition(testField("tx_mask_a", "",
			orderedmap.Pair{Key: "type", Value: "text"},
			orderedmap.Pair{Key: "required", Value: true},
			orderedmap.Pair{Key: "max", Value: 20},
		)),
	}
	node := translateOne(t, ShapeFull, element, testField("tx_mask_a", mask.FieldTypeString,
		orderedmap.Pair{Key: "type", Value: "input"},
		orderedmap.Pair{Key: "max", Value: 10},
		orderedmap.Pair{Key: "placeholder", Value: "foo"},
	))
	assert.Equal(t, []string{"type", "identifier", "max", "placeholder", "required"}, node.Keys())
	assert.Equal(t, "Text", node.GetOrNil("type"))
	assert.Equal(t, 20, node.GetOrNil("max"))
}

func TestTranslator_Nullable(t *testing.T) {
	t.Parallel()
	for _, value := range []any{0, false} {
		element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_a"}}
		node := translateOne(t, ShapeFull, element, testField("tx_mask_a", mask.FieldTypeString, orderedmap.Pair{Key: "nullable", Value: value}))
		_, found := node.Get("nullable")
		assert.False(t, found, "%#v", value)
	}
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_a"}}
	node := translateOne(t, ShapeFull, element, testField("tx_mask_a", mask.FieldTypeString, orderedmap.Pair{Key: "nullable", Value: true}))
	assert.Equal(t, true, node.GetOrNil("nullable"))
}

func TestTranslator_EmptyItems(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_select", "tx_mask_check", "tx_mask_radio", "tx_mask_filled"}}
	collection, table := testCollection(element,
		testField("tx_mask_select", mask.FieldTypeSelect, orderedmap.Pair{Key: "items", Value: []any{}}),
		testField("tx_mask_check", mask.FieldTypeCheck, orderedmap.Pair{Key: "items", Value: []any{}}),
		testField("tx_mask_radio", mask.FieldTypeRadio, orderedmap.Pair{Key: "items", Value: []any{}}),
		testField("tx_mask_filled", mask.FieldTypeSelect, orderedmap.Pair{Key: "items", Value: []any{
			orderedmap.FromPairs([]orderedmap.Pair{{Key: "label", Value: "A"}, {Key: "value", Value: "a"}}),
		}}),
	)
	out := NewTranslator(collection, ShapeFull, log.NewNopLogger()).Translate(context.Background(), element, element.Columns, table)
	require.Len(t, out, 4)
	_, found := out[0].Get("items")
	assert.False(t, found)
	_, found = out[1].Get("items")
	assert.False(t, found)
	_, found = out[2].Get("items")
	assert.True(t, found)
	_, found = out[3].Get("items")
	assert.True(t, found)
}

func TestTranslator_FileDefaults(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_image", "tx_mask_media", "tx_mask_pdf"}}
	collection, table := testCollection(element,
		testField("tx_mask_image", mask.FieldTypeFile),
		testField("tx_mask_media", mask.FieldTypeMedia, orderedmap.Pair{Key: "allowed", Value: ""}),
		testField("tx_mask_pdf", mask.FieldTypeFile, orderedmap.Pair{Key: "allowed", Value: "pdf"}),
	)
	out := NewTranslator(collection, ShapeFull, log.NewNopLogger()).Translate(context.Background(), element, element.Columns, table)
	require.Len(t, out, 3)
	assert.Equal(t, "common-image-types", out[0].GetOrNil("allowed"))
	assert.Equal(t, "common-media-types", out[1].GetOrNil("allowed"))
	assert.Equal(t, "pdf", out[2].GetOrNil("allowed"))
}

func TestTranslator_ContentDefaults(t *testing.T) {
	t.Parallel()

	// Without cTypes, colPos is removed, the path is not created
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_content"}}
	node := translateOne(t, ShapeFull, element, testField("tx_mask_content", mask.FieldTypeContent,
		orderedmap.Pair{Key: "type", Value: "inline"},
	))
	assert.Equal(t, []string{"type", "identifier", "foreign_field", "foreign_table_field", "foreign_match_fields", "fields"}, node.Keys())
	assert.Equal(t, "tx_mask_content", node.GetOrNil("foreign_match_fields").(*orderedmap.OrderedMap).GetOrNil("tx_mask_content_role"))
	assert.Equal(t, []any{}, node.GetOrNil("fields"))

	// A scalar override cannot be extended
	field := testField("tx_mask_content", mask.FieldTypeContent, orderedmap.Pair{Key: "overrideChildTca", Value: "foo"})
	field.CTypes = []string{"text"}
	node = translateOne(t, ShapeFull, element, field)
	assert.Equal(t, "foo", node.GetOrNil("overrideChildTca"))
}

func TestTranslator_ContentDefaults_EmptyOverrideChildTca(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_content"}}

	// Empty PHP arrays are decoded as empty lists
	for _, value := range []any{[]any{}, nil} {
		field := testField("tx_mask_content", mask.FieldTypeContent, orderedmap.Pair{Key: "overrideChildTca", Value: value})
		field.CTypes = []string{"text", "textmedia"}
		node := translateOne(t, ShapeFull, element, field)
		defaultValue, found, err := node.GetNested("overrideChildTca.columns.CType.config.default")
		require.NoError(t, err, "%#v", value)
		assert.True(t, found, "%#v", value)
		assert.Equal(t, "text", defaultValue, "%#v", value)
	}

	// Empty list deeper on the path, colPos is removed
	field := testField("tx_mask_content", mask.FieldTypeContent, orderedmap.Pair{Key: "overrideChildTca", Value: orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "columns", Value: orderedmap.FromPairs([]orderedmap.Pair{
			{Key: "CType", Value: []any{}},
			{Key: "colPos", Value: orderedmap.FromPairs([]orderedmap.Pair{{Key: "config", Value: orderedmap.New()}})},
		})},
	})})
	field.CTypes = []string{"text"}
	node := translateOne(t, ShapeFull, element, field)
	columns, found, err := node.GetNested("overrideChildTca.columns")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"CType"}, columns.(*orderedmap.OrderedMap).Keys())
	defaultValue, _, _ := node.GetNested("overrideChildTca.columns.CType.config.default")
	assert.Equal(t, "text", defaultValue)
}

func TestTranslator_ContentChildren(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_content"}}
	content := testField("tx_mask_content", mask.FieldTypeContent)
	child := testField("tx_mask_k", mask.FieldTypeInteger, orderedmap.Pair{Key: "type", Value: "number"})
	child.InlineParent = mask.PerElement[string]{Value: "tx_mask_content"}
	contentTable := &mask.TableDefinition{
		Table:    mask.ContentTable,
		Elements: []*mask.ElementDefinition{element},
		Tca:      mask.NewTcaDefinition(content, child),
	}

	// The same field key with another type in other table
	decoy := testField("tx_mask_k", mask.FieldTypeRichtext)
	decoyTable := &mask.TableDefinition{Table: "tx_mask_other", Tca: mask.NewTcaDefinition(decoy)}

	collection := mask.NewTableDefinitionCollection(contentTable, decoyTable)
	out := NewTranslator(collection, ShapeMinimal, log.NewNopLogger()).Translate(context.Background(), element, element.Columns, contentTable)
	require.Len(t, out, 1)

	// Children of the content field are resolved in the parent table
	fields, ok := out[0].GetOrNil("fields").([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	expected := orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "type", Value: "Number"},
		{Key: "identifier", Value: "tx_mask_k"},
	})
	assert.Equal(t, mask.ToPlainValue(expected), mask.ToPlainValue(fields[0]))
}

func TestTranslator_CodeEditor(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_text", "tx_mask_rte", "tx_mask_off", "tx_mask_string"}}
	collection, table := testCollection(element,
		testField("tx_mask_text", mask.FieldTypeText, orderedmap.Pair{Key: "format", Value: "html"}),
		testField("tx_mask_rte", mask.FieldTypeRichtext, orderedmap.Pair{Key: "format", Value: "css"}),
		testField("tx_mask_off", mask.FieldTypeText, orderedmap.Pair{Key: "format", Value: "0"}),
		testField("tx_mask_string", mask.FieldTypeString, orderedmap.Pair{Key: "format", Value: "html"}),
	)
	out := NewTranslator(collection, ShapeFull, log.NewNopLogger()).Translate(context.Background(), element, element.Columns, table)
	require.Len(t, out, 4)
	assert.Equal(t, "t3editor", out[0].GetOrNil("renderType"))
	assert.Equal(t, "t3editor", out[1].GetOrNil("renderType"))
	assert.Nil(t, out[2].GetOrNil("renderType"))
	assert.Nil(t, out[3].GetOrNil("renderType"))
}

func TestTranslator_InlineMissingChildTable(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "a", Columns: []string{"tx_mask_items"}}
	node := translateOne(t, ShapeFull, element, testField("tx_mask_items", mask.FieldTypeInline,
		orderedmap.Pair{Key: "foreign_table", Value: "tx_mask_items"},
		orderedmap.Pair{Key: "foreign_table_field", Value: "parenttable"},
		orderedmap.Pair{Key: "foreign_field", Value: "parentid"},
	))
	assert.Equal(t, []string{"type", "identifier", "foreign_field", "fields"}, node.Keys())
	assert.Equal(t, []any{}, node.GetOrNil("fields"))
}

func TestTranslator_MinimalShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	collection := fixtures.MaskCollection(t, "hero")
	table, _ := collection.GetTable(mask.ContentTable)
	element, _ := table.GetElement("hero_teaser")

	fields := NewTranslator(collection, ShapeMinimal, log.NewNopLogger()).Translate(ctx, element, element.Columns, table)
	require.Len(t, fields, len(element.Columns))
	assert.Equal(t, []string{"type", "identifier", "useExistingField"}, fields[0].Keys())

	doc := NewAssembler("", ShapeMinimal).Assemble(element, fields)
	assert.Equal(t, []string{"name", "table", "typeField", "typeName", "title", "description", "fields"}, doc.Keys())
}
