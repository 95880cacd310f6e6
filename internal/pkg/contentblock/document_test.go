package contentblock

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "text_with_image", Label: "Text with image", Description: "Text and one image"}
	field := orderedmap.FromPairs([]orderedmap.Pair{{Key: "type", Value: "Text"}, {Key: "identifier", Value: "header"}})

	doc := NewAssembler("", ShapeFull).Assemble(element, []*orderedmap.OrderedMap{field})
	assert.Equal(t, []string{"name", "table", "typeField", "typeName", "prefixFields", "title", "description", "basics", "fields"}, doc.Keys())
	assert.Equal(t, "mask/text-with-image", doc.GetOrNil("name"))
	assert.Equal(t, "tt_content", doc.GetOrNil("table"))
	assert.Equal(t, "CType", doc.GetOrNil("typeField"))
	assert.Equal(t, "mask_text_with_image", doc.GetOrNil("typeName"))
	assert.Equal(t, false, doc.GetOrNil("prefixFields"))
	assert.Equal(t, []any{"TYPO3/Appearance", "TYPO3/Links"}, doc.GetOrNil("basics"))
	require.Len(t, doc.GetOrNil("fields"), 1)
}

func TestAssembler_Vendor(t *testing.T) {
	t.Parallel()
	element := &mask.ElementDefinition{Key: "hero"}
	assert.Equal(t, "acme/hero", NewAssembler("acme", ShapeFull).Name(element))
	assert.Equal(t, "mask/hero", NewAssembler("", ShapeFull).Name(element))
}

func TestParseOutputShape(t *testing.T) {
	t.Parallel()
	shape, err := ParseOutputShape("")
	require.NoError(t, err)
	assert.Equal(t, ShapeFull, shape)
	shape, err = ParseOutputShape("minimal")
	require.NoError(t, err)
	assert.False(t, shape.IsFull())
	_, err = ParseOutputShape("foo")
	require.Error(t, err)
	assert.Equal(t, `unexpected output shape "foo", expected "full" or "minimal"`, err.Error())
}
