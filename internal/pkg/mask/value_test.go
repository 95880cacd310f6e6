package mask

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	t.Parallel()

	in := orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "int", Value: float64(10)},
		{Key: "float", Value: 1.5},
		{Key: "zero", Value: float64(0)},
		{Key: "list", Value: []any{float64(1), "a", map[string]any{"b": float64(2), "a": true}}},
	})

	out := NormalizeMap(in)
	assert.Equal(t, []string{"int", "float", "zero", "list"}, out.Keys())
	assert.Equal(t, 10, out.GetOrNil("int"))
	assert.Equal(t, 1.5, out.GetOrNil("float"))
	assert.Equal(t, 0, out.GetOrNil("zero"))

	list := out.GetOrNil("list").([]any)
	assert.Equal(t, 1, list[0])
	assert.Equal(t, "a", list[1])
	nested := list[2].(*orderedmap.OrderedMap)
	assert.Equal(t, []string{"a", "b"}, nested.Keys())
	assert.Equal(t, 2, nested.GetOrNil("b"))

	// Input is not modified
	assert.Equal(t, float64(10), in.GetOrNil("int"))
}

func TestToPlainValue(t *testing.T) {
	t.Parallel()
	in := orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "a", Value: []any{orderedmap.FromPairs([]orderedmap.Pair{{Key: "b", Value: 1}})}},
	})
	assert.Equal(t, map[string]any{"a": []any{map[string]any{"b": 1}}}, ToPlainValue(in))
}
