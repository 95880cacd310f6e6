package schema_test

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/typo3-migrate/mask2cb/internal/pkg/encoding/json/schema"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

func TestValidateDocument_Ok(t *testing.T) {
	t.Parallel()
	document := orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "firstName", Value: "John"},
		{Key: "lastName", Value: "Brown"},
		{Key: "age", Value: 25},
	})
	require.NoError(t, ValidateDocument(getTestSchema(), document))
}

func TestValidateDocument_Error(t *testing.T) {
	t.Parallel()
	document := orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "lastName", Value: "Brown"},
		{Key: "age", Value: -1},
		{
			Key: "address",
			Value: orderedmap.FromPairs([]orderedmap.Pair{
				{Key: "number", Value: "abc"},
			}),
		},
	})
	err := ValidateDocument(getTestSchema(), document)
	require.Error(t, err)

	// Messages depend on the validator version, so only paths are checked.
	msg := err.Error()
	assert.Contains(t, msg, "firstName")
	assert.Contains(t, msg, `"address"`)
	assert.Contains(t, msg, `"address.number"`)
	assert.Contains(t, msg, `"age"`)

	var fieldErr *FieldValidationError
	require.True(t, errors.As(err, &fieldErr))
}

func TestCompile_InvalidJSON(t *testing.T) {
	t.Parallel()
	_, err := Compile([]byte(`{...`))
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestCompile_InvalidSchema(t *testing.T) {
	t.Parallel()
	_, err := Compile([]byte(`{"type": "foo"}`))
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func getTestSchema() []byte {
	return []byte(`
{
  "type": "object",
  "required": ["firstName", "lastName"],
  "properties": {
    "firstName": {"type": "string"},
    "lastName": {"type": "string"},
    "age": {"type": "integer", "minimum": 0},
    "address": {
      "type": "object",
      "required": ["street"],
      "properties": {
        "street": {"type": "string"},
        "number": {"type": "integer"}
      }
    }
  }
}
`)
}
