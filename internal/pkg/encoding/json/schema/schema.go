// Package schema validates JSON documents against a JSON schema.
package schema

import (
	"bytes"
	"sort"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/typo3-migrate/mask2cb/internal/pkg/encoding/json"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// pseudoSchemaFile - the validated schema is registered as this resource.
const pseudoSchemaFile = "file:///schema.json"

// SchemaError is returned if the schema itself is invalid.
type SchemaError struct {
	error
}

func (e *SchemaError) Unwrap() error {
	return e.error
}

// ValidationError is a document error without a path.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// FieldValidationError is a document error at the path.
type FieldValidationError struct {
	path    string
	message string
}

func (e *FieldValidationError) Path() string {
	return e.path
}

func (e *FieldValidationError) Error() string {
	return `"` + e.path + `": ` + e.message
}

// Schema is a compiled JSON schema.
type Schema struct {
	schema *jsonschema.Schema
}

// Compile the schema, the schema is a JSON document.
func Compile(s []byte) (*Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7

	// Decode JSON, it validates syntax
	m := orderedmap.New()
	if err := json.Decode(s, &m); err != nil {
		return nil, &SchemaError{error: err}
	}

	if err := c.AddResource(pseudoSchemaFile, bytes.NewReader(s)); err != nil {
		return nil, &SchemaError{error: err}
	}

	schema, err := c.Compile(pseudoSchemaFile)
	if err != nil {
		msg := strings.TrimPrefix(err.Error(), "jsonschema: invalid json "+pseudoSchemaFile+": ")
		return nil, &SchemaError{error: errors.Wrap(err, msg)}
	}

	return &Schema{schema: schema}, nil
}

// Validate the document, the document must contain only plain values, see ValidateDocument.
func (s *Schema) Validate(document any) error {
	err := s.schema.Validate(document)
	validationErrors := &jsonschema.ValidationError{}
	if errors.As(err, &validationErrors) {
		return processErrors(validationErrors.Causes)
	} else if err != nil {
		return err
	}
	return nil
}

// ValidateDocument compiles the schema and validates the document.
func ValidateDocument(schema []byte, document *orderedmap.OrderedMap) error {
	compiled, err := Compile(schema)
	if err != nil {
		return err
	}
	return compiled.Validate(document.ToMap())
}

func processErrors(errs []*jsonschema.ValidationError) error {
	// Sort errors
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].InstanceLocation < errs[j].InstanceLocation
	})

	docErrs := errors.NewMultiError()
	for _, e := range errs {
		path := strings.TrimLeft(e.InstanceLocation, "/")
		path = strings.ReplaceAll(path, "/", ".")
		msg := strings.ReplaceAll(strings.ReplaceAll(e.Message, `'`, `"`), `n"t`, `n't`)

		var formattedErr error
		switch {
		case len(e.Causes) > 0:
			// Process nested errors.
			if err := processErrors(e.Causes); err != nil {
				if e.Message == "" || e.Message == "doesn't validate with ''" || strings.HasSuffix(e.Message, "is invalid:") {
					formattedErr = err
				} else {
					formattedErr = errors.PrefixError(err, msg)
				}
			}
		case path == "":
			formattedErr = &ValidationError{message: msg}
		default:
			formattedErr = &FieldValidationError{path: path, message: msg}
		}

		if formattedErr != nil {
			docErrs.Append(formattedErr)
		}
	}
	return docErrs.ErrorOrNil()
}
