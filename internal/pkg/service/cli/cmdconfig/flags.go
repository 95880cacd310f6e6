package cmdconfig

import (
	"reflect"
	"strings"

	"github.com/spf13/pflag"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const (
	configKeyTag       = "configKey"
	configUsageTag     = "configUsage"
	configShorthandTag = "configShorthand"
	keySeparator       = "."
)

// field is a leaf of a configuration structure.
type field struct {
	Key       string // for example "mask.content"
	FlagName  string // for example "mask-content"
	Shorthand string
	Usage     string
	Value     reflect.Value
}

func MustGenerateFlags(fs *pflag.FlagSet, v any) {
	if err := GenerateFlags(fs, v); err != nil {
		panic(err)
	}
}

// GenerateFlags generates FlagSet from the provided configuration structure.
// Each field tagged by "configKey" tag is mapped to a flag.
// Field can optionally have the "configUsage" tag.
// Field can optionally have the "configShorthand" tag.
// Nested structures are mapped to flags with the parent key as a prefix.
func GenerateFlags(fs *pflag.FlagSet, v any) error {
	fields, err := structFields(v)
	if err != nil {
		return err
	}

	for _, f := range fields {
		switch v := f.Value.Interface().(type) {
		case int:
			fs.IntP(f.FlagName, f.Shorthand, v, f.Usage)
		case int64:
			fs.Int64P(f.FlagName, f.Shorthand, v, f.Usage)
		case uint:
			fs.UintP(f.FlagName, f.Shorthand, v, f.Usage)
		case float64:
			fs.Float64P(f.FlagName, f.Shorthand, v, f.Usage)
		case bool:
			fs.BoolP(f.FlagName, f.Shorthand, v, f.Usage)
		case string:
			fs.StringP(f.FlagName, f.Shorthand, v, f.Usage)
		case []string:
			fs.StringSliceP(f.FlagName, f.Shorthand, v, f.Usage)
		default:
			return errors.Errorf(`unexpected type "%T" of the field "%s"`, v, f.Key)
		}

		// The key is used by the Binder
		if err := fs.SetAnnotation(f.FlagName, configKeyTag, []string{f.Key}); err != nil {
			return err
		}
	}
	return nil
}

func structFields(v any) ([]field, error) {
	// Dereference pointer, if any
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	// Validate type
	if value.Kind() != reflect.Struct {
		return nil, errors.Errorf(`cannot generate flags from type "%s": it is not a struct or a pointer to a struct`, value.Type().String())
	}

	var out []field
	visitFields(value, nil, func(f field) {
		out = append(out, f)
	})
	return out, nil
}

func visitFields(value reflect.Value, path []string, fn func(f field)) {
	for i := range value.NumField() {
		structField := value.Type().Field(i)
		name, ok := structField.Tag.Lookup(configKeyTag)
		if !ok || name == "" || name == "-" {
			continue
		}

		fieldPath := append(append([]string(nil), path...), name)
		fieldValue := value.Field(i)
		if fieldValue.Kind() == reflect.Struct {
			visitFields(fieldValue, fieldPath, fn)
			continue
		}

		key := strings.Join(fieldPath, keySeparator)
		fn(field{
			Key:       key,
			FlagName:  fieldToFlagName(key),
			Shorthand: structField.Tag.Get(configShorthandTag),
			Usage:     structField.Tag.Get(configUsageTag),
			Value:     fieldValue,
		})
	}
}
