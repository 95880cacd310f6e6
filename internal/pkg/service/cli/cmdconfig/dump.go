package cmdconfig

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

type KVs []KV

type KV struct {
	Key   string
	Value string
}

func (v KVs) String() string {
	var out strings.Builder
	for i, kv := range v {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(kv.Key)
		out.WriteString("=")
		out.WriteString(kv.Value)
		out.WriteString(";")
	}
	return out.String()
}

// Dump a configuration structure as key-value pairs.
func Dump(config any) KVs {
	// Dereference pointer
	v := reflect.ValueOf(config)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	out := make(KVs, 0)
	if v.Kind() == reflect.Struct {
		visitFields(v, nil, func(f field) {
			out = append(out, KV{Key: f.Key, Value: dumpValue(f.Value)})
		})
	}
	return out
}

func dumpValue(v reflect.Value) string {
	switch value := v.Interface().(type) {
	case string:
		return value
	case []string:
		return strings.Join(value, ",")
	case fmt.Stringer:
		return value.String()
	case encoding.TextMarshaler:
		if text, err := value.MarshalText(); err == nil {
			return string(text)
		}
	}
	return cast.ToString(v.Interface())
}
