// Package json wraps jsoniter with the encoding/json compatible configuration.
package json

import (
	"bytes"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

func Encode(v any, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = api.MarshalIndent(v, "", "  ")
	} else {
		data, err = api.Marshal(v)
	}
	if err != nil {
		return nil, processError(err)
	}
	return data, nil
}

func EncodeString(v any, pretty bool) (string, error) {
	data, err := Encode(v, pretty)
	return string(data), err
}

func MustEncode(v any, pretty bool) []byte {
	data, err := Encode(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func MustEncodeString(v any, pretty bool) string {
	return string(MustEncode(v, pretty))
}

func Decode(data []byte, m any) error {
	if err := api.Unmarshal(bytes.TrimSpace(data), m); err != nil {
		return processError(err)
	}
	return nil
}

func DecodeString(data string, m any) error {
	return Decode([]byte(data), m)
}

// processError removes the redundant package prefix from jsoniter messages.
func processError(err error) error {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, "json: ")
	msg = strings.TrimPrefix(msg, "jsoniter: ")
	return errors.Wrap(err, msg)
}
