// Package yaml encodes ordered maps to YAML documents with the keys order preserved.
package yaml

import (
	"bytes"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const Indent = 2

// Encode value to YAML. Ordered maps keep their keys order.
func Encode(v any) ([]byte, error) {
	node, err := ToNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Errorf("cannot encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Errorf("cannot encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func EncodeString(v any) (string, error) {
	data, err := Encode(v)
	return string(data), err
}

// ToNode converts the value to a yaml.Node tree.
func ToNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case *orderedmap.OrderedMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if v == nil {
			return node, nil
		}
		for _, key := range v.Keys() {
			value, _ := v.Get(key)
			valueNode, err := ToNode(value)
			if err != nil {
				return nil, errors.PrefixErrorf(err, `key "%s"`, key)
			}
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
			node.Content = append(node.Content, keyNode, valueNode)
		}
		return node, nil
	case orderedmap.OrderedMap:
		return ToNode(&v)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range v {
			itemNode, err := ToNode(item)
			if err != nil {
				return nil, errors.PrefixErrorf(err, `item [%d]`, i)
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil
	case []*orderedmap.OrderedMap:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, item)
		}
		return ToNode(items)
	case []string:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, item)
		}
		return ToNode(items)
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, errors.Errorf(`cannot encode value of type "%T": %w`, v, err)
		}
		return node, nil
	}
}

// Decode YAML mapping document to an ordered map.
func Decode(data []byte) (*orderedmap.OrderedMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("cannot decode YAML: %w", err)
	}
	if doc.Kind == 0 {
		return orderedmap.New(), nil
	}

	value, err := fromNode(&doc)
	if err != nil {
		return nil, err
	}
	m, ok := value.(*orderedmap.OrderedMap)
	if !ok {
		return nil, errors.Errorf(`expected YAML mapping, found "%T"`, value)
	}
	return m, nil
}

func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])
	case yaml.MappingNode:
		m := orderedmap.New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(node.Content[i].Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.AliasNode:
		return fromNode(node.Alias)
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, errors.Errorf(`line %d: %w`, node.Line, err)
		}
		return value, nil
	}
}
