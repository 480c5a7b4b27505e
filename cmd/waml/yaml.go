package main

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-waml/value"
	"gopkg.in/yaml.v3"
)

// Tags of the WAML kinds YAML has no native node for.
const (
	tagUnit       = "!unit"
	tagRef        = "!ref"
	tagTuple      = "!tuple"
	tagLabel      = "!label"
	tagMarkup     = "!markup"
	tagAttributed = "!attributed"
	valueKey      = "value"
)

func scalarNode(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

// toNode converts an untyped value to a YAML node. Attributes become "@name"
// keys of a mapping tagged !attributed that holds the value under "value".
func toNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(v, 10)), nil
	case *big.Int:
		return scalarNode("!!int", v.String()), nil
	case float64:
		return scalarNode("!!float", formatFloat(v)), nil
	case string:
		return scalarNode("!!str", v), nil
	case value.Ref:
		return scalarNode(tagRef, string(v)), nil
	case value.Unit:
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: tagUnit, Style: yaml.FlowStyle}, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		return n, appendNodes(n, v)
	case *value.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.Fields {
			if err := appendPair(n, f.Key, f.Value); err != nil {
				return nil, err
			}
		}
		return n, nil
	case value.Tuple:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagTuple}
		for _, it := range v.Items {
			item, err := toNode(it.Value)
			if err != nil {
				return nil, err
			}
			if it.Label != "" {
				item = &yaml.Node{Kind: yaml.MappingNode, Tag: tagLabel, Content: []*yaml.Node{scalarNode("!!str", it.Label), item}}
			}
			n.Content = append(n.Content, item)
		}
		return n, nil
	case value.Markup:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagMarkup}
		return n, appendNodes(n, v.Nodes)
	case value.Attributed:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: tagAttributed}
		for _, a := range v.Attrs {
			if err := appendPair(n, "@"+a.Name, a.Value); err != nil {
				return nil, err
			}
		}
		if _, unit := v.Value.(value.Unit); !unit {
			if err := appendPair(n, valueKey, v.Value); err != nil {
				return nil, err
			}
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot convert %T to YAML", v)
}

func appendNodes(n *yaml.Node, vs []any) error {
	for _, v := range vs {
		c, err := toNode(v)
		if err != nil {
			return err
		}
		n.Content = append(n.Content, c)
	}
	return nil
}

func appendPair(n *yaml.Node, key string, v any) error {
	c, err := toNode(v)
	if err != nil {
		return err
	}
	n.Content = append(n.Content, scalarNode("!!str", key), c)
	return nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// fromNode converts a YAML node to an untyped value, reversing toNode.
func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return value.Unit{}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Unit{}, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.ScalarNode:
		return fromScalar(n)
	case yaml.SequenceNode:
		return fromSequence(n)
	case yaml.MappingNode:
		return fromMapping(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func fromScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		if b, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0); ok {
			return b, nil
		}
		return nil, fmt.Errorf("line %d: invalid integer %q", n.Line, n.Value)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	case "!!binary":
		var b []byte
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		blob := value.Attrs{{Name: "blob", Value: value.Unit{}}}
		return value.Attributed{Attrs: blob, Value: base64.StdEncoding.EncodeToString(b)}, nil
	case tagRef:
		return value.Ref(n.Value), nil
	}
	return n.Value, nil
}

func fromSequence(n *yaml.Node) (any, error) {
	switch n.Tag {
	case tagUnit:
		return value.Unit{}, nil
	case tagTuple:
		return fromTuple(n)
	}
	items := make([]any, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := fromNode(c)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if n.Tag == tagMarkup {
		return value.Markup{Nodes: items}, nil
	}
	return items, nil
}

func fromTuple(n *yaml.Node) (any, error) {
	var t value.Tuple
	for _, c := range n.Content {
		label := ""
		if c.Kind == yaml.MappingNode && c.Tag == tagLabel {
			if len(c.Content) != 2 {
				return nil, fmt.Errorf("line %d: a labeled item holds exactly one pair", c.Line)
			}
			label, c = c.Content[0].Value, c.Content[1]
		}
		v, err := fromNode(c)
		if err != nil {
			return nil, err
		}
		t.Items = append(t.Items, value.Item{Label: label, Value: v})
	}
	return t, nil
}

func fromMapping(n *yaml.Node) (any, error) {
	obj := value.NewObject()
	var (
		attrs value.Attrs
		inner any = value.Unit{}
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, c := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		v, err := fromNode(c)
		if err != nil {
			return nil, err
		}
		switch {
		case n.Tag == tagAttributed && strings.HasPrefix(k.Value, "@"):
			attrs = append(attrs, value.Attr{Name: k.Value[1:], Value: v})
		case n.Tag == tagAttributed && k.Value == valueKey:
			inner = v
		case obj.Has(k.Value):
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		default:
			obj.Fields = append(obj.Fields, value.Field{Key: k.Value, Value: v})
		}
	}
	if n.Tag == tagAttributed {
		return value.Attributed{Attrs: attrs, Value: inner}, nil
	}
	return obj, nil
}
