package dynjson

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML document into a Value. Mapping keys keep their
// document order. Malformed input gives Null tagged KindInvalidJSON.
func ParseYAML(data []byte) Value {
	var v Value
	if err := yaml.Unmarshal(data, &v); err != nil {
		return failed(wrapValueError(KindInvalidJSON, "", err, "input is not valid YAML"))
	}
	return v
}

// YAML renders v as a YAML document.
func (v Value) YAML() ([]byte, error) {
	return yaml.Marshal(v)
}

// MarshalYAML implements yaml.Marshaler. Unknown and failed values are
// written as null.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	if v.err != nil || v.typ == TypeUnknown {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	switch v.typ {
	case TypeBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case TypeNumber:
		tag := "!!float"
		if v.num.IsInteger() {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(v.num)}
	case TypeString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case TypeArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.arr {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case TypeObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
				pair.Value.yamlNode(),
			)
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := fromYAML(node, DefaultMaxParseDepth)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromYAML(node *yaml.Node, depth int) (Value, error) {
	if depth <= 0 {
		return Value{}, newValueError(KindElementTooDeep, "", "YAML document nested deeper than %d levels", DefaultMaxParseDepth)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(node.Content[0], depth)
	case yaml.AliasNode:
		return fromYAML(node.Alias, depth-1)
	case yaml.SequenceNode:
		arr := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromYAML(child, depth-1)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, item)
		}
		return Value{typ: TypeArray, arr: arr}, nil
	case yaml.MappingNode:
		obj := newObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			item, err := fromYAML(node.Content[i+1], depth-1)
			if err != nil {
				return Value{}, err
			}
			obj.Set(node.Content[i].Value, item)
		}
		return Value{typ: TypeObject, obj: obj}, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return Value{}, newValueError(KindUnsupportedType, "", "YAML node kind %d", node.Kind)
	}
}

func yamlScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("dynjson: line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := node.Decode(&u); err == nil {
			return Uint(u), nil
		}
		fallthrough
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("dynjson: line %d: %w", node.Line, err)
		}
		return Float(f), nil
	default:
		return String(node.Value), nil
	}
}
