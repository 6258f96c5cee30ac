package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaslimbs/oaserrors"
)

// Decode parses JSON or YAML source into a tree. Since JSON is a subset
// of YAML, a single decoder serves both. Empty input yields a null node.
func Decode(data []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return FromYAML(&root)
}

// MustDecode is like Decode but panics on error. It is meant for fixtures.
func MustDecode(src string) *Node {
	n, err := Decode([]byte(src))
	if err != nil {
		panic(err)
	}
	return n
}

// FromYAML converts a yaml.Node into a tree. Aliases are expanded into
// independent copies, so the result never shares subtrees. An alias that
// refers to one of its own ancestors fails with a *oaserrors.ParseError,
// and expansion that dwarfs the source fails with a
// *oaserrors.ResourceLimitError.
func FromYAML(y *yaml.Node) (*Node, error) {
	d := &yamlDecoder{expanding: make(map[*yaml.Node]bool)}
	return d.convert(y)
}

// Alias budget, after the yaml package's own guard against excessive
// aliasing: the share of nodes produced by aliases may not exceed a ratio
// that shrinks from 99% to 10% as the tree grows.
const (
	aliasMinNodes      = 1000
	aliasMinExpanded   = 100
	aliasRatioLowMark  = 400_000
	aliasRatioHighMark = 4_000_000
)

type yamlDecoder struct {
	expanding map[*yaml.Node]bool
	nodes     int
	aliased   int
	depth     int // alias expansions currently open
}

func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= aliasRatioLowMark:
		return 0.99
	case nodes >= aliasRatioHighMark:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(nodes-aliasRatioLowMark)/(aliasRatioHighMark-aliasRatioLowMark))
	}
}

// count records one materialised node and enforces the alias budget.
func (d *yamlDecoder) count(y *yaml.Node) error {
	d.nodes++
	if d.depth > 0 {
		d.aliased++
	}
	if d.aliased > aliasMinExpanded && d.nodes > aliasMinNodes &&
		float64(d.aliased)/float64(d.nodes) > allowedAliasRatio(d.nodes) {
		return &oaserrors.ResourceLimitError{
			ResourceType: "alias_expansion",
			Limit:        int64(float64(d.nodes) * allowedAliasRatio(d.nodes)),
			Actual:       int64(d.aliased),
			Message:      fmt.Sprintf("excessive aliasing near line %d", y.Line),
		}
	}
	return nil
}

func (d *yamlDecoder) convert(y *yaml.Node) (*Node, error) {
	if y == nil {
		return NewNull(), nil
	}
	if y.Kind != yaml.DocumentNode && y.Kind != yaml.AliasNode {
		if err := d.count(y); err != nil {
			return nil, err
		}
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return NewNull(), nil
		}
		return d.convert(y.Content[0])

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode, valNode := y.Content[i], y.Content[i+1]
			if keyNode.ShortTag() == "!!merge" {
				if err := d.mergeInto(obj, valNode); err != nil {
					return nil, err
				}
				continue
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("document: line %d: mapping key must be a scalar", keyNode.Line)
			}
			val, err := d.convert(valNode)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := NewArray()
		for _, item := range y.Content {
			child, err := d.convert(item)
			if err != nil {
				return nil, err
			}
			arr.Append(child)
		}
		return arr, nil

	case yaml.AliasNode:
		return d.expand(y)

	case yaml.ScalarNode:
		return scalarFromYAML(y)

	default:
		return nil, fmt.Errorf("document: line %d: unsupported yaml node kind %d", y.Line, y.Kind)
	}
}

// expand materialises an alias. Its target may not be open further up
// the stack.
func (d *yamlDecoder) expand(y *yaml.Node) (*Node, error) {
	target := y.Alias
	if target == nil {
		return NewNull(), nil
	}
	if d.expanding[target] {
		return nil, &oaserrors.ParseError{
			Line:    y.Line,
			Column:  y.Column,
			Message: fmt.Sprintf("recursive alias *%s", y.Value),
		}
	}
	d.expanding[target] = true
	d.depth++
	defer func() {
		delete(d.expanding, target)
		d.depth--
	}()
	return d.convert(target)
}

// mergeInto applies a YAML merge key: members already present win.
func (d *yamlDecoder) mergeInto(obj *Node, src *yaml.Node) error {
	sources := []*yaml.Node{src}
	if src.Kind == yaml.SequenceNode {
		sources = src.Content
	}
	for _, s := range sources {
		merged, err := d.convert(s)
		if err != nil {
			return err
		}
		if !merged.IsObject() {
			return fmt.Errorf("document: line %d: merge value must be a mapping", s.Line)
		}
		for _, k := range merged.Keys() {
			if !obj.Has(k) {
				v, _ := merged.Get(k)
				obj.Set(k, v)
			}
		}
	}
	return nil
}

func scalarFromYAML(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("document: line %d: %w", y.Line, err)
		}
		return NewScalar(b), nil
	case "!!int":
		if i, err := strconv.ParseInt(y.Value, 0, 64); err == nil {
			return NewScalar(i), nil
		}
		if u, err := strconv.ParseUint(y.Value, 0, 64); err == nil {
			return NewScalar(u), nil
		}
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, fmt.Errorf("document: line %d: %w", y.Line, err)
		}
		return NewScalar(v), nil
	case "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, fmt.Errorf("document: line %d: %w", y.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			// JSON has no representation for these
			return NewString(y.Value), nil
		}
		return NewScalar(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their source text
		return NewString(y.Value), nil
	}
}

// ToYAML converts a tree into a yaml.Node ready for encoding. Strings are
// tagged !!str so the encoder quotes values that would otherwise resolve
// to another type.
func ToYAML(n *Node) *yaml.Node {
	switch n.Kind() {
	case KindObject:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*n.Len())}
		for _, k := range n.keys {
			out.Content = append(out.Content, scalarNode("!!str", k), ToYAML(n.fields[k]))
		}
		return out
	case KindArray:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.items))}
		for _, item := range n.items {
			out.Content = append(out.Content, ToYAML(item))
		}
		return out
	case KindScalar:
		return scalarToYAML(n.value)
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarToYAML(v any) *yaml.Node {
	switch val := v.(type) {
	case string:
		return scalarNode("!!str", val)
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val))
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10))
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(val, 10))
	case float64:
		return scalarNode("!!float", formatFloat(val))
	default:
		return scalarNode("!!str", fmt.Sprint(val))
	}
}

// formatFloat keeps a fractional marker so 1.0 does not come back as an int.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
