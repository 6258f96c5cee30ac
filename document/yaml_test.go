package document

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaslimbs/oaserrors"
)

func TestDecodeScalars(t *testing.T) {
	doc := MustDecode(`
s: hello
quoted: "123"
i: 42
big: 18446744073709551615
f: 1.5
b: true
n: null
inf: .inf
`)
	get := func(k string) any {
		v, ok := doc.Get(k)
		require.True(t, ok, k)
		return v.Value()
	}
	assert.Equal(t, "hello", get("s"))
	assert.Equal(t, "123", get("quoted"))
	assert.Equal(t, int64(42), get("i"))
	assert.Equal(t, uint64(18446744073709551615), get("big"))
	assert.Equal(t, 1.5, get("f"))
	assert.Equal(t, true, get("b"))
	assert.Nil(t, get("n"))
	assert.Equal(t, ".inf", get("inf"))
}

func TestDecodeExpandsAliases(t *testing.T) {
	doc := MustDecode(`
base: &base {type: string}
a: *base
b:
  <<: *base
  format: uuid
`)
	a, _ := doc.Get("a")
	base, _ := doc.Get("base")
	assert.True(t, Equal(a, base))
	assert.NotSame(t, a, base)

	b, _ := doc.Get("b")
	assert.Equal(t, []string{"type", "format"}, b.Keys())
}

func TestDecodeRecursiveAlias(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"mapping", "a: &x\n  b: *x\n"},
		{"sequence", "a: &x [1, *x]\n"},
		{"merge", "a: &x\n  b: 1\n  c:\n    <<: *x\n"},
		{"indirect", "a: &x\n  b: &y\n    c: *x\n  d: *y\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			require.Error(t, err)
			var perr *oaserrors.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Message, "recursive alias")
			assert.ErrorIs(t, err, oaserrors.ErrParse)
		})
	}
}

// nestedAliases builds levels of anchors where each level repeats the
// previous one width times.
func nestedAliases(levels, width int) string {
	var b strings.Builder
	b.WriteString("a0: &a0 x\n")
	for i := 1; i <= levels; i++ {
		fmt.Fprintf(&b, "a%d: &a%d [", i, i)
		for j := range width {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*a%d", i-1)
		}
		b.WriteString("]\n")
	}
	return b.String()
}

func TestDecodeExcessiveAliasing(t *testing.T) {
	_, err := Decode([]byte(nestedAliases(9, 10)))
	require.Error(t, err)
	var rerr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "alias_expansion", rerr.ResourceType)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
}

func TestDecodeModestAliasing(t *testing.T) {
	doc, err := Decode([]byte(nestedAliases(2, 10)))
	require.NoError(t, err)
	a2, ok := doc.Get("a2")
	require.True(t, ok)
	assert.Equal(t, 10, a2.Len())
	first := a2.Items()[0]
	assert.Equal(t, 10, first.Len())
}

func TestDecodeEmpty(t *testing.T) {
	n, err := Decode(nil)
	require.NoError(t, err)
	assert.True(t, n.IsNull())

	_, err = Decode([]byte("a: [b"))
	assert.Error(t, err)
}

func TestYAMLRoundTripKeepsOrderAndTypes(t *testing.T) {
	src := MustDecode(`
zeta: "true"
alpha: 1
beta: 1.0
list: [x, "007"]
`)
	out, err := yaml.Marshal(ToYAML(src))
	require.NoError(t, err)

	back := MustDecode(string(out))
	assert.True(t, Equal(src, back), treeDiff(src, back))
	assert.Equal(t, []string{"zeta", "alpha", "beta", "list"}, back.Keys())
}

func TestMarshalJSON(t *testing.T) {
	doc := MustDecode(`
b: "<a&b>"
a: [1, 2.5, true, null]
`)
	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":"<a&b>","a":[1,2.5,true,null]}`, string(out))

	indented, err := MarshalIndentJSON(doc, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": \"<a&b>\",\n  \"a\": [\n    1,\n    2.5,\n    true,\n    null\n  ]\n}", string(indented))
}

func TestMarshalJSONEmptyContainers(t *testing.T) {
	doc := NewObject()
	doc.Set("o", NewObject())
	doc.Set("a", NewArray())
	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"o":{},"a":[]}`, string(out))
}
