package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/internal/testutil"
)

func petstoreInput() specInput {
	return specInput{Content: testutil.PetstoreYAML}
}

func TestHandleExtract_Tag(t *testing.T) {
	specCache.reset()
	res, out, err := handleExtract(context.Background(), nil, extractInput{
		Spec:   petstoreInput(),
		Limbs:  []string{"pets"},
		Format: "json",
	})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, []string{"get /pets", "post /pets", "get /pets/{petId}"}, out.Operations)
	assert.Equal(t, docStats{PathCount: 2, OperationCount: 3, DefinitionCount: 4, ParameterCount: 2, ResponseCount: 1}, out.Stats)
	assert.Equal(t, "json", out.Format)
	assert.Equal(t, "Extracted 3 operations across 2 paths with 4 definitions.", out.Summary)

	doc, err := document.Decode([]byte(out.Document))
	require.NoError(t, err)
	assert.True(t, testutil.Has(doc, "#/definitions/Category"))
	assert.False(t, testutil.Has(doc, "#/definitions/Order"))
	assert.Equal(t, "#/definitions/Pet",
		testutil.MustGet(t, doc, "#/paths/~1pets/post/responses/201/schema/$ref").Value())
}

func TestHandleExtract_Defaults(t *testing.T) {
	specCache.reset()
	res, out, err := handleExtract(context.Background(), nil, extractInput{
		Spec:  petstoreInput(),
		Limbs: []string{"get /health"},
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, string(cfg.DefaultFormat), out.Format)
	assert.Equal(t, []string{"get /health"}, out.Operations)
	assert.Equal(t, "Extracted 1 operation across 1 path with 0 definitions.", out.Summary)
}

func TestHandleExtract_Properties(t *testing.T) {
	specCache.reset()
	_, out, err := handleExtract(context.Background(), nil, extractInput{
		Spec:       petstoreInput(),
		Limbs:      []string{"/store/orders"},
		Properties: []string{"swagger", "info"},
		Format:     "yaml",
	})
	require.NoError(t, err)

	doc, err := document.Decode([]byte(out.Document))
	require.NoError(t, err)
	assert.True(t, doc.Has("info"))
	assert.False(t, doc.Has("host"))
	assert.True(t, doc.Has("x-api-id"), "vendor extensions are always copied")
}

func TestHandleExtract_WritesFile(t *testing.T) {
	specCache.reset()
	target := filepath.Join(t.TempDir(), "pets.yaml")

	res, out, err := handleExtract(context.Background(), nil, extractInput{
		Spec:   petstoreInput(),
		Limbs:  []string{"pets"},
		Output: target,
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, target, out.WrittenTo)
	assert.Empty(t, out.Document)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestHandleExtract_SiblingFile(t *testing.T) {
	specCache.reset()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.yaml"), []byte(`definitions:
  Money: {type: string}
`), 0o600))
	parent := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(parent, []byte(`swagger: "2.0"
info: {title: Pay, version: "1"}
paths:
  /pay:
    post:
      tags: [pay]
      responses:
        "200":
          description: ok
          schema: {$ref: "common.yaml#/definitions/Money"}
`), 0o600))

	res, out, err := handleExtract(context.Background(), nil, extractInput{
		Spec:   specInput{File: parent},
		Limbs:  []string{"pay"},
		Format: "json",
	})
	require.NoError(t, err)
	require.Nil(t, res)

	doc, err := document.Decode([]byte(out.Document))
	require.NoError(t, err)
	assert.Equal(t, "common.yaml#/definitions/Money",
		testutil.MustGet(t, doc, "#/paths/~1pay/post/responses/200/schema/$ref").Value())
}

func TestHandleExtract_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input extractInput
		want  string
	}{
		{
			name:  "no limbs",
			input: extractInput{Spec: petstoreInput()},
			want:  "at least one limb",
		},
		{
			name:  "unknown limb",
			input: extractInput{Spec: petstoreInput(), Limbs: []string{"nope"}},
			want:  `no operation, path or tag matches limb "nope"`,
		},
		{
			name:  "bad format",
			input: extractInput{Spec: petstoreInput(), Limbs: []string{"pets"}, Format: "xml"},
			want:  `unsupported format "xml"`,
		},
		{
			name:  "bad anchor",
			input: extractInput{Spec: petstoreInput(), Limbs: []string{"pets"}, Anchor: "../up.json"},
			want:  "invalid anchor",
		},
		{
			name:  "missing spec",
			input: extractInput{Limbs: []string{"pets"}},
			want:  "exactly one of file, url, or content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specCache.reset()
			res, _, err := handleExtract(context.Background(), nil, tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestHandleExtract_SymlinkOutputRejected(t *testing.T) {
	specCache.reset()
	dir := t.TempDir()
	target := filepath.Join(dir, "real.yaml")
	link := filepath.Join(dir, "link.yaml")
	require.NoError(t, os.WriteFile(target, nil, 0o600))
	require.NoError(t, os.Symlink(target, link))

	res, _, err := handleExtract(context.Background(), nil, extractInput{
		Spec:   petstoreInput(),
		Limbs:  []string{"pets"},
		Output: link,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Contains(t, resultText(t, res), "invalid output path")
}
