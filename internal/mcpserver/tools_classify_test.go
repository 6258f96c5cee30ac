package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleClassify(t *testing.T) {
	specCache.reset()
	res, out, err := handleClassify(context.Background(), nil, classifyInput{
		Spec:  petstoreInput(),
		Limbs: []string{"get /health", "/pets", "store", "nope"},
	})
	require.NoError(t, err)
	require.Nil(t, res)

	require.Len(t, out.Items, 4)
	assert.Equal(t, classifyItem{Limb: "get /health", Kind: "operation", Operations: []string{"get /health"}}, out.Items[0])
	assert.Equal(t, classifyItem{Limb: "/pets", Kind: "path", Operations: []string{"get /pets", "post /pets"}}, out.Items[1])
	assert.Equal(t, classifyItem{Limb: "store", Kind: "tag", Operations: []string{"get /pets/{petId}", "get /store/orders"}}, out.Items[2])
	assert.Equal(t, "nope", out.Items[3].Limb)
	assert.Empty(t, out.Items[3].Kind)
	assert.Contains(t, out.Items[3].Error, `no operation, path or tag matches limb "nope"`)

	assert.Equal(t, 1, out.UnknownCount)
	assert.Equal(t, "Classified 4 limbs. 1 unknown limb.", out.Summary)
}

func TestHandleClassify_Errors(t *testing.T) {
	specCache.reset()
	res, _, err := handleClassify(context.Background(), nil, classifyInput{Spec: petstoreInput()})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Contains(t, resultText(t, res), "at least one limb")

	res, _, err = handleClassify(context.Background(), nil, classifyInput{
		Spec:  specInput{Content: "- not\n- a\n- document\n"},
		Limbs: []string{"pets"},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}
