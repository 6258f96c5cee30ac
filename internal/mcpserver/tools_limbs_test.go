package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslimbs/internal/testutil"
)

func TestHandleLimbs(t *testing.T) {
	specCache.reset()
	res, out, err := handleLimbs(context.Background(), nil, limbsInput{Spec: petstoreInput()})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, 2, out.TagCount)
	assert.Equal(t, 2, out.Returned)
	assert.Equal(t, []tagLimb{
		{Tag: "pets", Bucket: "pets", Operations: []string{"get /pets", "post /pets", "get /pets/{petId}"}},
		{Tag: "store", Bucket: "store", Operations: []string{"get /pets/{petId}", "get /store/orders"}},
	}, out.Tags)
	assert.Equal(t, []string{"get /health"}, out.Notag)
	assert.Equal(t, []string{"get /pets/{petId}"}, out.Multitags)
	assert.Equal(t, "Found 2 tags, 1 untagged operation and 1 multi-tag operation.", out.Summary)
}

func TestHandleLimbs_Pagination(t *testing.T) {
	specCache.reset()
	_, out, err := handleLimbs(context.Background(), nil, limbsInput{Spec: petstoreInput(), Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TagCount)
	assert.Equal(t, 1, out.Returned)
	require.Len(t, out.Tags, 1)
	assert.Equal(t, "store", out.Tags[0].Tag)

	_, out, err = handleLimbs(context.Background(), nil, limbsInput{Spec: petstoreInput(), Offset: 5})
	require.NoError(t, err)
	assert.Zero(t, out.Returned)
	assert.Empty(t, out.Tags)
}

func TestHandleLimbs_BucketSlug(t *testing.T) {
	specCache.reset()
	_, out, err := handleLimbs(context.Background(), nil, limbsInput{Spec: specInput{Content: `swagger: "2.0"
info: {title: Slugs, version: "1"}
paths:
  /a:
    get:
      tags: ["Café Orders"]
      responses: {"200": {description: ok}}
`}})
	require.NoError(t, err)
	require.Len(t, out.Tags, 1)
	assert.Equal(t, "cafe-orders", out.Tags[0].Bucket)
	assert.Nil(t, out.Notag)
	assert.Nil(t, out.Multitags)
}

func TestHandleLimbs_FileInput(t *testing.T) {
	specCache.reset()
	path := testutil.WriteTempFile(t, "tree.yaml", testutil.MutualRecursionYAML)
	_, out, err := handleLimbs(context.Background(), nil, limbsInput{Spec: specInput{File: path}})
	require.NoError(t, err)
	assert.Equal(t, []tagLimb{{Tag: "tree", Bucket: "tree", Operations: []string{"get /nodes"}}}, out.Tags)
}
