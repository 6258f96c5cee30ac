package partition

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/erraggy/oaslimbs/bundler"
	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/extractor"
	"github.com/erraggy/oaslimbs/internal/testutil"
	"github.com/erraggy/oaslimbs/oaserrors"
	"github.com/erraggy/oaslimbs/subset"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const twoTagsYAML = `swagger: "2.0"
info: {title: Two, version: "1"}
paths:
  /users:
    get:
      tags: [Users]
      responses:
        "200": {description: ok, schema: {$ref: "#/definitions/User"}}
  /orders:
    get:
      tags: [Order Book]
      responses:
        "200": {description: ok, schema: {$ref: "#/definitions/Order"}}
definitions:
  User: {type: object, properties: {name: {type: string}}}
  Order:
    type: object
    properties:
      buyer: {$ref: "#/definitions/User"}
`

func names(buckets []subset.Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Name
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.IncludeNotag)
	assert.False(t, cfg.MultitagsError)
	assert.False(t, cfg.NotagError)
	assert.Equal(t, "default", cfg.NotagName)
}

func TestLimbs(t *testing.T) {
	buckets, err := Limbs(testutil.Petstore(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []subset.Bucket{
		{Name: "pets", Selectors: []string{"pets"}},
		{Name: "store", Selectors: []string{"store"}},
		{Name: "default", Selectors: []string{"get /health"}},
	}, buckets)
}

func TestLimbsNotagOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NotagName = "misc"
	buckets, err := Limbs(testutil.Petstore(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"pets", "store", "misc"}, names(buckets))

	cfg.NotagName = ""
	buckets, err = Limbs(testutil.Petstore(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"pets", "store", "default"}, names(buckets))

	cfg.IncludeNotag = false
	buckets, err = Limbs(testutil.Petstore(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"pets", "store"}, names(buckets))
}

func TestLimbsNoUntaggedBucketWhenEmpty(t *testing.T) {
	buckets, err := Limbs(document.MustDecode(twoTagsYAML), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []subset.Bucket{
		{Name: "users", Selectors: []string{"Users"}},
		{Name: "order-book", Selectors: []string{"Order Book"}},
	}, buckets)
}

func TestLimbsMergesCollidingNames(t *testing.T) {
	doc := document.MustDecode(`
paths:
  /a:
    get: {tags: [Pets]}
    put: {tags: [pets]}
    post: {tags: [default]}
    delete: {}
    patch: {tags: ["!!!"]}
`)
	buckets, err := Limbs(doc, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []subset.Bucket{
		{Name: "pets", Selectors: []string{"Pets", "pets"}},
		{Name: "default", Selectors: []string{"default", "delete /a"}},
		{Name: "tag-4", Selectors: []string{"!!!"}},
	}, buckets)
}

func TestLimbsMultitagsError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MultitagsError = true

	_, err := Limbs(testutil.Petstore(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMultitagsOperations))

	var multiErr *MultitagsOperationsError
	require.ErrorAs(t, err, &multiErr)
	require.Len(t, multiErr.Operations, 1)
	assert.Equal(t, "get /pets/{petId}", multiErr.Operations[0].ID())
	assert.Equal(t, []string{"pets", "store"}, multiErr.Operations[0].Tags)
	assert.EqualError(t, err, "partition: multitags operations found: get /pets/{petId}")
}

func TestLimbsNotagError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NotagError = true

	_, err := Limbs(testutil.Petstore(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrNotagOperations))
	assert.False(t, errors.Is(err, oaserrors.ErrMultitagsOperations))

	var notagErr *NotagOperationsError
	require.ErrorAs(t, err, &notagErr)
	require.Len(t, notagErr.Operations, 1)
	assert.Equal(t, "get /health", notagErr.Operations[0].ID())
}

func TestLimbsStrictModesPassOnCleanDocument(t *testing.T) {
	cfg := Config{MultitagsError: true, NotagError: true}
	buckets, err := Limbs(document.MustDecode(twoTagsYAML), cfg)
	require.NoError(t, err)
	assert.Len(t, buckets, 2)
}

func TestSplitMatchesIndependentExtraction(t *testing.T) {
	parent := document.MustDecode(twoTagsYAML)

	results, err := Split(context.Background(), parent, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, tag := range []string{"Users", "Order Book"} {
		r := results[i]
		assert.Equal(t, Slug(tag), r.Name)
		assert.Equal(t, 1, r.Stats.OperationCount)

		want, err := extractor.Extract([]string{tag}, r.Name, parent)
		require.NoError(t, err)
		require.NoError(t, bundler.IncludeDependencies(context.Background(), want, r.Name, parent))
		assert.True(t, document.Equal(want, r.Document), testutil.Diff(want, r.Document))
	}

	assert.ElementsMatch(t, []string{"Order", "User"}, testutil.MustGet(t, results[1].Document, "#/definitions").Keys())
}

func TestSplitMultitagsOperationInEveryBucket(t *testing.T) {
	results, err := Split(context.Background(), testutil.Petstore(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results[:2] {
		assert.True(t, testutil.Has(r.Document, "#/paths/~1pets~1{petId}/get"), r.Name)
	}
	assert.Equal(t, []string{"/health"}, testutil.MustGet(t, results[2].Document, "#/paths").Keys())
}

func TestSplitStrictFailsBeforeExtraction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MultitagsError = true

	results, err := Split(context.Background(), testutil.Petstore(), cfg)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, oaserrors.ErrMultitagsOperations))
}

func TestSplitFailsWholeBatch(t *testing.T) {
	doc := document.MustDecode(`
paths:
  /ok:
    get: {tags: [ok], responses: {"200": {description: ok}}}
  /bad:
    get:
      tags: [bad]
      responses:
        "200": {schema: {$ref: "#/definitions/Missing"}}
`)
	results, err := Split(context.Background(), doc, DefaultConfig())
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, oaserrors.ErrReference))
}
