package partition

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/oaserrors"
	"github.com/erraggy/oaslimbs/selector"
	"github.com/erraggy/oaslimbs/subset"
)

// DefaultNotagName is the name of the bucket holding untagged operations.
const DefaultNotagName = "default"

// Config configures tag partitioning.
type Config struct {
	// MultitagsError fails with a *MultitagsOperationsError when an
	// operation carries more than one tag.
	MultitagsError bool
	// NotagError fails with a *NotagOperationsError when an operation
	// carries no tag.
	NotagError bool
	// IncludeNotag adds a bucket for untagged operations.
	IncludeNotag bool
	// NotagName names the untagged bucket. Empty means DefaultNotagName.
	NotagName string
}

// DefaultConfig returns the default configuration: untagged operations are
// kept in a "default" bucket and neither strict check is enabled.
func DefaultConfig() Config {
	return Config{
		IncludeNotag: true,
		NotagName:    DefaultNotagName,
	}
}

func (c Config) notagName() string {
	if c.NotagName == "" {
		return DefaultNotagName
	}
	return c.NotagName
}

// MultitagsOperationsError is returned in strict mode when operations carry
// more than one tag.
type MultitagsOperationsError struct {
	Operations []selector.Operation
}

// Error returns a human-readable error message.
func (e *MultitagsOperationsError) Error() string {
	return "partition: multitags operations found: " + operationList(e.Operations)
}

// Is reports whether target matches this error type.
func (e *MultitagsOperationsError) Is(target error) bool {
	return target == oaserrors.ErrMultitagsOperations
}

// NotagOperationsError is returned in strict mode when operations carry no
// tag.
type NotagOperationsError struct {
	Operations []selector.Operation
}

// Error returns a human-readable error message.
func (e *NotagOperationsError) Error() string {
	return "partition: no tag operations found: " + operationList(e.Operations)
}

// Is reports whether target matches this error type.
func (e *NotagOperationsError) Is(target error) bool {
	return target == oaserrors.ErrNotagOperations
}

func operationList(ops []selector.Operation) string {
	ids := make([]string, len(ops))
	for i, op := range ops {
		ids[i] = op.ID()
	}
	return strings.Join(ids, ", ")
}

// Limbs returns one bucket per tag of doc, in the order tags are first
// used, followed by the untagged bucket when enabled and not empty.
//
// Each tag bucket selects its tag. Tags whose slugs collide share a
// bucket, and the untagged bucket is merged into a tag bucket of the
// same name. A tag with an empty slug is named "tag-<n>" after its
// position.
func Limbs(doc *document.Node, cfg Config) ([]subset.Bucket, error) {
	if multi := selector.MultitagsOperations(doc); cfg.MultitagsError && len(multi) > 0 {
		return nil, &MultitagsOperationsError{Operations: multi}
	}
	notag := selector.NotagOperations(doc)
	if cfg.NotagError && len(notag) > 0 {
		return nil, &NotagOperationsError{Operations: notag}
	}

	var buckets []subset.Bucket
	index := make(map[string]int)
	add := func(name string, selectors ...string) {
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, subset.Bucket{Name: name})
		}
		buckets[i].Selectors = append(buckets[i].Selectors, selectors...)
	}

	for i, tag := range selector.Tags(doc) {
		name := Slug(tag)
		if name == "" {
			name = "tag-" + strconv.Itoa(i+1)
		}
		add(name, tag)
	}
	if cfg.IncludeNotag && len(notag) > 0 {
		ids := make([]string, len(notag))
		for i, op := range notag {
			ids[i] = op.ID()
		}
		add(cfg.notagName(), ids...)
	}
	return buckets, nil
}

// Split extracts one child per bucket returned by Limbs. The whole split
// fails if any bucket fails.
func Split(ctx context.Context, doc *document.Node, cfg Config, opts ...subset.Option) ([]subset.Result, error) {
	buckets, err := Limbs(doc, cfg)
	if err != nil {
		return nil, err
	}
	results, err := subset.ExtractMany(ctx, doc, buckets, opts...)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	return results, nil
}
