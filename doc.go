// Package oaslimbs cuts self-contained subsets ("limbs") out of Swagger 2.0
// documents.
//
// A limb selects operations of a parent document. It is one of:
//
//   - an operation identifier, "<method> <path>", such as "get /pets"
//   - a path, such as "/pets/{petId}", selecting every operation of the path
//   - a tag, such as "pets", selecting every operation carrying the tag
//
// The child document built from a set of limbs holds the selected
// operations together with every definition, parameter and response they
// reach through $ref, so it can be read without the parent.
//
// # Overview
//
// The library is split into small packages that are composed in order:
//
//   - document: ordered JSON/YAML tree shared by every stage
//   - parser: load a parent from a file, URL, reader or bytes
//   - selector: classify limbs and expand them into operation identifiers
//   - extractor: copy the selected operations into a new child
//   - resolver: load and cache the documents references point into
//   - bundler: copy referenced components into the child and rewrite refs
//   - subset: one-call extraction of a single child or many buckets
//   - partition: one bucket per tag, with strict modes for untagged and
//     multi-tag operations
//   - writer: serialize children as JSON or YAML
//
// # Quick Start
//
// Extract the operations of a tag:
//
//	import (
//		"github.com/erraggy/oaslimbs/parser"
//		"github.com/erraggy/oaslimbs/subset"
//		"github.com/erraggy/oaslimbs/writer"
//	)
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("swagger.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	child, err := subset.Extract(ctx, result.Document, []string{"pets", "get /health"},
//		subset.WithResolverOptions(subset.SourceResolverOptions(result)...),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = writer.Write(os.Stdout, child, writer.FormatYAML)
//
// Split a document by tag:
//
//	results, err := partition.Split(ctx, result.Document, partition.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	paths, err := writer.WriteDir("parts", results, writer.FormatJSON)
//
// # Security Considerations
//
//   - External references are loaded relative to the parent's directory
//     and may not escape it
//   - HTTP(S) references are disabled unless resolver.WithHTTPRefs is set
//   - The resolver caps the number of loaded documents and the bundler caps
//     reference depth
//   - Output files are created with restrictive permissions (0600)
//
// # Error Handling
//
// Errors wrap the sentinels of package oaserrors, so callers can test for
// categories with errors.Is:
//
//	if errors.Is(err, oaserrors.ErrUnknownLimb) {
//		// a limb matched nothing
//	}
//
// # Command-Line Interface
//
// The oaslimbs command exposes the same operations:
//
//	# Extract limbs to stdout
//	oaslimbs extract swagger.yaml pets "get /store/orders"
//
//	# One file per tag
//	oaslimbs split -d parts swagger.yaml
//
//	# Serve the tools over the Model Context Protocol
//	oaslimbs mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/oaslimbs/cmd/oaslimbs@latest
package oaslimbs
