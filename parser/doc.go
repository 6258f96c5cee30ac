// Package parser loads OpenAPI 2.0 (Swagger) documents into document trees.
//
// Documents are read from a local file, an http(s) URL, a byte slice or an
// io.Reader. JSON and YAML are both accepted: the YAML decoder handles JSON
// as a subset. The result is a [document.Node] tree that keeps the source
// key order, wrapped in a [ParseResult] with source metadata and
// [DocumentStats].
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("swagger.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d operations\n", result.Stats.OperationCount)
//
// # Structural checks
//
// The parser does not validate documents against the OpenAPI schema. It
// only rejects inputs that no extraction could work with: a root that is
// not an object, or a "paths" member that is not an object. Those failures
// are reported as *oaserrors.ParseError. A missing or unexpected "swagger"
// version is recorded as a warning.
//
// # Limits
//
// Sources larger than [MaxFileSize] are rejected with
// *oaserrors.ResourceLimitError. URL sources are fetched with a 30 second
// timeout and the "oaslimbs/<version>" User-Agent.
//
// # Logging
//
// Every oaslimbs package logs through the [Logger] interface defined here.
// [NewSlogAdapter] wraps a *slog.Logger; [NopLogger] discards output and is
// the default.
package parser
