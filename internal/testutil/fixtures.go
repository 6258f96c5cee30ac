// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaslimbs/document"
)

// PetstoreYAML is a Swagger 2.0 document exercising every section the
// extraction pipeline touches: path-level parameters and extensions, shared
// parameters and responses, a self-referencing definition, operations with
// one tag, two tags and no tag, and an unreferenced definition.
const PetstoreYAML = `swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
host: petstore.example.com
basePath: /v1
schemes: [https]
consumes: [application/json]
produces: [application/json]
x-api-id: petstore
tags:
  - name: pets
    description: Pet operations
  - name: store
securityDefinitions:
  api_key: {type: apiKey, name: api_key, in: header}
security:
  - api_key: []
paths:
  /pets:
    x-controller: pets
    parameters:
      - $ref: "#/parameters/Limit"
    get:
      tags: [pets]
      operationId: listPets
      responses:
        "200":
          description: A list of pets
          schema:
            type: array
            items: {$ref: "#/definitions/Pet"}
        default:
          $ref: "#/responses/Error"
    post:
      tags: [pets]
      operationId: createPet
      parameters:
        - in: body
          name: pet
          required: true
          schema: {$ref: "#/definitions/NewPet"}
      responses:
        "201":
          description: Created
          schema: {$ref: "#/definitions/Pet"}
  /pets/{petId}:
    get:
      tags: [pets, store]
      operationId: showPet
      parameters:
        - $ref: "#/parameters/PetId"
      responses:
        "200":
          description: A pet
          schema: {$ref: "#/definitions/Pet"}
  /store/orders:
    get:
      tags: [store]
      operationId: listOrders
      responses:
        "200":
          description: Orders
          schema:
            type: array
            items: {$ref: "#/definitions/Order"}
  /health:
    get:
      operationId: health
      responses:
        "200": {description: OK}
definitions:
  Pet:
    type: object
    required: [id, name]
    properties:
      id: {type: integer, format: int64}
      name: {type: string}
      category: {$ref: "#/definitions/Category"}
  NewPet:
    allOf:
      - $ref: "#/definitions/Pet"
  Category:
    type: object
    properties:
      name: {type: string}
      parent: {$ref: "#/definitions/Category"}
  Order:
    type: object
    properties:
      pet: {$ref: "#/definitions/Pet"}
  Error:
    type: object
    properties:
      message: {type: string}
  Unused:
    type: string
parameters:
  Limit: {name: limit, in: query, type: integer}
  PetId: {name: petId, in: path, required: true, type: string}
  Unused: {name: unused, in: query, type: string}
responses:
  Error:
    description: Error
    schema: {$ref: "#/definitions/Error"}
`

// MutualRecursionYAML has two definitions that reference each other.
const MutualRecursionYAML = `swagger: "2.0"
info: {title: Tree, version: "1"}
paths:
  /nodes:
    get:
      tags: [tree]
      responses:
        "200":
          description: ok
          schema: {$ref: "#/definitions/Node"}
definitions:
  Node:
    type: object
    properties:
      children:
        type: array
        items: {$ref: "#/definitions/Edge"}
  Edge:
    type: object
    properties:
      target: {$ref: "#/definitions/Node"}
`

// Petstore returns a fresh tree decoded from PetstoreYAML.
func Petstore() *document.Node {
	return document.MustDecode(PetstoreYAML)
}

// MutualRecursion returns a fresh tree decoded from MutualRecursionYAML.
func MutualRecursion() *document.Node {
	return document.MustDecode(MutualRecursionYAML)
}

// MustGet follows a JSON Pointer such as "#/definitions/Pet" and fails the
// test if it does not resolve.
func MustGet(t *testing.T, doc *document.Node, pointer string) *document.Node {
	t.Helper()

	p, err := document.ParsePointer(pointer)
	if err != nil {
		t.Fatalf("Invalid pointer %q: %v", pointer, err)
	}
	n, err := document.Lookup(doc, p)
	if err != nil {
		t.Fatalf("Pointer %q does not resolve: %v", pointer, err)
	}
	return n
}

// Has reports whether pointer resolves in doc.
func Has(doc *document.Node, pointer string) bool {
	p, err := document.ParsePointer(pointer)
	if err != nil {
		return false
	}
	_, err = document.Lookup(doc, p)
	return err == nil
}

// WriteTempFile writes content to name inside a fresh temporary directory.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// WriteTempYAML marshals a tree to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, doc *document.Node) string {
	t.Helper()

	data, err := yaml.Marshal(document.ToYAML(doc))
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals a tree to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, doc *document.Node) string {
	t.Helper()

	data, err := document.MarshalIndentJSON(doc, "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", string(data))
}
