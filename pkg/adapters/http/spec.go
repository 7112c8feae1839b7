package http

import _ "embed"

// OpenAPISpec is the OpenAPI 3 description of the minimal-mode routes.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
