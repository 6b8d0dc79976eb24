// Package api embeds the OpenAPI description of the channel catalog.
package api

import _ "embed"

// OpenAPISpec is served verbatim at /docs/openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
